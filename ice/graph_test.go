package ice

import (
	"reflect"
	"testing"
)

func TestGraphKeepsValues(t *testing.T) {
	bag := NewMagicBag()
	bag.Put(NewMemStorage)
	g := NewGraph(bag, nil)

	var s1, s2 Storage
	if err := g.Extract(&s1); err != nil {
		t.Fatal(err)
	}
	s1.Set(7)
	if err := g.Extract(&s2); err != nil {
		t.Fatal(err)
	}
	if s2.Get() != 7 {
		t.Fatalf("expected the same Storage from one Graph; got %d", s2.Get())
	}

	// The bag itself still builds fresh values.
	var s3 Storage
	if err := bag.Extract(&s3); err != nil {
		t.Fatal(err)
	}
	if s3.Get() != 0 {
		t.Fatalf("expected a fresh Storage from the bag; got %d", s3.Get())
	}
}

func TestGraphParent(t *testing.T) {
	parentBag := NewMagicBag()
	parentBag.Put(NewMemStorage)
	parent := NewGraph(parentBag, nil)

	childBag := NewMagicBag()
	childBag.PutMany(NewDB, NewYesAuther)
	child := NewGraph(childBag, parent)

	var db DB
	if err := child.Extract(&db); err != nil {
		t.Fatal(err)
	}
	if err := db.Inc("token"); err != nil {
		t.Fatal(err)
	}

	var s Storage
	if err := parent.Extract(&s); err != nil {
		t.Fatal(err)
	}
	if s.Get() != 1 {
		t.Fatalf("expected child to share the parent's Storage; got %d", s.Get())
	}

	keys := child.Constructed()
	for _, k := range keys {
		if k == reflect.TypeOf((*Storage)(nil)).Elem() {
			t.Fatal("borrowed Storage must not count as constructed by the child")
		}
	}
}

func TestGraphUnboundWithoutParent(t *testing.T) {
	g := NewGraph(NewMagicBag(), nil)
	var s Storage
	if err := g.Extract(&s); err == nil {
		t.Fatal("expected error for unbound key")
	}
}

func TestGraphPreloadAndClose(t *testing.T) {
	var closed []string
	c := &counter{}
	bag := NewMagicBag()
	bag.Put(func() first {
		c.made++
		return first{&closer{"first", &closed}}
	})
	bag.Put(func(f first) second {
		return second{&closer{"second", &closed}}
	})
	g := NewGraph(bag, nil)
	if err := g.Preload(); err != nil {
		t.Fatal(err)
	}
	if c.made != 1 {
		t.Fatalf("expected first to be made once; was %d", c.made)
	}
	if len(g.Constructed()) != 2 {
		t.Fatalf("expected 2 constructed keys; was %v", g.Constructed())
	}

	if err := g.Close(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(closed, []string{"second", "first"}) {
		t.Fatalf("expected newest-first close order; was %v", closed)
	}
	if err := g.Close(); err != nil {
		t.Fatal("second Close should be a no-op")
	}
	var f first
	if err := g.Extract(&f); err != ErrClosed {
		t.Fatalf("expected ErrClosed; was %v", err)
	}
}

func TestGraphPreloadError(t *testing.T) {
	bag := NewMagicBag()
	bag.Put(func() (intBox, error) {
		return intBox{}, errTest
	})
	if err := NewGraph(bag, nil).Preload(); err == nil {
		t.Fatal("expected Preload to surface the provider error")
	}
}
