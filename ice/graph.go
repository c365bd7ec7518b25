package ice

import (
	"io"
	"reflect"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ErrClosed is returned by Extract on a Graph that has been closed.
var ErrClosed = errors.New("ice: graph is closed")

// Graph is a MagicBag plus every value it has constructed so far.
// Each Key is constructed at most once per Graph; later Extracts get the same value.
// Keys the bag does not bind are asked of parent, if there is one.
type Graph struct {
	mu      sync.Mutex
	bag     *MagicBag
	parent  Extractor
	values  map[Key]Value
	created []Key
	closed  bool
}

func NewGraph(bag *MagicBag, parent Extractor) *Graph {
	return &Graph{
		bag:    bag,
		parent: parent,
		values: make(map[Key]Value),
	}
}

// Extract fills dest, constructing (and keeping) whatever is missing.
func (g *Graph) Extract(dest interface{}) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return ErrClosed
	}
	eval := &evaluation{
		bag:     g.bag,
		values:  g.values,
		parent:  g.parent,
		created: &g.created,
	}
	return eval.extract(dest)
}

// Preload constructs every Key the bag binds, in a stable order, stopping at the first error.
func (g *Graph) Preload() error {
	keys := make([]Key, 0, len(g.bag.bindings))
	for k := range g.bag.bindings {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	for _, k := range keys {
		if err := g.Extract(reflect.New(reflect.Type(k)).Interface()); err != nil {
			return err
		}
	}
	return nil
}

// Constructed returns the Keys this Graph built itself, in construction order.
func (g *Graph) Constructed() []Key {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Key(nil), g.created...)
}

// Close closes every constructed value that is an io.Closer, newest first.
// Values borrowed from the parent are left alone. Close is safe to call twice.
func (g *Graph) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil
	}
	g.closed = true
	var err error
	for i := len(g.created) - 1; i >= 0; i-- {
		v := reflect.Value(g.values[g.created[i]])
		if !v.IsValid() || !v.CanInterface() {
			continue
		}
		if c, ok := v.Interface().(io.Closer); ok && !isNil(v) {
			err = multierr.Append(err, c.Close())
		}
	}
	g.values = nil
	return err
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
