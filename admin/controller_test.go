package admin

import (
	"errors"
	"reflect"
	"testing"

	"go.uber.org/multierr"
)

type fakeService struct {
	name     string
	journal  *[]string
	startErr error
	stopErr  error
}

func (s *fakeService) note(what string) error {
	*s.journal = append(*s.journal, s.name+"."+what)
	return nil
}

func (s *fakeService) Create() error { return s.note("create") }
func (s *fakeService) Start() error {
	s.note("start")
	return s.startErr
}
func (s *fakeService) Stop() error {
	s.note("stop")
	return s.stopErr
}
func (s *fakeService) Destroy() error { return s.note("destroy") }

func TestDeployAndShutdown(t *testing.T) {
	var journal []string
	c := NewController()
	for _, n := range []string{"a", "b"} {
		if err := c.Deploy(n, &fakeService{name: n, journal: &journal}); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Deploy("a", &fakeService{name: "a", journal: &journal}); err == nil {
		t.Fatal("expected a duplicate name to be rejected")
	}
	if got := c.Deployed(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected deployed %v", got)
	}
	if err := c.Shutdown(); err != nil {
		t.Fatal(err)
	}
	expected := []string{
		"a.create", "a.start", "b.create", "b.start",
		"b.stop", "b.destroy", "a.stop", "a.destroy",
	}
	if !reflect.DeepEqual(journal, expected) {
		t.Fatalf("expected %v; was %v", expected, journal)
	}
	if len(c.Deployed()) != 0 {
		t.Fatal("expected nothing deployed after Shutdown")
	}
}

func TestStartFailureDestroys(t *testing.T) {
	var journal []string
	c := NewController()
	svc := &fakeService{name: "a", journal: &journal, startErr: errors.New("no port")}
	if err := c.Deploy("a", svc); err == nil {
		t.Fatal("expected Start failure")
	}
	expected := []string{"a.create", "a.start", "a.destroy"}
	if !reflect.DeepEqual(journal, expected) {
		t.Fatalf("expected %v; was %v", expected, journal)
	}
	if len(c.Deployed()) != 0 {
		t.Fatal("a failed service must not stay deployed")
	}
}

func TestUndeployDestroysAfterStopFailure(t *testing.T) {
	var journal []string
	c := NewController()
	c.Deploy("a", &fakeService{name: "a", journal: &journal, stopErr: errors.New("stuck")})
	err := c.Undeploy("a")
	if len(multierr.Errors(err)) != 1 {
		t.Fatalf("expected just the stop error; was %v", err)
	}
	if journal[len(journal)-1] != "a.destroy" {
		t.Fatalf("expected destroy to run; journal %v", journal)
	}
	if c.Undeploy("a") == nil {
		t.Fatal("expected an error undeploying twice")
	}
}
