package locator

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/twitter/icewire/appcontext"
	"github.com/twitter/icewire/common/stats"
)

var (
	// ErrNoContextKey is returned by UseContext when asked for the empty key.
	ErrNoContextKey = errors.New("locator: a context key is required")

	// ErrAlreadyReleased is returned by a second Release of the same Reference.
	ErrAlreadyReleased = errors.New("locator: reference already released")
)

// NoSuchContextError is returned by UseContext for a key the locator does not define.
type NoSuchContextError struct {
	Selector string
	Key      string
}

func (e *NoSuchContextError) Error() string {
	return fmt.Sprintf("locator %q defines no context %q", e.Selector, e.Key)
}

// Definition is one container entry of a locator configuration.
type Definition struct {
	Type           string
	ConfigLocation string
	Parent         string `json:",omitempty"`
}

type definitions struct {
	Contexts map[string]Definition
}

func parseDefinitions(text []byte) (map[string]Definition, error) {
	var defs definitions
	if err := json.Unmarshal(text, &defs); err != nil {
		return nil, errors.Wrap(err, "cannot parse locator configuration")
	}
	if defs.Contexts == nil {
		defs.Contexts = map[string]Definition{}
	}
	for key, def := range defs.Contexts {
		if key == "" {
			return nil, errors.New("locator configuration has a context with an empty key")
		}
		if def.Parent == key {
			return nil, errors.Errorf("context %q is its own parent", key)
		}
		if def.Parent != "" {
			if _, ok := defs.Contexts[def.Parent]; !ok {
				return nil, errors.Errorf("context %q has undefined parent %q", key, def.Parent)
			}
		}
	}
	return defs.Contexts, nil
}

// Locator owns the shared containers named by one locator configuration.
type Locator struct {
	selector string
	registry *Registry
	defs     map[string]Definition
	stat     stats.StatsReceiver

	mu      sync.Mutex
	entries map[string]*entry
}

// a live container and the number of unreleased References to it
type entry struct {
	container appcontext.Container
	refs      int
	parentRef *Reference
}

func (l *Locator) Selector() string {
	return l.selector
}

// Keys lists the context keys this locator defines.
func (l *Locator) Keys() []string {
	keys := make([]string, 0, len(l.defs))
	for k := range l.defs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Definition returns the definition of key.
func (l *Locator) Definition(key string) (Definition, bool) {
	def, ok := l.defs[key]
	return def, ok
}

// RefCount returns the number of unreleased References to key; 0 means not live.
func (l *Locator) RefCount(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.entries[key]; ok {
		return e.refs
	}
	return 0
}

// UseContext returns a Reference to the container named key, creating it if no
// Reference to it is outstanding. The caller must Release the Reference.
func (l *Locator) UseContext(key string) (*Reference, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.use(key, nil)
}

// use acquires key with l.mu held. chain holds the keys whose creation is waiting on this one.
func (l *Locator) use(key string, chain []string) (*Reference, error) {
	if key == "" {
		return nil, ErrNoContextKey
	}
	for _, k := range chain {
		if k == key {
			return nil, errors.Errorf("locator %q: parent cycle through %q", l.selector, key)
		}
	}

	e, ok := l.entries[key]
	if !ok {
		var err error
		if e, err = l.create(key, chain); err != nil {
			l.stat.Counter(stats.LocatorCreateErrCounter).Inc(1)
			return nil, err
		}
		l.entries[key] = e
		l.stat.Gauge(stats.LocatorLiveContainersGauge).Update(int64(len(l.entries)))
	}
	e.refs++
	l.stat.Counter(stats.LocatorAcquireCounter).Inc(1)
	log.WithFields(log.Fields{"selector": l.selector, "key": key, "refs": e.refs}).Debug("context acquired")
	return &Reference{locator: l, key: key, container: e.container}, nil
}

// create builds and refreshes the container for key. On failure nothing stays acquired.
func (l *Locator) create(key string, chain []string) (*entry, error) {
	def, ok := l.defs[key]
	if !ok {
		return nil, &NoSuchContextError{Selector: l.selector, Key: key}
	}
	maker, ok := l.registry.maker(def.Type)
	if !ok {
		return nil, errors.Errorf("locator %q: context %q has unknown type %q", l.selector, key, def.Type)
	}

	e := &entry{}
	var parent appcontext.Container
	if def.Parent != "" {
		ref, err := l.use(def.Parent, append(chain, key))
		if err != nil {
			return nil, errors.Wrapf(err, "context %q: cannot acquire parent", key)
		}
		e.parentRef = ref
		parent = ref.container
	}

	container, err := maker(key, def, parent)
	if err == nil {
		if r, ok := container.(refresher); ok {
			err = r.Refresh()
		}
	}
	if err != nil {
		if container != nil {
			err = multierr.Append(err, container.Close())
		}
		if e.parentRef != nil {
			e.parentRef.released = true
			err = multierr.Append(err, l.release(e.parentRef))
		}
		return nil, errors.Wrapf(err, "locator %q: cannot create context %q", l.selector, key)
	}
	e.container = container
	return e, nil
}

type refresher interface {
	Refresh() error
}

// release gives back one reference to ref.key with l.mu held.
func (l *Locator) release(ref *Reference) error {
	e, ok := l.entries[ref.key]
	if !ok || e.refs <= 0 {
		return errors.Errorf("locator %q: context %q is not live", l.selector, ref.key)
	}
	e.refs--
	l.stat.Counter(stats.LocatorReleaseCounter).Inc(1)
	log.WithFields(log.Fields{"selector": l.selector, "key": ref.key, "refs": e.refs}).Debug("context released")
	if e.refs > 0 {
		return nil
	}

	delete(l.entries, ref.key)
	l.stat.Gauge(stats.LocatorLiveContainersGauge).Update(int64(len(l.entries)))
	err := e.container.Close()
	if e.parentRef != nil {
		e.parentRef.released = true
		err = multierr.Append(err, l.release(e.parentRef))
	}
	return err
}

// Reference is a counted handle to a shared container.
type Reference struct {
	locator   *Locator
	key       string
	container appcontext.Container
	// guarded by locator.mu
	released bool
}

// Key is the context key this Reference was acquired with.
func (r *Reference) Key() string {
	return r.key
}

// Context is the shared container. It must not be used after Release.
func (r *Reference) Context() appcontext.Container {
	return r.container
}

// Release gives the reference back. The container is closed when its last Reference is released.
// Releasing twice returns ErrAlreadyReleased and leaves the count alone.
func (r *Reference) Release() error {
	l := r.locator
	l.mu.Lock()
	defer l.mu.Unlock()
	if r.released {
		return ErrAlreadyReleased
	}
	r.released = true
	return l.release(r)
}
