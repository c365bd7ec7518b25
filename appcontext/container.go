package appcontext

import (
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/twitter/icewire/common/stats"
	"github.com/twitter/icewire/config/jsonconfig"
	"github.com/twitter/icewire/ice"
)

// Container is a named set of wired values.
type Container interface {
	ice.Extractor
	Name() string
	Close() error
}

// Wireable is implemented by objects that pull their own dependencies from an Extractor.
type Wireable interface {
	Wire(ex ice.Extractor) error
}

// Autowirer is the capability to wire an object the container did not construct.
type Autowirer interface {
	Autowire(target Wireable) error
}

// AutowiringContainer is a Container with the Autowirer capability.
type AutowiringContainer interface {
	Container
	Autowirer
}

// Options describe how to build a container.
type Options struct {
	// Name identifies the container in logs and errors.
	Name string
	// ConfigLocation is a resource name (foo.json) or literal JSON holding the definitions.
	ConfigLocation string
	// Parent, if set, supplies whatever the definitions do not bind.
	Parent Container
	// Asset loads ConfigLocation.
	Asset jsonconfig.AssetFunc
	// Schema turns the definitions into modules.
	Schema jsonconfig.Schema
	// Modules are installed before the definitions, which may override them.
	Modules []ice.Module
	Stat    stats.StatsReceiver
}

// Factory is a plain container: values by type, no wiring of outside objects.
type Factory struct {
	opts  Options
	stat  stats.StatsReceiver
	mu    sync.RWMutex
	graph *ice.Graph
	// closed containers refuse Refresh and Extract.
	closed bool
}

func NewFactory(opts Options) *Factory {
	stat := opts.Stat
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	if opts.Schema == nil {
		opts.Schema = jsonconfig.EmptySchema()
	}
	return &Factory{opts: opts, stat: stat}
}

func (f *Factory) Name() string {
	return f.opts.Name
}

func (f *Factory) ConfigLocation() string {
	return f.opts.ConfigLocation
}

// Parent returns the parent container, or nil.
func (f *Factory) Parent() Container {
	return f.opts.Parent
}

// Refresh (re)loads the definitions and eagerly constructs every value they bind.
// On success the previous graph, if any, is closed. On failure the previous graph stays.
func (f *Factory) Refresh() error {
	defer f.stat.Latency(stats.ContainerRefreshLatency_ms).Time().Stop()

	text, err := jsonconfig.GetConfigText(f.opts.ConfigLocation, f.opts.Asset)
	if err != nil {
		return errors.Wrapf(err, "container %q: cannot read definitions", f.opts.Name)
	}
	// A child binds only what its definitions name; the rest comes from the parent.
	parse := f.opts.Schema.Parse
	if f.opts.Parent != nil {
		parse = f.opts.Schema.ParsePresent
	}
	cfg, err := parse(text)
	if err != nil {
		return errors.Wrapf(err, "container %q: cannot parse definitions", f.opts.Name)
	}

	bag := ice.NewMagicBag()
	for _, m := range f.opts.Modules {
		if err := bag.InstallModule(m); err != nil {
			return errors.Wrapf(err, "container %q", f.opts.Name)
		}
	}
	if err := bag.InstallModule(cfg); err != nil {
		return errors.Wrapf(err, "container %q", f.opts.Name)
	}

	var parent ice.Extractor
	if f.opts.Parent != nil {
		parent = f.opts.Parent
	}
	graph := ice.NewGraph(bag, parent)
	if err := graph.Preload(); err != nil {
		graph.Close()
		return errors.Wrapf(err, "container %q: cannot construct definitions", f.opts.Name)
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		graph.Close()
		return errors.Errorf("container %q is closed", f.opts.Name)
	}
	old := f.graph
	f.graph = graph
	f.mu.Unlock()

	log.WithFields(log.Fields{
		"container": f.opts.Name,
		"location":  f.opts.ConfigLocation,
		"values":    len(graph.Constructed()),
	}).Info("container refreshed")

	if old != nil {
		if err := old.Close(); err != nil {
			log.Warnf("container %q: closing previous graph: %v", f.opts.Name, err)
		}
	}
	return nil
}

// Extract fills dest from this container, or from its parent.
func (f *Factory) Extract(dest interface{}) error {
	f.mu.RLock()
	graph, closed := f.graph, f.closed
	f.mu.RUnlock()
	if closed {
		return errors.Errorf("container %q is closed", f.opts.Name)
	}
	if graph == nil {
		return errors.Errorf("container %q has not been refreshed", f.opts.Name)
	}
	return graph.Extract(dest)
}

// Close closes every value this container constructed. The parent is not closed.
func (f *Factory) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	graph := f.graph
	f.graph = nil
	f.mu.Unlock()

	log.WithField("container", f.opts.Name).Info("container closed")
	if graph == nil {
		return nil
	}
	return errors.Wrapf(graph.Close(), "container %q", f.opts.Name)
}

// Context is a Factory that can also wire objects it did not construct.
type Context struct {
	*Factory
}

func NewContext(opts Options) *Context {
	return &Context{NewFactory(opts)}
}

// Autowire asks target to pull its dependencies from this context.
func (c *Context) Autowire(target Wireable) error {
	if target == nil {
		return errors.New("cannot autowire nil")
	}
	c.stat.Counter(stats.ContainerAutowireCounter).Inc(1)
	log.WithField("container", c.Name()).Debugf("autowiring %T", target)
	if err := target.Wire(c); err != nil {
		return errors.Wrapf(err, "container %q: wiring %T", c.Name(), target)
	}
	return nil
}
