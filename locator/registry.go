package locator

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/twitter/icewire/appcontext"
	"github.com/twitter/icewire/common/stats"
	"github.com/twitter/icewire/config/jsonconfig"
	"github.com/twitter/icewire/ice"
)

// DefaultSelector is used when a selector is left empty.
const DefaultSelector = "contextRefs.json"

// Built-in container types.
const (
	ContextType = "context"
	FactoryType = "factory"
)

// ContainerMaker builds an unrefreshed-or-refreshed container for key from its definition.
// The locator calls Refresh afterwards when the result has one.
type ContainerMaker func(key string, def Definition, parent appcontext.Container) (appcontext.Container, error)

// Registry is the process-wide table of Locators, keyed by selector.
type Registry struct {
	asset   jsonconfig.AssetFunc
	schema  jsonconfig.Schema
	modules []ice.Module
	stat    stats.StatsReceiver

	mu       sync.Mutex
	makers   map[string]ContainerMaker
	locators map[string]*Locator
}

// NewRegistry makes a Registry that reads resources through asset and parses container
// definitions against schema. modules are installed into every container it builds.
func NewRegistry(asset jsonconfig.AssetFunc, schema jsonconfig.Schema, stat stats.StatsReceiver, modules ...ice.Module) *Registry {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	r := &Registry{
		asset:    asset,
		schema:   schema,
		modules:  modules,
		stat:     stat,
		makers:   make(map[string]ContainerMaker),
		locators: make(map[string]*Locator),
	}
	r.makers[ContextType] = r.makeContext
	r.makers[FactoryType] = r.makeFactory
	// An empty Type means a full context.
	r.makers[""] = r.makeContext
	return r
}

// Default is the Registry used by code that is not handed one explicitly.
// Its resources are read from the working directory and it knows no components
// until Configure is called.
var Default = NewRegistry(jsonconfig.DirAsset("."), jsonconfig.EmptySchema(), nil)

// Configure replaces the resource loader, schema and base modules of r.
// Locators already created keep what they were created with.
func (r *Registry) Configure(asset jsonconfig.AssetFunc, schema jsonconfig.Schema, modules ...ice.Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.asset = asset
	r.schema = schema
	r.modules = modules
}

// RegisterType makes typ usable as a container Type in locator configurations.
func (r *Registry) RegisterType(typ string, maker ContainerMaker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.makers[typ] = maker
}

// GetInstance returns the Locator for selector, reading its configuration on first use.
// An empty selector means DefaultSelector.
func (r *Registry) GetInstance(selector string) (*Locator, error) {
	if selector == "" {
		selector = DefaultSelector
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.locators[selector]; ok {
		return l, nil
	}

	text, err := jsonconfig.GetConfigText(selector, r.asset)
	if err != nil {
		return nil, errors.Wrapf(err, "locator %q", selector)
	}
	defs, err := parseDefinitions(text)
	if err != nil {
		return nil, errors.Wrapf(err, "locator %q", selector)
	}
	l := &Locator{
		selector: selector,
		registry: r,
		defs:     defs,
		entries:  make(map[string]*entry),
		stat:     r.stat.Scope("locator"),
	}
	r.locators[selector] = l
	log.WithFields(log.Fields{"selector": selector, "contexts": len(defs)}).Info("locator created")
	return l, nil
}

// Selectors lists the selectors of every Locator created so far.
func (r *Registry) Selectors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]string, 0, len(r.locators))
	for s := range r.locators {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

func (r *Registry) maker(typ string) (ContainerMaker, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.makers[typ]
	return m, ok
}

func (r *Registry) makeContext(key string, def Definition, parent appcontext.Container) (appcontext.Container, error) {
	return appcontext.NewContext(r.Options(key, def.ConfigLocation, parent)), nil
}

func (r *Registry) makeFactory(key string, def Definition, parent appcontext.Container) (appcontext.Container, error) {
	return appcontext.NewFactory(r.Options(key, def.ConfigLocation, parent)), nil
}

// Options describes a container named name, built the way r builds its own:
// same resources, schema and base modules.
func (r *Registry) Options(name, configLocation string, parent appcontext.Container) appcontext.Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return appcontext.Options{
		Name:           name,
		ConfigLocation: configLocation,
		Parent:         parent,
		Asset:          r.asset,
		Schema:         r.schema,
		Modules:        r.modules,
		Stat:           r.stat.Scope("container", name),
	}
}
