// Package actions lets pipeline actions be wired from a shared container.
//
// An action that needs dependencies implements appcontext.Wireable and is wrapped
// with NewAutowiredAction. The wrapper is configured with:
//
//	locator-factory-selector  optional, defaults to locator.DefaultSelector
//	context-key               required, the container to wire from
//
// On Initialize it acquires the container from the locator, has it wire the action,
// then calls the action's DoInitialize if it has one. On Destroy it releases the
// container and calls DoDestroy. A container is acquired at most once per Initialize
// and released exactly once, including when Initialize fails part way.
package actions

import (
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/twitter/icewire/appcontext"
	"github.com/twitter/icewire/locator"
	"github.com/twitter/icewire/pipeline"
)

// Property names read by Configure.
const (
	SelectorProperty   = "locator-factory-selector"
	ContextKeyProperty = "context-key"
)

// ErrIllegalState is the cause of an Initialize that found a container unable to autowire.
var ErrIllegalState = errors.New("illegal state")

// Autowirable is an action that can be wired from a container.
type Autowirable interface {
	pipeline.Action
	appcontext.Wireable
}

// Initializer is implemented by actions with extra work to do once wired.
type Initializer interface {
	DoInitialize() error
}

// Destroyer is implemented by actions with extra work to do on destroy.
type Destroyer interface {
	DoDestroy() error
}

// AutowiredAction wraps an Autowirable with the container lifecycle.
type AutowiredAction struct {
	target   Autowirable
	registry *locator.Registry

	selector   string
	contextKey string

	mu  sync.Mutex
	ref *locator.Reference
}

// NewAutowiredAction wraps target; containers come from registry, or locator.Default if nil.
func NewAutowiredAction(target Autowirable, registry *locator.Registry) *AutowiredAction {
	if registry == nil {
		registry = locator.Default
	}
	return &AutowiredAction{target: target, registry: registry}
}

// Target returns the wrapped action.
func (a *AutowiredAction) Target() Autowirable {
	return a.target
}

// Configure binds the selector and context key. A missing key is not an error here;
// the locator reports it on Initialize.
func (a *AutowiredAction) Configure(props pipeline.Properties) error {
	a.selector = props.Get(SelectorProperty)
	a.contextKey = props.Get(ContextKeyProperty)
	return nil
}

func (a *AutowiredAction) effectiveSelector() string {
	if a.selector == "" {
		return locator.DefaultSelector
	}
	return a.selector
}

// Initialize acquires the configured container, has it wire the target, then runs DoInitialize.
func (a *AutowiredAction) Initialize() (err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ref != nil {
		return errors.Wrapf(ErrIllegalState, "%T is already initialized", a.target)
	}

	l, err := a.registry.GetInstance(a.selector)
	if err != nil {
		return err
	}
	ref, err := l.UseContext(a.contextKey)
	if err != nil {
		return err
	}
	// Nothing below may leave ref acquired on failure.
	defer func() {
		if err != nil {
			if rerr := ref.Release(); rerr != nil {
				err = multierr.Append(err, rerr)
			}
		}
	}()

	autowirer, ok := ref.Context().(appcontext.Autowirer)
	if !ok {
		return errors.Wrapf(ErrIllegalState, "context %q (%T) cannot autowire; only autowiring containers are supported",
			a.contextKey, ref.Context())
	}

	log.WithFields(log.Fields{
		"context":  a.contextKey,
		"selector": a.effectiveSelector(),
	}).Debugf("autowiring action %T", a.target)
	if err := autowirer.Autowire(a.target); err != nil {
		return err
	}

	if i, ok := a.target.(Initializer); ok {
		if err := i.DoInitialize(); err != nil {
			return errors.Wrapf(err, "%T.DoInitialize", a.target)
		}
	}
	a.ref = ref
	return nil
}

// Process hands msg to the target.
func (a *AutowiredAction) Process(msg *pipeline.Message) (*pipeline.Message, error) {
	return a.target.Process(msg)
}

// Destroy releases the container acquired by Initialize, then runs DoDestroy whatever
// the release returned.
func (a *AutowiredAction) Destroy() error {
	a.mu.Lock()
	ref := a.ref
	a.ref = nil
	a.mu.Unlock()

	var err error
	if ref != nil {
		err = ref.Release()
	}
	if d, ok := a.target.(Destroyer); ok {
		if derr := d.DoDestroy(); derr != nil {
			err = multierr.Append(err, errors.Wrapf(derr, "%T.DoDestroy", a.target))
		}
	}
	return err
}
