// Package admin runs components that follow the create/start/stop/destroy lifecycle
// of a hosting runtime.
package admin

import (
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Service is a component the host manages.
type Service interface {
	Create() error
	Start() error
	Stop() error
	Destroy() error
}

// Controller deploys Services by name and tears them down in reverse order.
type Controller struct {
	mu       sync.Mutex
	order    []string
	services map[string]Service
}

func NewController() *Controller {
	return &Controller{services: make(map[string]Service)}
}

// Deploy creates then starts svc. If Start fails svc is destroyed and not deployed.
func (c *Controller) Deploy(name string, svc Service) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.services[name]; ok {
		return errors.Errorf("service %q is already deployed", name)
	}

	if err := svc.Create(); err != nil {
		return errors.Wrapf(err, "service %q: create", name)
	}
	if err := svc.Start(); err != nil {
		err = errors.Wrapf(err, "service %q: start", name)
		return multierr.Append(err, svc.Destroy())
	}
	c.services[name] = svc
	c.order = append(c.order, name)
	log.WithField("service", name).Info("deployed")
	return nil
}

// Undeploy stops then destroys the named service. Destroy runs even if Stop fails.
func (c *Controller) Undeploy(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.undeploy(name)
}

func (c *Controller) undeploy(name string) error {
	svc, ok := c.services[name]
	if !ok {
		return errors.Errorf("service %q is not deployed", name)
	}
	delete(c.services, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}

	var err error
	if e := svc.Stop(); e != nil {
		err = multierr.Append(err, errors.Wrapf(e, "service %q: stop", name))
	}
	if e := svc.Destroy(); e != nil {
		err = multierr.Append(err, errors.Wrapf(e, "service %q: destroy", name))
	}
	log.WithField("service", name).Info("undeployed")
	return err
}

// Deployed lists the deployed services in deploy order.
func (c *Controller) Deployed() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.order...)
}

// Shutdown undeploys everything, newest first, and returns every error.
func (c *Controller) Shutdown() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var err error
	for len(c.order) > 0 {
		err = multierr.Append(err, c.undeploy(c.order[len(c.order)-1]))
	}
	return err
}
