// Package loader bootstraps a standalone context, optionally the child of a context
// shared through a locator.
package loader

import (
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/twitter/icewire/appcontext"
	"github.com/twitter/icewire/locator"
)

// Config names the context to load and, optionally, where its parent lives.
type Config struct {
	// ContextConfigLocation holds the context's definitions. Required.
	ContextConfigLocation string `json:"contextConfigLocation"`
	// LocatorFactorySelector picks the locator the parent is found in. Empty means the default.
	LocatorFactorySelector string `json:"locatorFactorySelector,omitempty"`
	// ParentContextKey names the parent. Empty means no parent.
	ParentContextKey string `json:"parentContextKey,omitempty"`
}

// ContextLoader owns a refreshed context and the parent reference it was built on.
type ContextLoader struct {
	cfg       Config
	context   *appcontext.Context
	parentRef *locator.Reference

	mu        sync.Mutex
	destroyed bool
}

// NewContextLoader resolves the parent, if any, then builds and refreshes the context.
// A nil registry means locator.Default.
func NewContextLoader(cfg Config, registry *locator.Registry) (*ContextLoader, error) {
	if cfg.ContextConfigLocation == "" {
		return nil, errors.New("contextConfigLocation is required")
	}
	if registry == nil {
		registry = locator.Default
	}

	parentRef, err := loadParent(cfg, registry)
	if err != nil {
		return nil, err
	}
	var parent appcontext.Container
	if parentRef != nil {
		parent = parentRef.Context()
	}

	ctx := appcontext.NewContext(registry.Options(cfg.ContextConfigLocation, cfg.ContextConfigLocation, parent))
	if err := ctx.Refresh(); err != nil {
		if parentRef != nil {
			err = multierr.Append(err, parentRef.Release())
		}
		return nil, errors.Wrapf(err, "cannot load context from %q", cfg.ContextConfigLocation)
	}
	log.WithFields(log.Fields{
		"location": cfg.ContextConfigLocation,
		"parent":   cfg.ParentContextKey,
	}).Info("context loaded")
	return &ContextLoader{cfg: cfg, context: ctx, parentRef: parentRef}, nil
}

// loadParent returns nil, nil when no parent is configured.
func loadParent(cfg Config, registry *locator.Registry) (*locator.Reference, error) {
	if cfg.ParentContextKey == "" {
		return nil, nil
	}
	l, err := registry.GetInstance(cfg.LocatorFactorySelector)
	if err != nil {
		return nil, errors.Wrap(err, "cannot find parent locator")
	}
	ref, err := l.UseContext(cfg.ParentContextKey)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot acquire parent context %q", cfg.ParentContextKey)
	}
	return ref, nil
}

func (c *ContextLoader) Config() Config {
	return c.cfg
}

// Context is the loaded context. It must not be used after Destroy.
func (c *ContextLoader) Context() *appcontext.Context {
	return c.context
}

func (c *ContextLoader) Create() error {
	log.WithField("location", c.cfg.ContextConfigLocation).Debug("context loader created")
	return nil
}

func (c *ContextLoader) Start() error {
	log.WithField("location", c.cfg.ContextConfigLocation).Debug("context loader started")
	return nil
}

func (c *ContextLoader) Stop() error {
	log.WithField("location", c.cfg.ContextConfigLocation).Debug("context loader stopped")
	return nil
}

// Destroy closes the context and releases the parent. Later calls do nothing.
func (c *ContextLoader) Destroy() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return nil
	}
	c.destroyed = true

	err := c.context.Close()
	if c.parentRef != nil {
		err = multierr.Append(err, c.parentRef.Release())
	}
	log.WithField("location", c.cfg.ContextConfigLocation).Info("context loader destroyed")
	return err
}
