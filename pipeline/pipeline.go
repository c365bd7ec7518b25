package pipeline

import (
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/twitter/icewire/common/stats"
)

type stage struct {
	action Action
	props  Properties
}

// Pipeline runs each message through its actions in order.
//
// Lifecycle: Add actions, Initialize once, Process any number of messages, Destroy once.
type Pipeline struct {
	name string
	stat stats.StatsReceiver

	mu          sync.Mutex
	stages      []stage
	initialized int // number of stages, from the front, that have been initialized
	started     bool
	destroyed   bool
}

func NewPipeline(name string, stat stats.StatsReceiver) *Pipeline {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &Pipeline{name: name, stat: stat.Scope("pipeline", name)}
}

func (p *Pipeline) Name() string {
	return p.name
}

// Add appends action, to be configured with props. Add must happen before Initialize.
func (p *Pipeline) Add(action Action, props Properties) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return errors.Errorf("pipeline %q: cannot add actions after Initialize", p.name)
	}
	if props == nil {
		props = Properties{}
	}
	p.stages = append(p.stages, stage{action, props})
	return nil
}

// Initialize configures and initializes every action in order. If one fails, the actions
// already initialized are destroyed, newest first, and the error is returned.
func (p *Pipeline) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return errors.Errorf("pipeline %q already initialized", p.name)
	}
	p.started = true
	for i, s := range p.stages {
		if err := initialize(s); err != nil {
			err = errors.Wrapf(err, "pipeline %q: action %d (%T)", p.name, i, s.action)
			log.WithField("pipeline", p.name).Errorf("initialization failed: %v", err)
			return multierr.Append(err, p.destroy())
		}
		p.initialized = i + 1
	}
	log.WithFields(log.Fields{"pipeline": p.name, "actions": len(p.stages)}).Info("pipeline initialized")
	return nil
}

func initialize(s stage) error {
	if c, ok := s.action.(Configurable); ok {
		if err := c.Configure(s.props); err != nil {
			return errors.Wrap(err, "configure")
		}
	}
	if i, ok := s.action.(Initializer); ok {
		if err := i.Initialize(); err != nil {
			return errors.Wrap(err, "initialize")
		}
	}
	return nil
}

// Process runs msg through every action. The first failing action stops the message.
func (p *Pipeline) Process(msg *Message) (*Message, error) {
	p.mu.Lock()
	ready := p.started && !p.destroyed && p.initialized == len(p.stages)
	stages := p.stages
	p.mu.Unlock()
	if !ready {
		return nil, errors.Errorf("pipeline %q is not initialized", p.name)
	}

	defer p.stat.Latency(stats.PipelineProcessLatency_ms).Time().Stop()
	for i, s := range stages {
		out, err := s.action.Process(msg)
		if err != nil {
			p.stat.Counter(stats.PipelineFailedCounter).Inc(1)
			return nil, errors.Wrapf(err, "pipeline %q: action %d (%T) failed on message %s", p.name, i, s.action, msg.ID)
		}
		if out == nil {
			p.stat.Counter(stats.PipelineFailedCounter).Inc(1)
			return nil, errors.Errorf("pipeline %q: action %d (%T) returned no message", p.name, i, s.action)
		}
		msg = out
	}
	p.stat.Counter(stats.PipelineProcessedCounter).Inc(1)
	return msg, nil
}

// Destroy destroys every initialized action, newest first, and reports every error.
func (p *Pipeline) Destroy() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.destroy()
}

func (p *Pipeline) destroy() error {
	var err error
	for i := p.initialized - 1; i >= 0; i-- {
		if d, ok := p.stages[i].action.(Destroyer); ok {
			if derr := d.Destroy(); derr != nil {
				err = multierr.Append(err, errors.Wrapf(derr, "pipeline %q: destroying action %d (%T)", p.name, i, p.stages[i].action))
			}
		}
	}
	p.initialized = 0
	p.destroyed = true
	if err != nil {
		log.WithField("pipeline", p.name).Warnf("destroy reported errors: %v", err)
	} else {
		log.WithField("pipeline", p.name).Info("pipeline destroyed")
	}
	return err
}
