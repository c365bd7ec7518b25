package client

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/twitter/icewire/actions"
	"github.com/twitter/icewire/actions/sample"
	"github.com/twitter/icewire/admin"
	"github.com/twitter/icewire/common/errors"
	"github.com/twitter/icewire/loader"
	"github.com/twitter/icewire/pipeline"
)

const defaultContextKey = "esb.services"

type runCmd struct {
	contextKey    string
	contextConfig string
	parentKey     string
	messages      int
	props         string
}

func (c *runCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "run [body...]",
		Short: "run the sample pipeline, one message per body",
	}
	r.Flags().StringVar(&c.contextKey, "context_key", defaultContextKey, "context the action is wired from")
	r.Flags().StringVar(&c.contextConfig, "context_config", "", "if set, also load a standalone context from this location")
	r.Flags().StringVar(&c.parentKey, "parent_key", "", "parent of the standalone context")
	r.Flags().IntVar(&c.messages, "messages", 1, "messages to send when no bodies are given")
	r.Flags().StringVar(&c.props, "props", "", "extra action properties, k1=v1,k2=v2; these win over the flags above")
	return r
}

func (c *runCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) (err error) {
	if c.messages < 0 {
		return withExitCode(fmt.Errorf("--messages must not be negative; was %d", c.messages), errors.ConfigFailureExitCode)
	}
	registry := cl.registry()
	ctrl := admin.NewController()
	defer func() {
		if e := ctrl.Shutdown(); e != nil {
			err = multierr.Append(err, withExitCode(e, errors.DestroyFailureExitCode))
		}
	}()

	if c.contextConfig != "" {
		ld, err := loader.NewContextLoader(loader.Config{
			ContextConfigLocation:  c.contextConfig,
			LocatorFactorySelector: cl.selector,
			ParentContextKey:       c.parentKey,
		}, registry)
		if err != nil {
			return withExitCode(err, errors.ContainerFailureExitCode)
		}
		if err := ctrl.Deploy("context-loader", ld); err != nil {
			return withExitCode(err, errors.ContainerFailureExitCode)
		}
	}

	p := pipeline.NewPipeline("sample", cl.stat)
	props := pipeline.Properties{
		actions.SelectorProperty:   cl.selector,
		actions.ContextKeyProperty: c.contextKey,
	}.With(pipeline.ParseProperties(c.props))
	if err := p.Add(actions.NewAutowiredAction(&sample.DIAction{}, registry), props); err != nil {
		return withExitCode(err, errors.InitializeFailureExitCode)
	}
	if err := p.Initialize(); err != nil {
		return withExitCode(err, errors.InitializeFailureExitCode)
	}

	if err := process(p, c.bodies(args)); err != nil {
		return multierr.Append(
			withExitCode(err, errors.ProcessFailureExitCode),
			withExitCode(p.Destroy(), errors.DestroyFailureExitCode))
	}
	if err := p.Destroy(); err != nil {
		return withExitCode(err, errors.DestroyFailureExitCode)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(cl.stat.Render(true)))
	return nil
}

func (c *runCmd) bodies(args []string) []string {
	if len(args) > 0 {
		return args
	}
	if c.messages <= 0 {
		return nil
	}
	result := make([]string, c.messages)
	for i := range result {
		result[i] = fmt.Sprintf("message-%d", i)
	}
	return result
}

func process(p *pipeline.Pipeline, bodies []string) error {
	for _, b := range bodies {
		msg, err := pipeline.NewMessage([]byte(b))
		if err != nil {
			return err
		}
		if _, err := p.Process(msg); err != nil {
			return err
		}
	}
	return nil
}
