package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twitter/icewire/common/errors"
)

type contextsCmd struct{}

func (c *contextsCmd) registerFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "contexts",
		Short: "list the contexts a locator configuration defines",
	}
}

func (c *contextsCmd) run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error {
	l, err := cl.registry().GetInstance(cl.selector)
	if err != nil {
		return withExitCode(err, errors.ConfigFailureExitCode)
	}
	out := cmd.OutOrStdout()
	for _, key := range l.Keys() {
		def, _ := l.Definition(key)
		fmt.Fprintf(out, "%s\ttype=%s\tlocation=%s", key, def.Type, def.ConfigLocation)
		if def.Parent != "" {
			fmt.Fprintf(out, "\tparent=%s", def.Parent)
		}
		fmt.Fprintln(out)
	}
	return nil
}
