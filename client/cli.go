// Package client is the icewire command line: it loads shared contexts, runs the sample
// pipeline against them and inspects locator configurations.
package client

import (
	"github.com/spf13/cobra"

	"github.com/twitter/icewire/common/errors"
	"github.com/twitter/icewire/common/log"
	"github.com/twitter/icewire/common/stats"
	"github.com/twitter/icewire/config/jsonconfig"
	"github.com/twitter/icewire/locator"
	"github.com/twitter/icewire/services"
)

// CLIClient runs the command line.
type CLIClient interface {
	Exec() error
}

type simpleCLIClient struct {
	rootCmd *cobra.Command

	configDir string
	selector  string
	logLevel  string

	asset jsonconfig.AssetFunc
	stat  stats.StatsReceiver
}

func (c *simpleCLIClient) Exec() error {
	return c.rootCmd.Execute()
}

// NewSimpleCLIClient makes the command tree. Resources are read through asset, or from
// --config_dir when asset is nil.
func NewSimpleCLIClient(asset jsonconfig.AssetFunc) CLIClient {
	c := &simpleCLIClient{asset: asset, stat: stats.DefaultStatsReceiver()}
	c.rootCmd = &cobra.Command{
		Use:               "icewire",
		Short:             "icewire runs pipeline actions wired from shared contexts",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.configureLogging,
	}
	c.rootCmd.PersistentFlags().StringVar(&c.configDir, "config_dir", ".", "directory resources are read from")
	c.rootCmd.PersistentFlags().StringVar(&c.selector, "selector", "", "locator configuration, default "+locator.DefaultSelector)
	c.rootCmd.PersistentFlags().StringVar(&c.logLevel, "log_level", "info", "error|warn|info|debug")

	c.addCmd(&runCmd{})
	c.addCmd(&contextsCmd{})
	return c
}

func (c *simpleCLIClient) configureLogging(*cobra.Command, []string) error {
	if err := log.Configure(c.logLevel, false); err != nil {
		return withExitCode(err, errors.ConfigFailureExitCode)
	}
	return nil
}

// registry builds the Registry commands resolve contexts through.
func (c *simpleCLIClient) registry() *locator.Registry {
	asset := c.asset
	if asset == nil {
		asset = jsonconfig.DirAsset(c.configDir)
	}
	return locator.NewRegistry(asset, services.Schema(), c.stat, services.StatsModule(c.stat))
}

// withExitCode tags err with code. A nil err stays nil.
func withExitCode(err error, code errors.ExitCode) error {
	if err == nil {
		return nil
	}
	return errors.NewError(err, code)
}

func (c *simpleCLIClient) addCmd(cmd command) {
	cobraCmd := cmd.registerFlags()
	cobraCmd.RunE = func(innerCmd *cobra.Command, args []string) error {
		return cmd.run(c, innerCmd, args)
	}
	c.rootCmd.AddCommand(cobraCmd)
}

type command interface {
	registerFlags() *cobra.Command
	run(cl *simpleCLIClient, cmd *cobra.Command, args []string) error
}
