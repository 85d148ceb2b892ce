package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
// The --config and --verbose flags are resolved before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "tagcloud lays out rectangles as a compact circular cloud",
		Long: `tagcloud places rectangles one after another around a center point,
walking an Archimedean spiral to the first free spot and then pulling each
rectangle back toward the center, producing a dense round tag cloud.`,
		Version:      buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/tagcloud/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup applies --verbose and loads the config file. An explicit
// --config file must exist, except for "config init" which creates it.
func (c *CLI) setup(cmd *cobra.Command) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		enableHooks(c.Logger)
	}

	path, required := c.configPath, cmd.CommandPath() != appName+" config init"
	if path == "" {
		p, err := configFile()
		if err != nil {
			return nil
		}
		path, required = p, false
	}
	cfg, err := LoadConfig(path, required)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "path", path)
	return nil
}
