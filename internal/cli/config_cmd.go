package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// configCommand creates the config command for inspecting the config file.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())
	return cmd
}

func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolvedConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config
			labels := "true"
			if cfg.Labels != nil && !*cfg.Labels {
				labels = "false"
			}
			printKeyValue("center", fmt.Sprintf("%d,%d", cfg.CenterX, cfg.CenterY))
			printKeyValue("angle_step", fmt.Sprint(cfg.AngleStep))
			printKeyValue("radius_step", fmt.Sprint(cfg.RadiusStep))
			printKeyValue("compaction", cfg.Compaction)
			printKeyValue("formats", strings.Join(cfg.Formats, ","))
			printKeyValue("palette", valueOr(cfg.Palette, "default"))
			printKeyValue("labels", labels)
			printKeyValue("cache", cfg.Cache.Backend)
			printKeyValue("server", fmt.Sprintf("%s (%s, ttl %s)", cfg.Server.Addr, cfg.Server.Store, cfg.Server.SessionTTL.Duration))
			return nil
		},
	}
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolvedConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				printWarning("%s already exists (use --force to overwrite)", path)
				return nil
			}
			if err := DefaultConfig().Write(path); err != nil {
				return err
			}
			printSuccess("Wrote config")
			printFile(path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) resolvedConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	path, err := configFile()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return path, nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
