package main

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/config"
	"github.com/theoremus-urban-solutions/stc-gtfs-canonical/internal"
)

// commandContext loads the configuration once for whichever command runs.
type commandContext struct {
	configFlag *string
	quietFlag  *bool
	cfg        *config.AppConfig
}

// ensureConfig loads --config, or the first default config file. Without
// either, the built-in defaults plus STC_* overrides apply.
func (c *commandContext) ensureConfig() (*config.AppConfig, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	if *c.configFlag != "" {
		cfg, err := config.LoadAppConfig(*c.configFlag)
		if err != nil {
			return nil, err
		}
		c.cfg = cfg
		return cfg, nil
	}

	cfg, err := config.LoadAppConfig()
	if errors.Is(err, fs.ErrNotExist) {
		def := config.Default()
		def.ApplyEnv()
		if err := def.Validate(); err != nil {
			return nil, err
		}
		cfg, err = &def, nil
	}
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var quietFlag bool
	ctx := &commandContext{configFlag: &configFlag, quietFlag: &quietFlag}

	rootCmd := &cobra.Command{
		Use:           "stc-gtfs",
		Short:         "Canonicalize the St Catharines Transit GTFS feed",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			internal.InitLogging(quietFlag)
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (YAML or TOML)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Discard log output")

	rootCmd.AddCommand(newGenerateCommand(ctx))
	rootCmd.AddCommand(newStopIDCommand(ctx))
	rootCmd.AddCommand(newNormalizeCommand(ctx))
	rootCmd.AddCommand(newColorsCommand())

	return rootCmd
}
