package main

import (
	"sync"

	"github.com/spf13/cobra"

	"github.com/snarg/captioner/internal/config"
)

// commandContext loads configuration once per invocation. Subcommands fill
// in the override fields from their own flags before calling ensureConfig.
type commandContext struct {
	overrides config.Overrides

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = config.Load(c.overrides)
	})
	return c.config, c.configErr
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "captioner",
		Short:         "Download and convert video subtitles",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.overrides.EnvFile, "env-file", "", "Path to .env file (default: .env)")
	rootCmd.PersistentFlags().StringVar(&ctx.overrides.LogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newFetchCommand(ctx))
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newFormatsCommand())

	return rootCmd
}
