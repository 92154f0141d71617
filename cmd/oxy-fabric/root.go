package main

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-fabric/engine/config"
	"github.com/spf13/cobra"
)

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	configPath string
	verbose    bool
	cfg        config.Config
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "oxy-fabric",
		Short:         "Preview fabric textures on a garment model",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg

			level, _ := config.ParseLevel(cfg.LogLevel)
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default "+config.DefaultPath+")")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newInspectCommand(opts),
		newApplyCommand(opts),
		newReplCommand(opts),
		newViewCommand(opts),
	)
	return root
}

// modelArg returns the model path argument, falling back to the configured model.
func modelArg(opts *globalOptions, args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return opts.cfg.ModelPath
}
