package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-fabric/engine/fabric"
	"github.com/spf13/cobra"
)

func newInspectCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [model]",
		Short: "Print the material groups, a YAML material dump and naming issues",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model := modelArg(opts, args)
			s := newSession(opts.cfg, model, cmd.OutOrStdout(), nil)

			c, err := s.preview.Open(model)
			fmt.Fprintln(s.out, c.CounterLine())
			fabric.DumpWithLogger(s.out, c, s.logger)
			s.printLint()
			return err
		},
	}
}
