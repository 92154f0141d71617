package main

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-fabric/engine"
	"github.com/Carmen-Shannon/oxy-fabric/engine/decoder"
	"github.com/Carmen-Shannon/oxy-fabric/engine/fabric"
	"github.com/spf13/cobra"
)

var errBindFailed = errors.New("one or more binds failed")

func newApplyCommand(opts *globalOptions) *cobra.Command {
	var (
		group    string
		repeat   float32
		rotation float32
	)

	cmd := &cobra.Command{
		Use:   "apply [flags] <model> <image|KEY=image>...",
		Short: "Bind images to material groups and print the resulting material state",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tiling := fabric.Tiling{Repeat: opts.cfg.Repeat, RotationDegrees: opts.cfg.RotationDegrees}
			if cmd.Flags().Changed("repeat") {
				tiling.Repeat = repeat
			}
			if cmd.Flags().Changed("rotation") {
				tiling.RotationDegrees = rotation
			}
			if err := tiling.Valid(); err != nil {
				return err
			}
			return runApply(cmd, opts, args[0], args[1:], fabric.NormalizeKey(group), tiling)
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", fabric.AllKey, "group for images given without KEY=")
	cmd.Flags().Float32VarP(&repeat, "repeat", "r", 1, "texture repeat factor")
	cmd.Flags().Float32Var(&rotation, "rotation", 0, "texture rotation in degrees")
	return cmd
}

func runApply(cmd *cobra.Command, opts *globalOptions, model string, images []string, group string, tiling fabric.Tiling) error {
	eng := engine.NewEngine()
	failures := 0

	var s *session
	s = newSession(opts.cfg, model, cmd.OutOrStdout(), eng.Post, fabric.WithBindHook(func(o fabric.BindOutcome) {
		if o.Err != nil {
			failures++
		}
		if s.preview.Pending() == 0 {
			eng.Quit()
		}
	}))

	var loadErr error
	eng.Post(func() {
		if _, loadErr = s.preview.Open(model); loadErr != nil {
			eng.Quit()
			return
		}
		if err := s.preview.SetTiling(tiling); err != nil {
			loadErr = err
			eng.Quit()
			return
		}
		for _, arg := range images {
			key, path := splitImageArg(arg, group)
			if err := s.preview.RequestBind(decoder.FileSource(path), key); err != nil {
				failures++
			}
		}
		if s.preview.Pending() == 0 {
			eng.Quit()
		}
	})

	if err := eng.Run(cmd.Context()); err != nil {
		return err
	}
	if loadErr != nil {
		return loadErr
	}
	if err := s.printReport(); err != nil {
		return err
	}
	if failures > 0 {
		return fmt.Errorf("%w: %d of %d", errBindFailed, failures, len(images))
	}
	return nil
}
