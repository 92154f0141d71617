package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/Carmen-Shannon/oxy-fabric/engine"
	"github.com/Carmen-Shannon/oxy-fabric/engine/decoder"
	"github.com/Carmen-Shannon/oxy-fabric/engine/fabric"
	"github.com/Carmen-Shannon/oxy-fabric/engine/watcher"
	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
)

const replHelp = `commands:
  bind KEY path    texture group KEY (or ALL) with an image
  tile r deg       set repeat and rotation
  groups           print group counts
  lint             print naming issues
  dump             print the material report
  reload           load the model again
  reset            frame the camera on the model
  quit             leave`

var errUsage = errors.New("usage")

func newReplCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl [model]",
		Short: "Interactive console for binding textures and tuning tiling",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model := modelArg(opts, args)
			eng := engine.NewEngine()
			s := newSession(opts.cfg, model, cmd.OutOrStdout(), eng.Post)

			eng.Post(s.reload)
			if opts.cfg.Watch {
				w, err := watcher.NewWatcher(model, s.reload, watcher.WithPoster(eng.Post))
				if err != nil {
					s.logger.Warn("model watch disabled", "err", err)
				} else {
					defer w.Close()
				}
			}

			go readLines(cmd.InOrStdin(), func(line string) {
				eng.Post(func() {
					if s.exec(line) {
						eng.Quit()
					}
				})
			}, func() { eng.Post(eng.Quit) })

			return eng.Run(cmd.Context())
		},
	}
}

// readLines feeds every input line to handle, then calls done at end of input.
func readLines(r io.Reader, handle func(string), done func()) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		handle(scanner.Text())
	}
	done()
}

// exec runs one console line and reports whether the console should close.
func (s *session) exec(line string) bool {
	args, err := shellwords.Parse(line)
	if err != nil {
		fmt.Fprintf(s.out, "parse error: %v\n", err)
		return false
	}
	if len(args) == 0 {
		return false
	}

	if err := s.command(args); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(s.out, replHelp)
			return false
		}
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
	return args[0] == "quit" || args[0] == "exit"
}

func (s *session) command(args []string) error {
	switch args[0] {
	case "bind":
		if len(args) != 3 {
			return errUsage
		}
		return s.preview.RequestBind(decoder.FileSource(args[2]), args[1])
	case "tile":
		if len(args) != 3 {
			return errUsage
		}
		r, err := strconv.ParseFloat(args[1], 32)
		if err != nil {
			return fmt.Errorf("repeat: %w", err)
		}
		deg, err := strconv.ParseFloat(args[2], 32)
		if err != nil {
			return fmt.Errorf("rotation: %w", err)
		}
		t := fabric.Tiling{Repeat: float32(r), RotationDegrees: float32(deg)}
		if err := t.Valid(); err != nil {
			return err
		}
		s.setTiling(t)
	case "groups":
		fmt.Fprintln(s.out, s.preview.CounterLine())
	case "lint":
		s.printLint()
	case "dump":
		return s.printReport()
	case "reload":
		s.reload()
	case "reset":
		s.preview.ResetCamera()
	case "quit", "exit":
	case "help":
		return errUsage
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return nil
}
