package main

import (
	"github.com/Carmen-Shannon/oxy-fabric/engine"
	"github.com/Carmen-Shannon/oxy-fabric/engine/fabric"
	"github.com/Carmen-Shannon/oxy-fabric/engine/input"
	"github.com/Carmen-Shannon/oxy-fabric/engine/watcher"
	"github.com/Carmen-Shannon/oxy-fabric/engine/window"
	"github.com/spf13/cobra"
)

func newViewCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "view [model]",
		Short: "Open the preview window; drop images on it to texture the selected group",
		Long: `Keys: 0 selects ALL, 1-9 select the configured groups, [ and ] change the repeat,
comma and period rotate the texture, arrows orbit, R frames the model, D dumps materials,
L lists naming issues, Esc quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model := modelArg(opts, args)
			win, err := window.NewWindow(
				window.WithTitle(opts.cfg.Window.Title),
				window.WithSize(opts.cfg.Window.Width, opts.cfg.Window.Height),
			)
			if err != nil {
				return err
			}
			defer win.Close()

			eng := engine.NewEngine(engine.WithEventSource(win))
			s := newSession(opts.cfg, model, cmd.OutOrStdout(), eng.Post)
			keys := fabric.NewClassifier(fabric.WithKeys(opts.cfg.GroupKeys...)).Keys()

			if win.Height() > 0 {
				s.camera.SetAspect(float32(win.Width()) / float32(win.Height()))
			}
			win.SetResizeCallback(func(width, height int) {
				if height > 0 {
					s.camera.SetAspect(float32(width) / float32(height))
				}
			})
			win.SetKeyDownCallback(func(key uint32) {
				action, ok := input.MapKey(key, keys, fabric.AllKey)
				if ok && s.apply(action) {
					eng.Quit()
				}
			})
			win.SetDropCallback(s.bindFiles)
			win.SetScrollCallback(func(delta float32) {
				s.camera.Controller().Zoom(delta)
				s.camera.Update()
			})
			eng.SetTickCallback(func(float32) {
				s.camera.Update()
				win.SetTitle(s.title())
			})

			eng.Post(s.reload)
			if opts.cfg.Watch {
				w, err := watcher.NewWatcher(model, s.reload, watcher.WithPoster(eng.Post))
				if err != nil {
					s.logger.Warn("model watch disabled", "err", err)
				} else {
					defer w.Close()
				}
			}
			return eng.Run(cmd.Context())
		},
	}
}
