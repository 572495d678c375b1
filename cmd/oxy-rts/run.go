package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-rts/engine"
	"github.com/Carmen-Shannon/oxy-rts/engine/grid"
	"github.com/Carmen-Shannon/oxy-rts/engine/picker"
	"github.com/Carmen-Shannon/oxy-rts/engine/renderer"
	"github.com/Carmen-Shannon/oxy-rts/engine/window"
)

var flagProfile bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the window and start the RTS view",
	Long: `Opens a window with the ground grid and the free-look camera.
Restricted zones are outlined in red; the selected cell in yellow.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	runCmd.Flags().BoolVar(&flagProfile, "profile", false, "Log frame rate and memory statistics")
}

func runView(cmd *cobra.Command, args []string) error {
	w, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer w.Close()

	presentMode := renderer.PresentModeVSync
	if !cfg.Engine.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	cc := cfg.Engine.ClearColor
	r, err := renderer.NewRenderer(w.SurfaceDescriptor(), w.Width(), w.Height(),
		renderer.WithPresentMode(presentMode),
		renderer.WithForceSoftwareRenderer(cfg.Engine.SoftwareRenderer),
		renderer.WithClearColor(cc[0], cc[1], cc[2], cc[3]),
		renderer.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Release()

	e := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithRenderer(r),
		engine.WithCamera(newCamera(cfg.ControllerConfig().DefaultPose, w.Width(), w.Height())),
		engine.WithGrid(grid.NewGrid(cfg.GridOptions()...)),
		engine.WithProfiling(cfg.Engine.Profiling || flagProfile),
		engine.WithLogger(logger),
	)
	e.SetPickCallback(func(cell picker.GridCell, restricted bool) {
		if restricted {
			logger.Warn("cell is restricted", "x", cell.X, "y", cell.Y)
		}
	})

	return e.Run()
}
