package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-rts/engine"
	"github.com/Carmen-Shannon/oxy-rts/engine/camera"
	"github.com/Carmen-Shannon/oxy-rts/engine/grid"
	"github.com/Carmen-Shannon/oxy-rts/engine/picker"
)

var (
	flagPickX float32
	flagPickY float32

	// Shared by pick and coverage
	flagViewWidth  int
	flagViewHeight int
	flagViewPos    []float32
	flagViewYaw    float32
	flagViewPitch  float32
)

var (
	labelStyle      = lipgloss.NewStyle().Bold(true)
	openStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	restrictedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	missStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Resolve a screen position to a grid cell without opening a window",
	Long: `Casts a ray from the camera through a screen position and reports the
grid cell it hits on the ground plane. The camera pose defaults to the
configured default pose and the viewport to the configured window size.

Examples:
  oxy-rts pick --x 640 --y 360
  oxy-rts pick --x 100 --y 50 --pos 0,0,10 --pitch -89
  oxy-rts pick --x 400 --y 300 --width 800 --height 600`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	pickCmd.Flags().Float32Var(&flagPickX, "x", -1, "Cursor x in pixels (default: viewport centre)")
	pickCmd.Flags().Float32Var(&flagPickY, "y", -1, "Cursor y in pixels (default: viewport centre)")
	addViewFlags(pickCmd)
}

// addViewFlags registers the camera pose and viewport flags shared by pick and coverage.
func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagViewWidth, "width", 0, "Viewport width (default: config window width)")
	cmd.Flags().IntVar(&flagViewHeight, "height", 0, "Viewport height (default: config window height)")
	cmd.Flags().Float32SliceVar(&flagViewPos, "pos", nil, "Camera position x,y,z")
	cmd.Flags().Float32Var(&flagViewYaw, "yaw", 0, "Camera yaw in degrees")
	cmd.Flags().Float32Var(&flagViewPitch, "pitch", 0, "Camera pitch in degrees")
}

// pickRequest is one headless pick: a camera pose, a viewport and a cursor.
type pickRequest struct {
	pose          camera.Pose
	width, height int
	x, y          float32
}

// pickResult is the outcome of a pickRequest. pose is the camera pose the pick
// actually used, after pitch and bounds clamping.
type pickResult struct {
	pose       camera.Pose
	cell       picker.GridCell
	hit        bool
	restricted bool
}

func runPick(cmd *cobra.Command, args []string) error {
	req, err := pickRequestFromFlags(cmd)
	if err != nil {
		return err
	}
	res := resolvePick(req)
	writePick(cmd.OutOrStdout(), req, res)
	return nil
}

// pickRequestFromFlags fills unset flags from the loaded configuration.
func pickRequestFromFlags(cmd *cobra.Command) (pickRequest, error) {
	pose, width, height, err := viewFromFlags(cmd)
	if err != nil {
		return pickRequest{}, err
	}
	req := pickRequest{pose: pose, width: width, height: height, x: flagPickX, y: flagPickY}
	if req.x < 0 {
		req.x = float32(req.width) / 2
	}
	if req.y < 0 {
		req.y = float32(req.height) / 2
	}
	return req, nil
}

// viewFromFlags returns the camera pose and viewport, defaulting to the configured
// default pose and window size.
func viewFromFlags(cmd *cobra.Command) (camera.Pose, int, int, error) {
	pose := cfg.ControllerConfig().DefaultPose
	if cmd.Flags().Changed("pos") {
		if len(flagViewPos) != 3 {
			return pose, 0, 0, fmt.Errorf("--pos needs three values x,y,z, got %d", len(flagViewPos))
		}
		pose.Position = mgl32.Vec3{flagViewPos[0], flagViewPos[1], flagViewPos[2]}
	}
	if cmd.Flags().Changed("yaw") {
		pose.Yaw = flagViewYaw
	}
	if cmd.Flags().Changed("pitch") {
		pose.Pitch = flagViewPitch
	}

	width, height := flagViewWidth, flagViewHeight
	if width <= 0 {
		width = cfg.Window.Width
	}
	if height <= 0 {
		height = cfg.Window.Height
	}
	return pose, width, height, nil
}

// newCamera builds a camera from the configuration with the controller at pose and
// the aspect ratio of a width×height viewport.
func newCamera(pose camera.Pose, width, height int) camera.Camera {
	ctrl := camera.NewCameraController(
		camera.WithConfig(cfg.ControllerConfig()),
		camera.WithPose(pose),
		camera.WithLogger(logger),
	)
	opts := append(cfg.CameraOptions(), camera.WithController(ctrl))
	if width > 0 && height > 0 {
		opts = append(opts, camera.WithAspect(float32(width)/float32(height)))
	}
	return camera.NewCamera(opts...)
}

// resolvePick runs the pick through a headless engine built from the configuration.
func resolvePick(req pickRequest) pickResult {
	e := engine.NewEngine(
		engine.WithCamera(newCamera(req.pose, req.width, req.height)),
		engine.WithGrid(grid.NewGrid(cfg.GridOptions()...)),
		engine.WithViewport(req.width, req.height),
		engine.WithLogger(logger),
	)

	res := pickResult{pose: e.Camera().Controller().Pose()}
	cell, ok := e.Pick(req.x, req.y)
	if !ok {
		return res
	}
	res.cell, res.hit, res.restricted = cell, true, e.Grid().IsRestricted(cell)
	return res
}

func writePick(w io.Writer, req pickRequest, res pickResult) {
	fmt.Fprintf(w, "%s (%.1f, %.1f) in %dx%d\n", labelStyle.Render("cursor:"), req.x, req.y, req.width, req.height)
	fmt.Fprintf(w, "%s pos=(%.2f, %.2f, %.2f) yaw=%.1f pitch=%.1f\n", labelStyle.Render("camera:"),
		res.pose.Position.X(), res.pose.Position.Y(), res.pose.Position.Z(), res.pose.Yaw, res.pose.Pitch)

	switch {
	case !res.hit:
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("cell:"), missStyle.Render("none (ray misses the grid)"))
	case res.restricted:
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("cell:"), restrictedStyle.Render(fmt.Sprintf("(%d, %d) restricted", res.cell.X, res.cell.Y)))
	default:
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("cell:"), openStyle.Render(fmt.Sprintf("(%d, %d) open", res.cell.X, res.cell.Y)))
	}
}
