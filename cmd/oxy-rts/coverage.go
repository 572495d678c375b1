package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Carmen-Shannon/oxy-rts/engine/coverage"
	"github.com/Carmen-Shannon/oxy-rts/engine/grid"
)

var (
	flagCoverageCols int
	flagCoverageRows int
)

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Print a screen map of which grid cells the cursor would pick",
	Long: `Samples the viewport on a cols x rows lattice and picks every sample.
Each character is one sample:

  .  open cell
  #  restricted cell
     (blank) the ray misses the grid

Examples:
  oxy-rts coverage
  oxy-rts coverage --cols 100 --rows 30 --pos 0,0,20 --pitch -70`,
	Args: cobra.NoArgs,
	RunE: runCoverage,
}

func init() {
	coverageCmd.Flags().IntVar(&flagCoverageCols, "cols", 64, "Samples per row")
	coverageCmd.Flags().IntVar(&flagCoverageRows, "rows", 24, "Sample rows")
	addViewFlags(coverageCmd)
}

func runCoverage(cmd *cobra.Command, args []string) error {
	pose, width, height, err := viewFromFlags(cmd)
	if err != nil {
		return err
	}
	if flagCoverageCols <= 0 || flagCoverageRows <= 0 {
		return fmt.Errorf("--cols and --rows must be positive, got %dx%d", flagCoverageCols, flagCoverageRows)
	}

	m := coverage.Sample(newCamera(pose, width, height), grid.NewGrid(cfg.GridOptions()...), width, height, flagCoverageCols, flagCoverageRows)
	logger.Debug("coverage sampled", "cols", m.Cols, "rows", m.Rows,
		"open", m.Count(coverage.KindOpen), "restricted", m.Count(coverage.KindRestricted), "miss", m.Count(coverage.KindMiss))
	writeCoverage(cmd.OutOrStdout(), m)
	return nil
}

func writeCoverage(w io.Writer, m coverage.Map) {
	var b strings.Builder
	for _, row := range m.Samples {
		b.Reset()
		for _, s := range row {
			switch s.Kind {
			case coverage.KindOpen:
				b.WriteString(openStyle.Render("."))
			case coverage.KindRestricted:
				b.WriteString(restrictedStyle.Render("#"))
			default:
				b.WriteByte(' ')
			}
		}
		fmt.Fprintln(w, b.String())
	}
	fmt.Fprintf(w, "%s open=%d restricted=%d miss=%d\n", labelStyle.Render("samples:"),
		m.Count(coverage.KindOpen), m.Count(coverage.KindRestricted), m.Count(coverage.KindMiss))
}
