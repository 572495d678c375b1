// Package coverage samples a viewport on a regular lattice and resolves every sample
// to a grid cell, producing a screen-space map of what the cursor would pick.
package coverage

import (
	"github.com/Carmen-Shannon/oxy-rts/engine/camera"
	"github.com/Carmen-Shannon/oxy-rts/engine/grid"
	"github.com/Carmen-Shannon/oxy-rts/engine/picker"
)

// Kind classifies one sample.
type Kind int

const (
	// KindMiss means the ray missed the ground or hit outside the grid.
	KindMiss Kind = iota
	// KindOpen means the ray hit an unrestricted cell.
	KindOpen
	// KindRestricted means the ray hit a restricted cell.
	KindRestricted
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindRestricted:
		return "restricted"
	default:
		return "miss"
	}
}

// Sample is the pick result at one lattice point.
type Sample struct {
	X, Y float32
	Cell picker.GridCell
	Kind Kind
}

// Map is a Rows×Cols lattice of samples, row-major from the top-left.
type Map struct {
	Cols, Rows int
	Samples    [][]Sample
}

// Count returns how many samples are of kind k.
func (m Map) Count(k Kind) int {
	n := 0
	for _, row := range m.Samples {
		for _, s := range row {
			if s.Kind == k {
				n++
			}
		}
	}
	return n
}

// Sample picks cols×rows points placed at the centres of equal screen tiles,
// using the camera's matrices after an Update.
//
// Parameters:
//   - cam: the camera to pick through
//   - g: the grid samples are resolved against
//   - width, height: viewport size in pixels
//   - cols, rows: lattice size
//
// Returns:
//   - Map: the sampled lattice; empty when any size is not positive
func Sample(cam camera.Camera, g *grid.Grid, width, height, cols, rows int) Map {
	m := Map{Cols: cols, Rows: rows}
	if width <= 0 || height <= 0 || cols <= 0 || rows <= 0 {
		return m
	}

	cam.Update()
	proj, view := cam.ProjectionMatrix(), cam.ViewMatrix()
	offset := g.Offset()
	w, h := float32(width), float32(height)
	stepX, stepY := w/float32(cols), h/float32(rows)

	m.Samples = make([][]Sample, rows)
	for r := range rows {
		row := make([]Sample, cols)
		y := (float32(r) + 0.5) * stepY
		for c := range cols {
			x := (float32(c) + 0.5) * stepX
			s := Sample{X: x, Y: y}
			if cell, ok := picker.PickGridCell(x, y, w, h, proj, view, offset); ok && g.Contains(cell) {
				s.Cell = cell
				s.Kind = KindOpen
				if g.IsRestricted(cell) {
					s.Kind = KindRestricted
				}
			}
			row[c] = s
		}
		m.Samples[r] = row
	}
	return m
}
