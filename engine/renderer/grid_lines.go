package renderer

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-rts/engine/grid"
	"github.com/Carmen-Shannon/oxy-rts/engine/picker"
	"github.com/go-gl/mathgl/mgl32"
)

// LineVertexSize is the byte stride of one LineVertex in the vertex buffer.
const LineVertexSize = 28

// Line heights above the ground plane, so overlays draw over the grid.
const (
	gridLineHeight      = 0.01
	restrictedHeight    = 0.02
	selectionLineHeight = 0.03
)

var (
	// GridLineColor is the color of the regular grid lines.
	GridLineColor = mgl32.Vec4{0.45, 0.45, 0.45, 1}
	// RestrictedColor outlines restricted zones.
	RestrictedColor = mgl32.Vec4{0.9, 0.2, 0.2, 1}
	// SelectionColor outlines the picked cell.
	SelectionColor = mgl32.Vec4{1, 0.85, 0.1, 1}
)

// LineVertex is one endpoint of a colored world-space line segment.
// Matches the VertexInput struct of the grid line shader (vec3 position, vec4 color).
type LineVertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec4
}

// MarshalLineVertices packs vertices little-endian for a vertex buffer write.
//
// Parameters:
//   - verts: the vertices to pack
//
// Returns:
//   - []byte: len(verts)·LineVertexSize bytes
func MarshalLineVertices(verts []LineVertex) []byte {
	buf := make([]byte, len(verts)*LineVertexSize)
	for i, v := range verts {
		off := i * LineVertexSize
		for j := range 3 {
			binary.LittleEndian.PutUint32(buf[off+j*4:], math.Float32bits(v.Position[j]))
		}
		for j := range 4 {
			binary.LittleEndian.PutUint32(buf[off+12+j*4:], math.Float32bits(v.Color[j]))
		}
	}
	return buf
}

// GridLines builds the line list for a grid: every grid line, an outline around each
// restricted zone and, when selected is on the grid, an outline around the selected cell.
//
// Parameters:
//   - g: the grid to draw
//   - selected: the picked cell, or nil
//
// Returns:
//   - []LineVertex: vertices in consecutive pairs
func GridLines(g *grid.Grid, selected *picker.GridCell) []LineVertex {
	points := g.LineVertices(gridLineHeight)
	verts := make([]LineVertex, 0, len(points)+8*(len(g.Zones())+1))
	for _, p := range points {
		verts = append(verts, LineVertex{Position: p, Color: GridLineColor})
	}

	off := g.Offset()
	for _, z := range g.Zones() {
		verts = appendRect(verts,
			float32(z.MinX)-off, float32(z.MinY)-off,
			float32(z.MaxX+1)-off, float32(z.MaxY+1)-off,
			restrictedHeight, RestrictedColor)
	}

	if selected != nil && g.Contains(*selected) {
		x, y := float32(selected.X)-off, float32(selected.Y)-off
		verts = appendRect(verts, x, y, x+1, y+1, selectionLineHeight, SelectionColor)
	}
	return verts
}

// appendRect appends the four edges of an axis-aligned rectangle at height z.
func appendRect(verts []LineVertex, x0, y0, x1, y1, z float32, color mgl32.Vec4) []LineVertex {
	corners := [4]mgl32.Vec3{{x0, y0, z}, {x1, y0, z}, {x1, y1, z}, {x0, y1, z}}
	for i := range corners {
		verts = append(verts,
			LineVertex{Position: corners[i], Color: color},
			LineVertex{Position: corners[(i+1)%4], Color: color},
		)
	}
	return verts
}
