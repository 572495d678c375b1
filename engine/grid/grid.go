// Package grid describes the square ground grid the RTS world is addressed by:
// its extent, world/cell conversions and the restricted zones units may not enter.
package grid

import (
	"github.com/Carmen-Shannon/oxy-rts/engine/picker"
	"github.com/go-gl/mathgl/mgl32"
)

// Zone is an inclusive rectangle of grid cells.
type Zone struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Contains reports whether the cell lies in the zone, edges included.
func (z Zone) Contains(c picker.GridCell) bool {
	return c.X >= z.MinX && c.X <= z.MaxX && c.Y >= z.MinY && c.Y <= z.MaxY
}

// Grid is a Size×Size grid of unit cells centred on the world origin.
type Grid struct {
	size       int
	restricted []Zone
}

// NewGrid creates a grid. Without options it is the 30×30 island map:
// two 3×3 islands at cells [5..7] and [25..27] are restricted.
//
// Parameters:
//   - options: functional options to configure the grid
//
// Returns:
//   - *Grid: the configured grid
func NewGrid(options ...GridOption) *Grid {
	g := &Grid{
		size: 30,
		restricted: []Zone{
			{MinX: 5, MinY: 5, MaxX: 7, MaxY: 7},
			{MinX: 25, MinY: 25, MaxX: 27, MaxY: 27},
		},
	}
	for _, opt := range options {
		opt(g)
	}
	if g.size < 1 {
		g.size = 1
	}
	return g
}

// Size returns the number of cells along each axis.
func (g *Grid) Size() int {
	return g.size
}

// Offset returns half the grid's world extent. Adding it to a world coordinate
// moves the grid's negative-most corner to 0.
func (g *Grid) Offset() float32 {
	return float32(g.size) / 2
}

// Zones returns a copy of the restricted zones.
func (g *Grid) Zones() []Zone {
	return append([]Zone(nil), g.restricted...)
}

// Contains reports whether the cell index lies on the grid.
func (g *Grid) Contains(c picker.GridCell) bool {
	return c.X >= 0 && c.X < g.size && c.Y >= 0 && c.Y < g.size
}

// IsRestricted reports whether the cell is inside any restricted zone.
func (g *Grid) IsRestricted(c picker.GridCell) bool {
	for _, z := range g.restricted {
		if z.Contains(c) {
			return true
		}
	}
	return false
}

// CellCenter returns the world position of a cell's centre on the ground plane.
//
// Parameters:
//   - c: the cell
//
// Returns:
//   - mgl32.Vec3: centre point with z = 0
func (g *Grid) CellCenter(c picker.GridCell) mgl32.Vec3 {
	off := g.Offset()
	return mgl32.Vec3{float32(c.X) - off + 0.5, float32(c.Y) - off + 0.5, 0}
}

// CellOf returns the cell containing a world ground position.
//
// Parameters:
//   - x, y: world coordinates
//
// Returns:
//   - picker.GridCell: the containing cell, which may be off the grid
func (g *Grid) CellOf(x, y float32) picker.GridCell {
	return picker.Quantize(mgl32.Vec3{x, y, 0}, g.Offset())
}

// LineVertices returns the endpoints of every grid line as consecutive pairs,
// lifted to height z so the lines draw above the ground.
//
// Parameters:
//   - z: height of the lines
//
// Returns:
//   - []mgl32.Vec3: 4·(Size+1) points, two per line
func (g *Grid) LineVertices(z float32) []mgl32.Vec3 {
	off := g.Offset()
	verts := make([]mgl32.Vec3, 0, 4*(g.size+1))
	for i := 0; i <= g.size; i++ {
		p := float32(i) - off
		verts = append(verts,
			mgl32.Vec3{p, -off, z}, mgl32.Vec3{p, off, z},
			mgl32.Vec3{-off, p, z}, mgl32.Vec3{off, p, z},
		)
	}
	return verts
}
