package grid

// GridOption is a functional option for configuring a Grid.
type GridOption func(*Grid)

// WithSize sets the number of cells along each axis.
//
// Parameters:
//   - size: cells per side (values below 1 become 1)
//
// Returns:
//   - GridOption: option function to apply
func WithSize(size int) GridOption {
	return func(g *Grid) {
		g.size = size
	}
}

// WithRestrictedZones replaces the restricted zones. Pass none to clear them.
//
// Parameters:
//   - zones: inclusive cell rectangles
//
// Returns:
//   - GridOption: option function to apply
func WithRestrictedZones(zones ...Zone) GridOption {
	return func(g *Grid) {
		g.restricted = append([]Zone(nil), zones...)
	}
}
