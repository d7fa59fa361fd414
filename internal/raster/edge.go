package raster

// Point is a 2D point in plane pixel space.
type Point struct {
	X, Y float64
}

// Edge is a non-horizontal line segment prepared for scanline filling.
type Edge struct {
	x0, y0 float64 // Upper endpoint (y0 < y1)
	x1, y1 float64 // Lower endpoint
	dx     float64 // Change in x per unit y
	dir    int     // Winding direction: +1 or -1
}

// NewEdge creates an edge from two points.
func NewEdge(p0, p1 Point) Edge {
	// Determine direction BEFORE swap (for non-zero winding rule)
	dir := 1
	if p0.Y > p1.Y {
		dir = -1
		p0, p1 = p1, p0 // Swap to ensure y0 < y1
	}

	dy := p1.Y - p0.Y
	var dx float64
	if dy != 0 {
		dx = (p1.X - p0.X) / dy
	}

	return Edge{
		x0:  p0.X,
		y0:  p0.Y,
		x1:  p1.X,
		y1:  p1.Y,
		dx:  dx,
		dir: dir,
	}
}

// XAtY calculates the x coordinate where the edge crosses the given y.
func (e *Edge) XAtY(y float64) float64 {
	return e.x0 + (y-e.y0)*e.dx
}

// crossing is an edge intersection with the current scanline.
type crossing struct {
	x   float64
	dir int
}

// sortCrossings orders crossings by x (insertion sort; the lists are tiny).
func sortCrossings(cs []crossing) {
	for i := 1; i < len(cs); i++ {
		key := cs[i]
		j := i - 1
		for j >= 0 && cs[j].x > key.x {
			cs[j+1] = cs[j]
			j--
		}
		cs[j+1] = key
	}
}
