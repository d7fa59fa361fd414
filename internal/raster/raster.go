// Package raster provides scanline filling of solid shapes on grayscale
// planes. It covers the mark geometry a halftone needs: circles and
// arbitrary (possibly rotated) polygons, painted as flat gray values.
//
// Planes are expected to have their origin at (0, 0); coordinates are in
// plane pixel space.
package raster

import (
	"image"
	"math"
)

// FillPolygon rasterizes a filled polygon onto dst with the gray value v.
// The point list is treated as a closed ring; the non-zero winding rule
// decides interior spans. A pixel is covered when its center lies inside.
func FillPolygon(dst *image.Gray, points []Point, v uint8) {
	if dst == nil || len(points) < 3 {
		return
	}

	// Build edge list, closing the ring and skipping horizontal edges.
	edges := make([]Edge, 0, len(points))
	for i := range points {
		p0 := points[i]
		p1 := points[(i+1)%len(points)]

		if math.Abs(p1.Y-p0.Y) < 1e-9 {
			continue
		}

		edges = append(edges, NewEdge(p0, p1))
	}

	if len(edges) == 0 {
		return
	}

	yMin := math.MaxFloat64
	yMax := -math.MaxFloat64
	for i := range edges {
		yMin = math.Min(yMin, edges[i].y0)
		yMax = math.Max(yMax, edges[i].y1)
	}

	h := dst.Rect.Dy()
	y0 := int(math.Floor(yMin))
	y1 := int(math.Ceil(yMax))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > h {
		y1 = h
	}

	crossings := make([]crossing, 0, 8)
	for y := y0; y < y1; y++ {
		scanY := float64(y) + 0.5

		crossings = crossings[:0]
		for i := range edges {
			e := &edges[i]
			if e.y0 <= scanY && scanY < e.y1 {
				crossings = append(crossings, crossing{x: e.XAtY(scanY), dir: e.dir})
			}
		}
		if len(crossings) == 0 {
			continue
		}
		sortCrossings(crossings)

		// Non-zero winding: spans open where the winding count leaves
		// zero and close where it returns to zero.
		winding := 0
		var spanX float64
		for _, c := range crossings {
			if winding == 0 {
				spanX = c.x
			}
			winding += c.dir
			if winding == 0 {
				fillSpan(dst, spanX, c.x, y, v)
			}
		}
	}
}

// FillCircle rasterizes a filled circle centered at (cx, cy) with the
// given radius onto dst. Span extents are exact per scanline, so the
// coverage rule matches FillPolygon: pixel centers inside the circle.
func FillCircle(dst *image.Gray, cx, cy, radius float64, v uint8) {
	if dst == nil || radius <= 0 {
		return
	}

	h := dst.Rect.Dy()
	y0 := int(math.Floor(cy - radius))
	y1 := int(math.Ceil(cy + radius))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > h {
		y1 = h
	}

	for y := y0; y < y1; y++ {
		dy := float64(y) + 0.5 - cy
		if math.Abs(dy) > radius {
			continue
		}
		half := math.Sqrt(radius*radius - dy*dy)
		fillSpan(dst, cx-half, cx+half, y, v)
	}
}

// fillSpan paints the pixels of row y whose centers fall in [x0, x1].
func fillSpan(dst *image.Gray, x0, x1 float64, y int, v uint8) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}

	// Pixel x has center x+0.5; covered when x0 <= x+0.5 <= x1.
	xa := int(math.Ceil(x0 - 0.5))
	xb := int(math.Floor(x1 - 0.5))

	w := dst.Rect.Dx()
	if xa < 0 {
		xa = 0
	}
	if xb >= w {
		xb = w - 1
	}
	if xa > xb {
		return
	}

	row := dst.Pix[y*dst.Stride:]
	for x := xa; x <= xb; x++ {
		row[x] = v
	}
}
