package seps

import (
	"image"
	"math"

	"github.com/goseps/seps/internal/raster"
)

// ellipsePoints is the parametric resolution of the elliptical dot
// perimeter.
const ellipsePoints = 100

// Aspect ratio range of the elliptical dot: fully circular at
// intensity 1, elongated 4:1 at intensity 0.
const (
	minAspect = 1.0
	maxAspect = 4.0
)

// renderer paints one mark per sample onto a halftone canvas. A
// stateless value parameterized by its spec; the shape dispatches to
// one of the fill routines. Marks are ink: gray value 0 on a white
// canvas unless gradient mode chooses ring fills.
type renderer struct {
	spec DotSpec
}

// draw paints the mark for one sample. size is the nominal mark
// diameter (the grid pitch); the painted size additionally depends on
// intensity, modulation and gain. Degenerate geometry paints nothing.
func (r renderer) draw(canvas *image.Gray, s Sample, size float64) {
	if r.spec.Gradient {
		r.drawConcentric(canvas, s, size)
		return
	}
	r.drawShape(canvas, s, size, 0)
}

// drawConcentric paints filled shapes at every integer radius from
// size/2 down to 1, outer to inner, with a cubic gray falloff: the
// outermost ring is near white and the center solid ink, so each dot
// becomes a soft radial vignette instead of a hard-edged mark.
func (r renderer) drawConcentric(canvas *image.Gray, s Sample, size float64) {
	radius := size / 2
	for ri := int(radius); ri >= 1; ri-- {
		t := math.Pow(float64(ri)/radius, 3)
		r.drawShape(canvas, s, float64(ri)*2, uint8(255*t))
	}
}

// drawShape paints one solid shape with the given fill value.
func (r renderer) drawShape(canvas *image.Gray, s Sample, size float64, fill uint8) {
	half := r.halfSize(size, s.Intensity)
	if half <= 0 {
		return
	}

	switch r.spec.Shape {
	case DotRound:
		raster.FillCircle(canvas, s.X, s.Y, half, fill)

	case DotSquare:
		corners := []raster.Point{
			{X: s.X - half, Y: s.Y - half},
			{X: s.X + half, Y: s.Y - half},
			{X: s.X + half, Y: s.Y + half},
			{X: s.X - half, Y: s.Y + half},
		}
		raster.FillPolygon(canvas, rotatePoints(corners, s.X, s.Y, s.Angle), fill)

	case DotElliptical:
		rx := half
		aspect := minAspect + (1-s.Intensity)*(maxAspect-minAspect)
		ry := rx / aspect

		points := make([]raster.Point, ellipsePoints)
		step := 2 * math.Pi / ellipsePoints
		for i := range points {
			theta := float64(i) * step
			points[i] = raster.Point{
				X: s.X + rx*math.Cos(theta),
				Y: s.Y + ry*math.Sin(theta),
			}
		}
		raster.FillPolygon(canvas, rotatePoints(points, s.X, s.Y, s.Angle), fill)
	}
}

// halfSize is the painted half-size of a mark: half the nominal size
// scaled by intensity when modulation is on, shrunk by gain, floored
// at zero.
func (r renderer) halfSize(size, intensity float64) float64 {
	if !r.spec.Modulate {
		intensity = 1
	}
	half := (size * intensity / 2) * (1 - r.spec.Gain)
	if half < 0 {
		return 0
	}
	return half
}

// rotatePoints rotates points about (cx, cy) by the angle in degrees.
// A zero angle returns the input unchanged.
func rotatePoints(points []raster.Point, cx, cy, degrees float64) []raster.Point {
	if degrees == 0 {
		return points
	}

	a := degrees * math.Pi / 180
	sin, cos := math.Sin(a), math.Cos(a)

	out := make([]raster.Point, len(points))
	for i, p := range points {
		dx := p.X - cx
		dy := p.Y - cy
		out[i] = raster.Point{
			X: cx + cos*dx - sin*dy,
			Y: cy + sin*dx + cos*dy,
		}
	}
	return out
}
