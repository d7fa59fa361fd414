package seps

import (
	"image"
	"math"

	"github.com/goseps/seps/internal/parallel"
)

// sampleAM places samples on a rectangular grid rotated by the screen
// angle. The grid covers the rotated bounding box of the plane at a
// pitch of one spacing; every vertex is rotated back into plane space,
// rejected if it lands outside, and sampled by averaging the
// spacing-sized block around it. Dot size later encodes the average,
// which is classic amplitude modulation.
func (s screener) sampleAM(plane *image.Gray, angle float64) []Sample {
	w := float64(plane.Rect.Dx())
	h := float64(plane.Rect.Dy())
	spacing := s.spec.spacing()

	a := angle * math.Pi / 180
	sin, cos := math.Sin(a), math.Cos(a)
	cx, cy := w/2, h/2

	// Bounding box of the plane corners in the rotated grid frame.
	corners := [4][2]float64{
		{-cx, -cy},
		{w - cx, -cy},
		{-cx, h - cy},
		{w - cx, h - cy},
	}
	minRX, maxRX := math.Inf(1), math.Inf(-1)
	minRY, maxRY := math.Inf(1), math.Inf(-1)
	for _, c := range corners {
		rx := c[0]*cos + c[1]*sin
		ry := -c[0]*sin + c[1]*cos
		minRX = math.Min(minRX, rx)
		maxRX = math.Max(maxRX, rx)
		minRY = math.Min(minRY, ry)
		maxRY = math.Max(maxRY, ry)
	}

	nx := int(math.Ceil((maxRX - minRX) / spacing))
	ny := int(math.Ceil((maxRY - minRY) / spacing))

	// Grid columns are independent, so they fan out across workers;
	// per-column slices keep the emitted order deterministic.
	cols := make([][]Sample, nx+1)
	parallel.ForEachChunk(s.workers, nx+1, func(start, end int) {
		for i := start; i < end; i++ {
			col := make([]Sample, 0, ny+1)
			rx := minRX + float64(i)*spacing

			for j := 0; j <= ny; j++ {
				ry := minRY + float64(j)*spacing

				// Inverse rotation back into plane space.
				x := rx*cos - ry*sin + cx
				y := rx*sin + ry*cos + cy
				if x < 0 || x >= w || y < 0 || y >= h {
					continue
				}

				mean, ok := blockMean(plane, x, y, spacing)
				if !ok {
					continue
				}

				col = append(col, Sample{
					X:         x,
					Y:         y,
					Intensity: clamp01(mean / 255),
					Angle:     angle,
				})
			}
			cols[i] = col
		}
	})

	total := 0
	for _, col := range cols {
		total += len(col)
	}
	samples := make([]Sample, 0, total)
	for _, col := range cols {
		samples = append(samples, col...)
	}
	return samples
}
