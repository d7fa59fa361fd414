package seps

import (
	"image"

	"github.com/goseps/seps/internal/parallel"
)

// sampleThreshold emits one full-intensity sample for every plane
// pixel above half ink, at the pixel's own coordinate. No grid; meant
// for already-binary planes (spot masks) or very high resolution
// input, and O(pixels) because of it.
func (s screener) sampleThreshold(plane *image.Gray, angle float64) []Sample {
	w := plane.Rect.Dx()
	h := plane.Rect.Dy()

	// Rows are independent; per-row slices keep the order stable.
	rows := make([][]Sample, h)
	parallel.ForEachChunk(s.workers, h, func(start, end int) {
		for y := start; y < end; y++ {
			var row []Sample
			src := plane.Pix[y*plane.Stride : y*plane.Stride+w]
			for x, v := range src {
				if v <= 127 {
					continue
				}
				row = append(row, Sample{
					X:         float64(x),
					Y:         float64(y),
					Intensity: 1,
					Angle:     angle,
				})
			}
			rows[y] = row
		}
	})

	total := 0
	for _, row := range rows {
		total += len(row)
	}
	samples := make([]Sample, 0, total)
	for _, row := range rows {
		samples = append(samples, row...)
	}
	return samples
}
