package seps

import (
	"fmt"
	"image"

	"github.com/goseps/seps/internal/imaging"
)

// sampleDither downscales the plane to a coarse cell grid and
// binarizes it with Floyd-Steinberg error diffusion: each cell's
// quantization error spreads to its right and lower neighbors, so dot
// density tracks local ink even though every emitted dot is full size.
// A non-zero angle first rotates the plane (expanding the canvas) so
// the cell grid is screen-angle-aligned; sample positions are mapped
// back through the rotation afterward.
//
// Diffusion is inherently sequential: each cell depends on error
// diffused from the cells above and to its left, so this variant never
// fans out within a channel.
func (s screener) sampleDither(plane *image.Gray, angle float64) ([]Sample, error) {
	cell := int(s.spec.spacing())
	if cell < 1 {
		return nil, fmt.Errorf("%w: spacing %v below one pixel", ErrGeometry, s.spec.spacing())
	}

	rotated, rot := imaging.Rotate(plane, angle, 0)

	gw := rotated.Rect.Dx() / cell
	gh := rotated.Rect.Dy() / cell
	if gw < 1 || gh < 1 {
		return nil, fmt.Errorf("%w: cell grid %dx%d at spacing %v", ErrGeometry, gw, gh, s.spec.spacing())
	}

	coarse := imaging.Resample(rotated, gw, gh)

	// Working copy in ink fractions; the diffusion mutates it in place.
	ink := make([]float64, gw*gh)
	for y := 0; y < gh; y++ {
		row := coarse.Pix[y*coarse.Stride : y*coarse.Stride+gw]
		for x, v := range row {
			ink[y*gw+x] = float64(v) / 255
		}
	}

	var samples []Sample
	for y := 0; y < gh; y++ {
		for x := 0; x < gw; x++ {
			old := ink[y*gw+x]
			var quantized float64
			if old >= 0.5 {
				quantized = 1
			}
			err := old - quantized

			if x+1 < gw {
				ink[y*gw+x+1] += err * 7 / 16
			}
			if y+1 < gh {
				if x-1 >= 0 {
					ink[(y+1)*gw+x-1] += err * 3 / 16
				}
				ink[(y+1)*gw+x] += err * 5 / 16
				if x+1 < gw {
					ink[(y+1)*gw+x+1] += err * 1 / 16
				}
			}

			if quantized < 1 {
				continue
			}

			// Cell center in rotated-plane pixels, mapped back to the
			// source plane.
			sx, sy := rot.Unmap(
				(float64(x)+0.5)*float64(cell),
				(float64(y)+0.5)*float64(cell),
			)
			samples = append(samples, Sample{
				X:         sx,
				Y:         sy,
				Intensity: 1,
				Angle:     angle,
			})
		}
	}
	return samples, nil
}
