package seps

import (
	"fmt"
	"image"

	"github.com/goseps/seps/internal/filter"
	"github.com/goseps/seps/internal/imaging"
)

// Sample is one ink-bearing point produced by screening: a position in
// channel-plane pixel space, an intensity in [0,1] (the local ink
// fraction), and the screen angle it was placed under. Samples are
// ephemeral; the renderer consumes them immediately.
type Sample struct {
	X, Y      float64
	Intensity float64
	Angle     float64
}

// screener places samples on a channel plane. A stateless value
// parameterized by its spec; one screener serves every channel of a
// run. workers caps per-row fan-out for the grid-free variants.
type screener struct {
	spec    ScreenSpec
	workers int
}

// samples returns the ordered sample list for a plane screened at the
// given angle. Order is deterministic for a fixed plane and angle
// regardless of the worker count.
func (s screener) samples(plane *image.Gray, angle float64) ([]Sample, error) {
	switch s.spec.Mode {
	case ScreenAM:
		return s.sampleAM(plane, angle), nil
	case ScreenDither:
		return s.sampleDither(plane, angle)
	case ScreenThreshold:
		return s.sampleThreshold(plane, angle), nil
	}
	return nil, fmt.Errorf("%w: screen mode %v", ErrConfig, s.spec.Mode)
}

// blockMean averages the spacing-sized pixel block centered on (x, y),
// clipped to the plane edges. Returns the mean and whether any pixels
// fell inside.
func blockMean(plane *image.Gray, x, y, spacing float64) (float64, bool) {
	w := plane.Rect.Dx()
	h := plane.Rect.Dy()
	half := spacing / 2

	x0 := int(x - half)
	y0 := int(y - half)
	x1 := int(x + half)
	y1 := int(y + half)

	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > w {
		x1 = w
	}
	if y1 > h {
		y1 = h
	}
	if x0 >= x1 || y0 >= y1 {
		return 0, false
	}

	var sum uint64
	for yy := y0; yy < y1; yy++ {
		row := plane.Pix[yy*plane.Stride+x0 : yy*plane.Stride+x1]
		for _, v := range row {
			sum += uint64(v)
		}
	}
	return float64(sum) / float64((x1-x0)*(y1-y0)), true
}

// clamp01 clamps an intensity to [0,1] before it reaches the renderer.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// sharpen is the hardmix post-process: threshold the blurred halftone
// against the channel's true tonal value. A halftone pixel stays white
// only where the local lightness plus the blurred mark coverage still
// reaches full white; everywhere else it becomes solid ink. Sharpens
// edges the grid approximation smeared.
func sharpen(plane, halftone *image.Gray, spacing float64) *image.Gray {
	blurred := filter.Gaussian(halftone, spacing/10)

	w := halftone.Rect.Dx()
	h := halftone.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		ink := plane.Pix[y*plane.Stride : y*plane.Stride+w]
		soft := blurred.Pix[y*blurred.Stride : y*blurred.Stride+w]
		dst := out.Pix[y*out.Stride : y*out.Stride+w]
		for x := 0; x < w; x++ {
			light := 255 - int(ink[x])
			if light+int(soft[x]) >= 255 {
				dst[x] = 255
			}
		}
	}
	return out
}

// resamplePlane scales a plane by the DPI/PPI factor so the halftone
// lands at output resolution. An identity factor returns the plane
// unchanged.
func (s screener) resamplePlane(plane *image.Gray) (*image.Gray, error) {
	factor := s.spec.DPI / s.spec.PPI
	if factor == 1 {
		return plane, nil
	}

	w := int(float64(plane.Rect.Dx()) * factor)
	h := int(float64(plane.Rect.Dy()) * factor)
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: resampled plane %dx%d", ErrGeometry, w, h)
	}
	return imaging.Resample(plane, w, h), nil
}
