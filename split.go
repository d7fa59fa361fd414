package seps

import (
	"fmt"
	"image"

	"github.com/goseps/seps/internal/imaging"
)

// channel is one separation in flight: a named ink-coverage plane.
// Plane values are ink: 0 means no ink, 255 full coverage.
type channel struct {
	name  string
	tone  Tone
	plane *image.Gray
}

// splitter decomposes a source image into ink channels. It is a
// stateless value parameterized by its spec; the mode dispatches to
// one of the separation rules.
type splitter struct {
	spec SplitSpec
}

// split returns the ordered channel list for the source image. Order
// is the configured tone order for the distance-based modes and the
// canonical plane order otherwise.
func (s splitter) split(img image.Image) ([]channel, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil source image", ErrConversion)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty source image %dx%d", ErrConversion, b.Dx(), b.Dy())
	}

	switch s.spec.Mode {
	case SplitProcess:
		return s.splitProcess(img), nil
	case SplitRGB:
		return s.splitRGB(img), nil
	case SplitGray:
		return s.splitGray(img), nil
	case SplitSimProcess:
		return s.splitSimProcess(img), nil
	case SplitSpot:
		return s.splitSpot(img), nil
	}
	return nil, fmt.Errorf("%w: split mode %v", ErrConfig, s.spec.Mode)
}

// splitGray produces a single inverted-luminance channel: white paper
// maps to zero ink.
func (s splitter) splitGray(img image.Image) []channel {
	gray := imaging.ToGray(img)
	w := gray.Rect.Dx()
	h := gray.Rect.Dy()

	plane := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		dst := plane.Pix[y*plane.Stride : y*plane.Stride+w]
		for x, v := range src {
			dst[x] = 255 - v
		}
	}

	return []channel{{name: "L", tone: toneBlack, plane: plane}}
}
