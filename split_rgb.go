package seps

import (
	"image"

	"github.com/goseps/seps/internal/imaging"
)

// splitRGB separates the source into red, green and blue channels,
// plus an alpha channel when the source is not fully opaque. Color
// planes are inverted into ink coverage (ink = 255 - value), so a
// white source carries no ink in any channel; alpha is already
// coverage and passes through as-is.
func (s splitter) splitRGB(img image.Image) []channel {
	rgba := imaging.ToNRGBA(img)
	w := rgba.Rect.Dx()
	h := rgba.Rect.Dy()

	specs := []struct {
		name   string
		tone   Tone
		invert bool
	}{
		{"R", toneRed, true},
		{"G", toneGreen, true},
		{"B", toneBlue, true},
	}
	if !imaging.Opaque(img) {
		specs = append(specs, struct {
			name   string
			tone   Tone
			invert bool
		}{"A", toneBlack, false})
	}

	chans := make([]channel, len(specs))
	for i, sp := range specs {
		plane := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
			dst := plane.Pix[y*plane.Stride : y*plane.Stride+w]
			for x := 0; x < w; x++ {
				v := src[x*4+i]
				if sp.invert {
					v = 255 - v
				}
				dst[x] = v
			}
		}
		chans[i] = channel{name: sp.name, tone: sp.tone, plane: plane}
	}
	return chans
}
