package seps

import (
	"image"

	"github.com/goseps/seps/internal/imaging"
)

// splitProcess converts the source to CMYK and returns its four planes
// as channels. CMYK planes are already ink coverage, so they pass
// through unchanged. The tone set is canonical; configured tones are
// ignored.
func (s splitter) splitProcess(img image.Image) []channel {
	cmyk := imaging.ToCMYK(img)
	w := cmyk.Rect.Dx()
	h := cmyk.Rect.Dy()

	specs := []struct {
		name string
		tone Tone
	}{
		{"C", toneCyan},
		{"M", toneMagenta},
		{"Y", toneYellow},
		{"K", toneBlack},
	}

	chans := make([]channel, len(specs))
	for i, sp := range specs {
		plane := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			src := cmyk.Pix[y*cmyk.Stride : y*cmyk.Stride+w*4]
			dst := plane.Pix[y*plane.Stride : y*plane.Stride+w]
			for x := 0; x < w; x++ {
				dst[x] = src[x*4+i]
			}
		}
		chans[i] = channel{name: sp.name, tone: sp.tone, plane: plane}
	}
	return chans
}
