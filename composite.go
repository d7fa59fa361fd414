package seps

import (
	"fmt"
	"image"
)

// compositePreview blends every channel's halftone over the substrate
// color into a colorized preview. Channels blend in configured order;
// later channels overprint earlier ones. With zero channels of ink the
// result is the substrate fill, unchanged.
func compositePreview(seps []Separation, substrate Tone, blend BlendMode) (*image.NRGBA, error) {
	if len(seps) == 0 {
		return nil, fmt.Errorf("%w: empty channel set", ErrCompositing)
	}

	w := seps[0].Halftone.Rect.Dx()
	h := seps[0].Halftone.Rect.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty halftone for channel %q", ErrCompositing, seps[0].Name)
	}
	for _, sep := range seps[1:] {
		if sep.Halftone.Rect.Dx() != w || sep.Halftone.Rect.Dy() != h {
			return nil, fmt.Errorf("%w: channel %q halftone is %dx%d, want %dx%d",
				ErrCompositing, sep.Name, sep.Halftone.Rect.Dx(), sep.Halftone.Rect.Dy(), w, h)
		}
	}

	switch blend {
	case BlendOverprint:
		return blendOverprint(seps, substrate, w, h), nil
	case BlendOverwrite:
		return blendOverwrite(seps, substrate, w, h), nil
	}
	return nil, fmt.Errorf("%w: blend mode %v", ErrConfig, blend)
}

// blendOverprint accumulates ink multiplicatively: per channel, each
// component of the composite is scaled by 1 - ink*(1 - tone), so full
// ink pulls the pixel to the channel tone and overlapping inks darken
// toward their product, the physically plausible overprint model.
func blendOverprint(seps []Separation, substrate Tone, w, h int) *image.NRGBA {
	// Accumulate in normalized floats; one rounding at the end.
	comp := make([]float64, w*h*3)
	for i := 0; i < len(comp); i += 3 {
		comp[i] = float64(substrate.R) / 255
		comp[i+1] = float64(substrate.G) / 255
		comp[i+2] = float64(substrate.B) / 255
	}

	for _, sep := range seps {
		tr := float64(sep.Tone.R) / 255
		tg := float64(sep.Tone.G) / 255
		tb := float64(sep.Tone.B) / 255
		ht := sep.Halftone

		for y := 0; y < h; y++ {
			row := ht.Pix[y*ht.Stride : y*ht.Stride+w]
			for x, v := range row {
				ink := 1 - float64(v)/255
				if ink == 0 {
					continue
				}

				i := (y*w + x) * 3
				comp[i] *= 1 - ink*(1-tr)
				comp[i+1] *= 1 - ink*(1-tg)
				comp[i+2] *= 1 - ink*(1-tb)
			}
		}
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for p := 0; p < w*h; p++ {
		out.Pix[p*4] = clamp8(comp[p*3])
		out.Pix[p*4+1] = clamp8(comp[p*3+1])
		out.Pix[p*4+2] = clamp8(comp[p*3+2])
		out.Pix[p*4+3] = 255
	}
	return out
}

// blendOverwrite replaces every pixel more than half inked with the
// channel tone. Later channels win outright; no overprint mixing. The
// historical preview rule, kept as an explicit policy.
func blendOverwrite(seps []Separation, substrate Tone, w, h int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for p := 0; p < w*h; p++ {
		out.Pix[p*4] = substrate.R
		out.Pix[p*4+1] = substrate.G
		out.Pix[p*4+2] = substrate.B
		out.Pix[p*4+3] = 255
	}

	for _, sep := range seps {
		ht := sep.Halftone
		for y := 0; y < h; y++ {
			row := ht.Pix[y*ht.Stride : y*ht.Stride+w]
			for x, v := range row {
				if v >= 128 {
					continue
				}
				i := (y*w + x) * 4
				out.Pix[i] = sep.Tone.R
				out.Pix[i+1] = sep.Tone.G
				out.Pix[i+2] = sep.Tone.B
			}
		}
	}
	return out
}
