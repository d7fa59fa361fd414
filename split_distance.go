package seps

import (
	"image"

	"github.com/goseps/seps/internal/imaging"
)

// splitSimProcess builds one channel per configured tone from color
// distance: ink rises as a pixel approaches the tone. When a substrate
// is configured, coverage is additionally scaled by the pixel's
// distance to the substrate, so unprinted paper is not double-inked.
func (s splitter) splitSimProcess(img image.Image) []channel {
	rgba := imaging.ToNRGBA(img)
	w := rgba.Rect.Dx()
	h := rgba.Rect.Dy()

	var sub *toneMatcher
	if s.spec.Substrate != nil {
		m := newToneMatcher(s.spec.Metric, *s.spec.Substrate)
		sub = &m
	}

	chans := make([]channel, len(s.spec.Tones))
	for i, te := range s.spec.Tones {
		m := newToneMatcher(s.spec.Metric, te.Tone)
		plane := image.NewGray(image.Rect(0, 0, w, h))

		for y := 0; y < h; y++ {
			src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
			dst := plane.Pix[y*plane.Stride : y*plane.Stride+w]
			for x := 0; x < w; x++ {
				r, g, b := src[x*4], src[x*4+1], src[x*4+2]

				ink := 1 - m.distance(r, g, b)/maxToneDistance
				if sub != nil {
					ink *= sub.distance(r, g, b) / maxToneDistance
				}
				dst[x] = clamp8(ink)
			}
		}

		chans[i] = channel{name: te.Name, tone: te.Tone, plane: plane}
	}
	return chans
}

// splitSpot builds binary channels: a pixel belongs to a tone iff its
// distance to the tone is within threshold and, when a substrate is
// configured, its distance to the substrate exceeds threshold.
func (s splitter) splitSpot(img image.Image) []channel {
	rgba := imaging.ToNRGBA(img)
	w := rgba.Rect.Dx()
	h := rgba.Rect.Dy()

	var sub *toneMatcher
	if s.spec.Substrate != nil {
		m := newToneMatcher(s.spec.Metric, *s.spec.Substrate)
		sub = &m
	}

	chans := make([]channel, len(s.spec.Tones))
	for i, te := range s.spec.Tones {
		m := newToneMatcher(s.spec.Metric, te.Tone)
		plane := image.NewGray(image.Rect(0, 0, w, h))

		for y := 0; y < h; y++ {
			src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
			dst := plane.Pix[y*plane.Stride : y*plane.Stride+w]
			for x := 0; x < w; x++ {
				r, g, b := src[x*4], src[x*4+1], src[x*4+2]

				if m.distance(r, g, b) > s.spec.Threshold {
					continue
				}
				if sub != nil && sub.distance(r, g, b) <= s.spec.Threshold {
					continue
				}
				dst[x] = 255
			}
		}

		chans[i] = channel{name: te.Name, tone: te.Tone, plane: plane}
	}
	return chans
}

// clamp8 converts a [0,1] fraction to a rounded 8-bit value.
func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
