package seps

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Tone is an ink color as an RGB triple. Tones identify channels in
// distance-based splits and colorize the composite preview.
type Tone struct {
	R, G, B uint8
}

// NRGBA returns the tone as an opaque NRGBA color.
func (t Tone) NRGBA() color.NRGBA {
	return color.NRGBA{R: t.R, G: t.G, B: t.B, A: 255}
}

// Hex returns the tone as a "#rrggbb" string.
func (t Tone) Hex() string {
	return t.colorful().Hex()
}

func (t Tone) String() string { return t.Hex() }

// colorful converts the tone for colorspace math.
func (t Tone) colorful() colorful.Color {
	return colorful.Color{
		R: float64(t.R) / 255,
		G: float64(t.G) / 255,
		B: float64(t.B) / 255,
	}
}

// ParseTone parses a "#rrggbb" (or "rrggbb") hex string into a Tone.
func ParseTone(s string) (Tone, error) {
	s = strings.TrimSpace(s)
	if s != "" && s[0] != '#' {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Tone{}, fmt.Errorf("%w: tone %q: %v", ErrConfig, s, err)
	}
	r, g, b := c.RGB255()
	return Tone{R: r, G: g, B: b}, nil
}

// ToneEntry names one tone of an ordered tone map.
type ToneEntry struct {
	Name string
	Tone Tone
}

// Metric selects the color distance used by the distance-based splits.
type Metric uint8

const (
	// MetricRGB is plain Euclidean distance in RGB space.
	MetricRGB Metric = iota

	// MetricLab is distance in CIE Lab space, scaled onto the RGB
	// distance range so thresholds keep their meaning.
	MetricLab
)

func (m Metric) String() string {
	switch m {
	case MetricRGB:
		return "rgb"
	case MetricLab:
		return "lab"
	}
	return fmt.Sprintf("Metric(%d)", uint8(m))
}

func (m Metric) valid() bool { return m <= MetricLab }

// maxToneDistance is the largest possible RGB distance, between black
// and white: sqrt(3 * 255²).
var maxToneDistance = math.Sqrt(3 * 255 * 255)

// toneMatcher measures pixel distance to one tone under a metric.
// The tone's Lab coordinates are precomputed; matching runs per pixel.
type toneMatcher struct {
	metric     Metric
	r, g, b    float64
	tl, ta, tb float64 // tone in Lab, for MetricLab
}

func newToneMatcher(metric Metric, t Tone) toneMatcher {
	m := toneMatcher{
		metric: metric,
		r:      float64(t.R),
		g:      float64(t.G),
		b:      float64(t.B),
	}
	if metric == MetricLab {
		m.tl, m.ta, m.tb = t.colorful().Lab()
	}
	return m
}

// distance returns the distance from an 8-bit RGB pixel to the tone, on
// the RGB scale [0, maxToneDistance] for either metric.
func (m toneMatcher) distance(r, g, b uint8) float64 {
	if m.metric == MetricLab {
		pl, pa, pb := (Tone{R: r, G: g, B: b}).colorful().Lab()
		dl := pl - m.tl
		da := pa - m.ta
		db := pb - m.tb
		return math.Sqrt(dl*dl+da*da+db*db) * maxToneDistance
	}

	dr := float64(r) - m.r
	dg := float64(g) - m.g
	db := float64(b) - m.b
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
