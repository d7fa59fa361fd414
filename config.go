package seps

import (
	"fmt"
)

// SplitMode selects how the source image decomposes into ink channels.
type SplitMode uint8

const (
	// SplitProcess converts to CMYK; each plane is one channel.
	SplitProcess SplitMode = iota

	// SplitRGB uses the red, green and blue planes (plus alpha when the
	// source carries one) as channels.
	SplitRGB

	// SplitGray produces a single inverted-luminance channel.
	SplitGray

	// SplitSimProcess builds one channel per configured tone from the
	// color distance of every pixel to that tone.
	SplitSimProcess

	// SplitSpot is the binary variant of SplitSimProcess: a pixel is a
	// member of a tone's channel iff its distance is within threshold.
	SplitSpot
)

func (m SplitMode) String() string {
	switch m {
	case SplitProcess:
		return "process"
	case SplitRGB:
		return "rgb"
	case SplitGray:
		return "gray"
	case SplitSimProcess:
		return "simulatedprocess"
	case SplitSpot:
		return "spot"
	}
	return fmt.Sprintf("SplitMode(%d)", uint8(m))
}

func (m SplitMode) valid() bool { return m <= SplitSpot }

// usesTones reports whether the mode reads the configured tone map.
// The other modes establish their own canonical tone sets.
func (m SplitMode) usesTones() bool {
	return m == SplitSimProcess || m == SplitSpot
}

// ScreenMode selects how sample points are placed on a channel.
type ScreenMode uint8

const (
	// ScreenAM places samples on a rectangular grid rotated by the
	// screen angle. Dot size encodes tone.
	ScreenAM ScreenMode = iota

	// ScreenDither downscales the channel to a coarse grid and
	// binarizes it with Floyd-Steinberg error diffusion. Dot density
	// encodes tone.
	ScreenDither

	// ScreenThreshold emits one full-intensity sample per pixel above
	// half ink. Intended for already-binary or very high resolution
	// input; O(pixels).
	ScreenThreshold
)

func (m ScreenMode) String() string {
	switch m {
	case ScreenAM:
		return "am"
	case ScreenDither:
		return "dither"
	case ScreenThreshold:
		return "threshold"
	}
	return fmt.Sprintf("ScreenMode(%d)", uint8(m))
}

func (m ScreenMode) valid() bool { return m <= ScreenThreshold }

// DotShape selects the mark geometry the renderer paints per sample.
type DotShape uint8

const (
	// DotRound is a filled circle.
	DotRound DotShape = iota

	// DotSquare is a filled square rotated by the screen angle.
	DotSquare

	// DotElliptical is an ellipse whose aspect ratio elongates as
	// intensity falls, rotated by the screen angle.
	DotElliptical
)

func (s DotShape) String() string {
	switch s {
	case DotRound:
		return "round"
	case DotSquare:
		return "square"
	case DotElliptical:
		return "elliptical"
	}
	return fmt.Sprintf("DotShape(%d)", uint8(s))
}

func (s DotShape) valid() bool { return s <= DotElliptical }

// BlendMode selects the law the preview compositor applies per channel.
type BlendMode uint8

const (
	// BlendOverprint darkens the composite multiplicatively with each
	// channel's ink, accumulating overprint effects across channels.
	BlendOverprint BlendMode = iota

	// BlendOverwrite replaces inked pixels with the channel tone; later
	// channels win. The historical preview rule.
	BlendOverwrite
)

func (m BlendMode) String() string {
	switch m {
	case BlendOverprint:
		return "overprint"
	case BlendOverwrite:
		return "overwrite"
	}
	return fmt.Sprintf("BlendMode(%d)", uint8(m))
}

func (m BlendMode) valid() bool { return m <= BlendOverwrite }

// SplitSpec configures channel separation.
type SplitSpec struct {
	// Mode selects the separation rule.
	Mode SplitMode

	// Tones is the ordered tone map for the distance-based modes.
	// Process, RGB and grayscale splits ignore it and establish their
	// own canonical tone sets.
	Tones []ToneEntry

	// Threshold is the maximum color distance for spot membership.
	Threshold float64

	// Substrate is the paper color. Distance-based splits suppress ink
	// near it and the compositor fills the preview with it. Nil means
	// no substrate suppression and a white preview background.
	Substrate *Tone

	// Angles is the ordered screen angle list. Channel i screens at
	// Angles[i % len(Angles)].
	Angles []float64

	// Metric selects the color distance for the distance-based modes.
	Metric Metric
}

// ScreenSpec configures sample placement.
type ScreenSpec struct {
	// Mode selects the screening rule, shared by every channel of a run.
	Mode ScreenMode

	// LPI is the screen ruling in lines per inch.
	LPI float64

	// DPI is the output resolution in dots per inch.
	DPI float64

	// PPI is the source resolution in pixels per inch. Zero defaults
	// to 300. Channels are resampled by DPI/PPI before screening.
	PPI float64

	// Hardmix sharpens each halftone by thresholding it against the
	// channel's true tone after a Gaussian blur.
	Hardmix bool
}

// spacing is the grid pitch in output pixels.
func (s ScreenSpec) spacing() float64 { return s.DPI / s.LPI }

// DotSpec configures mark rendering.
type DotSpec struct {
	// Shape selects the mark geometry.
	Shape DotShape

	// Modulate scales mark size with sample intensity. Off, every mark
	// is full size.
	Modulate bool

	// Gradient fills marks with concentric rings fading outward
	// instead of solid ink.
	Gradient bool

	// Gain in [0,1] uniformly shrinks every mark, compensating dot gain.
	Gain float64
}

// PreSpec configures the optional pre-process stage applied to the
// source before splitting.
type PreSpec struct {
	// Grayscale converts the source to luminance first.
	Grayscale bool

	// Width and Height resize the source to an absolute pixel size.
	// Zero leaves the corresponding dimension alone.
	Width, Height int
}

// Config is the complete immutable recipe for one Generate call. Build
// it (or start from DefaultConfig), then pass it by value; it is
// validated once before any work starts.
type Config struct {
	Split  SplitSpec
	Screen ScreenSpec
	Dot    DotSpec
	Pre    PreSpec

	// Blend selects the preview compositing law.
	Blend BlendMode

	// Preview enables the colorized composite preview.
	Preview bool
}

// Canonical tone values shared by the splits and DefaultConfig.
var (
	toneCyan    = Tone{R: 0, G: 255, B: 255}
	toneMagenta = Tone{R: 255, G: 0, B: 255}
	toneYellow  = Tone{R: 255, G: 255, B: 0}
	toneBlack   = Tone{}
	toneWhite   = Tone{R: 255, G: 255, B: 255}
	toneRed     = Tone{R: 255}
	toneGreen   = Tone{G: 255}
	toneBlue    = Tone{B: 255}
)

// DefaultConfig returns the stock recipe: process (CMYK) split at the
// conventional process angles, amplitude-modulated screening at 55 LPI
// on a 1200 DPI grid, modulated round dots, and an overprint preview.
func DefaultConfig() Config {
	white := toneWhite
	return Config{
		Split: SplitSpec{
			Mode: SplitProcess,
			Tones: []ToneEntry{
				{Name: "C", Tone: toneCyan},
				{Name: "M", Tone: toneMagenta},
				{Name: "Y", Tone: toneYellow},
				{Name: "K", Tone: toneBlack},
			},
			Threshold: 30,
			Substrate: &white,
			Angles:    []float64{15, 75, 0, 45},
		},
		Screen: ScreenSpec{
			Mode: ScreenAM,
			LPI:  55,
			DPI:  1200,
			PPI:  300,
		},
		Dot: DotSpec{
			Shape:    DotRound,
			Modulate: true,
		},
		Blend:   BlendOverprint,
		Preview: true,
	}
}

// withDefaults fills the zero-value gaps a hand-built Config may leave.
func (c Config) withDefaults() Config {
	if c.Screen.PPI == 0 {
		c.Screen.PPI = 300
	}
	if len(c.Split.Angles) == 0 {
		c.Split.Angles = []float64{15, 75, 0, 45}
	}
	return c
}

// validate checks the config once, before any work starts.
func (c Config) validate() error {
	if !c.Split.Mode.valid() {
		return fmt.Errorf("%w: split mode %v", ErrConfig, c.Split.Mode)
	}
	if !c.Screen.Mode.valid() {
		return fmt.Errorf("%w: screen mode %v", ErrConfig, c.Screen.Mode)
	}
	if !c.Dot.Shape.valid() {
		return fmt.Errorf("%w: dot shape %v", ErrConfig, c.Dot.Shape)
	}
	if !c.Blend.valid() {
		return fmt.Errorf("%w: blend mode %v", ErrConfig, c.Blend)
	}
	if !c.Split.Metric.valid() {
		return fmt.Errorf("%w: metric %v", ErrConfig, c.Split.Metric)
	}

	if c.Split.Mode.usesTones() && len(c.Split.Tones) == 0 {
		return fmt.Errorf("%w: %v split needs at least one tone", ErrConfig, c.Split.Mode)
	}
	seen := make(map[string]struct{}, len(c.Split.Tones))
	for _, t := range c.Split.Tones {
		if t.Name == "" {
			return fmt.Errorf("%w: unnamed tone", ErrConfig)
		}
		if _, dup := seen[t.Name]; dup {
			return fmt.Errorf("%w: duplicate tone %q", ErrConfig, t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	if c.Split.Threshold < 0 {
		return fmt.Errorf("%w: negative threshold %v", ErrConfig, c.Split.Threshold)
	}

	if c.Screen.LPI <= 0 || c.Screen.DPI <= 0 {
		return fmt.Errorf("%w: lpi %v, dpi %v", ErrGeometry, c.Screen.LPI, c.Screen.DPI)
	}
	if c.Screen.PPI <= 0 {
		return fmt.Errorf("%w: ppi %v", ErrGeometry, c.Screen.PPI)
	}
	if c.Screen.spacing() <= 0 {
		return fmt.Errorf("%w: spacing %v", ErrGeometry, c.Screen.spacing())
	}

	if c.Dot.Gain < 0 || c.Dot.Gain > 1 {
		return fmt.Errorf("%w: gain %v outside [0,1]", ErrConfig, c.Dot.Gain)
	}

	if c.Pre.Width < 0 || c.Pre.Height < 0 {
		return fmt.Errorf("%w: pre-process size %dx%d", ErrGeometry, c.Pre.Width, c.Pre.Height)
	}

	return nil
}
