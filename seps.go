package seps

import (
	"fmt"
	"image"
	"time"

	"github.com/goseps/seps/internal/imaging"
	"github.com/goseps/seps/internal/parallel"
)

// Separation is one finished ink channel: the split plane (ink
// coverage at source resolution), the rendered halftone (white paper,
// dark marks, at output resolution), and the tone and screen angle it
// was produced under.
type Separation struct {
	Name     string
	Tone     Tone
	Angle    float64
	Split    *image.Gray
	Halftone *image.Gray
}

// Result is the output of one Generate call: the ordered separations
// and, when enabled, the colorized composite preview. A Result is
// never mutated after Generate returns; the next call builds a fresh
// one.
type Result struct {
	Separations []Separation
	Preview     *image.NRGBA
}

// Generate converts a decoded source image into print separations
// under the given config. It runs the full pipeline to completion:
// pre-process, split, per-channel screening and dot rendering, and
// compositing. Any stage failure aborts the whole call; no partial
// result is returned.
//
// Generate is pure with respect to its inputs: the source image is
// only read, the config is passed by value, and all returned buffers
// are freshly allocated.
func Generate(img image.Image, cfg Config, opts ...Option) (*Result, error) {
	o := defaultGenOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger

	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	log.Debug("preprocessing", "grayscale", cfg.Pre.Grayscale,
		"width", cfg.Pre.Width, "height", cfg.Pre.Height)
	img = preprocess(img, cfg.Pre)

	log.Debug("splitting", "mode", cfg.Split.Mode)
	chans, err := splitter{spec: cfg.Split}.split(img)
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}

	seps := make([]Separation, len(chans))
	errs := make([]error, len(chans))

	pool := parallel.NewWorkerPool(o.workers)
	defer pool.Close()

	// Row fan-out inside a channel only pays when channels do not
	// already saturate the workers.
	rowWorkers := pool.Workers() / len(chans)
	if rowWorkers < 1 {
		rowWorkers = 1
	}

	tasks := make([]func(), len(chans))
	for i := range chans {
		ch := chans[i]
		angle := cfg.Split.Angles[i%len(cfg.Split.Angles)]

		tasks[i] = func() {
			halftone, err := screenChannel(ch.plane, angle, cfg, rowWorkers)
			if err != nil {
				errs[i] = fmt.Errorf("screen channel %q: %w", ch.name, err)
				return
			}
			log.Debug("screened", "channel", ch.name, "angle", angle,
				"size", fmt.Sprintf("%dx%d", halftone.Rect.Dx(), halftone.Rect.Dy()))

			seps[i] = Separation{
				Name:     ch.name,
				Tone:     ch.tone,
				Angle:    angle,
				Split:    ch.plane,
				Halftone: halftone,
			}
		}
	}
	pool.ExecuteAll(tasks)

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	res := &Result{Separations: seps}

	if cfg.Preview {
		substrate := toneWhite
		if cfg.Split.Substrate != nil {
			substrate = *cfg.Split.Substrate
		}

		log.Debug("compositing", "blend", cfg.Blend, "substrate", substrate)
		preview, err := compositePreview(seps, substrate, cfg.Blend)
		if err != nil {
			return nil, fmt.Errorf("composite: %w", err)
		}
		res.Preview = preview
	}

	log.Info("separations generated",
		"channels", len(seps), "elapsed", time.Since(start))
	return res, nil
}

// preprocess applies the optional pre-process stage: grayscale
// conversion and absolute resize, before splitting.
func preprocess(img image.Image, spec PreSpec) image.Image {
	if img == nil {
		return nil
	}

	if spec.Grayscale {
		img = imaging.ToGray(img)
	}

	w := spec.Width
	h := spec.Height
	if w > 0 || h > 0 {
		if w <= 0 {
			w = img.Bounds().Dx()
		}
		if h <= 0 {
			h = img.Bounds().Dy()
		}
		if w != img.Bounds().Dx() || h != img.Bounds().Dy() {
			img = imaging.ResampleImage(img, w, h)
		}
	}
	return img
}

// screenChannel produces the halftone for one channel plane: resample
// to output resolution, place samples at the assigned angle, render a
// mark per sample onto a white canvas, and optionally sharpen.
func screenChannel(plane *image.Gray, angle float64, cfg Config, rowWorkers int) (*image.Gray, error) {
	sc := screener{spec: cfg.Screen, workers: rowWorkers}

	resized, err := sc.resamplePlane(plane)
	if err != nil {
		return nil, err
	}

	samples, err := sc.samples(resized, angle)
	if err != nil {
		return nil, err
	}

	canvas := imaging.NewPlane(resized.Rect.Dx(), resized.Rect.Dy(), 255)
	rend := renderer{spec: cfg.Dot}
	spacing := cfg.Screen.spacing()
	for _, s := range samples {
		rend.draw(canvas, s, spacing)
	}

	if cfg.Screen.Hardmix {
		canvas = sharpen(resized, canvas, spacing)
	}
	return canvas, nil
}
