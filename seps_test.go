package seps

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testConfig is a fast recipe for tiny test images: no DPI resampling,
// unit grid pitch.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Screen.LPI = 300
	cfg.Screen.DPI = 300
	cfg.Screen.PPI = 300
	return cfg
}

func TestGenerateWhiteSourceIsInkFree(t *testing.T) {
	// A pure-white RGB source must produce fully white halftones in
	// every channel: white paper takes no ink.
	src := fillNRGBA(2, 2, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	cfg := testConfig()
	cfg.Split.Mode = SplitRGB

	res, err := Generate(src, cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(res.Separations) != 3 {
		t.Fatalf("len(Separations) = %d, want 3", len(res.Separations))
	}

	for _, sep := range res.Separations {
		for i, v := range sep.Halftone.Pix {
			if v != 255 {
				t.Fatalf("channel %s halftone pixel %d = %d, want 255", sep.Name, i, v)
			}
		}
	}

	// And the preview is the untouched substrate.
	if res.Preview == nil {
		t.Fatal("Preview = nil, want substrate-filled buffer")
	}
	for p := 0; p < 4; p++ {
		if res.Preview.Pix[p*4] != 255 || res.Preview.Pix[p*4+1] != 255 || res.Preview.Pix[p*4+2] != 255 {
			t.Fatalf("preview pixel %d not white", p)
		}
	}
}

func TestGenerateSpotBlackPixel(t *testing.T) {
	src := fillNRGBA(1, 1, color.NRGBA{A: 255})

	cfg := testConfig()
	cfg.Split.Mode = SplitSpot
	cfg.Split.Tones = []ToneEntry{{Name: "K", Tone: Tone{}}}
	cfg.Split.Threshold = 10

	res, err := Generate(src, cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(res.Separations) != 1 {
		t.Fatalf("len(Separations) = %d, want 1", len(res.Separations))
	}

	sep := res.Separations[0]
	if sep.Name != "K" {
		t.Errorf("Name = %q, want K", sep.Name)
	}
	if got := sep.Split.GrayAt(0, 0).Y; got != 255 {
		t.Errorf("split mask = %d, want 255 (matched)", got)
	}
}

func TestGenerateAngleAssignment(t *testing.T) {
	// Angles assign round-robin over the configured list in channel
	// order.
	src := fillNRGBA(4, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	cfg := testConfig()
	cfg.Split.Mode = SplitProcess
	cfg.Split.Angles = []float64{15, 75, 0}
	cfg.Preview = false

	res, err := Generate(src, cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	wantAngles := []float64{15, 75, 0, 15}
	wantNames := []string{"C", "M", "Y", "K"}
	for i, sep := range res.Separations {
		if sep.Name != wantNames[i] {
			t.Errorf("separation %d = %q, want %q", i, sep.Name, wantNames[i])
		}
		if sep.Angle != wantAngles[i] {
			t.Errorf("separation %s angle = %v, want %v", sep.Name, sep.Angle, wantAngles[i])
		}
	}
}

func TestGenerateMatchingDimensions(t *testing.T) {
	// All halftones of a run share dimensions, and the preview matches
	// them, even when DPI resampling rescales the planes.
	src := fillNRGBA(10, 7, color.NRGBA{R: 40, G: 90, B: 150, A: 255})

	cfg := testConfig()
	cfg.Screen.DPI = 600
	cfg.Screen.PPI = 300
	cfg.Screen.LPI = 150

	res, err := Generate(src, cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	w := res.Separations[0].Halftone.Rect.Dx()
	h := res.Separations[0].Halftone.Rect.Dy()
	if w != 20 || h != 14 {
		t.Errorf("halftone size = %dx%d, want 20x14", w, h)
	}
	for _, sep := range res.Separations {
		if sep.Halftone.Rect.Dx() != w || sep.Halftone.Rect.Dy() != h {
			t.Errorf("channel %s halftone %dx%d, want %dx%d",
				sep.Name, sep.Halftone.Rect.Dx(), sep.Halftone.Rect.Dy(), w, h)
		}
		if sep.Split.Rect.Dx() != 10 || sep.Split.Rect.Dy() != 7 {
			t.Errorf("channel %s split %dx%d, want source size 10x7",
				sep.Name, sep.Split.Rect.Dx(), sep.Split.Rect.Dy())
		}
	}
	if res.Preview.Rect.Dx() != w || res.Preview.Rect.Dy() != h {
		t.Errorf("preview %dx%d, want halftone size %dx%d",
			res.Preview.Rect.Dx(), res.Preview.Rect.Dy(), w, h)
	}
}

func TestGenerateDeterministicAcrossWorkers(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 24, 18))
	for y := 0; y < 18; y++ {
		for x := 0; x < 24; x++ {
			src.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 10), G: uint8(y * 13), B: uint8((x + y) * 5), A: 255,
			})
		}
	}

	cfg := testConfig()
	cfg.Screen.LPI = 100 // spacing 3

	seq, err := Generate(src, cfg, WithWorkers(1))
	if err != nil {
		t.Fatalf("Generate(workers=1) error = %v", err)
	}
	par, err := Generate(src, cfg, WithWorkers(8))
	if err != nil {
		t.Fatalf("Generate(workers=8) error = %v", err)
	}

	for i := range seq.Separations {
		if diff := cmp.Diff(seq.Separations[i].Halftone.Pix, par.Separations[i].Halftone.Pix); diff != "" {
			t.Errorf("channel %s halftone differs across worker counts:\n%s",
				seq.Separations[i].Name, diff)
		}
	}
	if diff := cmp.Diff(seq.Preview.Pix, par.Preview.Pix); diff != "" {
		t.Errorf("preview differs across worker counts:\n%s", diff)
	}
}

func TestGeneratePreprocess(t *testing.T) {
	src := fillNRGBA(8, 8, color.NRGBA{R: 200, G: 50, B: 50, A: 255})

	cfg := testConfig()
	cfg.Split.Mode = SplitGray
	cfg.Pre = PreSpec{Grayscale: true, Width: 4, Height: 4}
	cfg.Preview = false

	res, err := Generate(src, cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got := res.Separations[0].Split.Rect; got.Dx() != 4 || got.Dy() != 4 {
		t.Errorf("split size = %dx%d, want pre-resized 4x4", got.Dx(), got.Dy())
	}
}

func TestGenerateHardmixIsBinary(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			v := uint8(x * 16)
			src.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}

	cfg := testConfig()
	cfg.Split.Mode = SplitGray
	cfg.Screen.LPI = 75 // spacing 4
	cfg.Screen.Hardmix = true
	cfg.Preview = false

	res, err := Generate(src, cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for i, v := range res.Separations[0].Halftone.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("halftone pixel %d = %d, want binary output", i, v)
		}
	}
}

func TestGenerateDitherScreen(t *testing.T) {
	src := fillNRGBA(16, 16, color.NRGBA{A: 255})

	cfg := testConfig()
	cfg.Split.Mode = SplitGray
	cfg.Screen.Mode = ScreenDither
	cfg.Screen.LPI = 150 // spacing 2
	cfg.Preview = false

	res, err := Generate(src, cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// A solid black source turns every dither cell on; the canvas
	// carries ink.
	inked := 0
	for _, v := range res.Separations[0].Halftone.Pix {
		if v == 0 {
			inked++
		}
	}
	if inked == 0 {
		t.Error("no ink on dithered halftone of a black source")
	}
}

func TestGenerateErrors(t *testing.T) {
	src := fillNRGBA(2, 2, color.NRGBA{A: 255})

	tests := []struct {
		name    string
		img     image.Image
		mutate  func(*Config)
		wantErr error
		stage   string
	}{
		{
			name:    "invalid config",
			img:     src,
			mutate:  func(c *Config) { c.Screen.LPI = -1 },
			wantErr: ErrGeometry,
		},
		{
			name:    "nil image",
			img:     nil,
			mutate:  func(c *Config) {},
			wantErr: ErrConversion,
			stage:   "split",
		},
		{
			name: "resample collapses plane",
			img:  src,
			mutate: func(c *Config) {
				c.Screen.DPI = 30
				c.Screen.PPI = 300
				c.Screen.LPI = 30
			},
			wantErr: ErrGeometry,
			stage:   "screen channel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			_, err := Generate(tt.img, cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Generate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.stage != "" && !strings.Contains(err.Error(), tt.stage) {
				t.Errorf("error %q does not name stage %q", err, tt.stage)
			}
		})
	}
}

func TestGenerateNoPartialResult(t *testing.T) {
	res, err := Generate(nil, testConfig())
	if err == nil {
		t.Fatal("Generate(nil) error = nil")
	}
	if res != nil {
		t.Errorf("Generate(nil) result = %+v, want nil", res)
	}
}
