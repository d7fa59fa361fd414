package seps

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func TestExtractTones(t *testing.T) {
	// Three quarters white, one quarter black: a two-tone request must
	// recover both extremes.
	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if x < 8 && y < 8 {
				c = color.NRGBA{A: 255}
			}
			src.SetNRGBA(x, y, c)
		}
	}

	tones, err := ExtractTones(src, 2)
	if err != nil {
		t.Fatalf("ExtractTones() error = %v", err)
	}
	if len(tones) != 2 {
		t.Fatalf("len(tones) = %d, want 2", len(tones))
	}

	// One tone near each extreme, in either order.
	d0w := rgbDistance(tones[0], toneWhite)
	d1w := rgbDistance(tones[1], toneWhite)
	light, dark := tones[0], tones[1]
	if d1w < d0w {
		light, dark = dark, light
	}
	if d := rgbDistance(light, toneWhite); d > 60 {
		t.Errorf("light tone = %v, want near white (distance %v)", light, d)
	}
	if d := rgbDistance(dark, toneBlack); d > 60 {
		t.Errorf("dark tone = %v, want near black (distance %v)", dark, d)
	}

	// The diversity pass keeps the palette spread out.
	if d := rgbDistance(tones[0], tones[1]); d < 100 {
		t.Errorf("tones %v and %v too close (distance %v)", tones[0], tones[1], d)
	}
}

func TestExtractTonesClampsCount(t *testing.T) {
	// More tones than distinct colors: the palette shrinks instead of
	// failing.
	src := fillNRGBA(2, 2, color.NRGBA{R: 10, G: 200, B: 30, A: 255})

	tones, err := ExtractTones(src, 8)
	if err != nil {
		t.Fatalf("ExtractTones() error = %v", err)
	}
	if len(tones) == 0 || len(tones) > 8 {
		t.Fatalf("len(tones) = %d, want 1..8", len(tones))
	}
}

func TestExtractTonesErrors(t *testing.T) {
	tests := []struct {
		name    string
		img     image.Image
		k       int
		wantErr error
	}{
		{"zero count", fillNRGBA(2, 2, color.NRGBA{A: 255}), 0, ErrConfig},
		{"nil image", nil, 2, ErrConversion},
		{"empty image", image.NewNRGBA(image.Rect(0, 0, 0, 0)), 2, ErrConversion},
		{"fully transparent", image.NewNRGBA(image.Rect(0, 0, 2, 2)), 2, ErrConversion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractTones(tt.img, tt.k)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ExtractTones() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// rgbDistance is plain Euclidean distance between two tones.
func rgbDistance(a, b Tone) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
