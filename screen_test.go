package seps

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goseps/seps/internal/imaging"
)

// uniformPlane builds a w by h ink plane filled with v.
func uniformPlane(w, h int, v uint8) *image.Gray {
	return imaging.NewPlane(w, h, v)
}

func TestSampleAMGridCount(t *testing.T) {
	// At angle 0 the grid is (ceil(W/spacing)+1) x (ceil(H/spacing)+1)
	// vertices before rejection; retained samples drop the far edge.
	plane := uniformPlane(8, 8, 128)
	sc := screener{spec: ScreenSpec{Mode: ScreenAM, LPI: 1, DPI: 2, PPI: 2}}

	samples := sc.sampleAM(plane, 0)

	if got, want := len(samples), 16; got != want {
		t.Fatalf("len(samples) = %d, want %d", got, want)
	}
	for _, s := range samples {
		if s.X < 0 || s.X >= 8 || s.Y < 0 || s.Y >= 8 {
			t.Errorf("sample at (%v,%v) outside [0,8)x[0,8)", s.X, s.Y)
		}
		if math.Abs(s.Intensity-128.0/255) > 1e-9 {
			t.Errorf("intensity = %v, want %v", s.Intensity, 128.0/255)
		}
		if s.Angle != 0 {
			t.Errorf("angle = %v, want 0", s.Angle)
		}
	}
}

func TestSampleAMRotatedStaysInBounds(t *testing.T) {
	plane := uniformPlane(32, 17, 200)
	sc := screener{spec: ScreenSpec{Mode: ScreenAM, LPI: 1, DPI: 3, PPI: 3}}

	for _, angle := range []float64{15, 45, 75, -22.5} {
		samples := sc.sampleAM(plane, angle)
		if len(samples) == 0 {
			t.Fatalf("angle %v: no samples", angle)
		}
		for _, s := range samples {
			if s.X < 0 || s.X >= 32 || s.Y < 0 || s.Y >= 17 {
				t.Errorf("angle %v: sample at (%v,%v) outside bounds", angle, s.X, s.Y)
			}
		}
	}
}

func TestSampleAMWorkerCountInvariant(t *testing.T) {
	plane := uniformPlane(40, 25, 90)

	one := screener{spec: ScreenSpec{Mode: ScreenAM, LPI: 1, DPI: 4, PPI: 4}, workers: 1}
	many := screener{spec: ScreenSpec{Mode: ScreenAM, LPI: 1, DPI: 4, PPI: 4}, workers: 8}

	a := one.sampleAM(plane, 15)
	b := many.sampleAM(plane, 15)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("sample mismatch across worker counts (-one +many):\n%s", diff)
	}
}

func TestSampleDitherMonotonicInInk(t *testing.T) {
	sc := screener{spec: ScreenSpec{Mode: ScreenDither, LPI: 1, DPI: 2, PPI: 2}}

	prev := -1
	for _, ink := range []uint8{0, 64, 128, 192, 255} {
		samples, err := sc.sampleDither(uniformPlane(16, 16, ink), 0)
		if err != nil {
			t.Fatalf("ink %d: sampleDither() error = %v", ink, err)
		}
		if len(samples) < prev {
			t.Errorf("ink %d: %d on cells, fewer than %d at lower ink",
				ink, len(samples), prev)
		}
		prev = len(samples)
	}

	// Full ink turns every cell on; no ink turns none.
	full, err := sc.sampleDither(uniformPlane(16, 16, 255), 0)
	if err != nil {
		t.Fatalf("sampleDither() error = %v", err)
	}
	if got, want := len(full), 64; got != want {
		t.Errorf("full ink on cells = %d, want %d", got, want)
	}
	none, err := sc.sampleDither(uniformPlane(16, 16, 0), 0)
	if err != nil {
		t.Fatalf("sampleDither() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("zero ink on cells = %d, want 0", len(none))
	}
}

func TestSampleDitherDeterministic(t *testing.T) {
	plane := uniformPlane(24, 24, 97)
	sc := screener{spec: ScreenSpec{Mode: ScreenDither, LPI: 1, DPI: 3, PPI: 3}}

	a, err := sc.sampleDither(plane, 15)
	if err != nil {
		t.Fatalf("sampleDither() error = %v", err)
	}
	b, err := sc.sampleDither(plane, 15)
	if err != nil {
		t.Fatalf("sampleDither() error = %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("sample mismatch across runs (-first +second):\n%s", diff)
	}
}

func TestSampleDitherGeometryErrors(t *testing.T) {
	tests := []struct {
		name string
		spec ScreenSpec
		w, h int
	}{
		{"sub pixel spacing", ScreenSpec{Mode: ScreenDither, LPI: 10, DPI: 5, PPI: 5}, 16, 16},
		{"grid smaller than one cell", ScreenSpec{Mode: ScreenDither, LPI: 1, DPI: 32, PPI: 32}, 16, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := screener{spec: tt.spec}
			_, err := sc.sampleDither(uniformPlane(tt.w, tt.h, 128), 0)
			if !errors.Is(err, ErrGeometry) {
				t.Fatalf("sampleDither() error = %v, want ErrGeometry", err)
			}
		})
	}
}

func TestSampleThreshold(t *testing.T) {
	plane := uniformPlane(4, 2, 0)
	plane.SetGray(1, 0, color.Gray{Y: 255})
	plane.SetGray(3, 1, color.Gray{Y: 200})

	sc := screener{spec: ScreenSpec{Mode: ScreenThreshold, LPI: 1, DPI: 1, PPI: 1}}
	samples := sc.sampleThreshold(plane, 0)

	want := []Sample{
		{X: 1, Y: 0, Intensity: 1},
		{X: 3, Y: 1, Intensity: 1},
	}
	if diff := cmp.Diff(want, samples); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestSampleThresholdBoundary(t *testing.T) {
	// 127 is not enough; 128 is.
	plane := uniformPlane(2, 1, 0)
	plane.Pix[0] = 127
	plane.Pix[1] = 128

	sc := screener{spec: ScreenSpec{Mode: ScreenThreshold, LPI: 1, DPI: 1, PPI: 1}}
	samples := sc.sampleThreshold(plane, 0)

	if len(samples) != 1 || samples[0].X != 1 {
		t.Fatalf("samples = %+v, want exactly the 128 pixel", samples)
	}
}

func TestSharpen(t *testing.T) {
	// A fully inked plane with a fully white canvas: blur keeps the
	// canvas at 255 everywhere, lightness is 0, so the sum only just
	// reaches 255 and every pixel stays white.
	plane := uniformPlane(8, 8, 255)
	canvas := uniformPlane(8, 8, 255)
	out := sharpen(plane, canvas, 5)
	for i, v := range out.Pix {
		if v != 255 {
			t.Fatalf("pixel %d = %d, want 255", i, v)
		}
	}

	// A fully inked plane with an all-ink canvas goes solid ink.
	out = sharpen(plane, uniformPlane(8, 8, 0), 5)
	for i, v := range out.Pix {
		if v != 0 {
			t.Fatalf("pixel %d = %d, want 0", i, v)
		}
	}

	// Output is strictly binary.
	mixed := uniformPlane(8, 8, 130)
	out = sharpen(mixed, canvas, 2)
	for i, v := range out.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("pixel %d = %d, want 0 or 255", i, v)
		}
	}
}

func TestResamplePlane(t *testing.T) {
	plane := uniformPlane(10, 6, 77)

	tests := []struct {
		name         string
		dpi, ppi     float64
		wantW, wantH int
	}{
		{"identity", 300, 300, 10, 6},
		{"double", 600, 300, 20, 12},
		{"half", 150, 300, 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := screener{spec: ScreenSpec{LPI: 1, DPI: tt.dpi, PPI: tt.ppi}}
			got, err := sc.resamplePlane(plane)
			if err != nil {
				t.Fatalf("resamplePlane() error = %v", err)
			}
			if got.Rect.Dx() != tt.wantW || got.Rect.Dy() != tt.wantH {
				t.Errorf("resampled to %dx%d, want %dx%d",
					got.Rect.Dx(), got.Rect.Dy(), tt.wantW, tt.wantH)
			}
		})
	}

	sc := screener{spec: ScreenSpec{LPI: 1, DPI: 1, PPI: 300}}
	if _, err := sc.resamplePlane(plane); !errors.Is(err, ErrGeometry) {
		t.Errorf("resamplePlane() error = %v, want ErrGeometry", err)
	}
}
