package seps

import (
	"errors"
	"math"
	"testing"
)

func TestParseTone(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Tone
		wantErr bool
	}{
		{"with hash", "#ff0080", Tone{R: 255, G: 0, B: 128}, false},
		{"without hash", "00ffff", Tone{R: 0, G: 255, B: 255}, false},
		{"whitespace", "  #000000 ", Tone{}, false},
		{"garbage", "not-a-color", Tone{}, true},
		{"empty", "", Tone{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTone(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTone(%q) = %v, want error", tt.in, got)
				}
				if !errors.Is(err, ErrConfig) {
					t.Errorf("ParseTone(%q) error = %v, want ErrConfig", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTone(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTone(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToneHexRoundTrip(t *testing.T) {
	in := Tone{R: 18, G: 52, B: 86}
	got, err := ParseTone(in.Hex())
	if err != nil {
		t.Fatalf("ParseTone(%q) error = %v", in.Hex(), err)
	}
	if got != in {
		t.Errorf("round trip = %v, want %v", got, in)
	}
}

func TestToneMatcherRGB(t *testing.T) {
	m := newToneMatcher(MetricRGB, Tone{})

	tests := []struct {
		name    string
		r, g, b uint8
		want    float64
	}{
		{"exact match", 0, 0, 0, 0},
		{"white", 255, 255, 255, maxToneDistance},
		{"pure red", 255, 0, 0, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.distance(tt.r, tt.g, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("distance(%d,%d,%d) = %v, want %v", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestToneMatcherLab(t *testing.T) {
	m := newToneMatcher(MetricLab, Tone{})

	if got := m.distance(0, 0, 0); got > 1e-6 {
		t.Errorf("distance to self = %v, want 0", got)
	}

	// Lab distances stay on the RGB scale: black to white is the
	// maximum for both metrics.
	if got := m.distance(255, 255, 255); math.Abs(got-maxToneDistance) > 1 {
		t.Errorf("distance to white = %v, want about %v", got, maxToneDistance)
	}

	near := m.distance(10, 10, 10)
	far := m.distance(200, 200, 200)
	if near >= far {
		t.Errorf("distance(near) = %v >= distance(far) = %v", near, far)
	}
}
