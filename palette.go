package seps

import (
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// maxPaletteSamples caps the pixel count fed to clustering.
const maxPaletteSamples = 12000

// ExtractTones derives k ink tones from artwork by clustering its
// colors: the image is subsampled, partitioned with k-means into more
// clusters than asked for, and the final palette is picked greedily
// for Lab-space diversity, seeded with the image's dominant color.
// The result is ordered dominant-first and suits a spot or simulated
// process tone map.
func ExtractTones(img image.Image, k int) ([]Tone, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: tone count %d", ErrConfig, k)
	}
	if img == nil {
		return nil, fmt.Errorf("%w: nil source image", ErrConversion)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty source image", ErrConversion)
	}

	// Subsample to keep clustering tractable on large images.
	step := 1
	if b.Dx()*b.Dy() > maxPaletteSamples {
		step = int(math.Sqrt(float64(b.Dx()*b.Dy())/maxPaletteSamples)) + 1
	}

	dataset := make(clusters.Observations, 0, maxPaletteSamples)
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bb, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r) / 65535,
				float64(g) / 65535,
				float64(bb) / 65535,
			})
		}
	}
	if len(dataset) == 0 {
		return nil, fmt.Errorf("%w: fully transparent source", ErrConversion)
	}

	// Over-cluster, then thin out: extra clusters keep minority colors
	// alive through the diversity pass.
	workK := k * 2
	if workK < k+2 {
		workK = k + 2
	}
	if workK > len(dataset) {
		workK = len(dataset)
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, workK)
	if err != nil {
		return nil, fmt.Errorf("extract tones: %w", err)
	}

	// Dominant clusters first, so ties in the diversity pass favor the
	// colors that cover the most area.
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	centers := make([]colorful.Color, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		centers = append(centers, colorful.Color{
			R: c.Center[0], G: c.Center[1], B: c.Center[2],
		}.Clamped())
	}
	if len(centers) == 0 {
		return nil, fmt.Errorf("extract tones: %w: no clusters", ErrConversion)
	}
	if k > len(centers) {
		k = len(centers)
	}

	selected := selectDiverse(centers, k, dominantSeed(img, centers))

	tones := make([]Tone, len(selected))
	for i, c := range selected {
		r, g, bb := c.RGB255()
		tones[i] = Tone{R: r, G: g, B: bb}
	}
	return tones, nil
}

// dominantSeed returns the index of the cluster center closest to the
// image's dominant color, so the palette starts from the tone that
// covers the most area.
func dominantSeed(img image.Image, centers []colorful.Color) int {
	dom, ok := colorful.MakeColor(dominantcolor.Find(img))
	if !ok {
		return 0
	}

	best := 0
	bestDist := math.MaxFloat64
	for i, c := range centers {
		if d := c.DistanceLab(dom); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// selectDiverse picks k centers greedily, starting from the seed and
// repeatedly taking the center farthest (in Lab) from everything
// already picked. Keeps the palette spread out instead of clumped
// around the dominant hue.
func selectDiverse(centers []colorful.Color, k, seed int) []colorful.Color {
	picked := make([]colorful.Color, 0, k)
	taken := make([]bool, len(centers))

	picked = append(picked, centers[seed])
	taken[seed] = true

	for len(picked) < k {
		best := -1
		bestScore := -1.0
		for i, c := range centers {
			if taken[i] {
				continue
			}
			minD := math.MaxFloat64
			for _, p := range picked {
				if d := c.DistanceLab(p); d < minD {
					minD = d
				}
			}
			if minD > bestScore {
				bestScore = minD
				best = i
			}
		}
		if best < 0 {
			break
		}
		taken[best] = true
		picked = append(picked, centers[best])
	}
	return picked
}
