// Package seps converts raster images into print separations: per-channel
// halftoned bitmaps suitable for offset and screen printing, plus an
// optional composite preview.
//
// # Overview
//
// Generation runs three coupled stages. A split decomposes the source
// into named ink channels by color-space or color-distance rules. A
// screen decides, per channel and screen angle, where ink-bearing sample
// points fall: an amplitude-modulated grid, error-diffusion dithering,
// or a raw threshold. A dot renderer converts each sample into a
// rasterized mark whose shape and size encode tone. A compositor then
// overprints every channel over the substrate color to build a preview.
//
// # Quick Start
//
//	import "github.com/goseps/seps"
//
//	cfg := seps.DefaultConfig() // process (CMYK) split, AM screen, round dots
//	res, err := seps.Generate(img, cfg)
//	if err != nil {
//	    return err
//	}
//	for _, sep := range res.Separations {
//	    save(sep.Name, sep.Halftone)
//	}
//	save("preview", res.Preview)
//
// # Configuration
//
// Config is a plain value: build it, hand it to Generate, and it is
// validated once before any work starts. Variant selection (split mode,
// screen mode, dot shape) uses closed enums; human-readable aliases such
// as "cmyk" or "floyd-steinberg" resolve through the Registry at the
// boundary, not inside the engine.
//
// # Buffers
//
// Split planes are ink-coverage maps: 0 means no ink, 255 full ink.
// Halftone canvases are printer-ready monochrome rasters: white paper
// with dark marks. Halftone dimensions differ from split dimensions when
// the dots-per-inch target resamples the plane first.
//
// # Concurrency
//
// Channels are independent between the split and the composite, so
// Generate fans them out across a worker pool, and amplitude-modulated
// and threshold screening additionally sample scan rows in parallel.
// Error diffusion stays strictly sequential within a channel. WithWorkers(1)
// restores fully sequential runs. The package is silent by default; see
// SetLogger and WithLogger.
package seps

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
