package seps

import "errors"

// Sentinel errors for the failure classes generation can hit. Stages
// wrap these with channel and stage context via fmt.Errorf and %w, so
// callers test with errors.Is.
var (
	// ErrConfig indicates missing or invalid configuration fields,
	// including unknown variant aliases.
	ErrConfig = errors.New("seps: invalid configuration")

	// ErrConversion indicates the source image cannot be used for the
	// requested split variant.
	ErrConversion = errors.New("seps: source conversion failed")

	// ErrGeometry indicates non-positive screen geometry: spacing,
	// resolution, or plane dimensions.
	ErrGeometry = errors.New("seps: invalid screen geometry")

	// ErrCompositing indicates the preview compositor was handed
	// mismatched or unusable channel buffers.
	ErrCompositing = errors.New("seps: compositing failed")
)
