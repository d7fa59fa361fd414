package seps

import (
	"fmt"
	"strings"
	"sync"
)

// UnknownAliasError reports a lookup for an alias no variant was
// registered under. It unwraps to ErrConfig.
type UnknownAliasError struct {
	Family string // "split", "screen" or "dot"
	Alias  string
}

func (e *UnknownAliasError) Error() string {
	return fmt.Sprintf("seps: unknown %s alias %q", e.Family, e.Alias)
}

func (e *UnknownAliasError) Unwrap() error { return ErrConfig }

// Registry maps human-readable aliases onto the variant enums, one
// namespace per family. The boundary layers (CLI flags, template
// files) resolve names here; Config itself carries resolved enums
// only. Aliases are case-insensitive.
//
// The package-level Resolve and Register functions operate on a
// default registry populated with the canonical alias tables at init.
// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	splits  map[string]SplitMode
	screens map[string]ScreenMode
	dots    map[string]DotShape
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		splits:  make(map[string]SplitMode),
		screens: make(map[string]ScreenMode),
		dots:    make(map[string]DotShape),
	}
}

func aliasKey(alias string) string {
	return strings.ToLower(strings.TrimSpace(alias))
}

// RegisterSplit registers aliases for a split mode. Registering an
// alias twice fails, also across modes.
func (r *Registry) RegisterSplit(mode SplitMode, aliases ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, alias := range aliases {
		key := aliasKey(alias)
		if key == "" {
			return fmt.Errorf("%w: empty split alias", ErrConfig)
		}
		if prev, ok := r.splits[key]; ok {
			return fmt.Errorf("%w: split alias %q already registered for %v", ErrConfig, key, prev)
		}
		r.splits[key] = mode
	}
	return nil
}

// RegisterScreen registers aliases for a screen mode.
func (r *Registry) RegisterScreen(mode ScreenMode, aliases ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, alias := range aliases {
		key := aliasKey(alias)
		if key == "" {
			return fmt.Errorf("%w: empty screen alias", ErrConfig)
		}
		if prev, ok := r.screens[key]; ok {
			return fmt.Errorf("%w: screen alias %q already registered for %v", ErrConfig, key, prev)
		}
		r.screens[key] = mode
	}
	return nil
}

// RegisterDot registers aliases for a dot shape.
func (r *Registry) RegisterDot(shape DotShape, aliases ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, alias := range aliases {
		key := aliasKey(alias)
		if key == "" {
			return fmt.Errorf("%w: empty dot alias", ErrConfig)
		}
		if prev, ok := r.dots[key]; ok {
			return fmt.Errorf("%w: dot alias %q already registered for %v", ErrConfig, key, prev)
		}
		r.dots[key] = shape
	}
	return nil
}

// ResolveSplit returns the split mode registered under the alias.
func (r *Registry) ResolveSplit(alias string) (SplitMode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mode, ok := r.splits[aliasKey(alias)]
	if !ok {
		return 0, &UnknownAliasError{Family: "split", Alias: alias}
	}
	return mode, nil
}

// ResolveScreen returns the screen mode registered under the alias.
func (r *Registry) ResolveScreen(alias string) (ScreenMode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mode, ok := r.screens[aliasKey(alias)]
	if !ok {
		return 0, &UnknownAliasError{Family: "screen", Alias: alias}
	}
	return mode, nil
}

// ResolveDot returns the dot shape registered under the alias.
func (r *Registry) ResolveDot(alias string) (DotShape, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shape, ok := r.dots[aliasKey(alias)]
	if !ok {
		return 0, &UnknownAliasError{Family: "dot", Alias: alias}
	}
	return shape, nil
}

// defaultRegistry holds the canonical alias tables.
var defaultRegistry = func() *Registry {
	r := NewRegistry()

	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	must(r.RegisterSplit(SplitProcess, "process", "cmyk"))
	must(r.RegisterSplit(SplitRGB, "rgb"))
	must(r.RegisterSplit(SplitGray, "gray", "grey", "grayscale", "greyscale", "l"))
	must(r.RegisterSplit(SplitSimProcess,
		"simulatedprocess", "simulated process", "sim", "simprocess", "simp"))
	must(r.RegisterSplit(SplitSpot, "spot"))

	must(r.RegisterScreen(ScreenAM, "am", "amplitude", "amplitude modulation"))
	must(r.RegisterScreen(ScreenDither,
		"dither", "floyd", "floyd-steinberg", "floydsteinberg"))
	must(r.RegisterScreen(ScreenThreshold, "threshold"))

	must(r.RegisterDot(DotRound, "round", "round dot"))
	must(r.RegisterDot(DotSquare, "square", "square dot"))
	must(r.RegisterDot(DotElliptical, "elliptical", "ellipse", "elliptical dot"))

	return r
}()

// DefaultRegistry returns the package-wide registry, populated with
// the canonical alias tables.
func DefaultRegistry() *Registry { return defaultRegistry }

// ResolveSplit resolves a split alias against the default registry.
func ResolveSplit(alias string) (SplitMode, error) {
	return defaultRegistry.ResolveSplit(alias)
}

// ResolveScreen resolves a screen alias against the default registry.
func ResolveScreen(alias string) (ScreenMode, error) {
	return defaultRegistry.ResolveScreen(alias)
}

// ResolveDot resolves a dot alias against the default registry.
func ResolveDot(alias string) (DotShape, error) {
	return defaultRegistry.ResolveDot(alias)
}
