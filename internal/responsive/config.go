package responsive

import (
	"maps"
	"time"
)

// Tier names used by the default configuration.
const (
	Mobile       = "mobile"
	Tablet       = "tablet"
	Desktop      = "desktop"
	LargeDesktop = "largeDesktop"
	XL           = "xl"
)

const (
	defaultBaseFontSize = 16
	defaultDebounce     = 100 * time.Millisecond
)

// Config maps viewport widths to scale multipliers.
type Config struct {
	// Breakpoints maps a tier name to the minimum width at which it applies.
	Breakpoints map[string]float64 `yaml:"breakpoints,omitempty" json:"breakpoints,omitempty" validate:"omitempty,dive,keys,required,endkeys,gte=0"`
	// Scales maps a tier name to its multiplier.
	Scales       map[string]float64 `yaml:"scales,omitempty" json:"scales,omitempty" validate:"omitempty,dive,keys,required,endkeys,gte=0"`
	BaseFontSize float64            `yaml:"baseFontSize,omitempty" json:"baseFontSize,omitempty" validate:"gte=0"`
	Debounce     time.Duration      `yaml:"debounce,omitempty" json:"debounce,omitempty" validate:"gte=0"`
}

// DefaultConfig returns the built-in tiers.
func DefaultConfig() Config {
	return Config{
		Breakpoints: map[string]float64{
			Mobile:       768,
			Tablet:       1200,
			Desktop:      1440,
			LargeDesktop: 1920,
		},
		Scales: map[string]float64{
			Mobile:       0.875,
			Tablet:       1,
			Desktop:      1.0625,
			LargeDesktop: 1.125,
			XL:           1.25,
		},
		BaseFontSize: defaultBaseFontSize,
		Debounce:     defaultDebounce,
	}
}

// Merge overlays the non-zero fields of partial onto c. Maps are replaced
// wholesale rather than merged key by key.
func (c Config) Merge(partial Config) Config {
	out := Config{
		Breakpoints:  maps.Clone(c.Breakpoints),
		Scales:       maps.Clone(c.Scales),
		BaseFontSize: c.BaseFontSize,
		Debounce:     c.Debounce,
	}
	if partial.Breakpoints != nil {
		out.Breakpoints = maps.Clone(partial.Breakpoints)
	}
	if partial.Scales != nil {
		out.Scales = maps.Clone(partial.Scales)
	}
	if partial.BaseFontSize != 0 {
		out.BaseFontSize = partial.BaseFontSize
	}
	if partial.Debounce != 0 {
		out.Debounce = partial.Debounce
	}
	return out
}

// baseFontSize returns the configured base size or the default.
func (c Config) baseFontSize() float64 {
	if c.BaseFontSize == 0 {
		return defaultBaseFontSize
	}
	return c.BaseFontSize
}

// debounce returns the configured debounce window or the default.
func (c Config) debounce() time.Duration {
	if c.Debounce == 0 {
		return defaultDebounce
	}
	return c.Debounce
}
