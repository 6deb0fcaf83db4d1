package responsive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateScale_DefaultTiers(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name       string
		width      float64
		scale      float64
		breakpoint string
	}{
		{"large desktop", 1920, 1.125, LargeDesktop},
		{"ultra wide", 2560, 1.125, LargeDesktop},
		{"desktop", 1500, 1.0625, Desktop},
		{"tablet", 1200, 1, Tablet},
		{"mobile threshold", 768, 0.875, Mobile},
		{"phone", 375, 0.875, Mobile},
		{"smallest phone", 320, 0.875, Mobile},
		{"zero", 0, 0.875, Mobile},
		{"negative", -50, 0.875, Mobile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.scale, CalculateScale(tt.width, cfg), 1e-9)
			assert.Equal(t, tt.breakpoint, CurrentBreakpoint(tt.width, cfg))
		})
	}
}

func TestCalculateScale_CustomTiers(t *testing.T) {
	cfg := DefaultConfig().Merge(Config{
		Breakpoints: map[string]float64{"mobile": 640, "desktop": 1024},
		Scales:      map[string]float64{"mobile": 0.9, "desktop": 1.1},
	})
	assert.InDelta(t, 1.1, CalculateScale(1920, cfg), 1e-9)
	assert.Equal(t, "desktop", CurrentBreakpoint(1920, cfg))
	assert.InDelta(t, 0.9, CalculateScale(700, cfg), 1e-9)
	assert.InDelta(t, 0.9, CalculateScale(100, cfg), 1e-9)
}

func TestCalculateScale_NamedTiersWithoutMobile(t *testing.T) {
	cfg := Config{
		Breakpoints: map[string]float64{"small": 400, "medium": 800},
		Scales:      map[string]float64{"small": 0.8, "medium": 1.0},
	}
	assert.InDelta(t, 0.8, CalculateScale(500, cfg), 1e-9)
	assert.Equal(t, "small", CurrentBreakpoint(500, cfg))

	// Below every threshold with no mobile scale.
	assert.InDelta(t, 1.0, CalculateScale(100, cfg), 1e-9)
	assert.Equal(t, Mobile, CurrentBreakpoint(100, cfg))
}

func TestCalculateScale_MissingScaleIsOne(t *testing.T) {
	cfg := Config{
		Breakpoints: map[string]float64{"huge": 3000},
		Scales:      map[string]float64{},
	}
	assert.InDelta(t, 1.0, CalculateScale(3200, cfg), 1e-9)
	assert.Equal(t, "huge", CurrentBreakpoint(3200, cfg))
}

func TestCurrentBreakpoint_TiesResolveByName(t *testing.T) {
	cfg := Config{Breakpoints: map[string]float64{"beta": 500, "alpha": 500}}
	for i := 0; i < 20; i++ {
		assert.Equal(t, "alpha", CurrentBreakpoint(600, cfg))
	}
}

func TestMerge_ReplacesMapsWholesale(t *testing.T) {
	base := DefaultConfig()
	merged := base.Merge(Config{Scales: map[string]float64{"mobile": 2}, BaseFontSize: 18})
	assert.Equal(t, map[string]float64{"mobile": 2}, merged.Scales)
	assert.Equal(t, base.Breakpoints, merged.Breakpoints)
	assert.InDelta(t, 18.0, merged.BaseFontSize, 1e-9)
	assert.Equal(t, base.Debounce, merged.Debounce)

	merged.Breakpoints["mobile"] = 1
	assert.InDelta(t, 768.0, base.Breakpoints["mobile"], 1e-9, "merge must not alias the receiver")
}
