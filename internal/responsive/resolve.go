package responsive

import "sort"

type tier struct {
	name  string
	width float64
}

// tiersDescending orders breakpoints from the widest threshold down.
// Equal thresholds are ordered by name so results do not depend on map order.
func tiersDescending(breakpoints map[string]float64) []tier {
	tiers := make([]tier, 0, len(breakpoints))
	for name, width := range breakpoints {
		tiers = append(tiers, tier{name: name, width: width})
	}
	sort.Slice(tiers, func(i, j int) bool {
		if tiers[i].width == tiers[j].width {
			return tiers[i].name < tiers[j].name
		}
		return tiers[i].width > tiers[j].width
	})
	return tiers
}

// CalculateScale returns the multiplier of the widest breakpoint whose
// threshold is at or below width. Tiers without a scale resolve to 1; when no
// threshold matches the mobile scale (or 1) is used.
func CalculateScale(width float64, cfg Config) float64 {
	for _, t := range tiersDescending(cfg.Breakpoints) {
		if width >= t.width {
			return scaleOr1(cfg.Scales[t.name])
		}
	}
	return scaleOr1(cfg.Scales[Mobile])
}

// CurrentBreakpoint is CalculateScale returning the tier name; "mobile" when nothing matches.
func CurrentBreakpoint(width float64, cfg Config) string {
	for _, t := range tiersDescending(cfg.Breakpoints) {
		if width >= t.width {
			return t.name
		}
	}
	return Mobile
}

func scaleOr1(s float64) float64 {
	if s == 0 {
		return 1
	}
	return s
}
