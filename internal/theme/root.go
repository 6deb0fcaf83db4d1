// Package theme holds the global style root that published responsive
// variables land in, and derives terminal styles from it.
package theme

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"
	"sync"
)

// ErrDetached is returned by writes after the root has been detached.
var ErrDetached = errors.New("style root detached")

// ErrBadValue is returned for values without a px or rem unit.
var ErrBadValue = errors.New("unsupported style value")

// cellsPerRem is how many terminal columns one rem occupies.
const cellsPerRem = 2

// Root is the single writer-owned store of style values.
type Root struct {
	mu         sync.RWMutex
	fontSize   string
	properties map[string]string
	detached   bool
	version    uint64
}

// NewRoot returns an empty, attached root.
func NewRoot() *Root {
	return &Root{properties: make(map[string]string)}
}

// SetRootFontSize records the root font size, e.g. "20.25px".
func (r *Root) SetRootFontSize(value string) error {
	if _, err := parseUnit(value, "px"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.detached {
		return ErrDetached
	}
	r.fontSize = value
	r.version++
	return nil
}

// SetProperty records a custom property, e.g. "--spacing-md" = "1rem".
func (r *Root) SetProperty(name, value string) error {
	if !strings.HasPrefix(name, "--") {
		return fmt.Errorf("%w: property %q must start with --", ErrBadValue, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.detached {
		return ErrDetached
	}
	r.properties[name] = value
	r.version++
	return nil
}

// Detach makes every later write fail, e.g. once the UI that renders the root has exited.
func (r *Root) Detach() {
	r.mu.Lock()
	r.detached = true
	r.mu.Unlock()
}

// FontSize returns the raw root font size, empty before the first publish.
func (r *Root) FontSize() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fontSize
}

// Property returns a raw custom property.
func (r *Root) Property(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.properties[name]
	return v, ok
}

// Properties returns a copy of every custom property.
func (r *Root) Properties() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.properties)
}

// Version increments on every successful write.
func (r *Root) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// Rem returns a rem-valued property as a number, or fallback when absent or not in rem.
func (r *Root) Rem(name string, fallback float64) float64 {
	v, ok := r.Property(name)
	if !ok {
		return fallback
	}
	n, err := parseUnit(v, "rem")
	if err != nil {
		return fallback
	}
	return n
}

// Cells converts a rem-valued property to whole terminal columns.
func (r *Root) Cells(name string, fallback int) int {
	rem := r.Rem(name, math.NaN())
	if math.IsNaN(rem) {
		return fallback
	}
	return int(math.Round(rem * cellsPerRem))
}

func parseUnit(value, unit string) (float64, error) {
	num, ok := strings.CutSuffix(value, unit)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not in %s", ErrBadValue, value, unit)
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrBadValue, value, err)
	}
	return n, nil
}
