package responsive

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrPublish wraps any failure to write a style variable.
var ErrPublish = errors.New("publish style variables")

// RootFontSize is the variable name reported for the root font size in Variables.
const RootFontSize = "font-size"

// StyleSink receives published style values. Implementations own the global style root.
type StyleSink interface {
	SetRootFontSize(value string) error
	SetProperty(name, value string) error
}

// Token is a sizing value expressed in rem at scale 1.
type Token struct {
	Name  string
	Value float64
}

// TokenGroup is a named family of tokens.
type TokenGroup struct {
	Name   string
	Tokens []Token
}

// Tokens returns the tokens published on every cycle, grouped and in publish order.
func Tokens() []TokenGroup {
	return []TokenGroup{
		{Name: "spacing", Tokens: []Token{
			{"--spacing-xs", 0.25},
			{"--spacing-sm", 0.5},
			{"--spacing-md", 1},
			{"--spacing-lg", 1.5},
			{"--spacing-xl", 2},
		}},
		{Name: "borderRadius", Tokens: []Token{
			{"--border-radius-sm", 0.25},
			{"--border-radius-md", 0.375},
			{"--border-radius-lg", 0.5},
		}},
		{Name: "fontSize", Tokens: []Token{
			{"--font-size-sm", 0.875},
			{"--font-size-md", 1},
			{"--font-size-lg", 1.125},
			{"--font-size-xl", 1.25},
		}},
	}
}

// Variable is a computed style value ready to be written.
type Variable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Variables computes the root font size followed by every scaled token.
func Variables(scale float64, cfg Config) []Variable {
	vars := []Variable{{Name: RootFontSize, Value: px(cfg.baseFontSize() * scale)}}
	for _, g := range Tokens() {
		for _, tok := range g.Tokens {
			vars = append(vars, Variable{Name: tok.Name, Value: rem(tok.Value * scale)})
		}
	}
	return vars
}

// Publish writes the root font size and every scaled token to sink.
// The first failed write abandons the cycle.
func Publish(sink StyleSink, scale float64, cfg Config) error {
	if sink == nil {
		return fmt.Errorf("%w: no style root", ErrPublish)
	}
	vars := Variables(scale, cfg)
	if err := sink.SetRootFontSize(vars[0].Value); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPublish, RootFontSize, err)
	}
	for _, v := range vars[1:] {
		if err := sink.SetProperty(v.Name, v.Value); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrPublish, v.Name, err)
		}
	}
	return nil
}

func px(v float64) string  { return formatNumber(v) + "px" }
func rem(v float64) string { return formatNumber(v) + "rem" }

// formatNumber renders the shortest decimal that round-trips, e.g. 20.25 or 0.21875.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
