// Package signals turns indicator values into categorical trading signals.
//
// Every rule is a pure function of the latest one or two samples of its
// inputs and returns a single Signal. Rules never fall back to a default
// signal on bad input: fewer than two samples or an undefined (NaN) sample
// is reported as an error.
package signals

import (
	"errors"
	"fmt"
	"math"

	"github.com/rustyeddy/stockanalysis/series"
)

var (
	// ErrInsufficientSamples is returned when a rule input holds fewer than
	// the two samples needed to detect a cross.
	ErrInsufficientSamples = errors.New("insufficient samples")

	// ErrUndefinedValue is returned when a sample read by a rule is NaN or
	// infinite, typically an indicator still inside its warm-up region.
	ErrUndefinedValue = errors.New("undefined value")
)

// Code is the three-level priority of a signal.
type Code int

const (
	CodeSell Code = 1 // bearish
	CodeBuy  Code = 2 // bullish
	CodeHold Code = 3 // neutral
)

func (c Code) String() string {
	switch c {
	case CodeBuy:
		return "BUY"
	case CodeSell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// Action is the human readable action for c.
func (c Code) Action() string {
	switch c {
	case CodeBuy:
		return "Buy"
	case CodeSell:
		return "Sell"
	default:
		return "Hold position"
	}
}

// Valid reports whether c is one of the three known codes.
func (c Code) Valid() bool {
	return c == CodeSell || c == CodeBuy || c == CodeHold
}

// Signal is the output of one rule family.
type Signal struct {
	Code        Code   `json:"code"`
	Description string `json:"description"`
}

func (s Signal) String() string {
	return fmt.Sprintf("%s (%s)", s.Code.Action(), s.Description)
}

func buy(desc string) Signal  { return Signal{Code: CodeBuy, Description: desc} }
func sell(desc string) Signal { return Signal{Code: CodeSell, Description: desc} }
func hold(desc string) Signal { return Signal{Code: CodeHold, Description: desc} }

// pair is the previous and the latest sample of a series.
type pair struct {
	prev, cur float64
}

func lastTwo(name string, s series.Series) (pair, error) {
	if len(s) < 2 {
		return pair{}, fmt.Errorf("%s: need 2 samples, got %d: %w", name, len(s), ErrInsufficientSamples)
	}
	p := pair{prev: s[len(s)-2], cur: s[len(s)-1]}
	if !finite(p.prev) || !finite(p.cur) {
		return pair{}, fmt.Errorf("%s: last samples %v, %v: %w", name, p.prev, p.cur, ErrUndefinedValue)
	}
	return p, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// crossedAbove reports a moving from below b to above b.
func crossedAbove(a, b pair) bool {
	return a.prev < b.prev && a.cur > b.cur
}

// crossedBelow reports a moving from above b to below b.
func crossedBelow(a, b pair) bool {
	return a.prev > b.prev && a.cur < b.cur
}
