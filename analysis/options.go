package analysis

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/stockanalysis/indicators"
	"github.com/rustyeddy/stockanalysis/market"
	"github.com/rustyeddy/stockanalysis/series"
	"github.com/rustyeddy/stockanalysis/signals"
)

// Horizon names one analysis profile.
type Horizon string

const (
	LongTerm  Horizon = "long"
	MidTerm   Horizon = "mid"
	ShortTerm Horizon = "short"
)

// Horizons lists every horizon in report order.
func Horizons() []Horizon { return []Horizon{LongTerm, MidTerm, ShortTerm} }

// ParseHorizon accepts "long", "mid", "short" and their "-term" forms.
func ParseHorizon(s string) (Horizon, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "-term") {
	case "long":
		return LongTerm, nil
	case "mid":
		return MidTerm, nil
	case "short":
		return ShortTerm, nil
	}
	return "", fmt.Errorf("unknown horizon %q (want long, mid or short)", s)
}

// Title is the heading used by reports.
func (h Horizon) Title() string {
	switch h {
	case LongTerm:
		return "LONG term trading"
	case MidTerm:
		return "MID term trading"
	case ShortTerm:
		return "SHORT term trading"
	}
	return string(h)
}

// LongTermOptions configures the long-term run.
type LongTermOptions struct {
	// Period is how much history, back from the latest bar, is analyzed.
	Period       market.Period
	CloseWindow  int
	VolumeWindow int
}

// MidTermOptions configures the mid-term run.
type MidTermOptions struct {
	Period       market.Period
	CloseWindow  int
	VolumeWindow int
	MACD         indicators.MACDParams
	RSIPeriod    int
}

// ShortTermOptions configures the short-term run.
type ShortTermOptions struct {
	Period market.Period
	Window int
	// TailSamples is how many of the latest smoothed derivatives are
	// averaged for the smoothed decision tree.
	TailSamples int
	ATRPeriod   int
}

// Options holds every parameter of an Analyzer.
type Options struct {
	LongTerm   LongTermOptions
	MidTerm    MidTermOptions
	ShortTerm  ShortTermOptions
	Thresholds signals.Thresholds
}

// DefaultOptions returns the standard parameters.
func DefaultOptions() Options {
	return Options{
		LongTerm: LongTermOptions{
			Period:       "2y",
			CloseWindow:  100,
			VolumeWindow: series.DefaultWindow,
		},
		MidTerm: MidTermOptions{
			Period:       "18mo",
			CloseWindow:  50,
			VolumeWindow: series.DefaultWindow,
			MACD:         indicators.DefaultMACD(),
			RSIPeriod:    indicators.DefaultRSIPeriod,
		},
		ShortTerm: ShortTermOptions{
			Period:      "2mo",
			Window:      series.DefaultWindow,
			TailSamples: 3,
			ATRPeriod:   indicators.DefaultATRPeriod,
		},
		Thresholds: signals.DefaultThresholds(),
	}
}
