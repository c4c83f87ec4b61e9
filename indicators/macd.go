package indicators

import (
	"fmt"

	"github.com/rustyeddy/stockanalysis/series"
)

// MACDParams holds the three MACD periods.
type MACDParams struct {
	Fast   int `json:"fast" yaml:"fast" default:"12" validate:"min=1"`
	Slow   int `json:"slow" yaml:"slow" default:"26" validate:"min=1"`
	Signal int `json:"signal" yaml:"signal" default:"9" validate:"min=1"`
}

// DefaultMACD returns the standard 12/26/9 parameters.
func DefaultMACD() MACDParams {
	return MACDParams{Fast: 12, Slow: 26, Signal: 9}
}

// Warmup returns the number of samples needed before the MACD line is made
// only of computed EMA values.
func (p MACDParams) Warmup() int { return max(p.Fast, p.Slow) }

func (p MACDParams) String() string {
	return fmt.Sprintf("MACD(%d,%d,%d)", p.Fast, p.Slow, p.Signal)
}

// MACDResult holds the three MACD series, each as long as the input.
type MACDResult struct {
	Line      series.Series
	Signal    series.Series
	Histogram series.Series
}

// MACD computes the Moving Average Convergence Divergence of s.
//
//	line      = EMA(s, fast) - EMA(s, slow)
//	signal    = EMA(line, signal)
//	histogram = line - signal
//
// The undefined warm-up region of each EMA is back-filled with its first
// defined value so all three outputs are defined over the full length. This
// is an approximation: the early samples are not real MACD values.
func MACD(s series.Series, p MACDParams) (MACDResult, error) {
	fast, err := backFilledEMA(s, p.Fast)
	if err != nil {
		return MACDResult{}, fmt.Errorf("fast EMA: %w", err)
	}
	slow, err := backFilledEMA(s, p.Slow)
	if err != nil {
		return MACDResult{}, fmt.Errorf("slow EMA: %w", err)
	}

	line, err := series.Sub(fast, slow)
	if err != nil {
		return MACDResult{}, err
	}

	signal, err := backFilledEMA(line, p.Signal)
	if err != nil {
		return MACDResult{}, fmt.Errorf("signal EMA: %w", err)
	}

	hist, err := series.Sub(line, signal)
	if err != nil {
		return MACDResult{}, err
	}

	return MACDResult{Line: line, Signal: signal, Histogram: hist}, nil
}

func backFilledEMA(s series.Series, period int) (series.Series, error) {
	ema, err := EMA(s, period)
	if err != nil {
		return nil, err
	}
	return series.BackFill(ema)
}
