// Package indicators computes technical analysis indicators over whole
// price or volume series: moving averages (SMA, EMA), MACD, RSI and ATR.
//
// Every function is a pure transform of its input. Outputs have the same
// length as the input; samples that cannot be computed yet are documented per
// indicator (NaN for EMA, a neutral 50 for RSI).
package indicators

import (
	"fmt"

	"github.com/rustyeddy/stockanalysis/series"
)

// Indicator computes one named series from a base series.
// It is deterministic and safe to share between goroutines.
type Indicator interface {
	// Name returns a stable result key like "ema50" or "rsi".
	Name() string

	// Warmup returns how many samples are needed before the latest output
	// value is a real computed value.
	Warmup() int

	// Compute derives the indicator series from s.
	Compute(s series.Series) (series.Series, error)
}

func checkPeriod(what string, period int) error {
	if period <= 0 {
		return fmt.Errorf("%s period must be positive, got %d: %w", what, period, series.ErrInvalidParameter)
	}
	return nil
}

// Require checks that s holds at least ind.Warmup()+extra samples.
// extra is typically 1 so a rule can compare the last two values.
func Require(ind Indicator, s series.Series, extra int) error {
	need := ind.Warmup() + extra
	if len(s) < need {
		return fmt.Errorf("%s: need %d samples, got %d: %w", ind.Name(), need, len(s), series.ErrInsufficientData)
	}
	return nil
}

// ComputeAll evaluates every indicator against s and returns the results
// keyed by Name(). It stops at the first error.
func ComputeAll(s series.Series, inds ...Indicator) (map[string]series.Series, error) {
	out := make(map[string]series.Series, len(inds))
	for _, ind := range inds {
		v, err := ind.Compute(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ind.Name(), err)
		}
		out[ind.Name()] = v
	}
	return out, nil
}
