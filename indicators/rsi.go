package indicators

import (
	"fmt"

	talib "github.com/markcheno/go-talib"

	"github.com/rustyeddy/stockanalysis/series"
)

// DefaultRSIPeriod is the conventional RSI look-back.
const DefaultRSIPeriod = 14

// rsiNeutral is reported for the warm-up region and when there was no
// movement at all.
const rsiNeutral = 50.0

// RSI computes the Wilder-smoothed Relative Strength Index of s.
//
// Average gain and loss are seeded at index period with the plain mean of
// the first period changes and smoothed with
// avg[i] = (avg[i-1]*(period-1) + change[i-1]) / period afterwards.
// A loss-free window gives 100, a gain-free one 0 and a window without any
// change 50. Indices 0..period-1 are set to 50 as a placeholder and must not
// be read as real values. Requires period >= 2 and more than period samples.
func RSI(s series.Series, period int) (series.Series, error) {
	if err := checkPeriod("RSI", period); err != nil {
		return nil, err
	}
	if period < 2 {
		return nil, fmt.Errorf("RSI period must be at least 2, got %d: %w", period, series.ErrInvalidParameter)
	}
	n := len(s)
	if n <= period {
		return nil, fmt.Errorf("RSI(%d): need %d samples, got %d: %w", period, period+1, n, series.ErrInsufficientData)
	}

	out := talib.Rsi(s, period)
	flat := true
	for i := range out {
		flat = flat && s[i] == s[0]
		if i < period || flat {
			out[i] = rsiNeutral
		}
	}
	return out, nil
}

// RelativeStrength is the Indicator form of RSI.
type RelativeStrength struct {
	Period int
}

// NewRSI creates an RSI indicator with the given period.
func NewRSI(period int) RelativeStrength { return RelativeStrength{Period: period} }

func (r RelativeStrength) Name() string { return "rsi" }

// Warmup is period+1: the first computed value sits at index period.
func (r RelativeStrength) Warmup() int { return r.Period + 1 }

func (r RelativeStrength) Compute(s series.Series) (series.Series, error) { return RSI(s, r.Period) }
