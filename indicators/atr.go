package indicators

import (
	"fmt"

	talib "github.com/markcheno/go-talib"

	"github.com/rustyeddy/stockanalysis/series"
)

// DefaultATRPeriod is the conventional ATR look-back.
const DefaultATRPeriod = 14

// ATR calculates the Average True Range for the given period.
//
// The first value sits at index period and is the mean of the first period
// true ranges; later values use Wilder's smoothing. Earlier samples are NaN.
// high, low and close must be aligned and longer than period.
func ATR(high, low, close series.Series, period int) (series.Series, error) {
	if err := checkPeriod("ATR", period); err != nil {
		return nil, err
	}
	n := len(close)
	if len(high) != n || len(low) != n {
		return nil, fmt.Errorf("ATR: misaligned inputs high=%d low=%d close=%d: %w", len(high), len(low), n, series.ErrInvalidParameter)
	}
	if n <= period {
		return nil, fmt.Errorf("ATR(%d): need %d samples, got %d: %w", period, period+1, n, series.ErrInsufficientData)
	}

	out := undefined(n)
	atr := talib.Atr(high, low, close, period)
	copy(out[period:], atr[period:])
	return out, nil
}
