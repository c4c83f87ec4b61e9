package indicators

import (
	"fmt"
	"math"

	talib "github.com/markcheno/go-talib"

	"github.com/rustyeddy/stockanalysis/series"
)

// SMA calculates the centered Simple Moving Average for the given period.
//
// It is the smoothing filter with window = period, so the window shrinks near
// both ends of the series and the output keeps the input length.
func SMA(s series.Series, period int) (series.Series, error) {
	if err := checkPeriod("SMA", period); err != nil {
		return nil, err
	}
	return series.LowPass(s, period)
}

// EMA calculates the Exponential Moving Average for the given period.
//
// The value at period-1 is seeded with the plain mean of the first period
// samples, later values follow ema[i] = alpha*s[i] + (1-alpha)*ema[i-1] with
// alpha = 2/(period+1). Samples before period-1 are NaN. When s is shorter
// than period the whole output is NaN.
func EMA(s series.Series, period int) (series.Series, error) {
	if err := checkPeriod("EMA", period); err != nil {
		return nil, err
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("EMA on empty series: %w", series.ErrInsufficientData)
	}

	out := undefined(len(s))
	if len(s) < period {
		return out, nil
	}
	ema := talib.Ema(s, period)
	copy(out[period-1:], ema[period-1:])
	return out, nil
}

// undefined returns n NaN samples.
func undefined(n int) series.Series {
	out := make(series.Series, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// SimpleMA is the Indicator form of SMA.
type SimpleMA struct {
	Period int
}

// NewSMA creates a Simple Moving Average indicator with the given period.
func NewSMA(period int) SimpleMA { return SimpleMA{Period: period} }

func (m SimpleMA) Name() string { return fmt.Sprintf("sma%d", m.Period) }

// Warmup is the full period even though the shrinking window yields a value
// for every sample; fewer samples than the period do not describe the
// requested horizon.
func (m SimpleMA) Warmup() int { return m.Period }

func (m SimpleMA) Compute(s series.Series) (series.Series, error) { return SMA(s, m.Period) }

// ExponentialMA is the Indicator form of EMA.
type ExponentialMA struct {
	Period int
}

// NewEMA creates an Exponential Moving Average indicator with the given period.
func NewEMA(period int) ExponentialMA { return ExponentialMA{Period: period} }

func (e ExponentialMA) Name() string { return fmt.Sprintf("ema%d", e.Period) }
func (e ExponentialMA) Warmup() int  { return e.Period }

func (e ExponentialMA) Compute(s series.Series) (series.Series, error) { return EMA(s, e.Period) }
