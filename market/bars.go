package market

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/stockanalysis/series"
)

// ErrMisaligned is returned when the Bars arrays differ in length.
var ErrMisaligned = errors.New("bars arrays are misaligned")

// Bars is a symbol's history as aligned arrays, oldest first.
type Bars struct {
	Symbol string
	Dates  []time.Time
	Open   series.Series
	High   series.Series
	Low    series.Series
	Close  series.Series
	Volume series.Series
}

// NewBars converts candles into aligned arrays.
func NewBars(symbol string, candles []Candle) Bars {
	n := len(candles)
	b := Bars{
		Symbol: symbol,
		Dates:  make([]time.Time, n),
		Open:   make(series.Series, n),
		High:   make(series.Series, n),
		Low:    make(series.Series, n),
		Close:  make(series.Series, n),
		Volume: make(series.Series, n),
	}
	for i, c := range candles {
		b.Dates[i] = c.Time
		b.Open[i] = c.Open
		b.High[i] = c.High
		b.Low[i] = c.Low
		b.Close[i] = c.Close
		b.Volume[i] = c.Volume
	}
	return b
}

// Len returns the number of bars.
func (b Bars) Len() int { return len(b.Close) }

// Validate checks that every array has the same length and that prices and
// volumes are finite.
func (b Bars) Validate() error {
	n := len(b.Close)
	if n == 0 {
		return fmt.Errorf("bars %q: empty: %w", b.Symbol, series.ErrInsufficientData)
	}
	lengths := map[string]int{
		"dates":  len(b.Dates),
		"open":   len(b.Open),
		"high":   len(b.High),
		"low":    len(b.Low),
		"volume": len(b.Volume),
	}
	for name, l := range lengths {
		if l != n {
			return fmt.Errorf("bars %q: %s has %d values, close has %d: %w", b.Symbol, name, l, n, ErrMisaligned)
		}
	}
	for i := 0; i < n; i++ {
		for _, v := range []float64{b.Open[i], b.High[i], b.Low[i], b.Close[i], b.Volume[i]} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("bars %q: non-finite value at row %d", b.Symbol, i)
			}
		}
	}
	return nil
}

// Clone returns a deep copy so concurrent analyses never share arrays.
func (b Bars) Clone() Bars {
	dates := make([]time.Time, len(b.Dates))
	copy(dates, b.Dates)
	return Bars{
		Symbol: b.Symbol,
		Dates:  dates,
		Open:   b.Open.Clone(),
		High:   b.High.Clone(),
		Low:    b.Low.Clone(),
		Close:  b.Close.Clone(),
		Volume: b.Volume.Clone(),
	}
}

// Since returns the bars dated at or after from. A zero from keeps them all.
func (b Bars) Since(from time.Time) Bars {
	if from.IsZero() {
		return b
	}
	i := 0
	for i < len(b.Dates) && b.Dates[i].Before(from) {
		i++
	}
	return Bars{
		Symbol: b.Symbol,
		Dates:  b.Dates[i:],
		Open:   b.Open[i:],
		High:   b.High[i:],
		Low:    b.Low[i:],
		Close:  b.Close[i:],
		Volume: b.Volume[i:],
	}
}

// Candles converts the arrays back into candles, oldest first.
func (b Bars) Candles() []Candle {
	out := make([]Candle, b.Len())
	for i := range out {
		out[i] = Candle{
			Time:   b.Dates[i],
			Open:   b.Open[i],
			High:   b.High[i],
			Low:    b.Low[i],
			Close:  b.Close[i],
			Volume: b.Volume[i],
		}
	}
	return out
}

// Last returns the most recent bar date, or the zero time when empty.
func (b Bars) Last() time.Time {
	if len(b.Dates) == 0 {
		return time.Time{}
	}
	return b.Dates[len(b.Dates)-1]
}
