package signals

import (
	"fmt"

	"github.com/rustyeddy/stockanalysis/series"
)

const noSignal = "no signal detected"

// Slope classifies a regression slope using the default thresholds.
func Slope(m float64) (Signal, error) { return DefaultThresholds().Slope(m) }

// Slope classifies a regression slope: flat inside [-SlopeZero, SlopeZero),
// bullish above, bearish below.
func (t Thresholds) Slope(m float64) (Signal, error) {
	if !finite(m) {
		return Signal{}, fmt.Errorf("slope %v: %w", m, ErrUndefinedValue)
	}
	switch {
	case -t.SlopeZero <= m && m < t.SlopeZero:
		return hold("no slope"), nil
	case m > 0:
		return buy("positive slope"), nil
	default:
		return sell("negative slope"), nil
	}
}

// crossLine is a moving average a price cross is checked against.
type crossLine struct {
	label  string
	values series.Series
}

// crossover evaluates a Golden/Death Cross of fast over slow first, then a
// price cross against each line in order. The first match wins.
func crossover(close series.Series, fast, slow crossLine, chain []crossLine) (Signal, error) {
	c, err := lastTwo("close", close)
	if err != nil {
		return Signal{}, err
	}
	f, err := lastTwo(fast.label, fast.values)
	if err != nil {
		return Signal{}, err
	}
	s, err := lastTwo(slow.label, slow.values)
	if err != nil {
		return Signal{}, err
	}

	lines := make([]pair, len(chain))
	for i, l := range chain {
		if lines[i], err = lastTwo(l.label, l.values); err != nil {
			return Signal{}, err
		}
	}

	if crossedAbove(f, s) {
		return buy("Golden Cross (strong buy)"), nil
	}
	if crossedBelow(f, s) {
		return sell("Death Cross (strong sell)"), nil
	}

	for i, l := range lines {
		if crossedAbove(c, l) {
			return buy("price crossed above " + chain[i].label), nil
		}
		if crossedBelow(c, l) {
			return sell("price crossed below " + chain[i].label), nil
		}
	}
	return hold(noSignal), nil
}

// LongTermInputs are the series read by LongTermCrossover.
type LongTermInputs struct {
	SMA100 series.Series
	SMA200 series.Series
	EMA50  series.Series
	EMA100 series.Series
	Close  series.Series
}

// LongTermCrossover checks EMA 50 against SMA 200 for a Golden or Death Cross,
// then the close crossing EMA 50, EMA 100, SMA 100 and SMA 200 in that order.
func LongTermCrossover(in LongTermInputs) (Signal, error) {
	sig, err := crossover(in.Close,
		crossLine{"EMA 50", in.EMA50},
		crossLine{"SMA 200", in.SMA200},
		[]crossLine{
			{"EMA 50", in.EMA50},
			{"EMA 100", in.EMA100},
			{"SMA 100", in.SMA100},
			{"SMA 200", in.SMA200},
		})
	if err != nil {
		return Signal{}, fmt.Errorf("long term crossover: %w", err)
	}
	return sig, nil
}

// MidTermInputs are the series read by MidTermCrossover.
type MidTermInputs struct {
	SMA50  series.Series
	SMA100 series.Series
	EMA20  series.Series
	EMA50  series.Series
	Close  series.Series
}

// MidTermCrossover checks EMA 50 against SMA 100 for a Golden or Death Cross,
// then the close crossing EMA 50, EMA 20, SMA 50 and SMA 100 in that order.
func MidTermCrossover(in MidTermInputs) (Signal, error) {
	sig, err := crossover(in.Close,
		crossLine{"EMA 50", in.EMA50},
		crossLine{"SMA 100", in.SMA100},
		[]crossLine{
			{"EMA 50", in.EMA50},
			{"EMA 20", in.EMA20},
			{"SMA 50", in.SMA50},
			{"SMA 100", in.SMA100},
		})
	if err != nil {
		return Signal{}, fmt.Errorf("mid term crossover: %w", err)
	}
	return sig, nil
}

// DecisionTree classifies the sign of the close and volume derivatives.
//
//	close  volume
//	  +      +     buy,  strong trend
//	  +      -     hold, weak trend
//	  -      +     sell, strong downward trend
//	  -      -     hold, weak downward trend
//
// A derivative of exactly zero matches none of the above and holds.
func DecisionTree(closeDerivative, volumeDerivative float64) (Signal, error) {
	if !finite(closeDerivative) || !finite(volumeDerivative) {
		return Signal{}, fmt.Errorf("decision tree (%v, %v): %w", closeDerivative, volumeDerivative, ErrUndefinedValue)
	}
	switch {
	case closeDerivative > 0 && volumeDerivative > 0:
		return buy("strong trend"), nil
	case closeDerivative > 0 && volumeDerivative < 0:
		return hold("weak trend"), nil
	case closeDerivative < 0 && volumeDerivative > 0:
		return sell("strong downward trend"), nil
	case closeDerivative < 0 && volumeDerivative < 0:
		return hold("weak downward trend"), nil
	}
	return hold("flat trend"), nil
}

// MACD reads the last two samples of the MACD line. A zero cross takes
// priority over a continuing move on the same side of zero.
func MACD(line series.Series) (Signal, error) {
	m, err := lastTwo("macd line", line)
	if err != nil {
		return Signal{}, fmt.Errorf("macd: %w", err)
	}
	switch {
	case m.prev < 0 && m.cur > 0:
		return buy("MACD crossed above zero -> bullish momentum"), nil
	case m.cur > 0 && m.cur > m.prev:
		return buy("MACD positive and rising -> bullish trend"), nil
	case m.prev > 0 && m.cur < 0:
		return sell("MACD crossed below zero -> bearish momentum"), nil
	case m.cur < 0 && m.cur < m.prev:
		return sell("MACD negative and falling -> bearish trend"), nil
	}
	return hold("neutral momentum"), nil
}

// RSI classifies the latest RSI sample using the default thresholds.
func RSI(rsi series.Series) (Signal, error) { return DefaultThresholds().RSI(rsi) }

// RSI classifies the latest RSI sample as overbought, oversold or neutral.
func (t Thresholds) RSI(rsi series.Series) (Signal, error) {
	r, err := lastTwo("rsi", rsi)
	if err != nil {
		return Signal{}, fmt.Errorf("rsi: %w", err)
	}
	switch {
	case r.cur > t.RSIOverbought:
		return sell(fmt.Sprintf("RSI > %g -> Overbought, possible sell signal", t.RSIOverbought)), nil
	case r.cur < t.RSIOversold:
		return buy(fmt.Sprintf("RSI < %g -> Oversold, possible buy signal", t.RSIOversold)), nil
	}
	return hold("RSI neutral"), nil
}
