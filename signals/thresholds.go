package signals

import "fmt"

// Thresholds holds the constants the rules compare against.
type Thresholds struct {
	// SlopeZero is the absolute tolerance around zero inside which a
	// regression slope counts as flat. It does not scale with price, so
	// assets priced in very different ranges need different values.
	SlopeZero float64 `json:"slope_zero" yaml:"slope_zero" default:"0.01" validate:"gt=0"`

	// RSI bounds are exclusive of 0 so an unset (zero) value can take the
	// default when loaded from a file.
	RSIOverbought float64 `json:"rsi_overbought" yaml:"rsi_overbought" default:"70" validate:"gt=0,lte=100"`
	RSIOversold   float64 `json:"rsi_oversold" yaml:"rsi_oversold" default:"30" validate:"gt=0,lt=100"`
}

// DefaultThresholds returns the standard rule constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SlopeZero:     0.01,
		RSIOverbought: 70,
		RSIOversold:   30,
	}
}

// Validate checks the thresholds are usable.
func (t Thresholds) Validate() error {
	if t.SlopeZero <= 0 {
		return fmt.Errorf("slope_zero must be positive")
	}
	if t.RSIOversold <= 0 || t.RSIOverbought > 100 {
		return fmt.Errorf("rsi thresholds must be within (0, 100]")
	}
	if t.RSIOversold >= t.RSIOverbought {
		return fmt.Errorf("rsi_oversold must be below rsi_overbought")
	}
	return nil
}
