package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/stockanalysis/analysis"
	"github.com/rustyeddy/stockanalysis/indicators"
	"github.com/rustyeddy/stockanalysis/market"
	"github.com/rustyeddy/stockanalysis/signals"
)

// Config represents the complete analysis configuration
type Config struct {
	LongTerm  LongTermConfig     `json:"long_term" yaml:"long_term"`
	MidTerm   MidTermConfig      `json:"mid_term" yaml:"mid_term"`
	ShortTerm ShortTermConfig    `json:"short_term" yaml:"short_term"`
	Signals   signals.Thresholds `json:"signals" yaml:"signals"`
	Log       LogConfig          `json:"log" yaml:"log"`
}

// LongTermConfig contains the long-term smoothing windows
type LongTermConfig struct {
	Period       market.Period `json:"period" yaml:"period" default:"2y"`
	CloseWindow  int           `json:"close_window" yaml:"close_window" default:"100" validate:"min=1"`
	VolumeWindow int           `json:"volume_window" yaml:"volume_window" default:"3" validate:"min=1"`
}

// MidTermConfig contains the mid-term smoothing windows and oscillator periods
type MidTermConfig struct {
	Period       market.Period         `json:"period" yaml:"period" default:"18mo"`
	CloseWindow  int                   `json:"close_window" yaml:"close_window" default:"50" validate:"min=1"`
	VolumeWindow int                   `json:"volume_window" yaml:"volume_window" default:"3" validate:"min=1"`
	MACD         indicators.MACDParams `json:"macd" yaml:"macd"`
	RSIPeriod    int                   `json:"rsi_period" yaml:"rsi_period" default:"14" validate:"min=2"`
}

// ShortTermConfig contains the short-term parameters
type ShortTermConfig struct {
	Period      market.Period `json:"period" yaml:"period" default:"2mo"`
	Window      int           `json:"window" yaml:"window" default:"3" validate:"min=1"`
	TailSamples int           `json:"tail_samples" yaml:"tail_samples" default:"3" validate:"min=1"`
	ATRPeriod   int           `json:"atr_period" yaml:"atr_period" default:"14" validate:"min=1"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `json:"level" yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
	Format string `json:"format" yaml:"format" default:"console" validate:"oneof=console json"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their file names rather than Go names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoadFromFile loads configuration from a YAML or JSON file. Fields missing
// from the file, or set to zero, take their default values, so no field can
// be configured to 0.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes the configuration as YAML for .yaml/.yml paths and as
// JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = append(errs, errors.New(fieldMessage(fe)))
		}
	}

	for _, p := range []struct {
		name   string
		period market.Period
	}{
		{"long_term.period", c.LongTerm.Period},
		{"mid_term.period", c.MidTerm.Period},
		{"short_term.period", c.ShortTerm.Period},
	} {
		if err := p.period.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.name, err))
		}
	}

	if m := c.MidTerm.MACD; m.Slow <= m.Fast {
		errs = append(errs, errors.New("mid_term.macd.slow must be greater than mid_term.macd.fast"))
	}
	if err := c.Signals.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("signals: %w", err))
	}

	return errors.Join(errs...)
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

// Default returns a configuration holding every default value
func Default() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return cfg
}

// Options converts the configuration into analyzer parameters.
func (c *Config) Options() analysis.Options {
	return analysis.Options{
		LongTerm: analysis.LongTermOptions{
			Period:       c.LongTerm.Period,
			CloseWindow:  c.LongTerm.CloseWindow,
			VolumeWindow: c.LongTerm.VolumeWindow,
		},
		MidTerm: analysis.MidTermOptions{
			Period:       c.MidTerm.Period,
			CloseWindow:  c.MidTerm.CloseWindow,
			VolumeWindow: c.MidTerm.VolumeWindow,
			MACD:         c.MidTerm.MACD,
			RSIPeriod:    c.MidTerm.RSIPeriod,
		},
		ShortTerm: analysis.ShortTermOptions{
			Period:      c.ShortTerm.Period,
			Window:      c.ShortTerm.Window,
			TailSamples: c.ShortTerm.TailSamples,
			ATRPeriod:   c.ShortTerm.ATRPeriod,
		},
		Thresholds: c.Signals,
	}
}
