package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/stockanalysis/analysis"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, 100, cfg.LongTerm.CloseWindow)
	assert.Equal(t, 50, cfg.MidTerm.CloseWindow)
	assert.Equal(t, "18mo", string(cfg.MidTerm.Period))
	assert.Equal(t, 0.01, cfg.Signals.SlopeZero)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultMatchesAnalyzerDefaults(t *testing.T) {
	assert.Equal(t, analysis.DefaultOptions(), Default().Options())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "zero close window",
			modify:  func(c *Config) { c.LongTerm.CloseWindow = 0 },
			wantErr: true,
			errMsg:  "long_term.close_window must be at least 1",
		},
		{
			name:    "unsupported period",
			modify:  func(c *Config) { c.ShortTerm.Period = "2 months" },
			wantErr: true,
			errMsg:  "short_term.period: unsupported period",
		},
		{
			name:    "max period",
			modify:  func(c *Config) { c.LongTerm.Period = "max" },
			wantErr: false,
		},
		{
			name:    "zero rsi period",
			modify:  func(c *Config) { c.MidTerm.RSIPeriod = 0 },
			wantErr: true,
			errMsg:  "mid_term.rsi_period must be at least 2",
		},
		{
			name:    "negative macd signal",
			modify:  func(c *Config) { c.MidTerm.MACD.Signal = -1 },
			wantErr: true,
			errMsg:  "mid_term.macd.signal must be at least 1",
		},
		{
			name:    "macd slow not above fast",
			modify:  func(c *Config) { c.MidTerm.MACD.Slow = 12 },
			wantErr: true,
			errMsg:  "mid_term.macd.slow must be greater than mid_term.macd.fast",
		},
		{
			name:    "zero tail samples",
			modify:  func(c *Config) { c.ShortTerm.TailSamples = 0 },
			wantErr: true,
			errMsg:  "short_term.tail_samples must be at least 1",
		},
		{
			name:    "negative slope tolerance",
			modify:  func(c *Config) { c.Signals.SlopeZero = -0.5 },
			wantErr: true,
			errMsg:  "signals.slope_zero must be greater than 0",
		},
		{
			name: "inverted rsi thresholds",
			modify: func(c *Config) {
				c.Signals.RSIOversold = 80
				c.Signals.RSIOverbought = 60
			},
			wantErr: true,
			errMsg:  "rsi_oversold must be below rsi_overbought",
		},
		{
			name:    "zero rsi oversold",
			modify:  func(c *Config) { c.Signals.RSIOversold = 0 },
			wantErr: true,
			errMsg:  "signals.rsi_oversold must be greater than 0",
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
			errMsg:  "log.level must be one of: trace, debug, info, warn, error",
		},
		{
			name:    "unknown log format",
			modify:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
			errMsg:  "log.format must be one of: console, json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.LongTerm.CloseWindow = 0
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "long_term.close_window")
	assert.Contains(t, err.Error(), "log.format")
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
		{"yml format", ".yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.MidTerm.CloseWindow = 30
			cfg.Signals.RSIOverbought = 75
			path := filepath.Join(tmpDir, "test"+tt.ext)

			err := cfg.SaveToFile(path)
			require.NoError(t, err)

			_, err = os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "mid_term:\n  close_window: 20\n  macd:\n    fast: 5\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.MidTerm.CloseWindow)
	assert.Equal(t, 5, cfg.MidTerm.MACD.Fast)
	assert.Equal(t, 26, cfg.MidTerm.MACD.Slow)
	assert.Equal(t, 100, cfg.LongTerm.CloseWindow)
	assert.Equal(t, 30.0, cfg.Signals.RSIOversold)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadTreatsZeroAsUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.yaml")
	data := "signals:\n  rsi_oversold: 0\n  rsi_overbought: 80\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 30.0, cfg.Signals.RSIOversold)
	assert.Equal(t, 80.0, cfg.Signals.RSIOverbought)
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	data := `{"signals": {"slope_zero": 0.5}, "short_term": {"atr_period": 10}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Signals.SlopeZero)
	assert.Equal(t, 10, cfg.ShortTerm.ATRPeriod)
	assert.Equal(t, 10, cfg.Options().ShortTerm.ATRPeriod)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := "log:\n  format: xml\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "garbage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("long_term: [1, 2"), 0644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}
