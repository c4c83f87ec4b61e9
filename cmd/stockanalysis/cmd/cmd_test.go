package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/stockanalysis/market"
)

func resetFlags() {
	configPath, logLevel, logFormat = "", "", ""
	analyzeHorizon, analyzeName, analyzeSince = "all", "", ""
	analyzeNoColor, analyzeJSON, analyzeSummary = false, false, false
	analyzeDump = ""
	configInitOutput, configValidatePath = "analysis.yaml", ""
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writePrices(t *testing.T, dir, name string, n int) string {
	t.Helper()
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	candles := make([]market.Candle, n)
	for i := range candles {
		x := float64(i)
		c := 50 + 0.25*x + 3*math.Sin(x/6)
		candles[i] = market.Candle{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 5000 + 700*math.Cos(x/4),
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, market.WriteCSV(f, candles))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "stockanalysis version "+version)
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.yaml")

	out, err := execute(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = execute(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "MACD(12,26,9)")
}

func TestConfigValidateRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("signals:\n  rsi_oversold: 90\n"), 0644))

	_, err := execute(t, "config", "validate", "-f", path)
	assert.Error(t, err)
}

func TestAnalyzeJSON(t *testing.T) {
	path := writePrices(t, t.TempDir(), "AAPL.csv", 260)

	out, err := execute(t, "analyze", "--json", path)
	require.NoError(t, err)

	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	assert.Equal(t, "long", results[0]["horizon"])
	assert.Equal(t, "mid", results[1]["horizon"])
	assert.Equal(t, "short", results[2]["horizon"])
	for _, r := range results {
		assert.Equal(t, "AAPL", r["name"])
		assert.Contains(t, r, "dt_code")
	}
}

func TestAnalyzeText(t *testing.T) {
	path := writePrices(t, t.TempDir(), "MSFT.csv", 260)

	out, err := execute(t, "analyze", "--no-color", "--horizon", "mid", "--name", "Microsoft", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "\033[")
	assert.Contains(t, out, "Microsoft MID term trading")
	assert.Contains(t, out, "● RSI")
	assert.NotContains(t, out, "LONG term trading")
}

func TestAnalyzeDump(t *testing.T) {
	dir := t.TempDir()
	path := writePrices(t, dir, "AAPL.csv", 260)
	dumpDir := filepath.Join(dir, "dump")

	_, err := execute(t, "analyze", "--summary", "--since", "2023-02-01", "--dump", dumpDir, path)
	require.NoError(t, err)

	dumped, err := market.LoadCSV(filepath.Join(dumpDir, "AAPL.csv"), "")
	require.NoError(t, err)
	original, err := market.LoadCSV(path, "")
	require.NoError(t, err)

	want := original.Since(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, want.Len(), dumped.Len())
	assert.Equal(t, want.Close, dumped.Close)
	assert.Equal(t, "AAPL", dumped.Symbol)
}

func TestAnalyzeSummary(t *testing.T) {
	dir := t.TempDir()
	a := writePrices(t, dir, "AAA.csv", 120)
	b := writePrices(t, dir, "BBB.csv", 120)

	out, err := execute(t, "analyze", "--summary", "--horizon", "mid,short", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "AAA      mid ")
	assert.Contains(t, out, "BBB      short")
}

func TestAnalyzeErrors(t *testing.T) {
	dir := t.TempDir()
	a := writePrices(t, dir, "AAA.csv", 260)
	b := writePrices(t, dir, "BBB.csv", 260)

	tests := []struct {
		name string
		args []string
	}{
		{"no files", []string{"analyze"}},
		{"unknown horizon", []string{"analyze", "--horizon", "weekly", a}},
		{"name with many files", []string{"analyze", "--name", "X", a, b}},
		{"bad since", []string{"analyze", "--since", "yesterday", a}},
		{"missing file", []string{"analyze", filepath.Join(dir, "missing.csv")}},
		{"too few bars", []string{"analyze", "--since", "2023-08-01", a}},
		{"bad log level", []string{"analyze", "--log-level", "loud", a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestParseHorizons(t *testing.T) {
	hs, err := parseHorizons("all")
	require.NoError(t, err)
	assert.Len(t, hs, 3)

	hs, err = parseHorizons("short,long")
	require.NoError(t, err)
	assert.Equal(t, "short", string(hs[0]))
	assert.Equal(t, "long", string(hs[1]))

	_, err = parseHorizons("long,,mid")
	assert.Error(t, err)
}
