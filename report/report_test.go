package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/stockanalysis/analysis"
	"github.com/rustyeddy/stockanalysis/series"
	"github.com/rustyeddy/stockanalysis/signals"
)

func longTermResult() *analysis.Result {
	return &analysis.Result{
		ID:      "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		Name:    "AAPL",
		Horizon: analysis.LongTerm,
		Dates: []time.Time{
			time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		},
		Series: map[string]series.Series{
			analysis.KeyClose:  {170, 172.5},
			analysis.KeyVolume: {1000, 1200},
			"sma100":           {math.NaN(), 160.25},
			"sma200":           {math.NaN(), 150},
			"ema50":            {math.NaN(), 165},
			"ema100":           {math.NaN(), math.NaN()},
		},
		Scalars: map[string]float64{
			analysis.KeySlope:     0.5,
			analysis.KeyIntercept: 100,
		},
		Signals: map[string]signals.Signal{
			analysis.FamilyRegression:     {Code: signals.CodeBuy, Description: "positive slope"},
			analysis.FamilyMovingAverages: {Code: signals.CodeSell, Description: "Death Cross (strong sell)"},
		},
	}
}

func TestTextColor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, longTermResult(), true))
	out := buf.String()

	assert.Contains(t, out, "\033[4mAAPL\033[0m LONG term trading (as of 2024-05-02)")
	assert.Contains(t, out, " - Close  = 172.5\n")
	assert.Contains(t, out, " - Volume = 1200\n")
	assert.Contains(t, out, " \033[92m● Linear regression\033[0m positive slope\n")
	assert.Contains(t, out, " - Slope = 0.5\n")
	assert.Contains(t, out, " \033[91m● Moving averages (SMA, EMA)\033[0m Death Cross (strong sell)\n")
	assert.Contains(t, out, " - SMA 100 = 160.25  EMA 50  = 165\n")
	assert.Contains(t, out, " - SMA 200 = 150  EMA 100 = n/a\n")
}

func TestTextNoColor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, longTermResult(), false))
	out := buf.String()

	assert.NotContains(t, out, "\033[")
	assert.Contains(t, out, "AAPL LONG term trading")
	assert.Contains(t, out, " ● Linear regression [BUY] positive slope\n")
	assert.Contains(t, out, " ● Moving averages (SMA, EMA) [SELL] Death Cross (strong sell)\n")
}

func TestTextShortTerm(t *testing.T) {
	r := &analysis.Result{
		Name:    "AAPL",
		Horizon: analysis.ShortTerm,
		Series: map[string]series.Series{
			analysis.KeyClose:       {10, 12, 11},
			analysis.KeyVolume:      {100, 90, 95},
			analysis.KeyCloseDiff:   {2, -1},
			analysis.KeyVolumeDiff:  {-10, 5},
			analysis.KeyCloseDiff2:  {-3},
			analysis.KeyVolumeDiff2: {15},
			analysis.KeyATR:         {math.NaN(), 1.5, 1.25},
		},
		Scalars: map[string]float64{
			analysis.KeyMeanCloseDerivative:  0.5,
			analysis.KeyMeanVolumeDerivative: -2,
		},
		Signals: map[string]signals.Signal{
			analysis.FamilyDecisionTree:     {Code: signals.CodeSell, Description: "strong downward trend"},
			analysis.FamilyDecisionTreeMean: {Code: signals.CodeHold, Description: "weak trend"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, r, false))
	out := buf.String()

	assert.Contains(t, out, " ● Decision tree (last change) [SELL] strong downward trend\n")
	assert.Contains(t, out, " - Close change dc  = -1\n")
	assert.Contains(t, out, " - Close change d2c  = -3\n")
	assert.Contains(t, out, " - Volume change d2v = 15\n")
	assert.Contains(t, out, " ● Decision tree (smoothed) [HOLD] weak trend\n")
	assert.Contains(t, out, " - Mean volume derivative = -2\n")
	assert.Contains(t, out, " ● Volatility\n - ATR = 1.25\n")
}

func TestTextMissingSignal(t *testing.T) {
	r := longTermResult()
	delete(r.Signals, analysis.FamilyRegression)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, r, false))
	assert.Contains(t, buf.String(), " ● Linear regression n/a\n")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestTextWriteError(t *testing.T) {
	assert.ErrorIs(t, Text(failingWriter{}, longTermResult(), true), assert.AnError)
}

func TestOverall(t *testing.T) {
	tests := []struct {
		name  string
		codes []signals.Code
		want  signals.Code
	}{
		{"empty", nil, signals.CodeHold},
		{"buy majority", []signals.Code{signals.CodeBuy, signals.CodeBuy, signals.CodeSell}, signals.CodeBuy},
		{"sell majority", []signals.Code{signals.CodeSell, signals.CodeSell, signals.CodeHold}, signals.CodeSell},
		{"tie", []signals.Code{signals.CodeBuy, signals.CodeSell}, signals.CodeHold},
		{"hold majority", []signals.Code{signals.CodeHold, signals.CodeHold, signals.CodeBuy}, signals.CodeHold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &analysis.Result{Signals: map[string]signals.Signal{}}
			for i, c := range tt.codes {
				r.Signals[string(rune('a'+i))] = signals.Signal{Code: c}
			}
			assert.Equal(t, tt.want, Overall(r))
		})
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, []*analysis.Result{longTermResult()}))
	assert.Equal(t, "AAPL     long  lr=BUY mavg=SELL overall=HOLD\n", buf.String())
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, []*analysis.Result{longTermResult()}))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)

	r := out[0]
	assert.Equal(t, "AAPL", r["name"])
	assert.Equal(t, "long", r["horizon"])
	assert.Equal(t, "2024-05-02", r["as_of"])
	assert.Equal(t, 172.5, r["close"])
	assert.Equal(t, 160.25, r["sma100"])
	assert.Nil(t, r["ema100"])
	assert.Equal(t, 0.5, r["m"])
	assert.Equal(t, float64(signals.CodeBuy), r["lr_code"])
	assert.Equal(t, "Death Cross (strong sell)", r["mavg_description"])
	assert.Equal(t, float64(signals.CodeHold), r["overall_code"])
	assert.True(t, strings.HasPrefix(buf.String(), "[\n  {"))
}
