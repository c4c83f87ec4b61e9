package analysis

import (
	"sort"
	"time"

	"github.com/rustyeddy/stockanalysis/series"
	"github.com/rustyeddy/stockanalysis/signals"
)

// Series keys. Moving average keys come from the indicator names
// (sma50, sma100, sma200, ema20, ema50, ema100).
const (
	KeyClose                  = "close"
	KeyCloseSmooth            = "close_smooth"
	KeyCloseDerivative        = "close_derivative"
	KeyCloseSecondDerivative  = "close_second_derivative"
	KeyVolume                 = "volume"
	KeyVolumeSmooth           = "volume_smooth"
	KeyVolumeDerivative       = "volume_derivative"
	KeyVolumeSecondDerivative = "volume_second_derivative"
	KeyRegression             = "regression"
	KeyMACDLine               = "macd_line"
	KeyMACDSignal             = "macd_signal"
	KeyMACDHistogram          = "macd_histogram"
	KeyRSI                    = "rsi"
	KeyATR                    = "atr"

	// raw first differences, one sample shorter than the bars
	KeyCloseDiff  = "close_diff"
	KeyVolumeDiff = "volume_diff"

	// raw second differences, two samples shorter than the bars
	KeyCloseDiff2  = "close_diff2"
	KeyVolumeDiff2 = "volume_diff2"
)

// Scalar keys.
const (
	KeySlope                = "m"
	KeyIntercept            = "n"
	KeyMeanCloseDerivative  = "mean_close_derivative"
	KeyMeanVolumeDerivative = "mean_volume_derivative"
)

// Signal families. Fields flattens each into <family>_code and
// <family>_description.
const (
	FamilyRegression       = "lr"
	FamilyMovingAverages   = "mavg"
	FamilyDecisionTree     = "dt"
	FamilyDecisionTreeMean = "dt_mean"
	FamilyMACD             = "macd"
	FamilyRSI              = "rsi"
)

// Result is everything one analysis run produced. It is built once by an
// Analyzer and never modified afterwards.
type Result struct {
	ID      string
	Name    string
	Horizon Horizon
	Dates   []time.Time
	Close   series.TimeSeries
	Volume  series.TimeSeries
	Series  map[string]series.Series
	Scalars map[string]float64
	Signals map[string]signals.Signal
}

func newResult(id, name string, h Horizon, dates []time.Time, close, volume series.TimeSeries) *Result {
	r := &Result{
		ID:      id,
		Name:    name,
		Horizon: h,
		Dates:   dates,
		Close:   close,
		Volume:  volume,
		Series:  make(map[string]series.Series),
		Scalars: make(map[string]float64),
		Signals: make(map[string]signals.Signal),
	}
	r.Series[KeyClose] = close.Values
	r.Series[KeyCloseSmooth] = close.Smooth
	r.Series[KeyCloseDerivative] = close.FirstDerivative
	r.Series[KeyCloseSecondDerivative] = close.SecondDerivative
	r.Series[KeyVolume] = volume.Values
	r.Series[KeyVolumeSmooth] = volume.Smooth
	r.Series[KeyVolumeDerivative] = volume.FirstDerivative
	r.Series[KeyVolumeSecondDerivative] = volume.SecondDerivative
	return r
}

// Value returns the latest sample of a series key or the value of a scalar
// key.
func (r *Result) Value(key string) (float64, bool) {
	if v, ok := r.Scalars[key]; ok {
		return v, true
	}
	s, ok := r.Series[key]
	if !ok || len(s) == 0 {
		return 0, false
	}
	return s.Last(), true
}

// Signal returns the signal of a family.
func (r *Result) Signal(family string) (signals.Signal, bool) {
	s, ok := r.Signals[family]
	return s, ok
}

// Keys returns the series keys in sorted order.
func (r *Result) Keys() []string {
	keys := make([]string, 0, len(r.Series))
	for k := range r.Series {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Families returns the signal families in sorted order.
func (r *Result) Families() []string {
	keys := make([]string, 0, len(r.Signals))
	for k := range r.Signals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Fields flattens the result into the named structure consumed by reports:
// every series and scalar under its key, and every signal as
// <family>_code and <family>_description.
func (r *Result) Fields() map[string]any {
	out := make(map[string]any, len(r.Series)+len(r.Scalars)+2*len(r.Signals)+3)
	out["id"] = r.ID
	out["name"] = r.Name
	out["horizon"] = string(r.Horizon)
	for k, v := range r.Series {
		out[k] = v
	}
	for k, v := range r.Scalars {
		out[k] = v
	}
	for k, v := range r.Signals {
		out[k+"_code"] = int(v.Code)
		out[k+"_description"] = v.Description
	}
	return out
}

// Latest is Fields with every series reduced to its most recent sample.
func (r *Result) Latest() map[string]any {
	out := r.Fields()
	for k, v := range r.Series {
		out[k] = v.Last()
	}
	return out
}
