// Package analysis runs the indicator and signal engine over a symbol's bars
// for the long-, mid- and short-term horizons and collects the output in a
// Result keyed by stable names.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/stockanalysis/indicators"
	"github.com/rustyeddy/stockanalysis/internal/id"
	"github.com/rustyeddy/stockanalysis/market"
	"github.com/rustyeddy/stockanalysis/series"
	"github.com/rustyeddy/stockanalysis/signals"
)

// minRuleSamples is how many defined samples every rule reads.
const minRuleSamples = 2

// Analyzer runs analyses with a fixed set of Options. It holds no state
// between runs and is safe for concurrent use.
type Analyzer struct {
	opts Options
	log  zerolog.Logger
	ids  func() string
}

// New returns an Analyzer. Pass zerolog.Nop() to silence it.
func New(opts Options, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		opts: opts,
		log:  log,
		ids:  id.New,
	}
}

// Options returns the parameters the Analyzer was built with.
func (a *Analyzer) Options() Options { return a.opts }

// Run dispatches to the analysis for h.
func (a *Analyzer) Run(h Horizon, bars market.Bars) (*Result, error) {
	switch h {
	case LongTerm:
		return a.LongTerm(bars)
	case MidTerm:
		return a.MidTerm(bars)
	case ShortTerm:
		return a.ShortTerm(bars)
	}
	return nil, fmt.Errorf("unknown horizon %q", h)
}

// RunAll runs every requested horizon concurrently, each on its own copy of
// bars, and returns the results in the requested order. The first failure
// cancels runs that have not started yet.
func (a *Analyzer) RunAll(ctx context.Context, bars market.Bars, horizons ...Horizon) ([]*Result, error) {
	if len(horizons) == 0 {
		horizons = Horizons()
	}

	results := make([]*Result, len(horizons))
	g, ctx := errgroup.WithContext(ctx)
	for i, h := range horizons {
		i, h := i, h
		own := bars.Clone()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := a.Run(h, own)
			if err != nil {
				return fmt.Errorf("%s term: %w", h, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// recent validates bars and keeps the ones inside p.
func recent(bars market.Bars, p market.Period) (market.Bars, error) {
	if err := bars.Validate(); err != nil {
		return market.Bars{}, err
	}
	return bars.Within(p)
}

// start builds the close and volume time series shared by every horizon.
func (a *Analyzer) start(h Horizon, bars market.Bars, closeWindow, volumeWindow int) (*Result, error) {
	closeTS, err := series.NewTimeSeries(bars.Close, closeWindow)
	if err != nil {
		return nil, fmt.Errorf("close: %w", err)
	}
	volumeTS, err := series.NewTimeSeries(bars.Volume, volumeWindow)
	if err != nil {
		return nil, fmt.Errorf("volume: %w", err)
	}

	dates := make([]time.Time, len(bars.Dates))
	copy(dates, bars.Dates)

	r := newResult(a.ids(), bars.Symbol, h, dates, closeTS, volumeTS)
	a.log.Debug().
		Str("run", r.ID).
		Str("symbol", r.Name).
		Str("horizon", string(h)).
		Int("bars", bars.Len()).
		Msg("analysis started")
	return r, nil
}

func (a *Analyzer) finish(r *Result) *Result {
	ev := a.log.Debug().Str("run", r.ID).Str("horizon", string(r.Horizon))
	for _, f := range r.Families() {
		ev = ev.Int(f, int(r.Signals[f].Code))
	}
	ev.Msg("analysis finished")
	return r
}

// indicatorsOn checks s is long enough for every indicator and computes them
// into r.
func indicatorsOn(r *Result, s series.Series, inds ...indicators.Indicator) error {
	for _, ind := range inds {
		if err := indicators.Require(ind, s, minRuleSamples-1); err != nil {
			return err
		}
	}
	computed, err := indicators.ComputeAll(s, inds...)
	if err != nil {
		return err
	}
	for k, v := range computed {
		r.Series[k] = v
	}
	return nil
}

// LongTerm fits a linear trend to the smoothed close and evaluates the
// SMA 100/200 and EMA 50/100 crossovers.
func (a *Analyzer) LongTerm(bars market.Bars) (*Result, error) {
	o := a.opts.LongTerm
	bars, err := recent(bars, o.Period)
	if err != nil {
		return nil, err
	}
	r, err := a.start(LongTerm, bars, o.CloseWindow, o.VolumeWindow)
	if err != nil {
		return nil, err
	}
	closes := r.Close.Values

	m, n, err := series.LinearRegression(r.Close.Smooth)
	if err != nil {
		return nil, err
	}
	r.Scalars[KeySlope] = m
	r.Scalars[KeyIntercept] = n
	r.Series[KeyRegression] = series.Line(m, n, r.Close.Len())

	sma100, sma200 := indicators.NewSMA(100), indicators.NewSMA(200)
	ema50, ema100 := indicators.NewEMA(50), indicators.NewEMA(100)
	if err := indicatorsOn(r, closes, sma100, sma200, ema50, ema100); err != nil {
		return nil, err
	}

	lr, err := a.opts.Thresholds.Slope(m)
	if err != nil {
		return nil, err
	}
	r.Signals[FamilyRegression] = lr

	mavg, err := signals.LongTermCrossover(signals.LongTermInputs{
		SMA100: r.Series[sma100.Name()],
		SMA200: r.Series[sma200.Name()],
		EMA50:  r.Series[ema50.Name()],
		EMA100: r.Series[ema100.Name()],
		Close:  closes,
	})
	if err != nil {
		return nil, err
	}
	r.Signals[FamilyMovingAverages] = mavg

	return a.finish(r), nil
}

// MidTerm evaluates the SMA 50/100 and EMA 20/50 crossovers, the derivative
// decision tree, MACD and RSI.
func (a *Analyzer) MidTerm(bars market.Bars) (*Result, error) {
	o := a.opts.MidTerm
	bars, err := recent(bars, o.Period)
	if err != nil {
		return nil, err
	}
	r, err := a.start(MidTerm, bars, o.CloseWindow, o.VolumeWindow)
	if err != nil {
		return nil, err
	}
	closes, smooth := r.Close.Values, r.Close.Smooth

	sma50, sma100 := indicators.NewSMA(50), indicators.NewSMA(100)
	ema20, ema50 := indicators.NewEMA(20), indicators.NewEMA(50)
	// SMA 50 follows the smoothed close, the others the raw close.
	if err := indicatorsOn(r, smooth, sma50); err != nil {
		return nil, err
	}
	if err := indicatorsOn(r, closes, sma100, ema20, ema50); err != nil {
		return nil, err
	}

	if len(smooth) < o.MACD.Warmup()+minRuleSamples-1 {
		return nil, fmt.Errorf("%s: need %d samples, got %d: %w", o.MACD, o.MACD.Warmup()+minRuleSamples-1, len(smooth), series.ErrInsufficientData)
	}
	macd, err := indicators.MACD(smooth, o.MACD)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.MACD, err)
	}
	r.Series[KeyMACDLine] = macd.Line
	r.Series[KeyMACDSignal] = macd.Signal
	r.Series[KeyMACDHistogram] = macd.Histogram

	if err := indicatorsOn(r, smooth, indicators.NewRSI(o.RSIPeriod)); err != nil {
		return nil, err
	}

	mavg, err := signals.MidTermCrossover(signals.MidTermInputs{
		SMA50:  r.Series[sma50.Name()],
		SMA100: r.Series[sma100.Name()],
		EMA20:  r.Series[ema20.Name()],
		EMA50:  r.Series[ema50.Name()],
		Close:  closes,
	})
	if err != nil {
		return nil, err
	}
	r.Signals[FamilyMovingAverages] = mavg

	dt, err := signals.DecisionTree(r.Close.FirstDerivative.Last(), r.Volume.FirstDerivative.Last())
	if err != nil {
		return nil, err
	}
	r.Signals[FamilyDecisionTree] = dt

	macdSig, err := signals.MACD(macd.Line)
	if err != nil {
		return nil, err
	}
	r.Signals[FamilyMACD] = macdSig

	rsiSig, err := a.opts.Thresholds.RSI(r.Series[KeyRSI])
	if err != nil {
		return nil, err
	}
	r.Signals[FamilyRSI] = rsiSig

	return a.finish(r), nil
}

// ShortTerm runs the decision tree twice: on the raw latest change of close
// and volume, and on the mean of the latest smoothed derivatives. It also
// reports the raw second differences and the ATR.
func (a *Analyzer) ShortTerm(bars market.Bars) (*Result, error) {
	o := a.opts.ShortTerm
	bars, err := recent(bars, o.Period)
	if err != nil {
		return nil, err
	}
	r, err := a.start(ShortTerm, bars, o.Window, o.Window)
	if err != nil {
		return nil, err
	}

	closeDiff, err := series.Diff(r.Close.Values)
	if err != nil {
		return nil, fmt.Errorf("close: %w", err)
	}
	volumeDiff, err := series.Diff(r.Volume.Values)
	if err != nil {
		return nil, fmt.Errorf("volume: %w", err)
	}
	r.Series[KeyCloseDiff] = closeDiff
	r.Series[KeyVolumeDiff] = volumeDiff

	closeDiff2, err := series.Diff(closeDiff)
	if err != nil {
		return nil, fmt.Errorf("close change: %w", err)
	}
	volumeDiff2, err := series.Diff(volumeDiff)
	if err != nil {
		return nil, fmt.Errorf("volume change: %w", err)
	}
	r.Series[KeyCloseDiff2] = closeDiff2
	r.Series[KeyVolumeDiff2] = volumeDiff2

	meanClose, err := series.TailMean(r.Close.FirstDerivative, o.TailSamples)
	if err != nil {
		return nil, fmt.Errorf("close derivative: %w", err)
	}
	meanVolume, err := series.TailMean(r.Volume.FirstDerivative, o.TailSamples)
	if err != nil {
		return nil, fmt.Errorf("volume derivative: %w", err)
	}
	r.Scalars[KeyMeanCloseDerivative] = meanClose
	r.Scalars[KeyMeanVolumeDerivative] = meanVolume

	atr, err := indicators.ATR(bars.High, bars.Low, bars.Close, o.ATRPeriod)
	if err != nil {
		return nil, err
	}
	r.Series[KeyATR] = atr

	dt, err := signals.DecisionTree(closeDiff.Last(), volumeDiff.Last())
	if err != nil {
		return nil, err
	}
	r.Signals[FamilyDecisionTree] = dt

	dtMean, err := signals.DecisionTree(meanClose, meanVolume)
	if err != nil {
		return nil, err
	}
	r.Signals[FamilyDecisionTreeMean] = dtMean

	return a.finish(r), nil
}
