// Package report renders analysis results for people (colored text) and for
// programs (JSON).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/rustyeddy/stockanalysis/analysis"
	"github.com/rustyeddy/stockanalysis/signals"
)

const dateLayout = "2006-01-02"

type line struct {
	label string
	key   string
}

type section struct {
	title  string
	family string
	lines  [][]line
}

var (
	closeVolume = []line{{"Close ", analysis.KeyClose}, {"Volume", analysis.KeyVolume}}

	layouts = map[analysis.Horizon][]section{
		analysis.LongTerm: {
			{"Linear regression", analysis.FamilyRegression, [][]line{
				{{"Slope", analysis.KeySlope}},
			}},
			{"Moving averages (SMA, EMA)", analysis.FamilyMovingAverages, [][]line{
				{{"SMA 100", "sma100"}, {"EMA 50 ", "ema50"}},
				{{"SMA 200", "sma200"}, {"EMA 100", "ema100"}},
			}},
		},
		analysis.MidTerm: {
			{"Moving averages (SMA, EMA)", analysis.FamilyMovingAverages, [][]line{
				{{"SMA 50 ", "sma50"}, {"EMA 20", "ema20"}},
				{{"SMA 100", "sma100"}, {"EMA 50", "ema50"}},
			}},
			{"Decision tree", analysis.FamilyDecisionTree, [][]line{
				{{"Close derivative dc/dt ", analysis.KeyCloseDerivative}},
				{{"Volume derivative dv/dt", analysis.KeyVolumeDerivative}},
			}},
			{"MACD", analysis.FamilyMACD, [][]line{
				{{"MACD line", analysis.KeyMACDLine}},
			}},
			{"RSI", analysis.FamilyRSI, [][]line{
				{{"RSI", analysis.KeyRSI}},
			}},
		},
		analysis.ShortTerm: {
			{"Decision tree (last change)", analysis.FamilyDecisionTree, [][]line{
				{{"Close change dc ", analysis.KeyCloseDiff}},
				{{"Volume change dv", analysis.KeyVolumeDiff}},
				{{"Close change d2c ", analysis.KeyCloseDiff2}},
				{{"Volume change d2v", analysis.KeyVolumeDiff2}},
			}},
			{"Decision tree (smoothed)", analysis.FamilyDecisionTreeMean, [][]line{
				{{"Mean close derivative ", analysis.KeyMeanCloseDerivative}},
				{{"Mean volume derivative", analysis.KeyMeanVolumeDerivative}},
			}},
			{"Volatility", "", [][]line{
				{{"ATR", analysis.KeyATR}},
			}},
		},
	}
)

// Text writes the human readable report of r. With color set, every rule
// heading is tinted by its code (91 sell, 92 buy, 93 hold); without it the
// code is printed as a tag.
func Text(w io.Writer, r *analysis.Result, color bool) error {
	p := &printer{w: w, color: color}

	name := r.Name
	if color {
		name = "\033[4m" + name + "\033[0m"
	}
	p.printf("\n%s %s", name, r.Horizon.Title())
	if n := len(r.Dates); n > 0 {
		p.printf(" (as of %s)", r.Dates[n-1].Format(dateLayout))
	}
	p.printf("\n\n")

	p.values(r, closeVolume[:1])
	p.values(r, closeVolume[1:])
	p.printf("\n")

	for _, s := range layouts[r.Horizon] {
		p.heading(r, s)
		for _, l := range s.lines {
			p.values(r, l)
		}
		p.printf("\n")
	}
	return p.err
}

type printer struct {
	w     io.Writer
	color bool
	err   error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) heading(r *analysis.Result, s section) {
	if s.family == "" {
		p.printf(" ● %s\n", s.title)
		return
	}
	sig, ok := r.Signal(s.family)
	if !ok {
		p.printf(" ● %s n/a\n", s.title)
		return
	}
	if p.color {
		p.printf(" \033[9%dm● %s\033[0m %s\n", int(sig.Code), s.title, sig.Description)
		return
	}
	p.printf(" ● %s [%s] %s\n", s.title, sig.Code, sig.Description)
}

func (p *printer) values(r *analysis.Result, ls []line) {
	p.printf(" -")
	for i, l := range ls {
		if i > 0 {
			p.printf(" ")
		}
		p.printf(" %s = %s", l.label, number(r, l.key))
	}
	p.printf("\n")
}

func number(r *analysis.Result, key string) string {
	v, ok := r.Value(key)
	if !ok || math.IsNaN(v) {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Summary writes one line per result with the action of every rule family.
func Summary(w io.Writer, results []*analysis.Result) error {
	p := &printer{w: w}
	for _, r := range results {
		p.printf("%-8s %-5s", r.Name, r.Horizon)
		for _, f := range r.Families() {
			sig := r.Signals[f]
			p.printf(" %s=%s", f, sig.Code)
		}
		p.printf(" overall=%s\n", Overall(r))
	}
	return p.err
}

// Overall returns the code most rule families agree on. Ties and empty
// results are Hold.
func Overall(r *analysis.Result) signals.Code {
	votes := map[signals.Code]int{}
	for _, s := range r.Signals {
		votes[s.Code]++
	}
	switch {
	case votes[signals.CodeBuy] > votes[signals.CodeSell] && votes[signals.CodeBuy] > votes[signals.CodeHold]:
		return signals.CodeBuy
	case votes[signals.CodeSell] > votes[signals.CodeBuy] && votes[signals.CodeSell] > votes[signals.CodeHold]:
		return signals.CodeSell
	}
	return signals.CodeHold
}

// JSON writes the latest value of every key of each result as an indented
// JSON array. Undefined values are written as null.
func JSON(w io.Writer, results []*analysis.Result) error {
	out := make([]map[string]any, 0, len(results))
	for _, r := range results {
		fields := r.Latest()
		for k, v := range fields {
			if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
				fields[k] = nil
			}
		}
		if n := len(r.Dates); n > 0 {
			fields["as_of"] = r.Dates[n-1].Format(dateLayout)
		}
		fields["overall_code"] = int(Overall(r))
		out = append(out, fields)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
