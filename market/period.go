package market

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is a lookback ending at the latest bar: "30d", "6wk", "18mo", "2y"
// or "max". The empty period means max.
type Period string

const PeriodMax Period = "max"

var periodUnits = []string{"wk", "mo", "d", "y"}

func (p Period) parse() (int, string, error) {
	s := strings.ToLower(strings.TrimSpace(string(p)))
	if s == "" || s == string(PeriodMax) {
		return 0, "", nil
	}
	for _, unit := range periodUnits {
		if !strings.HasSuffix(s, unit) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(s, unit))
		if err != nil || n <= 0 {
			break
		}
		return n, unit, nil
	}
	return 0, "", fmt.Errorf("unsupported period: %q", string(p))
}

// Validate checks p can be parsed.
func (p Period) Validate() error {
	_, _, err := p.parse()
	return err
}

// Start returns the first instant inside the period ending at end, or the
// zero time for max.
func (p Period) Start(end time.Time) (time.Time, error) {
	n, unit, err := p.parse()
	if err != nil {
		return time.Time{}, err
	}
	switch unit {
	case "d":
		return end.AddDate(0, 0, -n), nil
	case "wk":
		return end.AddDate(0, 0, -7*n), nil
	case "mo":
		return end.AddDate(0, -n, 0), nil
	case "y":
		return end.AddDate(-n, 0, 0), nil
	}
	return time.Time{}, nil
}

// Within returns the bars inside p, measured back from the latest bar.
func (b Bars) Within(p Period) (Bars, error) {
	if b.Len() == 0 {
		return b, nil
	}
	from, err := p.Start(b.Last())
	if err != nil {
		return Bars{}, err
	}
	return b.Since(from), nil
}
