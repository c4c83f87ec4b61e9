// Package series provides the numeric building blocks used by the indicator
// and signal packages: boundary-aware smoothing, discrete derivatives and a
// least-squares trend fit.
//
// Every function treats its input as read-only and returns a freshly
// allocated result, so a Series can be shared between goroutines as long as
// nobody writes to it.
package series

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInsufficientData is returned when a series is too short for the
	// requested window or period.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidParameter is returned for non-positive windows and periods.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDegenerateInput is returned when a regression cannot be solved.
	ErrDegenerateInput = errors.New("degenerate input")
)

// Series is an ordered sequence of samples indexed 0..n-1.
type Series []float64

// Len returns the number of samples.
func (s Series) Len() int { return len(s) }

// Last returns the most recent sample, or NaN for an empty series.
func (s Series) Last() float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	return s[len(s)-1]
}

// Tail returns the last n samples (or all of them if n > len).
// The returned slice aliases s.
func (s Series) Tail(n int) Series {
	if n >= len(s) {
		return s
	}
	if n <= 0 {
		return Series{}
	}
	return s[len(s)-n:]
}

// Clone returns a copy of s.
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// Defined reports whether every sample is a finite number.
func (s Series) Defined() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sub returns a - b element-wise. Both series must have the same length.
func Sub(a, b Series) (Series, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("sub: length mismatch %d != %d: %w", len(a), len(b), ErrInvalidParameter)
	}
	out := make(Series, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out, nil
}

// Mean returns the arithmetic mean of s.
func Mean(s Series) (float64, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("mean of empty series: %w", ErrInsufficientData)
	}
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s)), nil
}

// TailMean averages the last k samples of s.
func TailMean(s Series, k int) (float64, error) {
	if k <= 0 {
		return 0, fmt.Errorf("tail mean k must be positive, got %d: %w", k, ErrInvalidParameter)
	}
	if len(s) < k {
		return 0, fmt.Errorf("tail mean: need %d samples, got %d: %w", k, len(s), ErrInsufficientData)
	}
	return Mean(s.Tail(k))
}

// BackFill replaces the undefined (NaN) leading region of s with its first
// defined value. Values after the first defined sample are left untouched.
//
// This fabricates data for the warm-up region; it exists so MACD can be
// computed over the full input length.
func BackFill(s Series) (Series, error) {
	first := -1
	for i, v := range s {
		if !math.IsNaN(v) {
			first = i
			break
		}
	}
	if first < 0 {
		return nil, fmt.Errorf("back fill: no defined value in %d samples: %w", len(s), ErrInsufficientData)
	}

	out := s.Clone()
	for i := 0; i < first; i++ {
		out[i] = s[first]
	}
	return out, nil
}
