package series

import "fmt"

// LinearRegression fits y = m*x + b by ordinary least squares, where x is the
// sample index 0..k-1 and y the sample values.
func LinearRegression(s Series) (m, b float64, err error) {
	k := len(s)
	if k < 2 {
		return 0, 0, fmt.Errorf("linear regression needs at least 2 samples, got %d: %w", k, ErrDegenerateInput)
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range s {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	kf := float64(k)
	denom := kf*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, 0, fmt.Errorf("linear regression: zero variance in x: %w", ErrDegenerateInput)
	}

	m = (kf*sumXY - sumX*sumY) / denom
	b = (sumY - m*sumX) / kf
	return m, b, nil
}

// Line evaluates m*x + b for x = 0..k-1.
func Line(m, b float64, k int) Series {
	if k <= 0 {
		return Series{}
	}
	out := make(Series, k)
	for i := range out {
		out[i] = m*float64(i) + b
	}
	return out
}
