package series

import "fmt"

// Gradient returns the discrete first derivative of s with the same length.
//
// Interior samples use the central difference (s[i+1]-s[i-1])/2, the two
// boundary samples use one-sided differences.
func Gradient(s Series) (Series, error) {
	n := len(s)
	if n < 2 {
		return nil, fmt.Errorf("gradient needs at least 2 samples, got %d: %w", n, ErrInsufficientData)
	}

	out := make(Series, n)
	out[0] = s[1] - s[0]
	out[n-1] = s[n-1] - s[n-2]
	for i := 1; i < n-1; i++ {
		out[i] = (s[i+1] - s[i-1]) / 2
	}
	return out, nil
}

// Diff returns the raw first difference s[i+1]-s[i]. Unlike Gradient the
// result is one sample shorter than s.
func Diff(s Series) (Series, error) {
	n := len(s)
	if n < 2 {
		return nil, fmt.Errorf("diff needs at least 2 samples, got %d: %w", n, ErrInsufficientData)
	}

	out := make(Series, n-1)
	for i := 0; i < n-1; i++ {
		out[i] = s[i+1] - s[i]
	}
	return out, nil
}
