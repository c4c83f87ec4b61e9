package series

import "fmt"

// LowPass smooths s with a centered moving average of at most window samples.
//
// Output i is the mean of s[max(0,i-window/2) : min(n,i+window/2+1)], so the
// window shrinks near both ends instead of padding or shortening the result.
// The output always has len(s) samples.
func LowPass(s Series, window int) (Series, error) {
	if window <= 0 {
		return nil, fmt.Errorf("low pass window must be positive, got %d: %w", window, ErrInvalidParameter)
	}
	n := len(s)
	if n == 0 {
		return nil, fmt.Errorf("low pass on empty series: %w", ErrInsufficientData)
	}

	// prefix[i] holds the sum of s[0:i]
	prefix := make([]float64, n+1)
	for i, v := range s {
		prefix[i+1] = prefix[i] + v
	}

	half := window / 2
	out := make(Series, n)
	for i := 0; i < n; i++ {
		start := max(0, i-half)
		end := min(n, i+half+1)
		out[i] = (prefix[end] - prefix[start]) / float64(end-start)
	}
	return out, nil
}
