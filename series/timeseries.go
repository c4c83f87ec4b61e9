package series

import "fmt"

// DefaultWindow is the smoothing window used for series that do not ask for
// a specific one (volume, short horizons).
const DefaultWindow = 3

// TimeSeries bundles a raw series with its smoothed version and the first
// and second derivatives of the smoothed version. Build it with
// NewTimeSeries and treat it as read-only.
type TimeSeries struct {
	Values           Series
	Smooth           Series
	FirstDerivative  Series
	SecondDerivative Series
	Window           int
}

// NewTimeSeries copies values and derives the smoothed and derivative series.
func NewTimeSeries(values Series, window int) (TimeSeries, error) {
	smooth, err := LowPass(values, window)
	if err != nil {
		return TimeSeries{}, fmt.Errorf("smooth: %w", err)
	}
	first, err := Gradient(smooth)
	if err != nil {
		return TimeSeries{}, fmt.Errorf("first derivative: %w", err)
	}
	second, err := Gradient(first)
	if err != nil {
		return TimeSeries{}, fmt.Errorf("second derivative: %w", err)
	}

	return TimeSeries{
		Values:           values.Clone(),
		Smooth:           smooth,
		FirstDerivative:  first,
		SecondDerivative: second,
		Window:           window,
	}, nil
}

// Len returns the number of samples in the base series.
func (ts TimeSeries) Len() int { return len(ts.Values) }
