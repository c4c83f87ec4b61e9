// Package market holds the raw price/volume input of an analysis: candles,
// the aligned Bars arrays derived from them, and a CSV loader.
package market

import "time"

// Candle represents one OHLCV bar.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}
