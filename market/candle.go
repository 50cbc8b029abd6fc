// Package market holds OHLCV bar data and loaders for it.
package market

import (
	"fmt"
	"time"
)

// Candle represents OHLC (Open, High, Low, Close) candlestick data
type Candle struct {
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
	time.Time
}

// Field names recognized in rule expressions and CSV headers.
const (
	FieldOpen   = "open"
	FieldHigh   = "high"
	FieldLow    = "low"
	FieldClose  = "close"
	FieldVolume = "volume"
)

// Fields lists the recognized column names in canonical order.
var Fields = []string{FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume}

// IsField reports whether name is one of the five recognized OHLCV columns.
func IsField(name string) bool {
	switch name {
	case FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume:
		return true
	}
	return false
}

// Series is an ordered run of candles. Index order is authoritative; no
// reordering is ever performed here.
type Series []Candle

// Column extracts the named field as a float slice aligned with the series.
func (s Series) Column(field string) ([]float64, error) {
	out := make([]float64, len(s))
	switch field {
	case FieldOpen:
		for i, c := range s {
			out[i] = c.Open
		}
	case FieldHigh:
		for i, c := range s {
			out[i] = c.High
		}
	case FieldLow:
		for i, c := range s {
			out[i] = c.Low
		}
	case FieldClose:
		for i, c := range s {
			out[i] = c.Close
		}
	case FieldVolume:
		for i, c := range s {
			out[i] = c.Volume
		}
	default:
		return nil, fmt.Errorf("unknown field %q (want one of %v)", field, Fields)
	}
	return out, nil
}
