package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadCSV reads OHLCV candles from a CSV file with rows of the form
//
//	date,open,high,low,close,volume
//
// where date is RFC3339 or 2006-01-02. A header row ("date,..." or
// "time,...") is allowed. Empty rows are skipped; short or malformed rows
// are an error. Rows are kept in file order.
func LoadCSV(path string) (Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV is LoadCSV over an arbitrary reader.
func ReadCSV(r io.Reader) (Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var out Series
	sawFirst := false

	for {
		row, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}

		// Allow a single header row
		if !sawFirst {
			sawFirst = true
			first := strings.ToLower(strings.TrimSpace(row[0]))
			if first == "date" || first == "time" {
				continue
			}
		}

		c, err := parseCandleRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
}

func parseCandleRow(row []string) (Candle, error) {
	if len(row) < 6 {
		return Candle{}, fmt.Errorf("bad row (need date,open,high,low,close,volume): %v", row)
	}

	ts := strings.TrimSpace(row[0])
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		t2, err2 := time.Parse("2006-01-02", ts)
		if err2 != nil {
			return Candle{}, fmt.Errorf("bad date %q: %w", ts, err)
		}
		t = t2
	}

	vals := make([]float64, 5)
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
		if err != nil {
			return Candle{}, fmt.Errorf("bad %s %q: %w", Fields[i], row[i+1], err)
		}
		vals[i] = v
	}

	return Candle{
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
		Time:   t,
	}, nil
}
