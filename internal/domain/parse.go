package domain

import (
	"strconv"
	"strings"
)

const (
	// kpSectionMarker announces the Kp block in the 3-day forecast product.
	kpSectionMarker = "Kp Index"

	// forecastWindow is the number of per-date rows following the marker.
	forecastWindow = 3

	// minRowTokens is the smallest token count a per-date row can have:
	// a date label plus the forecast slots.
	minRowTokens = 9

	// maxValuesPerDate caps the slots kept per row, one per 3-hour period.
	maxValuesPerDate = 8
)

// ParseForecast extracts the per-date Kp series from the raw forecast
// text. Parsing is best effort: malformed rows are dropped and a report
// without the marker yields an empty series, never an error.
func ParseForecast(text string) *KpSeries {
	series := NewKpSeries()
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		if !strings.HasPrefix(line, kpSectionMarker) {
			continue
		}
		end := i + 1 + forecastWindow
		if end > len(lines) {
			end = len(lines)
		}
		for _, row := range lines[i+1 : end] {
			date, values, ok := parseForecastRow(row)
			if !ok {
				continue
			}
			series.Set(date, values)
		}
	}

	return series
}

// parseForecastRow splits a candidate row into a date label and its Kp
// values. Rows with fewer than minRowTokens tokens or without a single
// numeric value are rejected.
func parseForecastRow(row string) (string, []float64, bool) {
	tokens := strings.Fields(row)
	if len(tokens) < minRowTokens {
		return "", nil, false
	}

	date := tokens[0]
	values := make([]float64, 0, maxValuesPerDate)
	for _, token := range tokens[1:] {
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			continue
		}
		values = append(values, v)
		if len(values) == maxValuesPerDate {
			break
		}
	}
	if len(values) == 0 {
		return "", nil, false
	}

	return date, values, true
}
