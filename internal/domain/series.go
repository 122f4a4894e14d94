package domain

// KpSeries maps forecast date labels to their ordered Kp values while
// preserving the order in which dates first appeared in the report. It
// is rebuilt from scratch every cycle; nothing survives across checks.
type KpSeries struct {
	dates  []string
	values map[string][]float64
}

// NewKpSeries returns an empty series.
func NewKpSeries() *KpSeries {
	return &KpSeries{values: make(map[string][]float64)}
}

// Set stores the values for a date label. A label seen before keeps its
// original position and takes the new values (last write wins).
func (s *KpSeries) Set(date string, values []float64) {
	if _, ok := s.values[date]; !ok {
		s.dates = append(s.dates, date)
	}
	s.values[date] = values
}

// Dates returns the date labels in first-insertion order.
func (s *KpSeries) Dates() []string {
	return s.dates
}

// Values returns the Kp values recorded for a date label.
func (s *KpSeries) Values(date string) ([]float64, bool) {
	v, ok := s.values[date]
	return v, ok
}

// Len returns the number of dates in the series.
func (s *KpSeries) Len() int {
	return len(s.dates)
}

// MaxValue returns the highest Kp value in the series, or 0 when the
// series is empty.
func (s *KpSeries) MaxValue() float64 {
	var maxKp float64
	for _, date := range s.dates {
		for _, v := range s.values[date] {
			if v > maxKp {
				maxKp = v
			}
		}
	}
	return maxKp
}
