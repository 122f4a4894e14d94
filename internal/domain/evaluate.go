package domain

// FavorableDates returns the date labels whose series contains at least
// one Kp value at or above threshold, in series order. Pure: the same
// series and threshold always yield the same sequence.
func FavorableDates(series *KpSeries, threshold float64) []string {
	var favorable []string
	for _, date := range series.Dates() {
		values, _ := series.Values(date)
		if anyAtOrAbove(values, threshold) {
			favorable = append(favorable, date)
		}
	}
	return favorable
}

func anyAtOrAbove(values []float64, threshold float64) bool {
	for _, v := range values {
		if v >= threshold {
			return true
		}
	}
	return false
}
