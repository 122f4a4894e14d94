// Package domain models NOAA Space Weather Prediction Center (SWPC)
// Kp-index forecast data.
//
// # Data Source
//
// Forecasts come from the SWPC 3-day forecast text product, available at
// https://services.swpc.noaa.gov/text/3-day-forecast.txt. The product is a
// loosely structured UTF-8 report; the only contract this service relies
// on is the Kp section:
//
//	Kp Index Forecast 18 Jun - 20 Jun
//	18Jun 2.33 2.00 1.67 3.00 4.33 5.67 4.00 3.33
//	19Jun 1.00 1.33 2.00 2.67 2.33 1.67 1.00 0.67
//	20Jun 3.67 4.00 5.00 6.33 7.67 6.00 4.33 3.00
//
// A line beginning with "Kp Index" announces the section; the three lines
// after it are candidate per-date rows. Each row carries a date label in
// its first whitespace-separated token and up to eight Kp values (one per
// 3-hour synoptic period) in the rest. Rows with fewer than nine tokens
// are discarded. Tokens among the value slots that are not numbers (some
// issues interleave month names with the values) are skipped; a row that
// yields no numeric values contributes nothing.
//
// The report may repeat the section. Every occurrence is scanned, and a
// date label seen again keeps its original position in the series but
// takes the later values.
//
// Date labels are stored verbatim. The upstream format drifts between
// issues ("18Jun", "Jun 18"), so no calendar validation is attempted.
//
// # Kp Index
//
// Kp is the planetary geomagnetic activity index on a 0-9 scale, reported
// in thirds (3.33, 3.67, 4.00). Values of 5 and above indicate storm
// conditions (NOAA scale G1+) under which auroras become visible at
// mid latitudes, which is why 5 is the default alert threshold.
package domain
