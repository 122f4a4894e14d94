// Command preview runs a single fetch-parse-evaluate pass outside the
// daily schedule and prints the result. Useful for checking the parser
// against a saved forecast product or the live feed before deploying a
// threshold change.
//
// Usage:
//
//	go run ./cmd/preview -file internal/domain/testdata/3-day-forecast.txt
//	go run ./cmd/preview -threshold 4
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/aurora-watch/internal/adapter/noaa"
	"github.com/couchcryptid/aurora-watch/internal/config"
	"github.com/couchcryptid/aurora-watch/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	file := flag.String("file", "", "read the forecast from a local file instead of fetching")
	url := flag.String("url", config.DefaultForecastURL, "forecast product URL")
	threshold := flag.Float64("threshold", 5, "Kp threshold for favorable dates")
	flag.Parse()

	text, err := loadForecast(*file, *url)
	if err != nil {
		return err
	}

	series := domain.ParseForecast(text)
	if series.Len() == 0 {
		fmt.Println("no Kp forecast rows found")
		return nil
	}

	for _, date := range series.Dates() {
		values, _ := series.Values(date)
		fmt.Printf("%-8s %v\n", date, values)
	}

	favorable := domain.FavorableDates(series, *threshold)
	if len(favorable) == 0 {
		fmt.Printf("no favorable dates at Kp >= %.2f\n", *threshold)
		return nil
	}
	fmt.Printf("favorable dates at Kp >= %.2f: %s\n", *threshold, strings.Join(favorable, ", "))
	return nil
}

func loadForecast(file, url string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read forecast file: %w", err)
		}
		return string(data), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := noaa.NewClient(url, 30*time.Second, logger)
	return client.FetchForecast(ctx)
}
