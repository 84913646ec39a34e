// Package main provides a performance benchmarking tool for the deskmetrics
// aggregation engine. It generates synthetic ticket feeds of increasing size,
// runs each pipeline stage multiple times, treating the first run as cold and
// averaging the rest as warm, and writes CSV output for performance analysis.
//
// Usage: go run benchmark/main.go
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/drojas/deskmetrics/core"
	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/schema"
)

// BenchmarkResult holds the result of one benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	FeedSize int
	Stage    string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	FeedSizes []int
	Runs      int
	Seed      int64
}

func main() {
	config := BenchmarkConfig{
		FeedSizes: []int{1000, 10000, 100000, 500000},
		Runs:      5,
		Seed:      42,
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// benchConfig builds the aggregation configuration used for every run.
func benchConfig() *contract.Config {
	now := time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC)
	return &contract.Config{
		Now:                  now,
		Limit:                10,
		ReportYear:           2025,
		ReportMonth:          time.October,
		Technicians:          append([]string(nil), schema.DefaultTechnicians...),
		Aliases:              schema.DefaultAliases,
		Weeks:                schema.DefaultWeekTable(),
		Months:               schema.DefaultMonthTable(2025, time.October),
		ExpectedMonthlyTotal: contract.DefaultExpectedMonthlyTotal,
		Headcount:            contract.DefaultHeadcount,
		WorkdaysPerWeek:      contract.DefaultWorkdaysPerWeek,
	}
}

// generateTickets builds a synthetic feed with realistic status, date, and
// survey distributions.
func generateTickets(n int, seed int64) []schema.Ticket {
	rng := rand.New(rand.NewSource(seed))
	statuses := []string{
		schema.StatusOpen, schema.StatusClosed, schema.StatusResolved,
		schema.StatusCancelled, schema.StatusInProgress, schema.StatusPending,
	}
	locations := []string{"Tienda Centro", "Tienda Norte", "Tienda Sur", "Oficina Principal"}
	clients := []string{"Acme", "Globex", "Initech"}

	tickets := make([]schema.Ticket, 0, n)
	base := time.Date(2025, time.October, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		tech := schema.DefaultTechnicians[rng.Intn(len(schema.DefaultTechnicians))]
		date := base.Add(time.Duration(rng.Intn(31*24*60)) * time.Minute)
		survey := ""
		if rng.Intn(100) < 30 {
			survey = fmt.Sprintf("%d", 1+rng.Intn(5))
		}
		tickets = append(tickets, schema.Ticket{
			No:       fmt.Sprintf("%06d", i+1),
			Date:     date.Format("2006-01-02 15:04:05"),
			Status:   statuses[rng.Intn(len(statuses))],
			Tech:     tech,
			Client:   clients[rng.Intn(len(clients))],
			Location: locations[rng.Intn(len(locations))],
			Subject:  fmt.Sprintf("Incidencia sintética %d", i+1),
			Survey:   survey,
		})
	}
	return tickets
}

// runBenchmarks executes all benchmark stages across configured feed sizes.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	cfg := benchConfig()
	roster := core.NewRoster(cfg.Technicians, cfg.Aliases)

	fmt.Printf("Starting benchmark: %d feed sizes, %d runs each\n", len(config.FeedSizes), config.Runs)

	for _, size := range config.FeedSizes {
		fmt.Printf("Benchmarking feed of %d tickets\n", size)
		tickets := generateTickets(size, config.Seed)

		stages := []struct {
			name string
			fn   func()
		}{
			{"aggregate", func() { core.AggregateTickets(tickets, roster, cfg) }},
			{"board", func() { core.BuildBoardStats(tickets) }},
			{"unresolved", func() { core.TopUnresolved(tickets, cfg.Limit, cfg.Now) }},
		}
		for _, stage := range stages {
			results = append(results, runStage(size, stage.name, stage.fn, config.Runs))
		}
	}

	return results
}

// runStage times one pipeline stage, separating the cold run from warm runs.
func runStage(size int, name string, fn func(), runs int) BenchmarkResult {
	times := make([]float64, 0, runs)
	for i := 0; i < runs; i++ {
		start := time.Now()
		fn()
		times = append(times, time.Since(start).Seconds())
	}

	cold := times[0]
	var warmSum float64
	for _, t := range times[1:] {
		warmSum += t
	}
	warmAvg := warmSum / float64(len(times)-1)

	fmt.Printf("  %-10s cold: %.4fs, warm avg: %.4fs\n", name, cold, warmAvg)

	return BenchmarkResult{
		FeedSize: size,
		Stage:    name,
		ColdTime: fmt.Sprintf("%.4fs", cold),
		WarmTime: fmt.Sprintf("%.4fs", warmAvg),
	}
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/deskmetrics_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"feed_size", "stage", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		row := []string{fmt.Sprintf("%d", result.FeedSize), result.Stage, result.ColdTime, result.WarmTime}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %8d tickets %-10s: Cold: %s, Warm: %s\n",
			result.FeedSize, result.Stage, result.ColdTime, result.WarmTime)
	}
}
