package iocache

import (
	"errors"
	"fmt"

	"github.com/drojas/deskmetrics/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of run history to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetHistoryStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total metric rows: %d\n", status.TableSizes[techMetricsTable])

	runs, err := store.GetRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	metrics, err := store.GetTechMetrics()
	if err != nil {
		return fmt.Errorf("failed to retrieve technician metrics: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetMetrics := parquet.ConvertTechMetricsRecords(metrics)

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	metricsFile := outputFile + ".tech_metrics.parquet"
	if err := parquet.WriteTechMetricsParquet(parquetMetrics, metricsFile); err != nil {
		return fmt.Errorf("failed to write technician metrics: %w", err)
	}
	fmt.Printf("Exported %d metric rows to: %s\n", len(parquetMetrics), metricsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
