// Package parquet provides data structures and functions for exporting run
// history data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/drojas/deskmetrics/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single aggregation run with metadata.
// This struct maps to the deskmetrics_runs database table.
type Run struct {
	// RunID is the unique identifier for this aggregation run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TicketCount is the number of tickets processed in this run
	TicketCount int32 `parquet:"ticket_count,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// TechMetricsRow represents one technician metric row in an aggregation run.
// This struct maps to the deskmetrics_tech_metrics database table.
type TechMetricsRow struct {
	// RunID references the parent aggregation run
	RunID int64 `parquet:"run_id,snappy"`

	// Tech is the technician display alias
	Tech string `parquet:"tech,snappy"`

	// PeriodLabel names the time scope the row covers
	PeriodLabel string `parquet:"period_label,snappy"`

	// RecordTime is when this row was written
	RecordTime time.Time `parquet:"record_time,snappy"`

	// Assigned is the number of tickets assigned in the period
	Assigned int32 `parquet:"assigned,snappy"`

	// Resolved is the number of tickets resolved in the period
	Resolved int32 `parquet:"resolved,snappy"`

	// Pending is assigned minus resolved
	Pending int32 `parquet:"pending,snappy"`

	// Surveys is the number of valid survey responses
	Surveys int32 `parquet:"surveys,snappy"`

	// WeightedRating is the survey-weighted average rating
	WeightedRating float64 `parquet:"weighted_rating,snappy"`

	// ResponseRate is surveys over resolved as a percentage
	ResponseRate float64 `parquet:"response_rate,snappy"`

	// SLAIdeal is assigned over the expected monthly total as a percentage
	SLAIdeal float64 `parquet:"sla_ideal,snappy"`

	// Participation is assigned over the per-technician ideal as a percentage
	Participation float64 `parquet:"participation,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the Run struct tags
	writer := parquet.NewGenericWriter[Run](file)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return writer.Close()
}

// WriteTechMetricsParquet writes a slice of TechMetricsRow structs to a Parquet file.
func WriteTechMetricsParquet(data []TechMetricsRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the TechMetricsRow struct tags
	writer := parquet.NewGenericWriter[TechMetricsRow](file)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return writer.Close()
}

// MockFetchRuns returns sample run data for demos and tests.
func MockFetchRuns() []Run {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := startTime1.Add(3 * time.Second)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"report_month":"2025-10","technicians":7}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := startTime2.Add(2 * time.Second)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"report_month":"2025-09","technicians":7}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: the third run is still in flight, so its nullable fields are nil

	return []Run{
		{
			RunID:         1,
			StartTime:     startTime1,
			EndTime:       &endTime1,
			RunDurationMs: &durationMs1,
			TicketCount:   372,
			ConfigParams:  &configParams1,
		},
		{
			RunID:         2,
			StartTime:     startTime2,
			EndTime:       &endTime2,
			RunDurationMs: &durationMs2,
			TicketCount:   351,
			ConfigParams:  &configParams2,
		},
		{
			RunID:       3,
			StartTime:   startTime3,
			TicketCount: 0,
		},
	}
}

// MockFetchTechMetrics returns sample metric rows for demos and tests.
func MockFetchTechMetrics() []TechMetricsRow {
	now := time.Now()

	return []TechMetricsRow{
		{
			RunID:          1,
			Tech:           "Carlos Castro",
			PeriodLabel:    "Octubre",
			RecordTime:     now.Add(-2 * time.Hour),
			Assigned:       42,
			Resolved:       38,
			Pending:        4,
			Surveys:        12,
			WeightedRating: 4.67,
			ResponseRate:   31.58,
			SLAIdeal:       11.29,
			Participation:  79.03,
		},
		{
			RunID:          1,
			Tech:           "Laura Pérez",
			PeriodLabel:    "Octubre",
			RecordTime:     now.Add(-2 * time.Hour),
			Assigned:       55,
			Resolved:       51,
			Pending:        4,
			Surveys:        20,
			WeightedRating: 4.85,
			ResponseRate:   39.22,
			SLAIdeal:       14.78,
			Participation:  103.49,
		},
		{
			RunID:          2,
			Tech:           "Carlos Castro",
			PeriodLabel:    "Septiembre",
			RecordTime:     now.Add(-24 * time.Hour),
			Assigned:       38,
			Resolved:       33,
			Pending:        5,
			Surveys:        9,
			WeightedRating: 4.33,
			ResponseRate:   27.27,
			SLAIdeal:       10.22,
			Participation:  75.79,
		},
	}
}

// ConvertRunRecords converts database run records to their Parquet form.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	out := make([]Run, 0, len(records))
	for _, r := range records {
		out = append(out, Run{
			RunID:         r.RunID,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.RunDurationMs,
			TicketCount:   r.TicketCount,
			ConfigParams:  r.ConfigParams,
		})
	}
	return out
}

// ConvertTechMetricsRecords converts database metric rows to their Parquet form.
func ConvertTechMetricsRecords(records []schema.TechMetricsRecord) []TechMetricsRow {
	out := make([]TechMetricsRow, 0, len(records))
	for _, r := range records {
		out = append(out, TechMetricsRow{
			RunID:          r.RunID,
			Tech:           r.Tech,
			PeriodLabel:    r.PeriodLabel,
			RecordTime:     r.RecordTime,
			Assigned:       r.Assigned,
			Resolved:       r.Resolved,
			Pending:        r.Pending,
			Surveys:        r.Surveys,
			WeightedRating: r.WeightedRating,
			ResponseRate:   r.ResponseRate,
			SLAIdeal:       r.SLAIdeal,
			Participation:  r.Participation,
		})
	}
	return out
}
