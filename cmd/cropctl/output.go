package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func validateFormat(format string) error {
	switch format {
	case formatTable, formatJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (use %s or %s)", format, formatTable, formatJSON)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeRecommendation(w io.Writer, rec *domain.Recommendation) error {
	fmt.Fprintf(w, "Input: pH %g, temperature %g°C, humidity %g%%\n\n",
		rec.Input.PH, rec.Input.Temperature, rec.Input.Humidity)

	tw := newTable(w)
	fmt.Fprintln(tw, "RANK\tPLANT\tSCORE\tCONFIDENCE\tSTATUS")
	for i, s := range rec.All {
		status := s.Status
		if s.Degraded {
			status += " (degraded)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\t%s\n", i+1, s.Crop, s.Score, s.Confidence, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s\n", rec.Summary)
	return nil
}

func writeConditions(w io.Writer, crop string, cond domain.GrowingConditions) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "%s\tMIN\tMAX\n", strings.ToUpper(crop))
	rows := []struct {
		name string
		r    domain.Range
	}{
		{"pH", cond.PH},
		{"temperature (°C)", cond.Temperature},
		{"humidity (%)", cond.Humidity},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%g\t%g\n", row.name, row.r.Min, row.r.Max)
	}
	return tw.Flush()
}
