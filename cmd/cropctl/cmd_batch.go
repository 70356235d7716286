package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quentinrf/plant-monitor/services/crop-service/internal/adapters/sqlite"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/crop-service/internal/ports"
)

type batchOptions struct {
	dbPath  string
	since   time.Duration
	workers int
}

// batchItem is the JSON shape of one evaluated reading
type batchItem struct {
	ReadingID int64                  `json:"reading_id"`
	Timestamp time.Time              `json:"timestamp"`
	Result    *domain.Recommendation `json:"recommendation,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

func newBatchCommand(opts *globalOptions) *cobra.Command {
	bo := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Recommend crops for stored soil readings",
		Long: `Evaluate every reading recorded by the crop service in a time window.

Readings are read from the service's SQLite database and scored in parallel
with the local catalog.`,
		Example: "  cropctl batch --db ./soil.db --since 24h --workers 4",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.addr != "" {
				return errors.New("batch reads the database directly; --addr is not supported")
			}
			if bo.since <= 0 {
				return fmt.Errorf("--since must be positive, got %s", bo.since)
			}

			ev, err := compileCatalog(opts.catalogPath)
			if err != nil {
				return err
			}

			repo, err := sqlite.NewReadingRepository(bo.dbPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer repo.Close()

			end := time.Now()
			run, err := ports.NewBatchRecommender(repo, ev, bo.workers).Run(cmd.Context(), end.Add(-bo.since), end)
			if err != nil {
				return err
			}

			if opts.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), batchItems(run))
			}
			return writeBatch(cmd, run)
		},
	}

	cmd.Flags().StringVar(&bo.dbPath, "db", "./soil.db", "SQLite database written by the crop service")
	cmd.Flags().DurationVar(&bo.since, "since", 24*time.Hour, "Evaluate readings recorded within this window")
	cmd.Flags().IntVar(&bo.workers, "workers", 0, "Parallel evaluations (default: GOMAXPROCS)")

	return cmd
}

func batchItems(run *ports.BatchRun) []batchItem {
	items := make([]batchItem, 0, len(run.Items))
	for _, it := range run.Items {
		item := batchItem{ReadingID: it.Reading.ID, Timestamp: it.Reading.Timestamp}
		if it.Err != nil {
			item.Error = it.Err.Error()
		} else {
			item.Result = it.Result
		}
		items = append(items, item)
	}
	return items
}

func writeBatch(cmd *cobra.Command, run *ports.BatchRun) error {
	w := cmd.OutOrStdout()
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTIME\tPH\tTEMP\tHUMIDITY\tTOP\tSCORE")
	for _, it := range run.Items {
		r := it.Reading
		prefix := fmt.Sprintf("%d\t%s\t%g\t%g\t%g", r.ID, r.Timestamp.Local().Format(time.DateTime), r.PH, r.Temperature, r.Humidity)
		switch {
		case it.Err != nil:
			fmt.Fprintf(tw, "%s\terror: %v\t-\n", prefix, it.Err)
		case it.Result.Top == nil:
			fmt.Fprintf(tw, "%s\t-\t-\n", prefix)
		default:
			fmt.Fprintf(tw, "%s\t%s\t%.2f\n", prefix, it.Result.Top.Crop, it.Result.Top.Score)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d readings, %d failed, %s (run %s)\n",
		len(run.Items), run.Failed, run.Duration.Round(time.Millisecond), run.ID)
	return nil
}
