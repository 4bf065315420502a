package cmd

import (
	"context"
	"fmt"
	"strconv"

	"library-doctor/feature/history"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

// historyCmd lists recorded reconciliation runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent reconciliation runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := setup()
		if err != nil {
			return err
		}
		defer l.Sync()

		db, err := openDatabase(cfg.Database, l, true)
		if err != nil {
			return err
		}

		runs, err := history.Recent(context.Background(), db, historyLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if historyJSON {
			return writeJSON(out, runs)
		}
		fmt.Fprintln(out, renderHistory(runs))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", history.DefaultLimit, "Number of runs to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print the runs as JSON")
	RootCmd.AddCommand(historyCmd)
}

func renderHistory(runs []history.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Source,
			strconv.Itoa(r.TotalTracks),
			strconv.Itoa(r.Missing),
			strconv.Itoa(r.NotImported),
			strconv.Itoa(r.Duplicates),
			strconv.FormatInt(r.DurationMs, 10) + "ms",
		})
	}
	return renderTable(
		[]string{"Time", "Document", "Tracks", "Missing", "Not imported", "Duplicates", "Duration"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	)
}
