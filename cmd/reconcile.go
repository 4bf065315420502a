package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"library-doctor/core/reconcile"
	"library-doctor/feature/collection"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reconcileJSON   bool
	reconcileRecord bool
	reconcilePlan   bool
)

// reconcileCmd checks a document's tracks against a music directory.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile [document] [music-dir]",
	Short: "Reconcile track locations against a music directory",
	Long: `Reports tracks whose files are missing, files no track references, files
sharing a track's name elsewhere in the directory and relocation candidates
for missing tracks. The document is never modified.

Examples:
  # Use library.document and library.music_dir from the configuration
  reconcile

  # Explicit paths, JSON output
  reconcile rekordbox.xml ~/Music --json

  # Show suggested follow-ups and store the run in the history database
  reconcile rekordbox.xml ~/Music --plan --record`,
	Args: cobra.MaximumNArgs(2),
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().BoolVar(&reconcileJSON, "json", false, "Print the report as JSON")
	reconcileCmd.Flags().BoolVar(&reconcileRecord, "record", false, "Record the run in the history database (requires database settings)")
	reconcileCmd.Flags().BoolVar(&reconcilePlan, "plan", false, "Print suggested follow-up actions")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()
	applyArgs(&cfg.Library, args)

	db, err := openDatabase(cfg.Database, l, reconcileRecord)
	if err != nil {
		return err
	}

	svc := newCollectionService(cfg, nil, l, db)

	l.Info("Starting reconciliation",
		zap.String("document", cfg.Library.Document),
		zap.String("music_dir", cfg.Library.MusicDir),
	)

	reconcileFn := svc.Reconcile
	if reconcileRecord {
		reconcileFn = svc.ReconcileRecorded
	}

	result, err := reconcileFn(ctx)
	if err != nil {
		return fmt.Errorf("failed to reconcile: %w", err)
	}

	var plan *reconcile.Plan
	if reconcilePlan {
		plan = reconcile.BuildPlan(result.Report)
	}

	out := cmd.OutOrStdout()
	if reconcileJSON {
		return writeJSON(out, struct {
			*collection.Result
			Plan *reconcile.Plan `json:"plan,omitempty"`
		}{result, plan})
	}

	printReconcileReport(out, result.Report)
	if plan != nil {
		printPlan(out, plan)
	}
	return nil
}

// printReconcileReport renders the report as tables.
func printReconcileReport(w io.Writer, report *reconcile.Report) {
	s := report.Summary
	fmt.Fprintln(w, renderTable(
		[]string{"Check", "Count"},
		[][]string{
			{"Tracks", strconv.Itoa(s.TotalTracks)},
			{"OK", strconv.Itoa(s.OK)},
			{"Missing", strconv.Itoa(s.Missing)},
			{"Unresolvable", strconv.Itoa(s.Unresolvable)},
			{"Not imported", strconv.Itoa(s.NotImported)},
			{"Duplicates", strconv.Itoa(s.Duplicates)},
			{"Relocatable (unique)", strconv.Itoa(s.RelocatableUnique)},
			{"Relocatable (ambiguous)", strconv.Itoa(s.RelocatableAmbiguous)},
		},
		[]columnAlignment{alignLeft, alignRight},
	))

	if len(report.Missing) > 0 {
		rows := make([][]string, 0, len(report.Missing))
		for _, m := range report.Missing {
			rows = append(rows, []string{m.TrackID, m.Name, m.Path})
		}
		fmt.Fprintln(w, "\nMissing files")
		fmt.Fprintln(w, renderTable([]string{"Track", "Name", "Path"}, rows, []columnAlignment{alignRight}))
	}

	if len(report.Relocated) > 0 {
		names := make([]string, 0, len(report.Relocated))
		for name := range report.Relocated {
			names = append(names, name)
		}
		sort.Strings(names)

		rows := make([][]string, 0, len(names))
		for _, name := range names {
			g := report.Relocated[name]
			rows = append(rows, []string{
				name,
				string(g.Status),
				strings.Join(g.TrackIDs, ", "),
				strings.Join(g.Candidates, "\n"),
			})
		}
		fmt.Fprintln(w, "\nRelocation candidates")
		fmt.Fprintln(w, renderTable([]string{"File", "Status", "Tracks", "Candidates"}, rows, nil))
	}

	if len(report.Duplicates) > 0 {
		paths := make([]string, 0, len(report.Duplicates))
		for p := range report.Duplicates {
			paths = append(paths, p)
		}
		sort.Strings(paths)

		rows := make([][]string, 0, len(paths))
		for _, p := range paths {
			rows = append(rows, []string{p, strings.Join(report.Duplicates[p], "\n")})
		}
		fmt.Fprintln(w, "\nDuplicate file names")
		fmt.Fprintln(w, renderTable([]string{"Track file", "Same name"}, rows, nil))
	}

	if len(report.NotImported) > 0 {
		rows := make([][]string, 0, len(report.NotImported))
		for _, f := range report.NotImported {
			rows = append(rows, []string{f})
		}
		fmt.Fprintln(w, "\nNot imported")
		fmt.Fprintln(w, renderTable([]string{"File"}, rows, nil))
	}
}

// printPlan renders the suggested actions.
func printPlan(w io.Writer, plan *reconcile.Plan) {
	if len(plan.Actions) == 0 {
		fmt.Fprintln(w, "\nNo follow-up actions suggested.")
		return
	}

	rows := make([][]string, 0, len(plan.Actions))
	for _, a := range plan.Actions {
		target := a.Location
		if target == "" && len(a.Candidates) > 0 {
			target = strings.Join(a.Candidates, "\n")
		}
		rows = append(rows, []string{string(a.Type), a.TrackID, a.Key, target, a.Reason})
	}
	fmt.Fprintln(w, "\nSuggested actions")
	fmt.Fprintln(w, renderTable([]string{"Action", "Track", "Path", "Target", "Reason"}, rows, nil))
}
