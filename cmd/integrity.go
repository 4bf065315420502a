package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"library-doctor/core/storage"
	"library-doctor/feature/integrity"
	"library-doctor/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag       bool
	integrityJSON bool
)

// integrityCmd checks the library document.
var integrityCmd = &cobra.Command{
	Use:   "integrity [document]",
	Short: "Check the library document for inconsistencies",
	Long: `Flags Entries and Count values that disagree with the content, playlist
references that resolve to no track and duplicated track ids. Nothing is fixed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(cmd, args, integrityDocument)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the publish folder layout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(cmd, args, integrityStructure)
	},
}

// publishedCmd represents the integrity published command
var publishedCmd = &cobra.Command{
	Use:   "published",
	Short: "Check the latest published export and report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(cmd, args, integrityPublished)
	},
}

// serverCmd represents the integrity server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Check the history database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(cmd, args, integrityServer)
	},
}

type integrityCheck int

const (
	integrityDocument integrityCheck = iota
	integrityStructure
	integrityPublished
	integrityServer
)

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, publishedCmd, serverCmd)

	integrityCmd.PersistentFlags().BoolVar(&integrityJSON, "json", false, "Print the report as JSON")
	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
}

func runIntegrity(cmd *cobra.Command, args []string, check integrityCheck) error {
	ctx := context.Background()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()
	applyArgs(&cfg.Library, args)

	var client storage.Client
	if check == integrityStructure || check == integrityPublished {
		if client, err = storage.NewClient(cfg.Storage); err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
	}

	db, err := openDatabase(cfg.Database, l, check == integrityServer)
	if err != nil {
		return err
	}

	docs := newCollectionService(cfg, nil, l, nil)
	svc := integrity.NewService(client, cfg.Storage.Bucket, cfg.Library.PublishPrefix, l, db, docs)
	out := cmd.OutOrStdout()

	switch check {
	case integrityStructure:
		l.Info("Checking folder structure...", zap.String("bucket", cfg.Storage.Bucket))
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			return fmt.Errorf("structure check failed: %w", err)
		}
		if len(missing) == 0 {
			l.Info("Structure is intact.")
			return nil
		}
		l.Warn("Missing folders detected", zap.Strings("missing", missing))
		if !fixFlag {
			l.Info("Run with --fix to create missing folders.")
			return nil
		}
		if err := svc.FixStructure(ctx, missing); err != nil {
			return fmt.Errorf("failed to fix structure: %w", err)
		}
		l.Info("Structure fixed successfully.")
		return nil

	case integrityPublished:
		report, err := svc.CheckPublished(ctx)
		if err != nil {
			return fmt.Errorf("published check failed: %w", err)
		}
		if integrityJSON {
			return writeJSON(out, report)
		}
		printPublicationReport(out, report)
		return nil

	case integrityServer:
		l.Info("Checking server schema integrity...")
		report, err := svc.CheckServer()
		if err != nil {
			return fmt.Errorf("server schema check failed: %w", err)
		}
		if integrityJSON {
			return writeJSON(out, report)
		}
		printServerReport(l, report)
		return nil
	}

	report, err := svc.CheckDocument(ctx)
	if err != nil {
		return fmt.Errorf("document check failed: %w", err)
	}
	if integrityJSON {
		return writeJSON(out, report)
	}
	printDocumentReport(out, report)
	if !report.OK() {
		l.Warn("Document integrity issues detected", zap.Int("issues", report.Summary.Issues))
	}
	return nil
}

func printDocumentReport(w io.Writer, report *checks.DocumentReport) {
	s := report.Summary
	fmt.Fprintln(w, renderTable(
		[]string{"Item", "Count"},
		[][]string{
			{"Tracks", strconv.Itoa(s.Tracks)},
			{"Folders", strconv.Itoa(s.Folders)},
			{"Playlists", strconv.Itoa(s.Playlists)},
			{"Issues", strconv.Itoa(s.Issues)},
		},
		[]columnAlignment{alignLeft, alignRight},
	))

	var rows [][]string
	for _, group := range [][]checks.Issue{report.Entries, report.References, report.TrackIDs} {
		for _, issue := range group {
			rows = append(rows, []string{string(issue.Kind), issue.Path, issue.Message})
		}
	}
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(w, "\nIssues")
	fmt.Fprintln(w, renderTable([]string{"Kind", "Where", "Detail"}, rows, nil))
}

func printPublicationReport(w io.Writer, report *checks.PublicationReport) {
	rows := make([][]string, 0, 2)
	for _, status := range []checks.ObjectStatus{report.Export, report.Report} {
		rows = append(rows, []string{
			status.Key,
			strconv.FormatBool(status.Present),
			strconv.FormatBool(status.Valid),
			status.Error,
		})
	}
	fmt.Fprintln(w, renderTable([]string{"Object", "Present", "Valid", "Error"}, rows, nil))
}

func printServerReport(l *zap.Logger, report *checks.ServerReport) {
	if report.Matched {
		l.Info("Server schema matches expected definition.")
		return
	}

	l.Warn("Server schema mismatches found")
	tables := make([]string, 0, len(report.Tables))
	for table := range report.Tables {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	for _, table := range tables {
		tblReport := report.Tables[table]
		if tblReport.Status == "ok" {
			continue
		}
		if len(tblReport.MissingColumns) > 0 {
			l.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
		}
		if len(tblReport.TypeMismatches) > 0 {
			l.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
		}
	}
	for _, e := range report.Errors {
		l.Error("Inspection Error", zap.String("error", e))
	}
}
