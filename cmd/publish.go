package cmd

import (
	"context"
	"fmt"

	"library-doctor/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var publishJSON bool

// publishCmd uploads the export and the reconciliation report to object storage.
var publishCmd = &cobra.Command{
	Use:   "publish [document] [music-dir]",
	Short: "Publish the re-encoded document and its reconciliation report",
	Long: `Reconciles the document, then uploads the re-encoded export and the JSON
report to the configured bucket as latest and as a timestamped snapshot.
Snapshots beyond library.publish_retain are removed.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().BoolVar(&publishJSON, "json", false, "Print the result as JSON")
	RootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()
	applyArgs(&cfg.Library, args)

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	db, err := openDatabase(cfg.Database, l, false)
	if err != nil {
		return err
	}

	svc := newCollectionService(cfg, client, l, db)

	l.Info("Publishing library", zap.String("bucket", cfg.Storage.Bucket), zap.String("prefix", cfg.Library.PublishPrefix))
	result, err := svc.Publish(ctx)
	if err != nil {
		return fmt.Errorf("failed to publish: %w", err)
	}

	out := cmd.OutOrStdout()
	if publishJSON {
		return writeJSON(out, result)
	}

	rows := make([][]string, 0, len(result.Objects)+len(result.Pruned))
	for _, key := range result.Objects {
		rows = append(rows, []string{"uploaded", key})
	}
	for _, key := range result.Pruned {
		rows = append(rows, []string{"removed", key})
	}
	fmt.Fprintln(out, renderTable([]string{"Status", "Object"}, rows, nil))
	return nil
}
