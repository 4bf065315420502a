package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"library-doctor/core/config"
	"library-doctor/core/database"
	"library-doctor/core/library"
	"library-doctor/core/logger"
	"library-doctor/core/storage"
	"library-doctor/feature/collection"
	"library-doctor/feature/history"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// setup loads the configuration and builds the logger shared by every command.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// applyArgs overrides the configured document and music directory with positional arguments.
func applyArgs(cfg *library.Config, args []string) {
	if len(args) > 0 {
		cfg.Document = args[0]
	}
	if len(args) > 1 {
		cfg.MusicDir = args[1]
	}
}

// openDatabase connects to the history database and migrates it.
// Unless required, a disabled or unreachable database yields a nil connection.
func openDatabase(cfg database.Config, l *zap.Logger, required bool) (*gorm.DB, error) {
	if !cfg.Enabled && !required {
		return nil, nil
	}

	db, err := database.Connect(cfg)
	if err == nil {
		err = history.Migrate(db)
	}
	if err != nil {
		if required {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		l.Warn("Optional database connection failed", zap.Error(err))
		return nil, nil
	}

	l.Info("Connected to history database", zap.String("database", cfg.Name))
	return db, nil
}

// newCollectionService wires the collection service over the OS filesystem.
func newCollectionService(cfg *config.Config, client storage.Client, l *zap.Logger, db *gorm.DB) *collection.Service {
	return collection.NewService(afero.NewOsFs(), cfg.Library, client, cfg.Storage.Bucket, l, db)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
