package history

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"library-doctor/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

var runColumns = []string{
	"id", "created_at", "source", "directory", "total_tracks", "ok", "missing", "unresolvable",
	"not_imported", "duplicates", "relocatable_unique", "relocatable_ambiguous", "duration_ms",
}

func TestNewRun(t *testing.T) {
	s := reconcile.Summary{TotalTracks: 10, OK: 7, Missing: 2, Unresolvable: 1, NotImported: 4, Duplicates: 1, RelocatableUnique: 1}
	run := NewRun("library.xml", "/music", s, 1500*time.Millisecond)

	assert.Len(t, run.ID, 36)
	assert.Equal(t, "library.xml", run.Source)
	assert.Equal(t, "/music", run.Directory)
	assert.Equal(t, 10, run.TotalTracks)
	assert.Equal(t, 7, run.OK)
	assert.Equal(t, 2, run.Missing)
	assert.Equal(t, 1, run.Unresolvable)
	assert.Equal(t, 4, run.NotImported)
	assert.Equal(t, 1, run.RelocatableUnique)
	assert.Equal(t, int64(1500), run.DurationMs)
	assert.NotEqual(t, run.ID, NewRun("library.xml", "/music", s, 0).ID)
}

func TestRecord(t *testing.T) {
	db, mock := setupMockDB(t)
	run := NewRun("library.xml", "/music", reconcile.Summary{TotalTracks: 1, OK: 1}, time.Second)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `reconcile_runs`")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, Record(context.Background(), db, run))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_Failure(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `reconcile_runs`")).
		WillReturnError(errors.New("table is read only"))
	mock.ExpectRollback()

	err := Record(context.Background(), db, NewRun("a", "b", reconcile.Summary{}, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table is read only")
}

func TestNilDatabase(t *testing.T) {
	assert.ErrorIs(t, Record(context.Background(), nil, &Run{}), ErrNoDatabase)

	_, err := Recent(context.Background(), nil, 5)
	assert.ErrorIs(t, err, ErrNoDatabase)
	assert.ErrorIs(t, Migrate(nil), ErrNoDatabase)
}

func TestRecent(t *testing.T) {
	db, mock := setupMockDB(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(runColumns).
		AddRow("b", now, "library.xml", "/music", 3, 2, 1, 0, 0, 0, 1, 0, 12).
		AddRow("a", now.Add(-time.Hour), "library.xml", "/music", 3, 3, 0, 0, 1, 0, 0, 0, 9)
	mock.ExpectQuery("SELECT \\* FROM `reconcile_runs` ORDER BY created_at DESC LIMIT").
		WillReturnRows(rows)

	runs, err := Recent(context.Background(), db, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b", runs[0].ID)
	assert.Equal(t, 1, runs[0].Missing)
	assert.Equal(t, 1, runs[0].RelocatableUnique)
	assert.Equal(t, int64(9), runs[1].DurationMs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleRecent(t *testing.T) {
	db, mock := setupMockDB(t)
	app := fiber.New()
	NewHandler(db, zap.NewNop()).RegisterRoutes(app)

	rows := sqlmock.NewRows(runColumns).
		AddRow("a", time.Now().UTC(), "library.xml", "/music", 1, 1, 0, 0, 0, 0, 0, 0, 3)
	mock.ExpectQuery("SELECT \\* FROM `reconcile_runs` ORDER BY created_at DESC LIMIT").
		WillReturnRows(rows)

	resp, err := app.Test(httptest.NewRequest("GET", "/history?limit=1", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Count int   `json:"count"`
		Runs  []Run `json:"runs"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "library.xml", body.Runs[0].Source)
}

func TestHandleRecent_NoDatabase(t *testing.T) {
	app := fiber.New()
	NewHandler(nil, zap.NewNop()).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/history", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestFeature(t *testing.T) {
	db, _ := setupMockDB(t)

	enabled := NewFeature(db, zap.NewNop())
	assert.Equal(t, "history", enabled.Name())
	assert.True(t, enabled.IsEnabled())
	assert.NoError(t, enabled.Load(fiber.New()))

	assert.False(t, NewFeature(nil, zap.NewNop()).IsEnabled())
}
