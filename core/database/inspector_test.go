package database

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

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

func TestGetTableColumns(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("ID", "CHAR(36)", "NO", "PRI", nil, "").
		AddRow("source", "varchar(512)", "YES", "", nil, "").
		AddRow("total_tracks", "INT", "YES", "", "0", "")
	mock.ExpectQuery("SHOW COLUMNS FROM `reconcile_runs`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "reconcile_runs")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	assert.Equal(t, "id", columns[0].Field)
	assert.Equal(t, "char(36)", columns[0].Type)
	assert.Equal(t, "PRI", columns[0].Key)
	assert.Nil(t, columns[0].Default)
	assert.Equal(t, "int", columns[2].Type)
	require.NotNil(t, columns[2].Default)
	assert.Equal(t, "0", *columns[2].Default)
}

func TestGetTableColumns_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SHOW COLUMNS FROM `missing`").WillReturnError(errors.New("Table 'missing' doesn't exist"))

	columns, err := GetTableColumns(db, "missing")
	assert.Error(t, err)
	assert.Nil(t, columns)
	assert.Contains(t, err.Error(), "missing")
}
