package checks

import (
	"fmt"
	"reflect"
	"strings"

	"library-doctor/core/database"
	"library-doctor/feature/history"

	"gorm.io/gorm"
)

// ServerReport strictly types the result of a server integrity check.
type ServerReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport describes the differences found for one table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

// ServerModels are the GORM models whose tables must match the live schema.
var ServerModels = []any{history.Run{}}

// CheckServerIntegrity verifies the database schema using GORM models as the source of truth.
func CheckServerIntegrity(db *gorm.DB) (*ServerReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &ServerReport{
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
		Matched: true,
	}

	for _, model := range ServerModels {
		if err := checkModel(db, model, report); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func checkModel(db *gorm.DB, model any, report *ServerReport) error {
	val := reflect.TypeOf(model)
	tabler, ok := reflect.New(val).Interface().(interface{ TableName() string })
	if !ok {
		return fmt.Errorf("model %s does not implement TableName", val.Name())
	}
	tableName := tabler.TableName()

	tblReport := TableReport{
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}

	actualCols, err := database.GetTableColumns(db, tableName)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", tableName, err))
		report.Matched = false
		return nil
	}

	actualMap := make(map[string]database.ColumnInfo)
	for _, col := range actualCols {
		actualMap[col.Field] = col
	}

	for i := 0; i < val.NumField(); i++ {
		gormTag := val.Field(i).Tag.Get("gorm")

		colName := parseGormColumn(gormTag)
		if colName == "" {
			continue
		}
		expType := strings.ToLower(parseGormType(gormTag))

		actCol, exists := actualMap[colName]
		if !exists {
			tblReport.MissingColumns = append(tblReport.MissingColumns, colName)
			tblReport.Status = "error"
			report.Matched = false
			continue
		}

		// Soft check: MySQL may report display widths, e.g. int(11) for int.
		if expType != "" && !strings.Contains(actCol.Type, expType) {
			mismatch := fmt.Sprintf("%s: expected %s, got %s", colName, expType, actCol.Type)
			tblReport.TypeMismatches = append(tblReport.TypeMismatches, mismatch)
			tblReport.Status = "error"
			report.Matched = false
		}
	}

	report.Tables[tableName] = tblReport
	return nil
}

// Helpers to parse simple GORM tags
func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}

func parseGormType(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "type:") {
			return strings.TrimPrefix(p, "type:")
		}
	}
	return ""
}
