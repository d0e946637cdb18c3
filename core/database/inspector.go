package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo describes one column of an existing table.
type ColumnInfo struct {
	Name     string
	Type     string
	Nullable bool
}

// GetTableColumns returns the columns of tableName in declaration order.
// A missing table yields no columns and no error.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	m := db.Migrator()
	if !m.HasTable(tableName) {
		return nil, nil
	}

	types, err := m.ColumnTypes(tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	columns := make([]ColumnInfo, 0, len(types))
	for _, ct := range types {
		nullable, _ := ct.Nullable()
		columns = append(columns, ColumnInfo{
			Name:     ct.Name(),
			Type:     strings.ToLower(ct.DatabaseTypeName()),
			Nullable: nullable,
		})
	}
	return columns, nil
}

// MissingColumns lists the names in want that tableName lacks, compared case-insensitively.
func MissingColumns(db *gorm.DB, tableName string, want []string) ([]string, error) {
	columns, err := GetTableColumns(db, tableName)
	if err != nil {
		return nil, err
	}

	have := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		have[strings.ToLower(c.Name)] = struct{}{}
	}

	var missing []string
	for _, name := range want {
		if _, ok := have[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
