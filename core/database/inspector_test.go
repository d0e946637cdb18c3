package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_products (id INTEGER PRIMARY KEY, sku TEXT, price REAL)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_products")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	assert.Equal(t, "id", columns[0].Name)
	assert.Equal(t, "integer", columns[0].Type)
	assert.Equal(t, "sku", columns[1].Name)
	assert.Equal(t, "text", columns[1].Type)
	assert.Equal(t, "real", columns[2].Type)

	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE products (id INTEGER PRIMARY KEY, SKU TEXT)").Error)

	missing, err := MissingColumns(db, "products", []string{"id", "sku", "EAN"})
	require.NoError(t, err)
	assert.Equal(t, []string{"EAN"}, missing)
}
