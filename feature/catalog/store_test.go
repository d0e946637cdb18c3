package catalog

import (
	"context"
	"errors"
	"testing"

	"catalog-reconciler/core/database"
	"catalog-reconciler/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	store := NewStore(db)
	added, err := store.Migrate(context.Background())
	require.NoError(t, err)
	assert.Len(t, added, len(ColumnNames()))
	return store
}

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

func merged(rec *reconcile.Record, formats ...reconcile.Format) reconcile.MergedRecord {
	m := reconcile.MergedRecord{Record: rec}
	for i, f := range formats {
		role := reconcile.RoleMaster
		if i > 0 {
			role = reconcile.RoleSupplement
		}
		m.MergedFrom = append(m.MergedFrom, reconcile.SourceRef{Tag: reconcile.SourceTag{Format: f, Role: role}})
	}
	return m
}

func TestStore_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	first := []reconcile.MergedRecord{
		merged(product(map[string]reconcile.Value{
			FieldProductID: reconcile.Number(1),
			FieldSKU:       reconcile.String("A"),
			FieldName:      reconcile.String("Chair"),
			FieldMode:      reconcile.String(""),
			FieldVolume:    reconcile.Number(0.25),
		}), reconcile.FormatXML, reconcile.FormatJSON),
		merged(product(map[string]reconcile.Value{FieldSKU: reconcile.String("B")}), reconcile.FormatCSV),
	}
	require.NoError(t, store.ReplaceAll(ctx, first))

	stored, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "xml+json", stored[0].Source)
	assert.Equal(t, "csv", stored[1].Source)
	assert.Equal(t, first[0].Record.Map(), stored[0].Record.Map())
	assert.Equal(t, first[1].Record.Map(), stored[1].Record.Map())
	assert.False(t, stored[1].Record.Get(FieldProductID).IsPresent())

	second := []reconcile.MergedRecord{
		merged(product(map[string]reconcile.Value{FieldSKU: reconcile.String("C")}), reconcile.FormatJSON),
	}
	require.NoError(t, store.ReplaceAll(ctx, second))

	stored, err = store.All(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, reconcile.String("C"), stored[0].Record.Get(FieldSKU))

	require.NoError(t, store.ReplaceAll(ctx, nil))
	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_ReplaceAll_RejectsTextInNumericColumn(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	require.NoError(t, store.ReplaceAll(ctx, []reconcile.MergedRecord{
		merged(product(map[string]reconcile.Value{FieldSKU: reconcile.String("keep")}), reconcile.FormatJSON),
	}))

	err := store.ReplaceAll(ctx, []reconcile.MergedRecord{
		merged(product(map[string]reconcile.Value{FieldSKU: reconcile.String("new")}), reconcile.FormatJSON),
		merged(product(map[string]reconcile.Value{FieldGrossWeight: reconcile.String("heavy")}), reconcile.FormatXML),
	})
	assert.ErrorContains(t, err, "record 1")
	assert.ErrorContains(t, err, FieldGrossWeight)

	stored, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, reconcile.String("keep"), stored[0].Record.Get(FieldSKU))
}

func TestStore_Migrate_Idempotent(t *testing.T) {
	store := setupStore(t)
	added, err := store.Migrate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestStore_ReplaceAll_RollsBackOnDeleteFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `products`").WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	err := store.ReplaceAll(context.Background(), []reconcile.MergedRecord{
		merged(product(map[string]reconcile.Value{FieldSKU: reconcile.String("A")}), reconcile.FormatJSON),
	})
	assert.ErrorContains(t, err, "lock wait timeout")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_All_QueryFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectQuery("SELECT \\* FROM `products` ORDER BY id").WillReturnError(errors.New("connection reset"))

	_, err := store.All(context.Background())
	assert.ErrorContains(t, err, "connection reset")
}

func TestProduct_RoundTrip(t *testing.T) {
	rec := product(map[string]reconcile.Value{
		FieldEAN:           reconcile.Number(590),
		FieldStockQuantity: reconcile.Number(3),
	})

	p, err := NewProduct(rec, "json")
	require.NoError(t, err)
	require.NotNil(t, p.EAN)
	assert.Equal(t, "590", *p.EAN)
	require.NotNil(t, p.StockQuantity)
	assert.Equal(t, 3.0, *p.StockQuantity)
	assert.Nil(t, p.Name)

	back := p.Record()
	assert.Equal(t, reconcile.String("590"), back.Get(FieldEAN))
	assert.Equal(t, reconcile.Number(3), back.Get(FieldStockQuantity))
	assert.Equal(t, Schema.Len()+2, len(ColumnNames()))
}
