package catalog

import (
	"context"
	"fmt"

	"catalog-reconciler/core/database"
	"catalog-reconciler/core/reconcile"

	"gorm.io/gorm"
)

const insertBatchSize = 500

// StoredRecord is a persisted product with its bookkeeping columns.
type StoredRecord struct {
	ID     uint
	Source string
	Record *reconcile.Record
}

// Store persists the canonical product list in the products table.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the products table or adds the columns it lacks.
// It returns the names of the columns that were added.
func (s *Store) Migrate(ctx context.Context) ([]string, error) {
	db := s.db.WithContext(ctx)

	missing, err := database.MissingColumns(db, TableProducts, ColumnNames())
	if err != nil {
		return nil, err
	}
	if len(missing) == 0 {
		return nil, nil
	}

	if err := db.AutoMigrate(&Product{}); err != nil {
		return nil, fmt.Errorf("failed to migrate %s: %w", TableProducts, err)
	}
	return missing, nil
}

// ReplaceAll deletes every stored product and inserts records in order, in a
// single transaction. On error the previous contents are kept.
func (s *Store) ReplaceAll(ctx context.Context, records []reconcile.MergedRecord) error {
	rows := make([]*Product, 0, len(records))
	for i, rec := range records {
		p, err := NewProduct(rec.Record, rec.Provenance())
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		rows = append(rows, p)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Product{}).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", TableProducts, err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert into %s: %w", TableProducts, err)
		}
		return nil
	})
}

// All returns every stored product in id order, which is insertion order.
func (s *Store) All(ctx context.Context) ([]StoredRecord, error) {
	var rows []Product
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", TableProducts, err)
	}

	out := make([]StoredRecord, 0, len(rows))
	for i := range rows {
		out = append(out, StoredRecord{
			ID:     rows[i].ID,
			Source: rows[i].Source,
			Record: rows[i].Record(),
		})
	}
	return out, nil
}

// Count returns the number of stored products.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Product{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", TableProducts, err)
	}
	return n, nil
}
