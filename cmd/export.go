package cmd

import (
	"context"
	"fmt"

	"catalog-reconciler/core/reconcile"
	"catalog-reconciler/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportOutput   string
	exportToObject string
)

// exportCmd exports the persisted products table as JSON.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the products table as JSON",
	Long: `Read the products table in id order and write it as one JSON array with
canonical field order. Bookkeeping columns (id, source) are not exported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.log.Sync()

		store, err := a.store(ctx)
		if err != nil {
			return err
		}
		stored, err := store.All(ctx)
		if err != nil {
			return err
		}

		records := make([]*reconcile.Record, len(stored))
		for i, s := range stored {
			records[i] = s.Record
		}

		if exportToObject != "" {
			fp, err := catalog.ExportToStorage(ctx, a.client, a.cfg.Storage.Bucket, exportToObject, records)
			if err != nil {
				return fmt.Errorf("failed to upload export: %w", err)
			}
			a.log.Info("Export uploaded",
				zap.Int("records", len(records)),
				zap.String("object", exportToObject),
				zap.String("fingerprint", fp),
			)
			return nil
		}

		if err := writeExport(exportOutput, records); err != nil {
			return err
		}
		a.log.Debug("Export written", zap.Int("records", len(records)), zap.String("path", exportOutput))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "-", "Output file (- for stdout)")
	exportCmd.Flags().StringVar(&exportToObject, "object", "", "Upload to this key in the storage bucket instead")

	RootCmd.AddCommand(exportCmd)
}
