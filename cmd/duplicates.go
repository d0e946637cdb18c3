package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"catalog-reconciler/core/reconcile"
	"catalog-reconciler/feature/catalog"

	"github.com/spf13/cobra"
)

var (
	duplicatesField   string
	duplicatesInput   string
	duplicatesProfile string
)

// duplicatesCmd reports EAN or SKU values shared by several products.
var duplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "Report EAN or SKU values shared by more than one product",
	Long: `Report duplicated EAN or SKU values with their count and the positions of
the first 10 products carrying them. Reads the products table, or a single
feed when --input is given.

Examples:
  duplicates --by EAN
  duplicates --by SKU --input suuhouse.xml --profile xml_suuhouse`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		field := strings.ToUpper(duplicatesField)
		if field != catalog.FieldEAN && field != catalog.FieldSKU {
			return fmt.Errorf("--by must be EAN or SKU, got %q", duplicatesField)
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.log.Sync()

		var records []*reconcile.Record
		if duplicatesInput != "" {
			records, err = a.service().Load(ctx, catalog.SourceSpec{Location: duplicatesInput, Profile: duplicatesProfile})
			if err != nil {
				return err
			}
		} else {
			store, err := a.store(ctx)
			if err != nil {
				return err
			}
			stored, err := store.All(ctx)
			if err != nil {
				return err
			}
			for _, s := range stored {
				records = append(records, s.Record)
			}
		}

		dups, err := catalog.FindDuplicates(records, field)
		if err != nil {
			return err
		}
		if len(dups) == 0 {
			fmt.Fprintf(os.Stderr, "No duplicated %s values among %d products\n", field, len(records))
			return nil
		}
		return catalog.WriteDuplicatesTable(os.Stdout, field, dups)
	},
}

func init() {
	duplicatesCmd.Flags().StringVar(&duplicatesField, "by", catalog.FieldEAN, "Field to check: EAN or SKU")
	duplicatesCmd.Flags().StringVar(&duplicatesInput, "input", "", "Check a feed instead of the products table")
	duplicatesCmd.Flags().StringVar(&duplicatesProfile, "profile", "json_catalog", "Profile of the --input feed")

	RootCmd.AddCommand(duplicatesCmd)
}
