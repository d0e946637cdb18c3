package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"catalog-reconciler/core/reconcile"
	"catalog-reconciler/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	masterLocation     string
	masterProfile      string
	supplementLocation string
	supplementProfile  string
	exportPath         string
	exportObject       string
	persistResult      bool
	dryRun             bool
	yesConfirm         bool
)

// reconcileCmd merges the master and supplement feeds.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Merge a master feed and a supplement feed into one product list",
	Long: `Load both feeds, match products by ProductId, SKU, EAN and normalized name,
and merge each pair with the master's values taking precedence.

Locations may be local paths, file:// or http(s):// URLs, or s3://bucket/key
objects. Unset flags fall back to the RECONCILE_* configuration.

Examples:
  # Report only
  reconcile --master suuhouse.xml --supplement mebloszyk.json

  # Write the export and replace the products table
  reconcile --master s3://feeds/suuhouse.xml --supplement mebloszyk.json \
    --export products.json --persist --yes`,
	RunE: runReconcile,
}

func init() {
	f := reconcileCmd.Flags()
	f.StringVar(&masterLocation, "master", "", "Master feed location")
	f.StringVar(&masterProfile, "master-profile", "", "Master feed profile")
	f.StringVar(&supplementLocation, "supplement", "", "Supplement feed location")
	f.StringVar(&supplementProfile, "supplement-profile", "", "Supplement feed profile")
	f.StringVar(&exportPath, "export", "", "Write the JSON export to this file (- for stdout)")
	f.StringVar(&exportObject, "export-object", "", "Upload the JSON export to this key in the storage bucket")
	f.BoolVar(&persistResult, "persist", false, "Replace the products table with the result")
	f.BoolVar(&dryRun, "dry-run", false, "Never write the products table, even with --persist")
	f.BoolVar(&yesConfirm, "yes", false, "Auto-confirm replacing the products table (non-interactive)")

	RootCmd.AddCommand(reconcileCmd)
}

// orDefault returns flag unless it is empty.
func orDefault(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.log.Sync()

	rc := a.cfg.Reconcile
	run := catalog.Run{
		Master: catalog.SourceSpec{
			Location: orDefault(masterLocation, rc.MasterLocation),
			Profile:  orDefault(masterProfile, rc.MasterProfile),
		},
		Supplement: catalog.SourceSpec{
			Location: orDefault(supplementLocation, rc.SupplementLocation),
			Profile:  orDefault(supplementProfile, rc.SupplementProfile),
		},
	}
	persist := persistResult || (rc.Persist && !cmd.Flags().Changed("persist"))

	result, err := a.service().Reconcile(ctx, run)
	if err != nil {
		return fmt.Errorf("failed to reconcile: %w", err)
	}
	printSummary(result)

	records := catalog.RecordsOf(result.Records)

	if path := orDefault(exportPath, rc.ExportPath); path != "" {
		if err := writeExport(path, records); err != nil {
			return err
		}
		a.log.Info("Export written", zap.String("path", path))
	}

	if object := orDefault(exportObject, rc.ExportObject); object != "" {
		fp, err := catalog.ExportToStorage(ctx, a.client, a.cfg.Storage.Bucket, object, records)
		if err != nil {
			return fmt.Errorf("failed to upload export: %w", err)
		}
		a.log.Info("Export uploaded",
			zap.String("bucket", a.cfg.Storage.Bucket),
			zap.String("object", object),
			zap.String("fingerprint", fp),
		)
	}

	if !persist {
		return nil
	}
	if dryRun {
		a.log.Info("Dry run: products table left unchanged", zap.Int("records", len(records)))
		return nil
	}
	if !confirmDestructiveAction(len(records)) {
		a.log.Info("Persist cancelled by user")
		return nil
	}

	store, err := a.store(ctx)
	if err != nil {
		return err
	}
	if err := store.ReplaceAll(ctx, result.Records); err != nil {
		return fmt.Errorf("failed to persist result: %w", err)
	}
	a.log.Info("Products table replaced", zap.Int("records", len(records)), zap.String("run_id", result.RunID))

	return nil
}

// writeExport writes the JSON export to path, or to stdout for "-".
func writeExport(path string, records []*reconcile.Record) error {
	if path == "-" {
		return catalog.ExportJSON(os.Stdout, records)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := catalog.ExportJSON(f, records); err != nil {
		f.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	return f.Close()
}

func printSummary(result *catalog.Result) {
	s := result.Summary
	w := io.Writer(os.Stderr)
	fmt.Fprintln(w, "\n=== Reconciliation Summary ===")
	fmt.Fprintf(w, "Run:             %s\n", result.RunID)
	fmt.Fprintf(w, "Master records:  %d\n", s.MasterRecords)
	fmt.Fprintf(w, "Supplement:      %d\n", s.SupplementRecords)
	fmt.Fprintf(w, "Matched:         %d\n", s.Matched)
	for _, field := range []string{catalog.FieldProductID, catalog.FieldSKU, catalog.FieldEAN, catalog.FieldName} {
		if n := s.MatchedBy[field]; n > 0 {
			fmt.Fprintf(w, "  by %-12s %d\n", field+":", n)
		}
	}
	fmt.Fprintf(w, "Master only:     %d\n", s.MasterOnly)
	fmt.Fprintf(w, "Supplement only: %d\n", s.SupplementOnly)
	fmt.Fprintf(w, "Output records:  %d\n", s.Total())
	fmt.Fprintf(w, "Fingerprint:     %s\n", result.Fingerprint)
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(n int) bool {
	if yesConfirm {
		fmt.Fprintln(os.Stderr, "\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprintf(os.Stderr, "\n⚠️  This replaces every row of the products table with %d records. Type 'yes' to confirm: ", n)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
