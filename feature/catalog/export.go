package catalog

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"catalog-reconciler/core/reconcile"
	"catalog-reconciler/core/storage"

	"github.com/cespare/xxhash/v2"
)

// RecordsOf strips run bookkeeping from merged records.
func RecordsOf(merged []reconcile.MergedRecord) []*reconcile.Record {
	out := make([]*reconcile.Record, len(merged))
	for i := range merged {
		out[i] = merged[i].Record
	}
	return out
}

// ExportJSON writes records as one JSON array, one object per line, keys in
// canonical schema order and absent values as null. Identical input gives
// identical bytes.
func ExportJSON(w io.Writer, records []*reconcile.Record) error {
	bw := bufio.NewWriter(w)

	if len(records) == 0 {
		if _, err := bw.WriteString("[]\n"); err != nil {
			return err
		}
		return bw.Flush()
	}

	if _, err := bw.WriteString("[\n"); err != nil {
		return err
	}
	for i, rec := range records {
		data, err := rec.MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to encode record %d: %w", i, err)
		}
		bw.WriteString("  ")
		bw.Write(data)
		if i < len(records)-1 {
			bw.WriteByte(',')
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("]\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// Fingerprint returns the xxhash of the JSON export of records as 16 hex digits.
func Fingerprint(records []*reconcile.Record) (string, error) {
	d := xxhash.New()
	if err := ExportJSON(d, records); err != nil {
		return "", err
	}
	return formatFingerprint(d.Sum64()), nil
}

func formatFingerprint(sum uint64) string {
	s := strconv.FormatUint(sum, 16)
	for len(s) < 16 {
		s = "0" + s
	}
	return s
}

// ExportToStorage uploads the JSON export of records to bucket/objectName and
// returns its fingerprint.
func ExportToStorage(ctx context.Context, client storage.Client, bucket, objectName string, records []*reconcile.Record) (string, error) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, records); err != nil {
		return "", err
	}
	if err := storage.Upload(ctx, client, bucket, objectName, buf.Bytes(), "application/json"); err != nil {
		return "", err
	}
	return formatFingerprint(xxhash.Sum64(buf.Bytes())), nil
}
