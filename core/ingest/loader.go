package ingest

import (
	"fmt"
	"io"

	"catalog-reconciler/core/reconcile"
)

// RawRecord is one flat source record keyed by its source field names.
// Values are strings, json.Number, bool or nil depending on the format.
type RawRecord map[string]any

// Reader yields raw records in source order. Next returns io.EOF after the
// last record. A Reader makes a single forward pass and cannot be rewound;
// load the source again to re-read it.
type Reader interface {
	Next() (RawRecord, error)
}

// Options configures a loader.
type Options struct {
	// Source names the input in errors and logs.
	Source string

	// Format selects the loader.
	Format reconcile.Format

	// Root is the expected XML root element (local name).
	Root string

	// Element is the XML element holding one record (local name).
	Element string

	// Delimiter is the CSV field separator. Zero means ','.
	Delimiter rune
}

// Load starts reading r with the loader selected by opts.Format.
// Structural problems detectable up front (not an array, wrong root tag,
// missing header) are reported here; record-level problems are reported by Next.
func Load(r io.Reader, opts Options) (Reader, error) {
	switch opts.Format {
	case reconcile.FormatJSON:
		return newJSONReader(r, opts)
	case reconcile.FormatXML:
		return newXMLReader(r, opts)
	case reconcile.FormatCSV:
		return newCSVReader(r, opts)
	default:
		return nil, fmt.Errorf("unsupported source format %q", opts.Format)
	}
}
