// Package ingest loads raw records from product feeds.
//
// Three loaders share one contract: Load wraps an io.Reader and returns a
// Reader whose Next method yields one RawRecord at a time until io.EOF.
//
//   - JSON: a top-level array of flat objects, decoded element by element.
//   - XML: a fixed root/element tag pair; each element's child tags become keys.
//     The document is tokenized, never materialized.
//   - CSV: a header row followed by data rows, read line by line.
//
// Malformed input yields a *SourceFormatError naming the source and the
// zero-based record index. It matches ErrSourceFormat with errors.Is.
//
// # Locations
//
// Opener turns a location string into a stream: local paths, file:// URLs,
// http(s) URLs and s3://bucket/key objects served by core/storage.
//
// # Usage
//
//	rc, err := opener.Open(ctx, "s3://feeds/suuhouse.xml")
//	defer rc.Close()
//	r, err := ingest.Load(rc, ingest.Options{Source: "xml_suuhouse", Format: reconcile.FormatXML, Root: "Produkty", Element: "Produkt"})
//	for {
//	    raw, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    ...
//	}
package ingest
