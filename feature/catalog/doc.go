// Package catalog implements product-catalog reconciliation.
//
// A run reads a master feed and a supplement feed, maps both into the unified
// product schema, pairs records describing the same product and merges each
// pair with the master's values taking precedence. The result can be exported
// as JSON, uploaded to object storage, or persisted into the products table.
//
// # Profiles
//
// A Profile names a feed layout: its encoding (json, xml, csv), the XML
// root/element tags or CSV delimiter, and the mapping from the feed's field
// names to canonical fields. Built-in profiles:
//
//   - json_mebloszyk: master-data JSON with Polish keys (ID_produktu, Nazwa, ...)
//   - xml_suuhouse: supplier XML, root <Produkty>, one <Produkt> per product
//   - csv_catalog: CSV with canonical English headers
//   - json_catalog: JSON with canonical keys, e.g. a previous export
//
// More profiles can be declared in a YAML file and loaded with Registry.LoadProfiles.
//
// # Matching
//
// Records match by ProductId, then SKU, then EAN, then normalized Name. The
// first field present on both records decides; later fields are not consulted.
//
// # Components
//
//   - Mapper: raw record to unified record, numeric coercion.
//   - Service: the pipeline; both feeds load concurrently.
//   - ExportJSON / ExportToStorage: deterministic JSON export.
//   - Store: products table with full-replace semantics.
//   - FindDuplicates: EAN or SKU values shared by several records.
package catalog
