// Package reconcile provides a generic engine for reconciling two record sources
// (a master and a supplement) into one deduplicated, canonical list.
//
// The engine is source agnostic: loaders and field mapping live elsewhere and
// hand it fully mapped records that share one Schema.
//
// # Architecture
//
// The reconcile system consists of four parts:
//
// 1. Model: Value (absent, string or number), Schema (ordered canonical fields)
//    and Record (exactly one value per schema field).
//
// 2. Matcher: an ordered rule cascade. The first rule whose field is present on
//    both records decides the outcome; later rules are never consulted.
//
// 3. Merger: master-wins field merge. A present master value always survives;
//    absent master fields take the supplement value.
//
// 4. Engine: indexes master records once per rule, pairs supplement records
//    one-to-one, and emits merged pairs, master-only and supplement-only
//    records in a deterministic order.
//
// # Performance
//
// Matching is near-linear: every rule is backed by a hash index, so a
// supplement record only inspects masters sharing one of its keys.
//
// # Usage Example
//
//	matcher := reconcile.NewMatcher(
//	    reconcile.Rule{Field: "ProductId"},
//	    reconcile.Rule{Field: "SKU"},
//	    reconcile.Rule{Field: "EAN"},
//	    reconcile.Rule{Field: "Name", Normalize: reconcile.NormalizeValue},
//	)
//
//	outcome, err := reconcile.Reconcile(
//	    reconcile.Input{Tag: masterTag, Records: masters},
//	    reconcile.Input{Tag: supplementTag, Records: supplements},
//	    matcher,
//	)
package reconcile
