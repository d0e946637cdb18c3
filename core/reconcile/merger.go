package reconcile

// Merge combines a matched pair. For every field the master value is kept when
// present; otherwise the supplement value is taken, present or absent.
// Neither input is modified.
func Merge(master, supplement *Record, masterRef, supplementRef SourceRef) MergedRecord {
	out := master.Clone()
	for i := range out.values {
		if !out.values[i].IsPresent() {
			out.values[i] = supplement.Get(out.schema.fields[i])
		}
	}
	return MergedRecord{
		Record:     out,
		MergedFrom: []SourceRef{masterRef, supplementRef},
	}
}

// Passthrough wraps an unmatched record unchanged.
func Passthrough(rec *Record, ref SourceRef) MergedRecord {
	return MergedRecord{
		Record:     rec.Clone(),
		MergedFrom: []SourceRef{ref},
	}
}
