package reconcile

import (
	"fmt"
)

// Input is one side of a reconciliation: its tag and mapped records in source order.
type Input struct {
	Tag     SourceTag
	Records []*Record
}

// Outcome is the result of Reconcile.
type Outcome struct {
	// Records holds merged pairs, then master-only, then supplement-only records.
	Records []MergedRecord

	// Summary provides aggregate counts.
	Summary Summary
}

// ruleIndex maps a rule's comparison key to master positions in input order.
type ruleIndex map[string][]int

// Reconcile pairs supplement records with master records and merges each pair.
//
// Master records are indexed once per rule. Each supplement record, in input
// order, probes the indices in rule order and takes the first unconsumed master
// candidate the matcher accepts. Pairing is one-to-one.
//
// The output is deterministic: merged pairs ordered by master position, then
// unmatched master records, then unmatched supplement records, each in input order.
func Reconcile(master, supplement Input, matcher *Matcher) (*Outcome, error) {
	if master.Tag.Role != RoleMaster {
		return nil, fmt.Errorf("first input must have role %q, got %q", RoleMaster, master.Tag.Role)
	}
	if supplement.Tag.Role != RoleSupplement {
		return nil, fmt.Errorf("second input must have role %q, got %q", RoleSupplement, supplement.Tag.Role)
	}
	if err := sameSchema(master.Records, supplement.Records); err != nil {
		return nil, err
	}

	rules := matcher.Rules()
	indices := buildIndices(master.Records, rules)

	pairOf := make([]int, len(master.Records))
	for i := range pairOf {
		pairOf[i] = -1
	}
	supplementPaired := make([]bool, len(supplement.Records))
	matchedBy := make(map[string]int)

	for si, srec := range supplement.Records {
		mi, rule := findPartner(srec, master.Records, rules, indices, pairOf, matcher)
		if mi < 0 {
			continue
		}
		pairOf[mi] = si
		supplementPaired[si] = true
		matchedBy[rules[rule].Field]++
	}

	out := &Outcome{
		Records: make([]MergedRecord, 0, len(master.Records)+len(supplement.Records)),
		Summary: Summary{
			MasterRecords:     len(master.Records),
			SupplementRecords: len(supplement.Records),
			MatchedBy:         matchedBy,
		},
	}

	// Merged pairs
	for mi, si := range pairOf {
		if si < 0 {
			continue
		}
		out.Records = append(out.Records, Merge(
			master.Records[mi], supplement.Records[si],
			SourceRef{Tag: master.Tag, Index: mi},
			SourceRef{Tag: supplement.Tag, Index: si},
		))
		out.Summary.Matched++
	}

	// Master-only
	for mi, si := range pairOf {
		if si >= 0 {
			continue
		}
		out.Records = append(out.Records, Passthrough(master.Records[mi], SourceRef{Tag: master.Tag, Index: mi}))
		out.Summary.MasterOnly++
	}

	// Supplement-only
	for si, paired := range supplementPaired {
		if paired {
			continue
		}
		out.Records = append(out.Records, Passthrough(supplement.Records[si], SourceRef{Tag: supplement.Tag, Index: si}))
		out.Summary.SupplementOnly++
	}

	return out, nil
}

// buildIndices creates one index per rule over the master records.
func buildIndices(records []*Record, rules []Rule) []ruleIndex {
	indices := make([]ruleIndex, len(rules))
	for ri, rule := range rules {
		idx := make(ruleIndex)
		for mi, rec := range records {
			if key := rule.key(rec); key != "" {
				idx[key] = append(idx[key], mi)
			}
		}
		indices[ri] = idx
	}
	return indices
}

// findPartner returns the master position paired with srec and the deciding rule,
// or -1 when srec stays unmatched. Any master the matcher accepts shares a key
// with srec under the deciding rule, so probing the rule buckets finds it.
func findPartner(srec *Record, masters []*Record, rules []Rule, indices []ruleIndex, pairOf []int, matcher *Matcher) (int, int) {
	for ri, rule := range rules {
		key := rule.key(srec)
		if key == "" {
			continue
		}
		for _, mi := range indices[ri][key] {
			if pairOf[mi] >= 0 {
				continue
			}
			if decided, ok := matcher.Decide(masters[mi], srec); ok && decided == ri {
				return mi, ri
			}
		}
	}
	return -1, -1
}

// sameSchema ensures all records share one schema.
func sameSchema(sets ...[]*Record) error {
	var schema *Schema
	for _, set := range sets {
		for _, rec := range set {
			if schema == nil {
				schema = rec.schema
				continue
			}
			if rec.schema != schema {
				return fmt.Errorf("records use different schemas")
			}
		}
	}
	return nil
}
