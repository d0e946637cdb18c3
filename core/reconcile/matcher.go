package reconcile

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Rule is one step of the match cascade. A rule applies to a pair of records
// only when the normalized field is non-empty on both sides.
type Rule struct {
	// Field is the canonical field the rule compares.
	Field string

	// Normalize turns a value into its comparison key. Nil means Value.Text.
	Normalize func(Value) string
}

// key returns the rule's comparison key for a record, or "" when the rule does not apply.
func (r Rule) key(rec *Record) string {
	v := rec.Get(r.Field)
	if !v.IsPresent() {
		return ""
	}
	if r.Normalize != nil {
		return r.Normalize(v)
	}
	return v.Text()
}

// Matcher decides whether two records denote the same entity using an ordered
// rule cascade. The first rule that applies to both records decides the outcome.
type Matcher struct {
	rules []Rule
}

// NewMatcher creates a matcher with rules in precedence order.
func NewMatcher(rules ...Rule) *Matcher {
	rs := make([]Rule, len(rules))
	copy(rs, rules)
	return &Matcher{rules: rs}
}

// Rules returns the cascade in precedence order.
func (m *Matcher) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	copy(out, m.rules)
	return out
}

// Match reports whether a and b denote the same entity.
func (m *Matcher) Match(a, b *Record) bool {
	_, ok := m.Decide(a, b)
	return ok
}

// Decide returns the index of the deciding rule and the outcome.
// It returns -1 and false when no rule applies to both records.
func (m *Matcher) Decide(a, b *Record) (int, bool) {
	for i, rule := range m.rules {
		ka, kb := rule.key(a), rule.key(b)
		if ka == "" || kb == "" {
			continue
		}
		return i, ka == kb
	}
	return -1, false
}

// NormalizeText case-folds s, strips punctuation, collapses whitespace runs
// into a single space and trims the result.
func NormalizeText(s string) string {
	folded := cases.Fold().String(s)
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, folded)
	return strings.Join(strings.Fields(stripped), " ")
}

// NormalizeValue applies NormalizeText to a value's text form.
func NormalizeValue(v Value) string {
	return NormalizeText(v.Text())
}
