package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcher_Cascade(t *testing.T) {
	tests := []struct {
		name string
		a    map[string]Value
		b    map[string]Value
		want bool
		rule int
	}{
		{
			name: "ProductId equal wins over conflicting fields",
			a:    map[string]Value{"ProductId": Number(1), "SKU": String("A"), "EAN": String("1"), "Name": String("Chair")},
			b:    map[string]Value{"ProductId": Number(1), "SKU": String("B"), "EAN": String("2"), "Name": String("Table")},
			want: true,
			rule: 0,
		},
		{
			name: "ProductId differs even though SKU matches",
			a:    map[string]Value{"ProductId": Number(1), "SKU": String("A")},
			b:    map[string]Value{"ProductId": Number(2), "SKU": String("A")},
			want: false,
			rule: 0,
		},
		{
			name: "SKU decides when one side lacks ProductId",
			a:    map[string]Value{"ProductId": Number(1), "SKU": String("A")},
			b:    map[string]Value{"SKU": String("A")},
			want: true,
			rule: 1,
		},
		{
			name: "EAN decides",
			a:    map[string]Value{"EAN": String("5901234123457")},
			b:    map[string]Value{"EAN": Number(5901234123457)},
			want: true,
			rule: 2,
		},
		{
			name: "EAN differs, names equal",
			a:    map[string]Value{"EAN": String("1"), "Name": String("Chair")},
			b:    map[string]Value{"EAN": String("2"), "Name": String("Chair")},
			want: false,
			rule: 2,
		},
		{
			name: "Normalized name",
			a:    map[string]Value{"Name": String("Oak  Table")},
			b:    map[string]Value{"Name": String("oak table")},
			want: true,
			rule: 3,
		},
		{
			name: "Name punctuation stripped",
			a:    map[string]Value{"Name": String("Krzesło, dębowe!")},
			b:    map[string]Value{"Name": String("KRZESŁO dębowe")},
			want: true,
			rule: 3,
		},
		{
			name: "No shared fields",
			a:    map[string]Value{"SKU": String("A")},
			b:    map[string]Value{"EAN": String("1")},
			want: false,
			rule: -1,
		},
		{
			name: "Empty string is not comparable",
			a:    map[string]Value{"SKU": String("  "), "Name": String("x")},
			b:    map[string]Value{"SKU": String(""), "Name": String("X")},
			want: true,
			rule: 3,
		},
	}

	m := testMatcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := rec(tt.a), rec(tt.b)
			assert.Equal(t, tt.want, m.Match(a, b))
			assert.Equal(t, tt.want, m.Match(b, a), "match must be symmetric")
			rule, _ := m.Decide(a, b)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

// TestMatcher_ProductIdDominance tests that a shared ProductId matches regardless of other fields.
func TestMatcher_ProductIdDominance(t *testing.T) {
	m := testMatcher()
	others := []map[string]Value{
		{},
		{"SKU": String("A")},
		{"EAN": String("1"), "Name": String("x")},
		{"SKU": String("Z"), "EAN": String("9"), "Name": String("y"), "Price": Number(3)},
	}
	for _, ao := range others {
		for _, bo := range others {
			a, b := rec(ao), rec(bo)
			a.Set("ProductId", Number(42))
			b.Set("ProductId", String("42"))
			assert.True(t, m.Match(a, b))
		}
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Oak  Table", "oak table"},
		{"  chair ", "chair"},
		{"Stół\t(biały)\n", "stół biały"},
		{"A.B-C", "abc"},
		{"", ""},
		{"...", ""},
		{"STRASSE", "strasse"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeText(tt.in), tt.in)
	}
}
