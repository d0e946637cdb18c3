package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"String", "abc", "abc"},
		{"Bytes", []byte("abc"), "abc"},
		{"JSONNumber", json.Number("12.50"), "12.50"},
		{"Bool", true, "true"},
		{"Float", 3.5, "3.5"},
		{"Nil", nil, ""},
		{"Int", 7, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToString(tt.in))
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12.5", 12.5, true},
		{"12,5", 12.5, true},
		{" 7 ", 7, true},
		{"-0,25", -0.25, true},
		{"1e3", 1000, true},
		{"1,234.5", 0, false},
		{"1,2,3", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToNumber(t *testing.T) {
	n, ok := ToNumber(json.Number("42"))
	assert.True(t, ok)
	assert.Equal(t, 42.0, n)

	n, ok = ToNumber("3,75")
	assert.True(t, ok)
	assert.Equal(t, 3.75, n)

	_, ok = ToNumber(true)
	assert.False(t, ok)
}
