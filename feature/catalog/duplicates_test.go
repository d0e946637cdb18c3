package catalog

import (
	"bytes"
	"strings"
	"testing"

	"catalog-reconciler/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDuplicates(t *testing.T) {
	var recs []*reconcile.Record
	for i := 0; i < 12; i++ {
		recs = append(recs, product(map[string]reconcile.Value{FieldEAN: reconcile.String("111")}))
	}
	recs = append(recs,
		product(map[string]reconcile.Value{FieldEAN: reconcile.String("222")}),
		product(map[string]reconcile.Value{FieldEAN: reconcile.String(" 222 ")}),
		product(map[string]reconcile.Value{FieldEAN: reconcile.String("333")}),
		product(map[string]reconcile.Value{FieldEAN: reconcile.String("")}),
		product(map[string]reconcile.Value{FieldEAN: reconcile.String("")}),
		product(nil),
		product(nil),
	)

	dups, err := FindDuplicates(recs, FieldEAN)
	require.NoError(t, err)
	require.Len(t, dups, 2)

	assert.Equal(t, "111", dups[0].Value)
	assert.Equal(t, 12, dups[0].Count)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, dups[0].Positions)

	assert.Equal(t, Duplicate{Value: "222", Count: 2, Positions: []int{12, 13}}, dups[1])

	_, err = FindDuplicates(recs, FieldName)
	assert.Error(t, err)
}

func TestWriteDuplicatesTable(t *testing.T) {
	dups := []Duplicate{
		{Value: "ŁÓŻKO-1", Count: 3, Positions: []int{0, 4, 9}},
		{Value: "家具", Count: 2, Positions: []int{1, 2}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDuplicatesTable(&buf, FieldSKU, dups))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "SKU      COUNT  POSITIONS", lines[0])
	assert.Equal(t, "ŁÓŻKO-1  3      0,4,9", lines[1])
	assert.Equal(t, "家具     2      1,2", lines[2])
}
