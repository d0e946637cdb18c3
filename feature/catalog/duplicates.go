package catalog

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"catalog-reconciler/core/reconcile"

	"github.com/mattn/go-runewidth"
)

// maxDuplicatePositions caps the positions listed per duplicate value.
const maxDuplicatePositions = 10

// Duplicate is one value shared by more than one record.
type Duplicate struct {
	Value string `json:"value"`
	Count int    `json:"count"`

	// Positions holds the zero-based positions of the first records carrying Value.
	Positions []int `json:"positions"`
}

// FindDuplicates reports the values of field (EAN or SKU) that occur in more
// than one record. Absent and blank values are ignored. The result is sorted
// by descending count, then by value.
func FindDuplicates(records []*reconcile.Record, field string) ([]Duplicate, error) {
	if field != FieldEAN && field != FieldSKU {
		return nil, fmt.Errorf("duplicates can be reported by %s or %s, not %q", FieldEAN, FieldSKU, field)
	}

	byValue := make(map[string]*Duplicate)
	for i, rec := range records {
		v := rec.Get(field).Text()
		if v == "" {
			continue
		}
		d, ok := byValue[v]
		if !ok {
			d = &Duplicate{Value: v}
			byValue[v] = d
		}
		d.Count++
		if len(d.Positions) < maxDuplicatePositions {
			d.Positions = append(d.Positions, i)
		}
	}

	var out []Duplicate
	for _, d := range byValue {
		if d.Count > 1 {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out, nil
}

// WriteDuplicatesTable renders duplicates as an aligned text table. Column
// widths follow display width, so wide characters stay aligned.
func WriteDuplicatesTable(w io.Writer, field string, dups []Duplicate) error {
	header := []string{field, "COUNT", "POSITIONS"}
	rows := make([][]string, 0, len(dups))
	for _, d := range dups {
		pos := make([]string, len(d.Positions))
		for i, p := range d.Positions {
			pos[i] = strconv.Itoa(p)
		}
		rows = append(rows, []string{d.Value, strconv.Itoa(d.Count), strings.Join(pos, ",")})
	}

	widths := make([]int, len(header))
	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var sb strings.Builder
	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			if i == len(row)-1 {
				sb.WriteString(cell)
				break
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			sb.WriteString("  ")
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
