package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// csvReader reads one row per Next call; the file is never held in memory as a whole.
type csvReader struct {
	r      *csv.Reader
	header []string
	source string
	index  int
	done   bool
}

func newCSVReader(r io.Reader, opts Options) (Reader, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	// Width is validated per row to report the offending record.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, formatError(opts.Source, -1, "missing header row", nil)
	}
	if err != nil {
		return nil, formatError(opts.Source, -1, "failed to read header row", err)
	}

	seen := make(map[string]struct{}, len(header))
	names := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		h = strings.TrimSpace(h)
		if _, dup := seen[h]; dup {
			return nil, formatError(opts.Source, -1, fmt.Sprintf("duplicate header column %q", h), nil)
		}
		seen[h] = struct{}{}
		names[i] = h
	}

	return &csvReader{r: reader, header: names, source: opts.Source}, nil
}

func (c *csvReader) Next() (RawRecord, error) {
	if c.done {
		return nil, io.EOF
	}

	row, err := c.r.Read()
	if err == io.EOF {
		c.done = true
		return nil, io.EOF
	}
	if err != nil {
		c.done = true
		return nil, formatError(c.source, c.index, "failed to read row", err)
	}

	if len(row) != len(c.header) {
		c.done = true
		line, _ := c.r.FieldPos(0)
		return nil, formatError(c.source, c.index, fmt.Sprintf("line %d: row has %d fields, header has %d", line, len(row), len(c.header)), nil)
	}

	rec := make(RawRecord, len(row))
	for i, name := range c.header {
		rec[name] = row[i]
	}
	c.index++
	return rec, nil
}
