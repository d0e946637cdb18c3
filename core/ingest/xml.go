package ingest

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// xmlReader streams record elements that are direct children of the root.
// Only one record element is held in memory at a time.
type xmlReader struct {
	dec     *xml.Decoder
	source  string
	element string
	index   int
	done    bool
}

func newXMLReader(r io.Reader, opts Options) (Reader, error) {
	if opts.Root == "" || opts.Element == "" {
		return nil, fmt.Errorf("xml source %q requires root and element tag names", opts.Source)
	}

	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, formatError(opts.Source, -1, "document has no root element", nil)
		}
		if err != nil {
			return nil, formatError(opts.Source, -1, "malformed XML", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != opts.Root {
			return nil, formatError(opts.Source, -1, fmt.Sprintf("unexpected root element <%s>, want <%s>", start.Name.Local, opts.Root), nil)
		}
		break
	}

	return &xmlReader{dec: dec, source: opts.Source, element: opts.Element}, nil
}

// charsetReader decodes feeds declared in legacy encodings such as windows-1250.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported XML encoding %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}

func (x *xmlReader) Next() (RawRecord, error) {
	if x.done {
		return nil, io.EOF
	}

	for {
		tok, err := x.dec.Token()
		if err != nil {
			x.done = true
			if err == io.EOF {
				return nil, formatError(x.source, x.index, "malformed XML", io.ErrUnexpectedEOF)
			}
			return nil, formatError(x.source, x.index, "malformed XML", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != x.element {
				if err := x.dec.Skip(); err != nil {
					x.done = true
					return nil, formatError(x.source, x.index, "malformed XML", err)
				}
				continue
			}
			rec, err := x.readElement(t)
			if err != nil {
				x.done = true
				return nil, formatError(x.source, x.index, "malformed XML", err)
			}
			x.index++
			return rec, nil

		case xml.EndElement:
			// End of root; the rest of the document must be well formed and empty.
			x.done = true
			if err := x.drain(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
	}
}

// readElement collects attributes and child element text of one record element.
// Child elements nested deeper than one level are skipped.
func (x *xmlReader) readElement(start xml.StartElement) (RawRecord, error) {
	rec := make(RawRecord, len(start.Attr)+8)
	for _, attr := range start.Attr {
		rec[attr.Name.Local] = attr.Value
	}

	for {
		tok, err := x.dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			text, err := x.readText()
			if err != nil {
				return nil, err
			}
			rec[t.Name.Local] = text
		case xml.EndElement:
			return rec, nil
		}
	}
}

// readText returns the character data (including CDATA sections) directly
// inside the current element and consumes its end tag.
func (x *xmlReader) readText() (string, error) {
	var sb strings.Builder
	for {
		tok, err := x.dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			if err := x.dec.Skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return sb.String(), nil
		}
	}
}

// drain reads past the root end tag, rejecting anything but comments,
// processing instructions and whitespace.
func (x *xmlReader) drain() error {
	for {
		tok, err := x.dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return formatError(x.source, -1, "malformed XML", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return formatError(x.source, -1, fmt.Sprintf("unexpected element <%s> after root", t.Name.Local), nil)
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return formatError(x.source, -1, "unexpected text after root", nil)
			}
		}
	}
}
