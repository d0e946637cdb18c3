package ingest

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"catalog-reconciler/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readAll drains a reader, returning the records read before any error.
func readAll(r Reader) ([]RawRecord, error) {
	var out []RawRecord
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

func load(t *testing.T, input string, opts Options) ([]RawRecord, error) {
	t.Helper()
	r, err := Load(strings.NewReader(input), opts)
	if err != nil {
		return nil, err
	}
	return readAll(r)
}

func requireFormatError(t *testing.T, err error, index int) *SourceFormatError {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceFormat))
	var sfe *SourceFormatError
	require.True(t, errors.As(err, &sfe))
	assert.Equal(t, index, sfe.Index)
	return sfe
}

func TestLoadJSON(t *testing.T) {
	opts := Options{Source: "json_test", Format: reconcile.FormatJSON}

	t.Run("ArrayOfObjects", func(t *testing.T) {
		recs, err := load(t, `[{"Id": 1, "SKU": "A", "Active": true, "EAN": null}, {"Name": "Chair"}]`, opts)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, json.Number("1"), recs[0]["Id"])
		assert.Equal(t, "A", recs[0]["SKU"])
		assert.Equal(t, true, recs[0]["Active"])
		assert.Contains(t, recs[0], "EAN")
		assert.Nil(t, recs[0]["EAN"])
		assert.Equal(t, "Chair", recs[1]["Name"])
	})

	t.Run("EmptyArray", func(t *testing.T) {
		recs, err := load(t, ` [ ] `, opts)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("NotAnArray", func(t *testing.T) {
		_, err := load(t, `{"Id": 1}`, opts)
		sfe := requireFormatError(t, err, -1)
		assert.Contains(t, sfe.Reason, "not an array")
		assert.Equal(t, "json_test", sfe.Source)
	})

	t.Run("ElementNotObject", func(t *testing.T) {
		recs, err := load(t, `[{"Id": 1}, 42]`, opts)
		assert.Len(t, recs, 1)
		sfe := requireFormatError(t, err, 1)
		assert.Contains(t, sfe.Reason, "not an object")
	})

	t.Run("NestedElement", func(t *testing.T) {
		_, err := load(t, `[{"Id": 1, "Tags": ["a"]}]`, opts)
		sfe := requireFormatError(t, err, 0)
		assert.Contains(t, sfe.Reason, `"Tags"`)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := load(t, `[{"Id": 1}, {"Id":`, opts)
		requireFormatError(t, err, 1)
	})

	t.Run("TrailingData", func(t *testing.T) {
		_, err := load(t, `[] []`, opts)
		requireFormatError(t, err, -1)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := load(t, `not json`, opts)
		requireFormatError(t, err, -1)
	})
}

const suuhouseXML = `<?xml version="1.0" encoding="UTF-8"?>
<Produkty xmlns="http://example.com/feed">
  <!-- export -->
  <Produkt>
    <Id_produktu>1</Id_produktu>
    <Nazwa_produktu><![CDATA[Krzesło <dębowe> & stół]]></Nazwa_produktu>
    <Kod_ean></Kod_ean>
  </Produkt>
  <Kategoria>skipped</Kategoria>
  <Produkt code="X-2">
    <Nr_katalogowy>B&amp;C</Nr_katalogowy>
    <Opis><p>nested</p>text</Opis>
  </Produkt>
</Produkty>
`

func TestLoadXML(t *testing.T) {
	opts := Options{Source: "xml_test", Format: reconcile.FormatXML, Root: "Produkty", Element: "Produkt"}

	t.Run("Elements", func(t *testing.T) {
		recs, err := load(t, suuhouseXML, opts)
		require.NoError(t, err)
		require.Len(t, recs, 2)

		assert.Equal(t, "1", recs[0]["Id_produktu"])
		assert.Equal(t, "Krzesło <dębowe> & stół", recs[0]["Nazwa_produktu"])
		assert.Equal(t, "", recs[0]["Kod_ean"])

		assert.Equal(t, "B&C", recs[1]["Nr_katalogowy"])
		assert.Equal(t, "X-2", recs[1]["code"])
		assert.Equal(t, "text", recs[1]["Opis"])
	})

	t.Run("UnexpectedRoot", func(t *testing.T) {
		_, err := load(t, `<Products><Product/></Products>`, opts)
		sfe := requireFormatError(t, err, -1)
		assert.Contains(t, sfe.Reason, "unexpected root")
	})

	t.Run("Malformed", func(t *testing.T) {
		recs, err := load(t, `<Produkty><Produkt><SKU>A</SKU></Produkt><Produkt><SKU>B</Produkt></Produkty>`, opts)
		assert.Len(t, recs, 1)
		requireFormatError(t, err, 1)
	})

	t.Run("Unterminated", func(t *testing.T) {
		_, err := load(t, `<Produkty><Produkt><SKU>A</SKU></Produkt>`, opts)
		requireFormatError(t, err, 1)
	})

	t.Run("ContentAfterRoot", func(t *testing.T) {
		_, err := load(t, `<Produkty></Produkty><Produkty></Produkty>`, opts)
		requireFormatError(t, err, -1)
	})

	t.Run("EmptyDocument", func(t *testing.T) {
		_, err := load(t, ``, opts)
		requireFormatError(t, err, -1)
	})

	t.Run("LegacyCharset", func(t *testing.T) {
		// "Stół" in windows-1250
		doc := "<?xml version=\"1.0\" encoding=\"windows-1250\"?><Produkty><Produkt><Nazwa_produktu>St\xf3\xb3</Nazwa_produktu></Produkt></Produkty>"
		recs, err := load(t, doc, opts)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "Stół", recs[0]["Nazwa_produktu"])
	})

	t.Run("MissingTags", func(t *testing.T) {
		_, err := Load(strings.NewReader(suuhouseXML), Options{Format: reconcile.FormatXML})
		assert.Error(t, err)
	})
}

func TestLoadCSV(t *testing.T) {
	opts := Options{Source: "csv_test", Format: reconcile.FormatCSV}

	t.Run("HeaderAndRows", func(t *testing.T) {
		recs, err := load(t, "\ufeffSKU, Name ,EAN\nA,\"Oak, Table\",\n\nB,Chair,590\n", opts)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, RawRecord{"SKU": "A", "Name": "Oak, Table", "EAN": ""}, recs[0])
		assert.Equal(t, RawRecord{"SKU": "B", "Name": "Chair", "EAN": "590"}, recs[1])
	})

	t.Run("Delimiter", func(t *testing.T) {
		recs, err := load(t, "SKU;Price\nA;12,5\n", Options{Source: "csv_test", Format: reconcile.FormatCSV, Delimiter: ';'})
		require.NoError(t, err)
		assert.Equal(t, RawRecord{"SKU": "A", "Price": "12,5"}, recs[0])
	})

	t.Run("RowWidthMismatch", func(t *testing.T) {
		recs, err := load(t, "a,b,c\n1,2,3\n4,5\n6,7,8\n", opts)
		assert.Len(t, recs, 1)
		sfe := requireFormatError(t, err, 1)
		assert.Contains(t, sfe.Reason, "line 3")
		assert.Contains(t, sfe.Error(), `source "csv_test": record 1`)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		_, err := load(t, "", opts)
		requireFormatError(t, err, -1)
	})

	t.Run("DuplicateHeader", func(t *testing.T) {
		_, err := load(t, "SKU,SKU\n1,2\n", opts)
		requireFormatError(t, err, -1)
	})
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	_, err := Load(strings.NewReader(""), Options{Format: "yaml"})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrSourceFormat))
}

// TestLoad_SingleForwardPass tests that an exhausted reader keeps returning io.EOF.
func TestLoad_SingleForwardPass(t *testing.T) {
	r, err := Load(strings.NewReader(`[{"a":"1"}]`), Options{Format: reconcile.FormatJSON})
	require.NoError(t, err)

	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}
