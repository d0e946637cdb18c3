package catalog

import (
	"fmt"
	"os"
	"sort"

	"catalog-reconciler/core/ingest"
	"catalog-reconciler/core/reconcile"

	"gopkg.in/yaml.v3"
)

// Profile describes one source layout: its encoding and how its field names
// map onto the canonical schema.
type Profile struct {
	// Name identifies the profile in run configuration.
	Name string `yaml:"name"`

	// Format selects the loader.
	Format reconcile.Format `yaml:"format"`

	// Fields maps external field names to canonical field names.
	Fields map[string]string `yaml:"fields"`

	// Root and Element are the XML root and record tag names.
	Root    string `yaml:"root,omitempty"`
	Element string `yaml:"element,omitempty"`

	// Delimiter is the CSV field separator. Empty means ','.
	Delimiter string `yaml:"delimiter,omitempty"`

	// EmptyAsAbsent maps blank strings to absent values.
	EmptyAsAbsent bool `yaml:"empty_as_absent,omitempty"`
}

// Validate checks that the profile can drive a loader and the mapper.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile has no name")
	}
	if !p.Format.IsValid() {
		return fmt.Errorf("profile %s: unsupported format %q", p.Name, p.Format)
	}
	if p.Format == reconcile.FormatXML && (p.Root == "" || p.Element == "") {
		return fmt.Errorf("profile %s: xml profiles need root and element", p.Name)
	}
	if len([]rune(p.Delimiter)) > 1 {
		return fmt.Errorf("profile %s: delimiter %q is not a single character", p.Name, p.Delimiter)
	}
	if len(p.Fields) == 0 {
		return fmt.Errorf("profile %s: no field mappings", p.Name)
	}
	targets := make(map[string]string, len(p.Fields))
	for external, canonical := range p.Fields {
		if !Schema.Has(canonical) {
			return fmt.Errorf("profile %s: field %q targets unknown canonical field %q", p.Name, external, canonical)
		}
		if prev, dup := targets[canonical]; dup {
			return fmt.Errorf("profile %s: fields %q and %q both target %q", p.Name, prev, external, canonical)
		}
		targets[canonical] = external
	}
	return nil
}

// LoaderOptions returns the ingest options for a source read with this profile.
func (p Profile) LoaderOptions() ingest.Options {
	opts := ingest.Options{
		Source:  p.Name,
		Format:  p.Format,
		Root:    p.Root,
		Element: p.Element,
	}
	if r := []rune(p.Delimiter); len(r) == 1 {
		opts.Delimiter = r[0]
	}
	return opts
}

// polishKeys maps the Polish master-data keys of the product editor to canonical fields.
var polishKeys = map[string]string{
	"ID_produktu":           FieldProductID,
	"Tryb":                  FieldMode,
	"Status_produktu":       FieldProductStatus,
	"SKU":                   FieldSKU,
	"Nazwa":                 FieldName,
	"URL_Miniatura":         FieldThumbnailURL,
	"Rodzaj_produktu":       FieldProductType,
	"Grupa_produktu":        FieldProductGroup,
	"EAN":                   FieldEAN,
	"JM_sprzedazy":          FieldSalesUnit,
	"Waga_brutto":           FieldGrossWeight,
	"JM_wagi":               FieldWeightUnit,
	"Dlugosc":               FieldLength,
	"Szerokosc":             FieldWidth,
	"Wysokosc":              FieldHeight,
	"JM_wymiaru":            FieldDimensionUnit,
	"Objetosc_produktu":     FieldVolume,
	"JM_objetosci":          FieldVolumeUnit,
	"Rodzaj_opakowania":     FieldPackagingType,
	"ID_producenta":         FieldManufacturerID,
	"Nazwa_producenta":      FieldManufacturerName,
	"Cena_zakupu_netto":     FieldNetPurchasePrice,
	"Cena_zakupu_brutto":    FieldGrossPurchasePrice,
	"Waluta_zakupu":         FieldPurchaseCurrency,
	"Nazwa_Cennika":         FieldPriceListName,
	"Cena_sprzedazy_netto":  FieldNetSalePrice,
	"Cena_sprzedazy_brutto": FieldGrossSalePrice,
	"Waluta_sprzedazy":      FieldSaleCurrency,
	"Stan_magazynowy":       FieldStockQuantity,
	"Rezerwacja":            FieldReserved,
	"Dostepnosc":            FieldAvailability,
}

// suuhouseTags maps the supplier XML tags to canonical fields.
var suuhouseTags = map[string]string{
	"Id_produktu":     FieldProductID,
	"Nr_katalogowy":   FieldSKU,
	"Nazwa_produktu":  FieldName,
	"Kod_ean":         FieldEAN,
	"Producent":       FieldManufacturerName,
	"Waga":            FieldGrossWeight,
	"Cena_brutto":     FieldGrossSalePrice,
	"Cena_netto":      FieldNetSalePrice,
	"Cena_zakupu":     FieldGrossPurchasePrice,
	"Ilosc_produktow": FieldStockQuantity,
	"Jednostka_miary": FieldSalesUnit,
	"Dostepnosc":      FieldAvailability,
	"Kategorie_id":    FieldProductGroup,
}

func identityFields() map[string]string {
	fields := make(map[string]string, Schema.Len())
	for _, f := range Schema.Fields() {
		fields[f] = f
	}
	return fields
}

func copyFields(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// BuiltinProfiles returns the profiles shipped with the tool.
func BuiltinProfiles() []Profile {
	return []Profile{
		{
			Name:   "json_mebloszyk",
			Format: reconcile.FormatJSON,
			Fields: copyFields(polishKeys),
		},
		{
			Name:          "xml_suuhouse",
			Format:        reconcile.FormatXML,
			Fields:        copyFields(suuhouseTags),
			Root:          "Produkty",
			Element:       "Produkt",
			EmptyAsAbsent: true,
		},
		{
			Name:   "csv_catalog",
			Format: reconcile.FormatCSV,
			Fields: identityFields(),
		},
		{
			Name:   "json_catalog",
			Format: reconcile.FormatJSON,
			Fields: identityFields(),
		},
	}
}

// Registry resolves profiles by name.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry creates a registry holding the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]Profile)}
	for _, p := range BuiltinProfiles() {
		r.profiles[p.Name] = p
	}
	return r
}

// Register adds or replaces a profile after validating it.
func (r *Registry) Register(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.profiles[p.Name] = p
	return nil
}

// Get returns the profile registered under name.
func (r *Registry) Get(name string) (Profile, error) {
	p, ok := r.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q", name)
	}
	return p, nil
}

// Profiles returns all registered profiles sorted by name.
func (r *Registry) Profiles() []Profile {
	out := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type profilesFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// LoadProfiles registers the profiles declared in a YAML file:
//
//	profiles:
//	  - name: csv_supplier
//	    format: csv
//	    delimiter: ";"
//	    fields:
//	      Kod: SKU
//	      Nazwa: Name
func (r *Registry) LoadProfiles(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read profiles file: %w", err)
	}
	return r.ParseProfiles(data)
}

// ParseProfiles registers the profiles declared in YAML data.
func (r *Registry) ParseProfiles(data []byte) error {
	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse profiles: %w", err)
	}
	for _, p := range file.Profiles {
		if err := r.Register(p); err != nil {
			return err
		}
	}
	return nil
}
