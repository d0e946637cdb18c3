package catalog

import (
	"fmt"

	"catalog-reconciler/core/reconcile"
)

// TableProducts is the table holding the canonical product list.
const TableProducts = "products"

// Product is one row of the products table. Nil pointers are NULL and stand
// for absent values.
type Product struct {
	ID     uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Source string `gorm:"column:source;type:varchar(20);not null"`

	ProductID          *float64 `gorm:"column:product_id"`
	Mode               *string  `gorm:"column:mode;type:text"`
	ProductStatus      *string  `gorm:"column:product_status;type:text"`
	SKU                *string  `gorm:"column:sku;type:text"`
	Name               *string  `gorm:"column:name;type:text"`
	ThumbnailURL       *string  `gorm:"column:thumbnail_url;type:text"`
	ProductType        *string  `gorm:"column:product_type;type:text"`
	ProductGroup       *string  `gorm:"column:product_group;type:text"`
	EAN                *string  `gorm:"column:ean;type:text"`
	SalesUnit          *string  `gorm:"column:sales_unit;type:text"`
	GrossWeight        *float64 `gorm:"column:gross_weight"`
	WeightUnit         *string  `gorm:"column:weight_unit;type:text"`
	Length             *float64 `gorm:"column:length"`
	Width              *float64 `gorm:"column:width"`
	Height             *float64 `gorm:"column:height"`
	DimensionUnit      *string  `gorm:"column:dimension_unit;type:text"`
	Volume             *float64 `gorm:"column:volume"`
	VolumeUnit         *string  `gorm:"column:volume_unit;type:text"`
	PackagingType      *string  `gorm:"column:packaging_type;type:text"`
	ManufacturerID     *float64 `gorm:"column:manufacturer_id"`
	ManufacturerName   *string  `gorm:"column:manufacturer_name;type:text"`
	NetPurchasePrice   *float64 `gorm:"column:net_purchase_price"`
	GrossPurchasePrice *float64 `gorm:"column:gross_purchase_price"`
	PurchaseCurrency   *string  `gorm:"column:purchase_currency;type:text"`
	PriceListName      *string  `gorm:"column:price_list_name;type:text"`
	NetSalePrice       *float64 `gorm:"column:net_sale_price"`
	GrossSalePrice     *float64 `gorm:"column:gross_sale_price"`
	SaleCurrency       *string  `gorm:"column:sale_currency;type:text"`
	StockQuantity      *float64 `gorm:"column:stock_quantity"`
	Reserved           *float64 `gorm:"column:reserved"`
	Availability       *string  `gorm:"column:availability;type:text"`
}

// TableName overrides the table name.
func (Product) TableName() string {
	return TableProducts
}

// columns binds canonical fields to the row's storage slots.
// Exactly one of text or num is set per field.
type column struct {
	field string
	name  string
	text  **string
	num   **float64
}

func (p *Product) columns() []column {
	return []column{
		{field: FieldProductID, name: "product_id", num: &p.ProductID},
		{field: FieldMode, name: "mode", text: &p.Mode},
		{field: FieldProductStatus, name: "product_status", text: &p.ProductStatus},
		{field: FieldSKU, name: "sku", text: &p.SKU},
		{field: FieldName, name: "name", text: &p.Name},
		{field: FieldThumbnailURL, name: "thumbnail_url", text: &p.ThumbnailURL},
		{field: FieldProductType, name: "product_type", text: &p.ProductType},
		{field: FieldProductGroup, name: "product_group", text: &p.ProductGroup},
		{field: FieldEAN, name: "ean", text: &p.EAN},
		{field: FieldSalesUnit, name: "sales_unit", text: &p.SalesUnit},
		{field: FieldGrossWeight, name: "gross_weight", num: &p.GrossWeight},
		{field: FieldWeightUnit, name: "weight_unit", text: &p.WeightUnit},
		{field: FieldLength, name: "length", num: &p.Length},
		{field: FieldWidth, name: "width", num: &p.Width},
		{field: FieldHeight, name: "height", num: &p.Height},
		{field: FieldDimensionUnit, name: "dimension_unit", text: &p.DimensionUnit},
		{field: FieldVolume, name: "volume", num: &p.Volume},
		{field: FieldVolumeUnit, name: "volume_unit", text: &p.VolumeUnit},
		{field: FieldPackagingType, name: "packaging_type", text: &p.PackagingType},
		{field: FieldManufacturerID, name: "manufacturer_id", num: &p.ManufacturerID},
		{field: FieldManufacturerName, name: "manufacturer_name", text: &p.ManufacturerName},
		{field: FieldNetPurchasePrice, name: "net_purchase_price", num: &p.NetPurchasePrice},
		{field: FieldGrossPurchasePrice, name: "gross_purchase_price", num: &p.GrossPurchasePrice},
		{field: FieldPurchaseCurrency, name: "purchase_currency", text: &p.PurchaseCurrency},
		{field: FieldPriceListName, name: "price_list_name", text: &p.PriceListName},
		{field: FieldNetSalePrice, name: "net_sale_price", num: &p.NetSalePrice},
		{field: FieldGrossSalePrice, name: "gross_sale_price", num: &p.GrossSalePrice},
		{field: FieldSaleCurrency, name: "sale_currency", text: &p.SaleCurrency},
		{field: FieldStockQuantity, name: "stock_quantity", num: &p.StockQuantity},
		{field: FieldReserved, name: "reserved", num: &p.Reserved},
		{field: FieldAvailability, name: "availability", text: &p.Availability},
	}
}

// ColumnNames returns the table's column names, bookkeeping columns first.
func ColumnNames() []string {
	cols := (&Product{}).columns()
	names := make([]string, 0, len(cols)+2)
	names = append(names, "id", "source")
	for _, c := range cols {
		names = append(names, c.name)
	}
	return names
}

// NewProduct converts a record into a row. A string in a numeric field is
// rejected since the column cannot hold it.
func NewProduct(rec *reconcile.Record, source string) (*Product, error) {
	p := &Product{Source: source}
	for _, c := range p.columns() {
		v := rec.Get(c.field)
		if !v.IsPresent() {
			continue
		}
		if c.num != nil {
			n, ok := v.Num()
			if !ok {
				return nil, fmt.Errorf("field %s: value %s is not numeric", c.field, v)
			}
			*c.num = &n
			continue
		}
		s := v.Text()
		*c.text = &s
	}
	return p, nil
}

// Record converts the row back into a unified record.
func (p *Product) Record() *reconcile.Record {
	rec := Schema.NewRecord()
	for _, c := range p.columns() {
		switch {
		case c.num != nil && *c.num != nil:
			rec.Set(c.field, reconcile.Number(**c.num))
		case c.text != nil && *c.text != nil:
			rec.Set(c.field, reconcile.String(**c.text))
		}
	}
	return rec
}
