package catalog

import "catalog-reconciler/core/reconcile"

// Canonical field names, in schema order.
const (
	FieldProductID          = "ProductId"
	FieldMode               = "Mode"
	FieldProductStatus      = "ProductStatus"
	FieldSKU                = "SKU"
	FieldName               = "Name"
	FieldThumbnailURL       = "ThumbnailUrl"
	FieldProductType        = "ProductType"
	FieldProductGroup       = "ProductGroup"
	FieldEAN                = "EAN"
	FieldSalesUnit          = "SalesUnit"
	FieldGrossWeight        = "GrossWeight"
	FieldWeightUnit         = "WeightUnit"
	FieldLength             = "Length"
	FieldWidth              = "Width"
	FieldHeight             = "Height"
	FieldDimensionUnit      = "DimensionUnit"
	FieldVolume             = "Volume"
	FieldVolumeUnit         = "VolumeUnit"
	FieldPackagingType      = "PackagingType"
	FieldManufacturerID     = "ManufacturerId"
	FieldManufacturerName   = "ManufacturerName"
	FieldNetPurchasePrice   = "NetPurchasePrice"
	FieldGrossPurchasePrice = "GrossPurchasePrice"
	FieldPurchaseCurrency   = "PurchaseCurrency"
	FieldPriceListName      = "PriceListName"
	FieldNetSalePrice       = "NetSalePrice"
	FieldGrossSalePrice     = "GrossSalePrice"
	FieldSaleCurrency       = "SaleCurrency"
	FieldStockQuantity      = "StockQuantity"
	FieldReserved           = "Reserved"
	FieldAvailability       = "Availability"
)

// Schema is the unified product schema.
var Schema = reconcile.NewSchema(
	FieldProductID,
	FieldMode,
	FieldProductStatus,
	FieldSKU,
	FieldName,
	FieldThumbnailURL,
	FieldProductType,
	FieldProductGroup,
	FieldEAN,
	FieldSalesUnit,
	FieldGrossWeight,
	FieldWeightUnit,
	FieldLength,
	FieldWidth,
	FieldHeight,
	FieldDimensionUnit,
	FieldVolume,
	FieldVolumeUnit,
	FieldPackagingType,
	FieldManufacturerID,
	FieldManufacturerName,
	FieldNetPurchasePrice,
	FieldGrossPurchasePrice,
	FieldPurchaseCurrency,
	FieldPriceListName,
	FieldNetSalePrice,
	FieldGrossSalePrice,
	FieldSaleCurrency,
	FieldStockQuantity,
	FieldReserved,
	FieldAvailability,
)

var numericFields = map[string]struct{}{
	FieldProductID:          {},
	FieldManufacturerID:     {},
	FieldGrossWeight:        {},
	FieldLength:             {},
	FieldWidth:              {},
	FieldHeight:             {},
	FieldVolume:             {},
	FieldNetPurchasePrice:   {},
	FieldGrossPurchasePrice: {},
	FieldNetSalePrice:       {},
	FieldGrossSalePrice:     {},
	FieldStockQuantity:      {},
	FieldReserved:           {},
}

// IsNumeric reports whether a canonical field holds numbers.
func IsNumeric(field string) bool {
	_, ok := numericFields[field]
	return ok
}

// NewMatcher returns the product match cascade: ProductId, SKU, EAN, then
// normalized Name.
func NewMatcher() *reconcile.Matcher {
	return reconcile.NewMatcher(
		reconcile.Rule{Field: FieldProductID},
		reconcile.Rule{Field: FieldSKU},
		reconcile.Rule{Field: FieldEAN},
		reconcile.Rule{Field: FieldName, Normalize: reconcile.NormalizeValue},
	)
}
