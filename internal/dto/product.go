package dto

type ProductPayload struct {
	CategoryLevel1Code *string  `json:"category_level1_code"`
	CategoryLevel1Name *string  `json:"category_level1_name"`
	CategoryLevel2Code *string  `json:"category_level2_code"`
	CategoryLevel2Name *string  `json:"category_level2_name"`
	CategoryLevel3Code *string  `json:"category_level3_code"`
	CategoryLevel3Name *string  `json:"category_level3_name"`
	CategoryLevel4Code *string  `json:"category_level4_code"`
	CategoryLevel4Name *string  `json:"category_level4_name"`
	ProductCode        *string  `json:"product_code"`
	Name               string   `json:"name" validate:"required"`
	Barcode            *string  `json:"barcode"`
	Spec               *string  `json:"spec"`
	Unit               *string  `json:"unit"`
	BrandCode          *string  `json:"brand_code"`
	BrandName          *string  `json:"brand_name"`
	Origin             *string  `json:"origin"`
	PurchasePrice      *float64 `json:"purchase_price"`
	SalePrice          *float64 `json:"sale_price"`
	SupplierCode       *string  `json:"supplier_code"`
	SupplierName       *string  `json:"supplier_name"`
	Purchaser          *string  `json:"purchaser"`
	ProductAttribute   *string  `json:"product_attribute"`
	Status             *string  `json:"status"`
}

type ProductCreateRequest struct {
	ProductPayload
}

type ProductBatchCreateRequest struct {
	Products []ProductPayload `json:"products" validate:"required,dive"`
}

// ProductSeedRequest carries normalized catalog rows produced by the
// external import transform. The seed is idempotent: it only loads when
// the catalog is still empty.
type ProductSeedRequest struct {
	Products []ProductPayload `json:"products" validate:"required,dive"`
}

type ProductFindRequest struct {
	Search         string `query:"search"`
	CategoryLevel1 string `query:"category_level1"`
	CategoryLevel2 string `query:"category_level2"`
	Page           int    `query:"page"`
	Limit          int    `query:"limit"`
}

type ProductCategoriesRequest struct {
	Level  int    `query:"level"`
	Parent string `query:"parent"`
}

type ProductSuggestRequest struct {
	Keyword string `query:"keyword" validate:"required"`
	Limit   int    `query:"limit"`
}

type ProductUpdateRequest struct {
	ID int `param:"id" validate:"required"`
	ProductPayload
}

type ProductDeleteByIDRequest struct {
	ID int `param:"id" validate:"required"`
}
