package model

import (
	"retail_survey/internal/abstraction"
)

type ProductEntity struct {
	CategoryLevel1Code *string `json:"category_level1_code" gorm:"size:20"`
	CategoryLevel1Name *string `json:"category_level1_name" gorm:"size:100;index"`
	CategoryLevel2Code *string `json:"category_level2_code" gorm:"size:20"`
	CategoryLevel2Name *string `json:"category_level2_name" gorm:"size:100"`
	CategoryLevel3Code *string `json:"category_level3_code" gorm:"size:20"`
	CategoryLevel3Name *string `json:"category_level3_name" gorm:"size:100"`
	CategoryLevel4Code *string `json:"category_level4_code" gorm:"size:20;index"`
	CategoryLevel4Name *string `json:"category_level4_name" gorm:"size:100;index"`

	ProductCode *string `json:"product_code" gorm:"size:50;index"`
	Name        string  `json:"name" gorm:"size:200;index"`
	Barcode     *string `json:"barcode" gorm:"size:50;index"`
	Spec        *string `json:"spec" gorm:"size:100"`
	Unit        *string `json:"unit" gorm:"size:20"`

	BrandCode *string `json:"brand_code" gorm:"size:50"`
	BrandName *string `json:"brand_name" gorm:"size:100;index"`
	Origin    *string `json:"origin" gorm:"size:200"`

	PurchasePrice *float64 `json:"purchase_price"`
	SalePrice     *float64 `json:"sale_price"`

	SupplierCode     *string `json:"supplier_code" gorm:"size:50"`
	SupplierName     *string `json:"supplier_name" gorm:"size:200"`
	Purchaser        *string `json:"purchaser" gorm:"size:50"`
	ProductAttribute *string `json:"product_attribute" gorm:"size:50"`

	Status   *string `json:"status" gorm:"size:50"`
	IsActive bool    `json:"is_active"`
}

// ProductEntityModel is the catalog row survey items are enriched from
// (SurveyItem.product_name -> Product.name). A missing match yields null
// category fields, never an error.
type ProductEntityModel struct {
	ID int `json:"id" param:"id" form:"id" validate:"number,min=1" gorm:"primaryKey;autoIncrement;"`

	// entity
	ProductEntity

	abstraction.Entity

	// context
	Context *abstraction.Context `json:"-" gorm:"-"`
}

// TableName ...
func (ProductEntityModel) TableName() string {
	return "products"
}

type ProductCountDataModel struct {
	Count int `json:"count"`
}

type CategoryNameDataModel struct {
	Name string `json:"name"`
}
