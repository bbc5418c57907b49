package model

import (
	"retail_survey/internal/abstraction"
)

type SurveyItemEntity struct {
	TaskId      int     `json:"task_id" gorm:"index"`
	Category    string  `json:"category" gorm:"size:100"`
	ProductName string  `json:"product_name" gorm:"size:200"`
	ProductSpec string  `json:"product_spec" gorm:"size:100"`
	Barcode     *string `json:"barcode" gorm:"size:50"`
	Description *string `json:"description" gorm:"type:text"`
	SortOrder   int     `json:"sort_order" gorm:"default:0"`
}

// SurveyItemEntityModel is immutable once created; items belong to exactly
// one task.
type SurveyItemEntityModel struct {
	ID int `json:"id" param:"id" form:"id" validate:"number,min=1" gorm:"primaryKey;autoIncrement;"`

	// entity
	SurveyItemEntity

	// context
	Context *abstraction.Context `json:"-" gorm:"-"`
}

// TableName ...
func (SurveyItemEntityModel) TableName() string {
	return "survey_items"
}

// ItemRecordCountDataModel carries per-item record counts for the
// completion tracker.
type ItemRecordCountDataModel struct {
	ItemId int `json:"item_id"`
	Count  int `json:"count"`
}
