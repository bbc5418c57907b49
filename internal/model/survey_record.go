package model

import (
	"retail_survey/internal/abstraction"
)

type SurveyRecordEntity struct {
	ItemId        int      `json:"item_id" gorm:"index"`
	SurveyorId    int      `json:"surveyor_id" gorm:"index"`
	StoreName     string   `json:"store_name" gorm:"size:200"`
	StoreAddress  *string  `json:"store_address" gorm:"size:500"`
	Price         float64  `json:"price"`
	PromotionInfo *string  `json:"promotion_info" gorm:"size:500"`
	Remark        *string  `json:"remark" gorm:"type:text"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	// PhotoPath mirrors the first entry of Photos for older clients.
	PhotoPath *string `json:"photo_path" gorm:"size:500"`
	Photos    *string `json:"photos" gorm:"type:text"`
}

// SurveyRecordEntityModel is one field submission by one surveyor against
// one item. Duplicates of (item_id, surveyor_id) are allowed: repeat
// visits to different competitor stores each get their own row.
type SurveyRecordEntityModel struct {
	ID int `json:"id" param:"id" form:"id" validate:"number,min=1" gorm:"primaryKey;autoIncrement;"`

	// entity
	SurveyRecordEntity

	abstraction.Entity

	Item     SurveyItemEntityModel `json:"item" gorm:"foreignKey:ItemId"`
	Surveyor SurveyorEntityModel   `json:"surveyor" gorm:"foreignKey:SurveyorId"`

	// context
	Context *abstraction.Context `json:"-" gorm:"-"`
}

// TableName ...
func (SurveyRecordEntityModel) TableName() string {
	return "survey_records"
}

type SurveyRecordCountDataModel struct {
	Count int `json:"count"`
}

// RankingDataModel is one row of the per-day surveyor ranking query.
type RankingDataModel struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	RecordCount int    `json:"record_count"`
	StoreCount  int    `json:"store_count"`
}

// SurveyorRecordCountDataModel is one row of the monthly per-surveyor
// record count query.
type SurveyorRecordCountDataModel struct {
	Name        string `json:"name"`
	RecordCount int    `json:"record_count"`
}

// SubcategoryCountDataModel is one bucket of the category distribution.
type SubcategoryCountDataModel struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
