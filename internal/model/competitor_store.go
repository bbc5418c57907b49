package model

import (
	"retail_survey/internal/abstraction"
)

type CompetitorStoreEntity struct {
	StoreName      string `json:"store_name" gorm:"size:100;index;not null"`
	CompetitorName string `json:"competitor_name" gorm:"size:200;not null"`
}

// CompetitorStoreEntityModel maps an own store to one nearby competitor.
type CompetitorStoreEntityModel struct {
	ID int `json:"id" param:"id" form:"id" validate:"number,min=1" gorm:"primaryKey;autoIncrement;"`

	// entity
	CompetitorStoreEntity

	abstraction.Entity

	// context
	Context *abstraction.Context `json:"-" gorm:"-"`
}

// TableName ...
func (CompetitorStoreEntityModel) TableName() string {
	return "competitor_stores"
}
