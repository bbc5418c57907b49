package model

import (
	"retail_survey/internal/abstraction"
)

type SurveyorEntity struct {
	Username string `json:"username" gorm:"uniqueIndex;size:50"`
	Password string `json:"-"`
	Name     string `json:"name" gorm:"size:100"`
	Phone    string `json:"phone" gorm:"size:20"`
	// no column default: gorm drops a zero-value false from the insert and
	// a default would silently flip it back to active
	IsActive bool `json:"is_active"`
}

// SurveyorEntityModel ...
type SurveyorEntityModel struct {
	ID int `json:"id" param:"id" form:"id" validate:"number,min=1" gorm:"primaryKey;autoIncrement;"`

	// entity
	SurveyorEntity

	abstraction.EntityJustCreated

	// context
	Context *abstraction.Context `json:"-" gorm:"-"`
}

// TableName ...
func (SurveyorEntityModel) TableName() string {
	return "surveyors"
}

type SurveyorCountDataModel struct {
	Count int `json:"count"`
}
