package model

import (
	"retail_survey/internal/abstraction"
)

type SurveyTaskEntity struct {
	Title       string `json:"title" gorm:"size:200"`
	Date        string `json:"date" gorm:"index;size:10"`
	Description string `json:"description" gorm:"type:text"`
	Status      string `json:"status" gorm:"size:20;default:active"`
}

// SurveyTaskEntityModel owns its items; deleting a task cascades to the
// items and their records (handled explicitly in the task service).
type SurveyTaskEntityModel struct {
	ID int `json:"id" param:"id" form:"id" validate:"number,min=1" gorm:"primaryKey;autoIncrement;"`

	// entity
	SurveyTaskEntity

	abstraction.EntityJustCreated

	Items []SurveyItemEntityModel `json:"items" gorm:"foreignKey:TaskId"`

	// context
	Context *abstraction.Context `json:"-" gorm:"-"`
}

// TableName ...
func (SurveyTaskEntityModel) TableName() string {
	return "survey_tasks"
}

type SurveyTaskCountDataModel struct {
	Count int `json:"count"`
}
