package repository

import (
	"retail_survey/internal/abstraction"
	"retail_survey/internal/model"

	"gorm.io/gorm"
)

type Surveyor interface {
	FindById(ctx *abstraction.Context, id int) (*model.SurveyorEntityModel, error)
	FindByUsername(ctx *abstraction.Context, username string) (*model.SurveyorEntityModel, error)
	Find(ctx *abstraction.Context) ([]*model.SurveyorEntityModel, error)
	CountActive(ctx *abstraction.Context) (int, error)
	Create(ctx *abstraction.Context, e *model.SurveyorEntityModel) *gorm.DB
	Update(ctx *abstraction.Context, e *model.SurveyorEntityModel) *gorm.DB
	Delete(ctx *abstraction.Context, e *model.SurveyorEntityModel) *gorm.DB
}

type surveyor struct {
	abstraction.Repository
}

func NewSurveyor(db *gorm.DB) *surveyor {
	return &surveyor{
		Repository: abstraction.Repository{
			Db: db,
		},
	}
}

func (r *surveyor) FindById(ctx *abstraction.Context, id int) (*model.SurveyorEntityModel, error) {
	var data model.SurveyorEntityModel
	err := r.CheckTrx(ctx).
		Where("id = ?", id).
		First(&data).
		Error
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *surveyor) FindByUsername(ctx *abstraction.Context, username string) (*model.SurveyorEntityModel, error) {
	var data model.SurveyorEntityModel
	err := r.CheckTrx(ctx).
		Where("username = ?", username).
		First(&data).
		Error
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *surveyor) Find(ctx *abstraction.Context) (data []*model.SurveyorEntityModel, err error) {
	err = r.CheckTrx(ctx).
		Order("id ASC").
		Find(&data).
		Error
	return
}

func (r *surveyor) CountActive(ctx *abstraction.Context) (int, error) {
	var count model.SurveyorCountDataModel
	err := r.CheckTrx(ctx).
		Table("surveyors").
		Select("COUNT(*) AS count").
		Where("is_active = ?", true).
		Find(&count).
		Error
	return count.Count, err
}

func (r *surveyor) Create(ctx *abstraction.Context, e *model.SurveyorEntityModel) *gorm.DB {
	return r.CheckTrx(ctx).Create(e)
}

func (r *surveyor) Update(ctx *abstraction.Context, e *model.SurveyorEntityModel) *gorm.DB {
	return r.CheckTrx(ctx).Model(e).Updates(e)
}

func (r *surveyor) Delete(ctx *abstraction.Context, e *model.SurveyorEntityModel) *gorm.DB {
	return r.CheckTrx(ctx).Delete(e)
}
