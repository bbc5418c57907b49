package repository

import (
	"retail_survey/internal/abstraction"
	"retail_survey/internal/model"

	"gorm.io/gorm"
)

type Task interface {
	FindById(ctx *abstraction.Context, id int) (*model.SurveyTaskEntityModel, error)
	Find(ctx *abstraction.Context, date string) ([]*model.SurveyTaskEntityModel, error)
	FindByDate(ctx *abstraction.Context, date string) ([]*model.SurveyTaskEntityModel, error)
	FindFirstByDate(ctx *abstraction.Context, date string) (*model.SurveyTaskEntityModel, error)
	Create(ctx *abstraction.Context, e *model.SurveyTaskEntityModel) *gorm.DB
	Update(ctx *abstraction.Context, e *model.SurveyTaskEntityModel) *gorm.DB
	Delete(ctx *abstraction.Context, e *model.SurveyTaskEntityModel) *gorm.DB
}

type task struct {
	abstraction.Repository
}

func NewTask(db *gorm.DB) *task {
	return &task{
		Repository: abstraction.Repository{
			Db: db,
		},
	}
}

func (r *task) FindById(ctx *abstraction.Context, id int) (*model.SurveyTaskEntityModel, error) {
	var data model.SurveyTaskEntityModel
	err := r.CheckTrx(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&data).
		Error
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *task) Find(ctx *abstraction.Context, date string) (data []*model.SurveyTaskEntityModel, err error) {
	conn := r.CheckTrx(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		})
	if date != "" {
		conn = conn.Where("date = ?", date)
	}
	err = conn.
		Order("date DESC, id DESC").
		Find(&data).
		Error
	return
}

func (r *task) FindByDate(ctx *abstraction.Context, date string) (data []*model.SurveyTaskEntityModel, err error) {
	err = r.CheckTrx(ctx).
		Preload("Items").
		Where("date = ?", date).
		Find(&data).
		Error
	return
}

func (r *task) FindFirstByDate(ctx *abstraction.Context, date string) (*model.SurveyTaskEntityModel, error) {
	var data model.SurveyTaskEntityModel
	err := r.CheckTrx(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("date = ?", date).
		Order("id ASC").
		First(&data).
		Error
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *task) Create(ctx *abstraction.Context, e *model.SurveyTaskEntityModel) *gorm.DB {
	return r.CheckTrx(ctx).Create(e)
}

func (r *task) Update(ctx *abstraction.Context, e *model.SurveyTaskEntityModel) *gorm.DB {
	return r.CheckTrx(ctx).Model(e).Updates(e)
}

func (r *task) Delete(ctx *abstraction.Context, e *model.SurveyTaskEntityModel) *gorm.DB {
	return r.CheckTrx(ctx).Delete(e)
}
