package repository

import (
	"retail_survey/internal/abstraction"
	"retail_survey/internal/model"

	"gorm.io/gorm"
)

type Item interface {
	FindById(ctx *abstraction.Context, id int) (*model.SurveyItemEntityModel, error)
	FindByTaskId(ctx *abstraction.Context, taskId int) ([]*model.SurveyItemEntityModel, error)
	CountByTaskDate(ctx *abstraction.Context, date string) (int, error)
	CreateBatch(ctx *abstraction.Context, e []*model.SurveyItemEntityModel) *gorm.DB
	DeleteByTaskId(ctx *abstraction.Context, taskId int) *gorm.DB
}

type item struct {
	abstraction.Repository
}

func NewItem(db *gorm.DB) *item {
	return &item{
		Repository: abstraction.Repository{
			Db: db,
		},
	}
}

func (r *item) FindById(ctx *abstraction.Context, id int) (*model.SurveyItemEntityModel, error) {
	var data model.SurveyItemEntityModel
	err := r.CheckTrx(ctx).
		Where("id = ?", id).
		First(&data).
		Error
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *item) FindByTaskId(ctx *abstraction.Context, taskId int) (data []*model.SurveyItemEntityModel, err error) {
	err = r.CheckTrx(ctx).
		Where("task_id = ?", taskId).
		Order("sort_order ASC, id ASC").
		Find(&data).
		Error
	return
}

// CountByTaskDate counts items across every task scheduled for the given
// date; this is the denominator of the per-day ranking completion rate.
func (r *item) CountByTaskDate(ctx *abstraction.Context, date string) (int, error) {
	var count model.SurveyTaskCountDataModel
	err := r.CheckTrx(ctx).
		Table("survey_items").
		Select("COUNT(survey_items.id) AS count").
		Joins("JOIN survey_tasks ON survey_tasks.id = survey_items.task_id").
		Where("survey_tasks.date = ?", date).
		Find(&count).
		Error
	return count.Count, err
}

func (r *item) CreateBatch(ctx *abstraction.Context, e []*model.SurveyItemEntityModel) *gorm.DB {
	return r.CheckTrx(ctx).Create(e)
}

func (r *item) DeleteByTaskId(ctx *abstraction.Context, taskId int) *gorm.DB {
	return r.CheckTrx(ctx).Where("task_id = ?", taskId).Delete(&model.SurveyItemEntityModel{})
}
