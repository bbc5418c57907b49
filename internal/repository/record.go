package repository

import (
	"time"

	"retail_survey/internal/abstraction"
	"retail_survey/internal/model"

	"gorm.io/gorm"
)

type Record interface {
	FindById(ctx *abstraction.Context, id int) (*model.SurveyRecordEntityModel, error)
	Find(ctx *abstraction.Context, surveyorId int, taskId int, start *time.Time, end *time.Time) ([]*model.SurveyRecordEntityModel, error)
	FindBySurveyorBetween(ctx *abstraction.Context, surveyorId int, start time.Time, end time.Time) ([]*model.SurveyRecordEntityModel, error)
	FindRecentBySurveyor(ctx *abstraction.Context, surveyorId int, limit int) ([]*model.SurveyRecordEntityModel, error)
	FindItemIdsBySurveyorBetween(ctx *abstraction.Context, surveyorId int, start time.Time, end time.Time) ([]int, error)
	CountByItemIdsAndSurveyor(ctx *abstraction.Context, itemIds []int, surveyorId int) ([]model.ItemRecordCountDataModel, error)
	CountBetween(ctx *abstraction.Context, start time.Time, end time.Time) (int, error)
	CountBySurveyor(ctx *abstraction.Context, surveyorId int) (int, error)
	CountBySurveyorBetween(ctx *abstraction.Context, surveyorId int, start time.Time, end time.Time) (int, error)
	CountDistinctDaysBySurveyor(ctx *abstraction.Context, surveyorId int) (int, error)
	CountDistinctItemsBySurveyor(ctx *abstraction.Context, surveyorId int) (int, error)
	CountBySurveyorId(ctx *abstraction.Context, surveyorId int) (int, error)
	Ranking(ctx *abstraction.Context, start time.Time, end time.Time) ([]model.RankingDataModel, error)
	SurveyorCountsBetween(ctx *abstraction.Context, start time.Time, end time.Time) ([]model.SurveyorRecordCountDataModel, error)
	SubcategoryCountsBetween(ctx *abstraction.Context, level1Name string, start time.Time, end time.Time) ([]model.SubcategoryCountDataModel, error)
	Create(ctx *abstraction.Context, e *model.SurveyRecordEntityModel) *gorm.DB
	Update(ctx *abstraction.Context, e *model.SurveyRecordEntityModel) *gorm.DB
	Delete(ctx *abstraction.Context, e *model.SurveyRecordEntityModel) *gorm.DB
	DeleteByItemIds(ctx *abstraction.Context, itemIds []int) *gorm.DB
}

type record struct {
	abstraction.Repository
}

func NewRecord(db *gorm.DB) *record {
	return &record{
		Repository: abstraction.Repository{
			Db: db,
		},
	}
}

func (r *record) FindById(ctx *abstraction.Context, id int) (*model.SurveyRecordEntityModel, error) {
	var data model.SurveyRecordEntityModel
	err := r.CheckTrx(ctx).
		Preload("Item").
		Preload("Surveyor").
		Where("id = ?", id).
		First(&data).
		Error
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *record) Find(ctx *abstraction.Context, surveyorId int, taskId int, start *time.Time, end *time.Time) (data []*model.SurveyRecordEntityModel, err error) {
	conn := r.CheckTrx(ctx).
		Preload("Item").
		Preload("Surveyor")
	if surveyorId > 0 {
		conn = conn.Where("surveyor_id = ?", surveyorId)
	}
	if taskId > 0 {
		conn = conn.Where("item_id IN (?)", r.CheckTrx(ctx).
			Table("survey_items").
			Select("id").
			Where("task_id = ?", taskId))
	}
	if start != nil && end != nil {
		conn = conn.Where("created_at >= ? AND created_at < ?", *start, *end)
	}
	err = conn.
		Order("created_at DESC").
		Find(&data).
		Error
	return
}

func (r *record) FindBySurveyorBetween(ctx *abstraction.Context, surveyorId int, start time.Time, end time.Time) (data []*model.SurveyRecordEntityModel, err error) {
	err = r.CheckTrx(ctx).
		Preload("Item").
		Where("surveyor_id = ?", surveyorId).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at DESC").
		Find(&data).
		Error
	return
}

func (r *record) FindRecentBySurveyor(ctx *abstraction.Context, surveyorId int, limit int) (data []*model.SurveyRecordEntityModel, err error) {
	err = r.CheckTrx(ctx).
		Preload("Item").
		Where("surveyor_id = ?", surveyorId).
		Order("created_at DESC").
		Limit(limit).
		Find(&data).
		Error
	return
}

func (r *record) FindItemIdsBySurveyorBetween(ctx *abstraction.Context, surveyorId int, start time.Time, end time.Time) (ids []int, err error) {
	err = r.CheckTrx(ctx).
		Table("survey_records").
		Distinct("item_id").
		Where("surveyor_id = ?", surveyorId).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("item_id ASC").
		Pluck("item_id", &ids).
		Error
	return
}

func (r *record) CountByItemIdsAndSurveyor(ctx *abstraction.Context, itemIds []int, surveyorId int) (data []model.ItemRecordCountDataModel, err error) {
	if len(itemIds) == 0 {
		return nil, nil
	}
	err = r.CheckTrx(ctx).
		Table("survey_records").
		Select("item_id AS item_id, COUNT(id) AS count").
		Where("surveyor_id = ?", surveyorId).
		Where("item_id IN ?", itemIds).
		Group("item_id").
		Find(&data).
		Error
	return
}

func (r *record) CountBetween(ctx *abstraction.Context, start time.Time, end time.Time) (int, error) {
	var count model.SurveyRecordCountDataModel
	err := r.CheckTrx(ctx).
		Table("survey_records").
		Select("COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", start, end).
		Find(&count).
		Error
	return count.Count, err
}

func (r *record) CountBySurveyor(ctx *abstraction.Context, surveyorId int) (int, error) {
	var count model.SurveyRecordCountDataModel
	err := r.CheckTrx(ctx).
		Table("survey_records").
		Select("COUNT(*) AS count").
		Where("surveyor_id = ?", surveyorId).
		Find(&count).
		Error
	return count.Count, err
}

func (r *record) CountBySurveyorBetween(ctx *abstraction.Context, surveyorId int, start time.Time, end time.Time) (int, error) {
	var count model.SurveyRecordCountDataModel
	err := r.CheckTrx(ctx).
		Table("survey_records").
		Select("COUNT(*) AS count").
		Where("surveyor_id = ?", surveyorId).
		Where("created_at >= ? AND created_at < ?", start, end).
		Find(&count).
		Error
	return count.Count, err
}

// CountDistinctDaysBySurveyor counts calendar days with at least one
// submission. DATE() is understood by both mysql and sqlite.
func (r *record) CountDistinctDaysBySurveyor(ctx *abstraction.Context, surveyorId int) (int, error) {
	var count model.SurveyRecordCountDataModel
	err := r.CheckTrx(ctx).
		Table("survey_records").
		Select("COUNT(DISTINCT DATE(created_at)) AS count").
		Where("surveyor_id = ?", surveyorId).
		Find(&count).
		Error
	return count.Count, err
}

func (r *record) CountDistinctItemsBySurveyor(ctx *abstraction.Context, surveyorId int) (int, error) {
	var count model.SurveyRecordCountDataModel
	err := r.CheckTrx(ctx).
		Table("survey_records").
		Select("COUNT(DISTINCT item_id) AS count").
		Where("surveyor_id = ?", surveyorId).
		Find(&count).
		Error
	return count.Count, err
}

func (r *record) CountBySurveyorId(ctx *abstraction.Context, surveyorId int) (int, error) {
	return r.CountBySurveyor(ctx, surveyorId)
}

// Ranking groups the day's records per surveyor. Inner join semantics:
// surveyors without records that day do not appear. Ties on record count
// break deterministically by surveyor id.
func (r *record) Ranking(ctx *abstraction.Context, start time.Time, end time.Time) (data []model.RankingDataModel, err error) {
	err = r.CheckTrx(ctx).
		Table("survey_records").
		Select("surveyors.id AS id, surveyors.name AS name, COUNT(survey_records.id) AS record_count, COUNT(DISTINCT survey_records.store_name) AS store_count").
		Joins("JOIN surveyors ON surveyors.id = survey_records.surveyor_id").
		Where("survey_records.created_at >= ? AND survey_records.created_at < ?", start, end).
		Group("surveyors.id, surveyors.name").
		Order("record_count DESC, surveyors.id ASC").
		Find(&data).
		Error
	return
}

func (r *record) SurveyorCountsBetween(ctx *abstraction.Context, start time.Time, end time.Time) (data []model.SurveyorRecordCountDataModel, err error) {
	err = r.CheckTrx(ctx).
		Table("survey_records").
		Select("surveyors.name AS name, COUNT(survey_records.id) AS record_count").
		Joins("JOIN surveyors ON surveyors.id = survey_records.surveyor_id").
		Where("survey_records.created_at >= ? AND survey_records.created_at < ?", start, end).
		Group("surveyors.id, surveyors.name").
		Order("record_count DESC, surveyors.id ASC").
		Find(&data).
		Error
	return
}

// SubcategoryCountsBetween buckets records by the catalog's second-level
// category under one first-level category. The product join is an inner
// join: records whose item has no catalog match are excluded.
func (r *record) SubcategoryCountsBetween(ctx *abstraction.Context, level1Name string, start time.Time, end time.Time) (data []model.SubcategoryCountDataModel, err error) {
	err = r.CheckTrx(ctx).
		Table("survey_records").
		Select("products.category_level2_name AS name, COUNT(survey_records.id) AS count").
		Joins("JOIN survey_items ON survey_items.id = survey_records.item_id").
		Joins("JOIN products ON products.name = survey_items.product_name").
		Where("products.category_level1_name = ?", level1Name).
		Where("survey_records.created_at >= ? AND survey_records.created_at < ?", start, end).
		Group("products.category_level2_name").
		Order("count DESC").
		Find(&data).
		Error
	return
}

func (r *record) Create(ctx *abstraction.Context, e *model.SurveyRecordEntityModel) *gorm.DB {
	return r.CheckTrx(ctx).Create(e)
}

func (r *record) Update(ctx *abstraction.Context, e *model.SurveyRecordEntityModel) *gorm.DB {
	return r.CheckTrx(ctx).Model(e).Updates(e)
}

func (r *record) Delete(ctx *abstraction.Context, e *model.SurveyRecordEntityModel) *gorm.DB {
	return r.CheckTrx(ctx).Delete(e)
}

func (r *record) DeleteByItemIds(ctx *abstraction.Context, itemIds []int) *gorm.DB {
	return r.CheckTrx(ctx).Where("item_id IN ?", itemIds).Delete(&model.SurveyRecordEntityModel{})
}
