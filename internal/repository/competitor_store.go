package repository

import (
	"retail_survey/internal/abstraction"
	"retail_survey/internal/model"

	"gorm.io/gorm"
)

type CompetitorStore interface {
	FindById(ctx *abstraction.Context, id int) (*model.CompetitorStoreEntityModel, error)
	FindByStoreName(ctx *abstraction.Context, storeName string) ([]*model.CompetitorStoreEntityModel, error)
	Find(ctx *abstraction.Context) ([]*model.CompetitorStoreEntityModel, error)
	Create(ctx *abstraction.Context, e *model.CompetitorStoreEntityModel) *gorm.DB
	Delete(ctx *abstraction.Context, e *model.CompetitorStoreEntityModel) *gorm.DB
}

type competitorStore struct {
	abstraction.Repository
}

func NewCompetitorStore(db *gorm.DB) *competitorStore {
	return &competitorStore{
		Repository: abstraction.Repository{
			Db: db,
		},
	}
}

func (r *competitorStore) FindById(ctx *abstraction.Context, id int) (*model.CompetitorStoreEntityModel, error) {
	var data model.CompetitorStoreEntityModel
	err := r.CheckTrx(ctx).
		Where("id = ?", id).
		First(&data).
		Error
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *competitorStore) FindByStoreName(ctx *abstraction.Context, storeName string) (data []*model.CompetitorStoreEntityModel, err error) {
	err = r.CheckTrx(ctx).
		Where("store_name = ?", storeName).
		Order("id ASC").
		Find(&data).
		Error
	return
}

func (r *competitorStore) Find(ctx *abstraction.Context) (data []*model.CompetitorStoreEntityModel, err error) {
	err = r.CheckTrx(ctx).
		Order("store_name ASC, id ASC").
		Find(&data).
		Error
	return
}

func (r *competitorStore) Create(ctx *abstraction.Context, e *model.CompetitorStoreEntityModel) *gorm.DB {
	return r.CheckTrx(ctx).Create(e)
}

func (r *competitorStore) Delete(ctx *abstraction.Context, e *model.CompetitorStoreEntityModel) *gorm.DB {
	return r.CheckTrx(ctx).Delete(e)
}
