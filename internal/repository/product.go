package repository

import (
	"retail_survey/internal/abstraction"
	"retail_survey/internal/model"

	"gorm.io/gorm"
)

type Product interface {
	FindById(ctx *abstraction.Context, id int) (*model.ProductEntityModel, error)
	FindByName(ctx *abstraction.Context, name string) (*model.ProductEntityModel, error)
	FindByNames(ctx *abstraction.Context, names []string) ([]*model.ProductEntityModel, error)
	Find(ctx *abstraction.Context, search string, categoryLevel1 string, categoryLevel2 string, page int, limit int) ([]*model.ProductEntityModel, error)
	Count(ctx *abstraction.Context, search string, categoryLevel1 string, categoryLevel2 string) (int, error)
	CountAll(ctx *abstraction.Context) (int, error)
	Categories(ctx *abstraction.Context, level int, parent string) ([]string, error)
	Suggest(ctx *abstraction.Context, keyword string, limit int) ([]*model.ProductEntityModel, error)
	Create(ctx *abstraction.Context, e *model.ProductEntityModel) *gorm.DB
	CreateBatch(ctx *abstraction.Context, e []*model.ProductEntityModel) *gorm.DB
	Update(ctx *abstraction.Context, e *model.ProductEntityModel) *gorm.DB
	Delete(ctx *abstraction.Context, e *model.ProductEntityModel) *gorm.DB
}

type product struct {
	abstraction.Repository
}

func NewProduct(db *gorm.DB) *product {
	return &product{
		Repository: abstraction.Repository{
			Db: db,
		},
	}
}

func (r *product) FindById(ctx *abstraction.Context, id int) (*model.ProductEntityModel, error) {
	var data model.ProductEntityModel
	err := r.CheckTrx(ctx).
		Where("id = ?", id).
		First(&data).
		Error
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *product) FindByName(ctx *abstraction.Context, name string) (*model.ProductEntityModel, error) {
	var data model.ProductEntityModel
	err := r.CheckTrx(ctx).
		Where("name = ?", name).
		First(&data).
		Error
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *product) FindByNames(ctx *abstraction.Context, names []string) (data []*model.ProductEntityModel, err error) {
	if len(names) == 0 {
		return nil, nil
	}
	err = r.CheckTrx(ctx).
		Where("name IN ?", names).
		Find(&data).
		Error
	return
}

func (r *product) filtered(ctx *abstraction.Context, search string, categoryLevel1 string, categoryLevel2 string) *gorm.DB {
	conn := r.CheckTrx(ctx).Model(&model.ProductEntityModel{})
	if search != "" {
		like := "%" + search + "%"
		conn = conn.Where("name LIKE ? OR barcode LIKE ? OR brand_name LIKE ?", like, like, like)
	}
	if categoryLevel1 != "" {
		conn = conn.Where("category_level1_name = ?", categoryLevel1)
	}
	if categoryLevel2 != "" {
		conn = conn.Where("category_level2_name = ?", categoryLevel2)
	}
	return conn
}

func (r *product) Find(ctx *abstraction.Context, search string, categoryLevel1 string, categoryLevel2 string, page int, limit int) (data []*model.ProductEntityModel, err error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	err = r.filtered(ctx, search, categoryLevel1, categoryLevel2).
		Order("id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&data).
		Error
	return
}

func (r *product) Count(ctx *abstraction.Context, search string, categoryLevel1 string, categoryLevel2 string) (int, error) {
	var count int64
	err := r.filtered(ctx, search, categoryLevel1, categoryLevel2).
		Count(&count).
		Error
	return int(count), err
}

func (r *product) CountAll(ctx *abstraction.Context) (int, error) {
	var count model.ProductCountDataModel
	err := r.CheckTrx(ctx).
		Table("products").
		Select("COUNT(*) AS count").
		Find(&count).
		Error
	return count.Count, err
}

// Categories lists distinct category names at one level of the catalog
// tree, optionally scoped by the parent level's name.
func (r *product) Categories(ctx *abstraction.Context, level int, parent string) ([]string, error) {
	var names []string
	var conn *gorm.DB
	switch level {
	case 2:
		conn = r.CheckTrx(ctx).
			Table("products").
			Distinct("category_level2_name").
			Where("category_level2_name IS NOT NULL")
		if parent != "" {
			conn = conn.Where("category_level1_name = ?", parent)
		}
		conn = conn.Order("category_level2_name ASC")
		err := conn.Pluck("category_level2_name", &names).Error
		return names, err
	case 3:
		conn = r.CheckTrx(ctx).
			Table("products").
			Distinct("category_level3_name").
			Where("category_level3_name IS NOT NULL")
		if parent != "" {
			conn = conn.Where("category_level2_name = ?", parent)
		}
		conn = conn.Order("category_level3_name ASC")
		err := conn.Pluck("category_level3_name", &names).Error
		return names, err
	case 4:
		conn = r.CheckTrx(ctx).
			Table("products").
			Distinct("category_level4_name").
			Where("category_level4_name IS NOT NULL")
		if parent != "" {
			conn = conn.Where("category_level3_name = ?", parent)
		}
		conn = conn.Order("category_level4_name ASC")
		err := conn.Pluck("category_level4_name", &names).Error
		return names, err
	default:
		conn = r.CheckTrx(ctx).
			Table("products").
			Distinct("category_level1_name").
			Where("category_level1_name IS NOT NULL").
			Order("category_level1_name ASC")
		err := conn.Pluck("category_level1_name", &names).Error
		return names, err
	}
}

func (r *product) Suggest(ctx *abstraction.Context, keyword string, limit int) (data []*model.ProductEntityModel, err error) {
	if limit < 1 {
		limit = 10
	}
	like := "%" + keyword + "%"
	err = r.CheckTrx(ctx).
		Where("name LIKE ? OR barcode LIKE ?", like, like).
		Order("id ASC").
		Limit(limit).
		Find(&data).
		Error
	return
}

func (r *product) Create(ctx *abstraction.Context, e *model.ProductEntityModel) *gorm.DB {
	return r.CheckTrx(ctx).Create(e)
}

func (r *product) CreateBatch(ctx *abstraction.Context, e []*model.ProductEntityModel) *gorm.DB {
	return r.CheckTrx(ctx).CreateInBatches(e, 500)
}

func (r *product) Update(ctx *abstraction.Context, e *model.ProductEntityModel) *gorm.DB {
	return r.CheckTrx(ctx).Model(e).Updates(e)
}

func (r *product) Delete(ctx *abstraction.Context, e *model.ProductEntityModel) *gorm.DB {
	return r.CheckTrx(ctx).Delete(e)
}
