package product

import (
	"errors"
	"net/http"

	"retail_survey/internal/abstraction"
	"retail_survey/internal/dto"
	"retail_survey/internal/factory"
	"retail_survey/internal/model"
	"retail_survey/internal/repository"
	"retail_survey/pkg/util/response"
	"retail_survey/pkg/util/trxmanager"

	"gorm.io/gorm"
)

type Service interface {
	Create(ctx *abstraction.Context, payload *dto.ProductCreateRequest) (map[string]interface{}, error)
	Seed(ctx *abstraction.Context, payload *dto.ProductSeedRequest) (map[string]interface{}, error)
	Find(ctx *abstraction.Context, payload *dto.ProductFindRequest) (map[string]interface{}, error)
	Categories(ctx *abstraction.Context, payload *dto.ProductCategoriesRequest) ([]string, error)
	Suggest(ctx *abstraction.Context, payload *dto.ProductSuggestRequest) ([]*model.ProductEntityModel, error)
	Update(ctx *abstraction.Context, payload *dto.ProductUpdateRequest) (map[string]interface{}, error)
	Delete(ctx *abstraction.Context, payload *dto.ProductDeleteByIDRequest) (map[string]interface{}, error)
}

type service struct {
	ProductRepository repository.Product

	DB *gorm.DB
}

func NewService(f *factory.Factory) Service {
	return &service{
		ProductRepository: f.ProductRepository,

		DB: f.Db,
	}
}

func entityFromPayload(payload *dto.ProductPayload) model.ProductEntity {
	return model.ProductEntity{
		CategoryLevel1Code: payload.CategoryLevel1Code,
		CategoryLevel1Name: payload.CategoryLevel1Name,
		CategoryLevel2Code: payload.CategoryLevel2Code,
		CategoryLevel2Name: payload.CategoryLevel2Name,
		CategoryLevel3Code: payload.CategoryLevel3Code,
		CategoryLevel3Name: payload.CategoryLevel3Name,
		CategoryLevel4Code: payload.CategoryLevel4Code,
		CategoryLevel4Name: payload.CategoryLevel4Name,
		ProductCode:        payload.ProductCode,
		Name:               payload.Name,
		Barcode:            payload.Barcode,
		Spec:               payload.Spec,
		Unit:               payload.Unit,
		BrandCode:          payload.BrandCode,
		BrandName:          payload.BrandName,
		Origin:             payload.Origin,
		PurchasePrice:      payload.PurchasePrice,
		SalePrice:          payload.SalePrice,
		SupplierCode:       payload.SupplierCode,
		SupplierName:       payload.SupplierName,
		Purchaser:          payload.Purchaser,
		ProductAttribute:   payload.ProductAttribute,
		Status:             payload.Status,
		IsActive:           true,
	}
}

func (s *service) Create(ctx *abstraction.Context, payload *dto.ProductCreateRequest) (map[string]interface{}, error) {
	data := new(model.ProductEntityModel)
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		existing, err := s.ProductRepository.FindByName(ctx, payload.Name)
		if err != nil && err.Error() != "record not found" {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}
		if existing != nil {
			return response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), "product name already exists")
		}

		data.Context = ctx
		data.ProductEntity = entityFromPayload(&payload.ProductPayload)

		if err := s.ProductRepository.Create(ctx, data).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":      data.ID,
		"message": "success create product!",
	}, nil
}

// Seed loads the catalog once. A non-empty catalog makes it a no-op so
// repeated imports cannot duplicate rows.
func (s *service) Seed(ctx *abstraction.Context, payload *dto.ProductSeedRequest) (map[string]interface{}, error) {
	inserted := 0
	skipped := false
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		count, err := s.ProductRepository.CountAll(ctx)
		if err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}
		if count > 0 {
			skipped = true
			return nil
		}

		rows := make([]*model.ProductEntityModel, 0, len(payload.Products))
		for i := range payload.Products {
			row := new(model.ProductEntityModel)
			row.Context = ctx
			row.ProductEntity = entityFromPayload(&payload.Products[i])
			rows = append(rows, row)
		}
		if len(rows) > 0 {
			if err := s.ProductRepository.CreateBatch(ctx, rows).Error; err != nil {
				return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
			}
		}
		inserted = len(rows)

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"inserted": inserted,
		"skipped":  skipped,
	}, nil
}

func (s *service) Find(ctx *abstraction.Context, payload *dto.ProductFindRequest) (map[string]interface{}, error) {
	page := payload.Page
	if page < 1 {
		page = 1
	}
	limit := payload.Limit
	if limit < 1 {
		limit = 20
	}

	data, err := s.ProductRepository.Find(ctx, payload.Search, payload.CategoryLevel1, payload.CategoryLevel2, page, limit)
	if err != nil && err.Error() != "record not found" {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	total, err := s.ProductRepository.Count(ctx, payload.Search, payload.CategoryLevel1, payload.CategoryLevel2)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}

	return map[string]interface{}{
		"items": data,
		"total": total,
		"page":  page,
		"limit": limit,
	}, nil
}

func (s *service) Categories(ctx *abstraction.Context, payload *dto.ProductCategoriesRequest) ([]string, error) {
	level := payload.Level
	if level == 0 {
		level = 1
	}
	if level < 1 || level > 4 {
		return nil, response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), "level must be between 1 and 4")
	}
	data, err := s.ProductRepository.Categories(ctx, level, payload.Parent)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	if data == nil {
		data = []string{}
	}
	return data, nil
}

func (s *service) Suggest(ctx *abstraction.Context, payload *dto.ProductSuggestRequest) ([]*model.ProductEntityModel, error) {
	data, err := s.ProductRepository.Suggest(ctx, payload.Keyword, payload.Limit)
	if err != nil && err.Error() != "record not found" {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	return data, nil
}

func (s *service) Update(ctx *abstraction.Context, payload *dto.ProductUpdateRequest) (map[string]interface{}, error) {
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		data, err := s.ProductRepository.FindById(ctx, payload.ID)
		if err != nil {
			if err.Error() == "record not found" {
				return response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), "product not found")
			}
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		newData := new(model.ProductEntityModel)
		newData.Context = ctx
		newData.ID = data.ID
		newData.ProductEntity = entityFromPayload(&payload.ProductPayload)

		if err := s.ProductRepository.Update(ctx, newData).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"message": "success update product!",
	}, nil
}

func (s *service) Delete(ctx *abstraction.Context, payload *dto.ProductDeleteByIDRequest) (map[string]interface{}, error) {
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		data, err := s.ProductRepository.FindById(ctx, payload.ID)
		if err != nil {
			if err.Error() == "record not found" {
				return response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), "product not found")
			}
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		data.Context = ctx
		if err := s.ProductRepository.Delete(ctx, data).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"message": "success delete product!",
	}, nil
}
