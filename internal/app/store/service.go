package store

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
	Competitors(ctx *abstraction.Context, payload *dto.StoreCompetitorsRequest) ([]*model.CompetitorStoreEntityModel, error)
	Find(ctx *abstraction.Context) ([]*model.CompetitorStoreEntityModel, error)
	Create(ctx *abstraction.Context, payload *dto.StoreCreateRequest) (map[string]interface{}, error)
	Delete(ctx *abstraction.Context, payload *dto.StoreDeleteByIDRequest) (map[string]interface{}, error)
}

type service struct {
	CompetitorStoreRepository repository.CompetitorStore

	DB *gorm.DB
}

func NewService(f *factory.Factory) Service {
	return &service{
		CompetitorStoreRepository: f.CompetitorStoreRepository,

		DB: f.Db,
	}
}

func (s *service) Competitors(ctx *abstraction.Context, payload *dto.StoreCompetitorsRequest) ([]*model.CompetitorStoreEntityModel, error) {
	data, err := s.CompetitorStoreRepository.FindByStoreName(ctx, payload.StoreName)
	if err != nil && err.Error() != "record not found" {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	return data, nil
}

func (s *service) Find(ctx *abstraction.Context) ([]*model.CompetitorStoreEntityModel, error) {
	data, err := s.CompetitorStoreRepository.Find(ctx)
	if err != nil && err.Error() != "record not found" {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	return data, nil
}

func (s *service) Create(ctx *abstraction.Context, payload *dto.StoreCreateRequest) (map[string]interface{}, error) {
	data := new(model.CompetitorStoreEntityModel)
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		data.Context = ctx
		data.StoreName = payload.StoreName
		data.CompetitorName = payload.CompetitorName

		if err := s.CompetitorStoreRepository.Create(ctx, data).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":      data.ID,
		"message": "success create competitor store!",
	}, nil
}

func (s *service) Delete(ctx *abstraction.Context, payload *dto.StoreDeleteByIDRequest) (map[string]interface{}, error) {
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		data, err := s.CompetitorStoreRepository.FindById(ctx, payload.ID)
		if err != nil {
			if err.Error() == "record not found" {
				return response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), "competitor store not found")
			}
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		data.Context = ctx
		if err := s.CompetitorStoreRepository.Delete(ctx, data).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"message": "success delete competitor store!",
	}, nil
}
