package surveyor

import (
	"errors"
	"net/http"

	"retail_survey/internal/abstraction"
	"retail_survey/internal/dto"
	"retail_survey/internal/factory"
	"retail_survey/internal/model"
	"retail_survey/internal/repository"
	"retail_survey/pkg/constant"
	"retail_survey/pkg/util/general"
	"retail_survey/pkg/util/response"
	"retail_survey/pkg/util/trxmanager"

	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx *abstraction.Context, payload *dto.SurveyorCreateRequest) (map[string]interface{}, error)
	Find(ctx *abstraction.Context) ([]*model.SurveyorEntityModel, error)
	FindById(ctx *abstraction.Context, payload *dto.SurveyorFindByIDRequest) (*model.SurveyorEntityModel, error)
	Update(ctx *abstraction.Context, payload *dto.SurveyorUpdateRequest) (map[string]interface{}, error)
	Delete(ctx *abstraction.Context, payload *dto.SurveyorDeleteByIDRequest) (map[string]interface{}, error)
	ResetPassword(ctx *abstraction.Context, payload *dto.SurveyorResetPasswordRequest) (map[string]interface{}, error)
	Stats(ctx *abstraction.Context, payload *dto.SurveyorStatsRequest) (map[string]interface{}, error)
	TodayDetails(ctx *abstraction.Context, payload *dto.SurveyorTodayDetailsRequest) ([]*model.SurveyRecordEntityModel, error)
}

type service struct {
	SurveyorRepository repository.Surveyor
	RecordRepository   repository.Record

	DB      *gorm.DB
	DbRedis *redis.Client
}

func NewService(f *factory.Factory) Service {
	return &service{
		SurveyorRepository: f.SurveyorRepository,
		RecordRepository:   f.RecordRepository,

		DB:      f.Db,
		DbRedis: f.DbRedis,
	}
}

func (s *service) Create(ctx *abstraction.Context, payload *dto.SurveyorCreateRequest) (map[string]interface{}, error) {
	data := new(model.SurveyorEntityModel)
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		existing, err := s.SurveyorRepository.FindByUsername(ctx, payload.Username)
		if err != nil && err.Error() != "record not found" {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}
		if existing != nil {
			return response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), "username already exists")
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
		if err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		data.Context = ctx
		data.Username = payload.Username
		data.Password = string(hashedPassword)
		data.Name = payload.Name
		data.Phone = payload.Phone
		data.IsActive = true

		if err := s.SurveyorRepository.Create(ctx, data).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":      data.ID,
		"message": "success create surveyor!",
	}, nil
}

func (s *service) Find(ctx *abstraction.Context) ([]*model.SurveyorEntityModel, error) {
	data, err := s.SurveyorRepository.Find(ctx)
	if err != nil && err.Error() != "record not found" {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	return data, nil
}

func (s *service) FindById(ctx *abstraction.Context, payload *dto.SurveyorFindByIDRequest) (*model.SurveyorEntityModel, error) {
	data, err := s.SurveyorRepository.FindById(ctx, payload.ID)
	if err != nil {
		if err.Error() == "record not found" {
			return nil, response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), "surveyor not found")
		}
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	return data, nil
}

func (s *service) Update(ctx *abstraction.Context, payload *dto.SurveyorUpdateRequest) (map[string]interface{}, error) {
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		data, err := s.SurveyorRepository.FindById(ctx, payload.ID)
		if err != nil {
			if err.Error() == "record not found" {
				return response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), "surveyor not found")
			}
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		newData := new(model.SurveyorEntityModel)
		newData.Context = ctx
		newData.ID = data.ID
		if payload.Name != nil {
			newData.Name = *payload.Name
		}
		if payload.Phone != nil {
			newData.Phone = *payload.Phone
		}
		if err := s.SurveyorRepository.Update(ctx, newData).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		// Updates skips zero values, deactivation needs an explicit column
		// write.
		if payload.IsActive != nil && *payload.IsActive != data.IsActive {
			if err := ctx.Trx.Db.Model(&model.SurveyorEntityModel{}).
				Where("id = ?", data.ID).
				Update("is_active", *payload.IsActive).Error; err != nil {
				return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
			}
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"message": "success update surveyor!",
	}, nil
}

// Delete refuses to remove a surveyor that still owns records; history
// would silently lose its author otherwise.
func (s *service) Delete(ctx *abstraction.Context, payload *dto.SurveyorDeleteByIDRequest) (map[string]interface{}, error) {
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		data, err := s.SurveyorRepository.FindById(ctx, payload.ID)
		if err != nil {
			if err.Error() == "record not found" {
				return response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), "surveyor not found")
			}
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		recordCount, err := s.RecordRepository.CountBySurveyor(ctx, data.ID)
		if err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}
		if recordCount > 0 {
			return response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), "surveyor has survey records and cannot be deleted")
		}

		data.Context = ctx
		if err := s.SurveyorRepository.Delete(ctx, data).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"message": "success delete surveyor!",
	}, nil
}

// ResetPassword replaces the credential and forces every live session of
// that surveyor to re-login.
func (s *service) ResetPassword(ctx *abstraction.Context, payload *dto.SurveyorResetPasswordRequest) (map[string]interface{}, error) {
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		data, err := s.SurveyorRepository.FindById(ctx, payload.ID)
		if err != nil {
			if err.Error() == "record not found" {
				return response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), "surveyor not found")
			}
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		newData := new(model.SurveyorEntityModel)
		newData.Context = ctx
		newData.ID = data.ID
		newData.Password = string(hashedPassword)
		if err := s.SurveyorRepository.Update(ctx, newData).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		loggedIn := general.GetRedisUUIDArray(s.DbRedis, general.GenerateRedisKeySurveyorLogin(data.ID))
		for _, v := range loggedIn {
			general.AppendUUIDToRedisArray(s.DbRedis, constant.REDIS_KEY_AUTO_LOGOUT, v)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"message": "success reset password!",
	}, nil
}

func (s *service) Stats(ctx *abstraction.Context, payload *dto.SurveyorStatsRequest) (map[string]interface{}, error) {
	data, err := s.SurveyorRepository.FindById(ctx, payload.ID)
	if err != nil {
		if err.Error() == "record not found" {
			return nil, response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), "surveyor not found")
		}
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}

	totalRecords, err := s.RecordRepository.CountBySurveyor(ctx, data.ID)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	activeDays, err := s.RecordRepository.CountDistinctDaysBySurveyor(ctx, data.ID)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	coveredItems, err := s.RecordRepository.CountDistinctItemsBySurveyor(ctx, data.ID)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}

	todayStart, todayEnd := general.DayRangeOf(*general.Now())
	todayRecords, err := s.RecordRepository.CountBySurveyorBetween(ctx, data.ID, todayStart, todayEnd)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	weekRecords, err := s.RecordRepository.CountBySurveyorBetween(ctx, data.ID, todayStart.AddDate(0, 0, -6), todayEnd)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	recent, err := s.RecordRepository.FindRecentBySurveyor(ctx, data.ID, 10)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}

	return map[string]interface{}{
		"id":             data.ID,
		"name":           data.Name,
		"total_records":  totalRecords,
		"today_records":  todayRecords,
		"week_records":   weekRecords,
		"active_days":    activeDays,
		"covered_items":  coveredItems,
		"recent_records": recent,
	}, nil
}

func (s *service) TodayDetails(ctx *abstraction.Context, payload *dto.SurveyorTodayDetailsRequest) ([]*model.SurveyRecordEntityModel, error) {
	date := payload.Date
	if date == "" {
		date = general.DateNow()
	}
	start, end, err := general.DayRange(date)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusBadRequest, err, "invalid date, expected YYYY-MM-DD")
	}

	data, err := s.RecordRepository.FindBySurveyorBetween(ctx, payload.ID, start, end)
	if err != nil && err.Error() != "record not found" {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	return data, nil
}
