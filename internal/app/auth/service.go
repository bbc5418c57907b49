package auth

import (
	"errors"
	"net/http"
	"time"

	"retail_survey/internal/abstraction"
	"retail_survey/internal/dto"
	"retail_survey/internal/factory"
	"retail_survey/internal/model"
	modelToken "retail_survey/internal/model/token"
	"retail_survey/internal/repository"
	"retail_survey/pkg/constant"
	"retail_survey/pkg/util/general"
	"retail_survey/pkg/util/response"
	"retail_survey/pkg/util/trxmanager"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service interface {
	Login(ctx *abstraction.Context, payload *dto.AuthLoginRequest) (map[string]interface{}, error)
	Logout(ctx *abstraction.Context) (map[string]interface{}, error)
}

type service struct {
	SurveyorRepository repository.Surveyor

	DB      *gorm.DB
	DbRedis *redis.Client
}

func NewService(f *factory.Factory) Service {
	return &service{
		SurveyorRepository: f.SurveyorRepository,

		DB:      f.Db,
		DbRedis: f.DbRedis,
	}
}

func (s *service) Login(ctx *abstraction.Context, payload *dto.AuthLoginRequest) (map[string]interface{}, error) {
	var (
		err   error
		data  = new(model.SurveyorEntityModel)
		token string
	)
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		data, err = s.SurveyorRepository.FindByUsername(ctx, payload.Username)
		if err != nil && err.Error() != "record not found" {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}
		if data == nil || err != nil {
			return response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "username or password is incorrect")
		}
		if !data.IsActive {
			return response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "account is deactivated")
		}

		if err = bcrypt.CompareHashAndPassword([]byte(data.Password), []byte(payload.Password)); err != nil {
			return response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "username or password is incorrect")
		}

		uuidLogin := uuid.NewString()
		tokenClaims := &modelToken.TokenClaims{
			ID:        data.ID,
			Username:  data.Username,
			Name:      data.Name,
			UuidLogin: uuidLogin,
			Exp:       time.Now().Add(24 * time.Hour).Unix(),
		}
		authToken := modelToken.NewAuthToken(tokenClaims)
		token, err = authToken.Token()
		if err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		general.AppendUUIDToRedisArray(s.DbRedis, general.GenerateRedisKeySurveyorLogin(data.ID), uuidLogin)

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"token": token,
		"data": map[string]interface{}{
			"id":         data.ID,
			"username":   data.Username,
			"name":       data.Name,
			"phone":      data.Phone,
			"is_active":  data.IsActive,
			"created_at": general.FormatDateTime(data.CreatedAt),
		},
	}, nil
}

func (s *service) Logout(ctx *abstraction.Context) (map[string]interface{}, error) {
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {

		general.RemoveUUIDFromRedisArray(s.DbRedis, general.GenerateRedisKeySurveyorLogin(ctx.Auth.ID), ctx.Auth.UuidLogin)
		general.RemoveUUIDFromRedisArray(s.DbRedis, constant.REDIS_KEY_AUTO_LOGOUT, ctx.Auth.UuidLogin)

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"message": "success logout!",
	}, nil
}
