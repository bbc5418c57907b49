package task

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

	"gorm.io/gorm"
)

type Service interface {
	Create(ctx *abstraction.Context, payload *dto.TaskCreateRequest) (map[string]interface{}, error)
	Find(ctx *abstraction.Context, payload *dto.TaskFindRequest) ([]*model.SurveyTaskEntityModel, error)
	FindById(ctx *abstraction.Context, payload *dto.TaskFindByIDRequest) (*model.SurveyTaskEntityModel, error)
	Today(ctx *abstraction.Context, payload *dto.TaskTodayRequest) (map[string]interface{}, error)
	Update(ctx *abstraction.Context, payload *dto.TaskUpdateRequest) (map[string]interface{}, error)
	Cancel(ctx *abstraction.Context, payload *dto.TaskCancelRequest) (map[string]interface{}, error)
	Delete(ctx *abstraction.Context, payload *dto.TaskDeleteByIDRequest) (map[string]interface{}, error)
}

type service struct {
	TaskRepository   repository.Task
	ItemRepository   repository.Item
	RecordRepository repository.Record

	DB *gorm.DB
}

func NewService(f *factory.Factory) Service {
	return &service{
		TaskRepository:   f.TaskRepository,
		ItemRepository:   f.ItemRepository,
		RecordRepository: f.RecordRepository,

		DB: f.Db,
	}
}

func (s *service) Create(ctx *abstraction.Context, payload *dto.TaskCreateRequest) (map[string]interface{}, error) {
	data := new(model.SurveyTaskEntityModel)
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		if !general.IsValidDate(payload.Date) {
			return response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), "invalid date, expected YYYY-MM-DD")
		}

		data.Context = ctx
		data.Title = payload.Title
		data.Date = payload.Date
		data.Description = payload.Description
		data.Status = constant.TASK_STATUS_ACTIVE

		if err := s.TaskRepository.Create(ctx, data).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		if len(payload.Items) > 0 {
			items := make([]*model.SurveyItemEntityModel, 0, len(payload.Items))
			for i, v := range payload.Items {
				item := new(model.SurveyItemEntityModel)
				item.Context = ctx
				item.TaskId = data.ID
				item.Category = v.Category
				item.ProductName = v.ProductName
				item.ProductSpec = v.ProductSpec
				item.Barcode = v.Barcode
				item.Description = v.Description
				item.SortOrder = v.SortOrder
				if item.SortOrder == 0 {
					item.SortOrder = i + 1
				}
				items = append(items, item)
			}
			if err := s.ItemRepository.CreateBatch(ctx, items).Error; err != nil {
				return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
			}
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":      data.ID,
		"message": "success create task!",
	}, nil
}

func (s *service) Find(ctx *abstraction.Context, payload *dto.TaskFindRequest) ([]*model.SurveyTaskEntityModel, error) {
	if payload.Date != "" && !general.IsValidDate(payload.Date) {
		return nil, response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), "invalid date, expected YYYY-MM-DD")
	}
	data, err := s.TaskRepository.Find(ctx, payload.Date)
	if err != nil && err.Error() != "record not found" {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	return data, nil
}

func (s *service) FindById(ctx *abstraction.Context, payload *dto.TaskFindByIDRequest) (*model.SurveyTaskEntityModel, error) {
	data, err := s.TaskRepository.FindById(ctx, payload.ID)
	if err != nil {
		if err.Error() == "record not found" {
			return nil, response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), "task not found")
		}
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	return data, nil
}

// Today gives a surveyor their task of the day together with per-item
// progress.
func (s *service) Today(ctx *abstraction.Context, payload *dto.TaskTodayRequest) (map[string]interface{}, error) {
	data, err := s.TaskRepository.FindFirstByDate(ctx, general.DateNow())
	if err != nil {
		if err.Error() == "record not found" {
			return map[string]interface{}{
				"task":  nil,
				"items": []interface{}{},
			}, nil
		}
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}

	taskPayload := map[string]interface{}{
		"id":          data.ID,
		"title":       data.Title,
		"date":        data.Date,
		"description": data.Description,
		"status":      data.Status,
	}

	if data.Status == constant.TASK_STATUS_CANCELLED {
		return map[string]interface{}{
			"task":  taskPayload,
			"items": []interface{}{},
		}, nil
	}

	itemIds := make([]int, 0, len(data.Items))
	for _, item := range data.Items {
		itemIds = append(itemIds, item.ID)
	}
	counts, err := s.RecordRepository.CountByItemIdsAndSurveyor(ctx, itemIds, payload.SurveyorId)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	countByItem := make(map[int]int, len(counts))
	for _, c := range counts {
		countByItem[c.ItemId] = c.Count
	}

	items := make([]map[string]interface{}, 0, len(data.Items))
	for _, item := range data.Items {
		count := countByItem[item.ID]
		items = append(items, map[string]interface{}{
			"id":           item.ID,
			"category":     item.Category,
			"product_name": item.ProductName,
			"product_spec": item.ProductSpec,
			"barcode":      item.Barcode,
			"description":  item.Description,
			"sort_order":   item.SortOrder,
			"record_count": count,
			"completed":    count > 0,
		})
	}

	return map[string]interface{}{
		"task":  taskPayload,
		"items": items,
	}, nil
}

func (s *service) Update(ctx *abstraction.Context, payload *dto.TaskUpdateRequest) (map[string]interface{}, error) {
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		data, err := s.TaskRepository.FindById(ctx, payload.ID)
		if err != nil {
			if err.Error() == "record not found" {
				return response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), "task not found")
			}
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		if payload.Date != nil && !general.IsValidDate(*payload.Date) {
			return response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), "invalid date, expected YYYY-MM-DD")
		}
		if payload.Status != nil {
			switch *payload.Status {
			case constant.TASK_STATUS_ACTIVE, constant.TASK_STATUS_CANCELLED, constant.TASK_STATUS_COMPLETED:
			default:
				return response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), "invalid status")
			}
			// cancelled is terminal
			if data.Status == constant.TASK_STATUS_CANCELLED && *payload.Status != constant.TASK_STATUS_CANCELLED {
				return response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), "cancelled task cannot change status")
			}
		}

		newData := new(model.SurveyTaskEntityModel)
		newData.Context = ctx
		newData.ID = data.ID
		if payload.Title != nil {
			newData.Title = *payload.Title
		}
		if payload.Date != nil {
			newData.Date = *payload.Date
		}
		if payload.Description != nil {
			newData.Description = *payload.Description
		}
		if payload.Status != nil {
			newData.Status = *payload.Status
		}
		if err := s.TaskRepository.Update(ctx, newData).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"message": "success update task!",
	}, nil
}

// Cancel keeps the task and its history but takes it out of circulation.
func (s *service) Cancel(ctx *abstraction.Context, payload *dto.TaskCancelRequest) (map[string]interface{}, error) {
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		data, err := s.TaskRepository.FindById(ctx, payload.ID)
		if err != nil {
			if err.Error() == "record not found" {
				return response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), "task not found")
			}
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		newData := new(model.SurveyTaskEntityModel)
		newData.Context = ctx
		newData.ID = data.ID
		newData.Status = constant.TASK_STATUS_CANCELLED
		if err := s.TaskRepository.Update(ctx, newData).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"message": "success cancel task!",
	}, nil
}

// Delete removes the task with everything hanging off it, records first,
// then items, then the task row, all in one transaction.
func (s *service) Delete(ctx *abstraction.Context, payload *dto.TaskDeleteByIDRequest) (map[string]interface{}, error) {
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		data, err := s.TaskRepository.FindById(ctx, payload.ID)
		if err != nil {
			if err.Error() == "record not found" {
				return response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), "task not found")
			}
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		itemIds := make([]int, 0, len(data.Items))
		for _, item := range data.Items {
			itemIds = append(itemIds, item.ID)
		}
		if len(itemIds) > 0 {
			if err := s.RecordRepository.DeleteByItemIds(ctx, itemIds).Error; err != nil {
				return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
			}
			if err := s.ItemRepository.DeleteByTaskId(ctx, data.ID).Error; err != nil {
				return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
			}
		}

		data.Context = ctx
		if err := s.TaskRepository.Delete(ctx, data).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"message": "success delete task!",
	}, nil
}
