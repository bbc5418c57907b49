package task

import (
	"fmt"
	"testing"

	"retail_survey/internal/abstraction"
	"retail_survey/internal/dto"
	"retail_survey/internal/factory"
	"retail_survey/internal/model"
	"retail_survey/pkg/constant"
	"retail_survey/pkg/util/general"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (Service, *factory.Factory, *abstraction.Context) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.SurveyorEntityModel{},
		&model.SurveyTaskEntityModel{},
		&model.SurveyItemEntityModel{},
		&model.SurveyRecordEntityModel{},
	))

	f := &factory.Factory{Db: db}
	f.SetupRepository()

	return NewService(f), f, &abstraction.Context{}
}

func TestCreateTaskWithItems(t *testing.T) {
	svc, f, ctx := newTestService(t)

	result, err := svc.Create(ctx, &dto.TaskCreateRequest{
		Title: "competitor check",
		Date:  "2026-09-01",
		Items: []dto.TaskItemPayload{
			{Category: "乳制品", ProductName: "milk"},
			{Category: "饮料", ProductName: "cola"},
		},
	})
	require.NoError(t, err)
	taskId := result["id"].(int)

	data, err := svc.FindById(ctx, &dto.TaskFindByIDRequest{ID: taskId})
	require.NoError(t, err)
	assert.Equal(t, "competitor check", data.Title)
	assert.Equal(t, constant.TASK_STATUS_ACTIVE, data.Status)
	require.Len(t, data.Items, 2)
	assert.Equal(t, 1, data.Items[0].SortOrder)
	assert.Equal(t, 2, data.Items[1].SortOrder)

	var count int64
	require.NoError(t, f.Db.Model(&model.SurveyItemEntityModel{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestCreateTaskRejectsBadDate(t *testing.T) {
	svc, _, ctx := newTestService(t)

	_, err := svc.Create(ctx, &dto.TaskCreateRequest{Title: "x", Date: "01/09/2026"})
	require.Error(t, err)
}

func TestFindFiltersByDate(t *testing.T) {
	svc, _, ctx := newTestService(t)

	_, err := svc.Create(ctx, &dto.TaskCreateRequest{Title: "a", Date: "2026-09-01"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &dto.TaskCreateRequest{Title: "b", Date: "2026-09-02"})
	require.NoError(t, err)

	data, err := svc.Find(ctx, &dto.TaskFindRequest{Date: "2026-09-01"})
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, "a", data[0].Title)

	all, err := svc.Find(ctx, &dto.TaskFindRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCancelSetsStatus(t *testing.T) {
	svc, _, ctx := newTestService(t)

	result, err := svc.Create(ctx, &dto.TaskCreateRequest{Title: "a", Date: "2026-09-01"})
	require.NoError(t, err)
	taskId := result["id"].(int)

	_, err = svc.Cancel(ctx, &dto.TaskCancelRequest{ID: taskId})
	require.NoError(t, err)

	data, err := svc.FindById(ctx, &dto.TaskFindByIDRequest{ID: taskId})
	require.NoError(t, err)
	assert.Equal(t, constant.TASK_STATUS_CANCELLED, data.Status)
}

func TestUpdateRejectsLeavingCancelled(t *testing.T) {
	svc, _, ctx := newTestService(t)

	result, err := svc.Create(ctx, &dto.TaskCreateRequest{Title: "a", Date: "2026-09-01"})
	require.NoError(t, err)
	taskId := result["id"].(int)

	_, err = svc.Cancel(ctx, &dto.TaskCancelRequest{ID: taskId})
	require.NoError(t, err)

	active := constant.TASK_STATUS_ACTIVE
	_, err = svc.Update(ctx, &dto.TaskUpdateRequest{ID: taskId, Status: &active})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad_request")
}

func TestTodayHidesItemsOfCancelledTask(t *testing.T) {
	svc, f, ctx := newTestService(t)

	surveyor := &model.SurveyorEntityModel{SurveyorEntity: model.SurveyorEntity{Username: "alice", Name: "alice", IsActive: true}}
	require.NoError(t, f.Db.Create(surveyor).Error)

	result, err := svc.Create(ctx, &dto.TaskCreateRequest{
		Title: "a",
		Date:  general.DateNow(),
		Items: []dto.TaskItemPayload{{Category: "c", ProductName: "p"}},
	})
	require.NoError(t, err)
	taskId := result["id"].(int)

	_, err = svc.Cancel(ctx, &dto.TaskCancelRequest{ID: taskId})
	require.NoError(t, err)

	data, err := svc.Today(ctx, &dto.TaskTodayRequest{SurveyorId: surveyor.ID})
	require.NoError(t, err)
	task := data["task"].(map[string]interface{})
	assert.Equal(t, constant.TASK_STATUS_CANCELLED, task["status"])
	assert.Empty(t, data["items"])
}

func TestDeleteCascadesToItemsAndRecords(t *testing.T) {
	svc, f, ctx := newTestService(t)

	surveyor := &model.SurveyorEntityModel{SurveyorEntity: model.SurveyorEntity{Username: "alice", Name: "alice", IsActive: true}}
	require.NoError(t, f.Db.Create(surveyor).Error)

	result, err := svc.Create(ctx, &dto.TaskCreateRequest{
		Title: "a",
		Date:  "2026-09-01",
		Items: []dto.TaskItemPayload{{Category: "c", ProductName: "p"}},
	})
	require.NoError(t, err)
	taskId := result["id"].(int)

	data, err := svc.FindById(ctx, &dto.TaskFindByIDRequest{ID: taskId})
	require.NoError(t, err)
	rec := &model.SurveyRecordEntityModel{SurveyRecordEntity: model.SurveyRecordEntity{
		ItemId:     data.Items[0].ID,
		SurveyorId: surveyor.ID,
		StoreName:  "store-a",
		Price:      1,
	}}
	rec.CreatedAt = *general.Now()
	require.NoError(t, f.Db.Create(rec).Error)

	_, err = svc.Delete(ctx, &dto.TaskDeleteByIDRequest{ID: taskId})
	require.NoError(t, err)

	var tasks, items, records int64
	require.NoError(t, f.Db.Model(&model.SurveyTaskEntityModel{}).Count(&tasks).Error)
	require.NoError(t, f.Db.Model(&model.SurveyItemEntityModel{}).Count(&items).Error)
	require.NoError(t, f.Db.Model(&model.SurveyRecordEntityModel{}).Count(&records).Error)
	assert.Zero(t, tasks)
	assert.Zero(t, items)
	assert.Zero(t, records)
}

func TestDeleteMissingTask(t *testing.T) {
	svc, _, ctx := newTestService(t)

	_, err := svc.Delete(ctx, &dto.TaskDeleteByIDRequest{ID: 42})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not_found")
}
