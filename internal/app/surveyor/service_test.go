package surveyor

import (
	"fmt"
	"testing"

	"retail_survey/internal/abstraction"
	"retail_survey/internal/dto"
	"retail_survey/internal/factory"
	"retail_survey/internal/model"
	"retail_survey/pkg/util/general"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
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

func TestCreateHashesPassword(t *testing.T) {
	svc, f, ctx := newTestService(t)

	result, err := svc.Create(ctx, &dto.SurveyorCreateRequest{
		Username: "alice",
		Password: "secret123",
		Name:     "Alice",
	})
	require.NoError(t, err)

	var data model.SurveyorEntityModel
	require.NoError(t, f.Db.First(&data, result["id"]).Error)
	assert.True(t, data.IsActive)
	assert.NotEqual(t, "secret123", data.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(data.Password), []byte("secret123")))
}

func TestCreateRejectsDuplicateUsername(t *testing.T) {
	svc, _, ctx := newTestService(t)

	_, err := svc.Create(ctx, &dto.SurveyorCreateRequest{Username: "alice", Password: "secret123", Name: "Alice"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &dto.SurveyorCreateRequest{Username: "alice", Password: "other456", Name: "Imposter"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad_request")
}

func TestUpdateCanDeactivate(t *testing.T) {
	svc, f, ctx := newTestService(t)

	result, err := svc.Create(ctx, &dto.SurveyorCreateRequest{Username: "alice", Password: "secret123", Name: "Alice"})
	require.NoError(t, err)
	id := result["id"].(int)

	inactive := false
	_, err = svc.Update(ctx, &dto.SurveyorUpdateRequest{ID: id, IsActive: &inactive})
	require.NoError(t, err)

	var data model.SurveyorEntityModel
	require.NoError(t, f.Db.First(&data, id).Error)
	assert.False(t, data.IsActive)
}

func TestDeleteRefusedWhileRecordsExist(t *testing.T) {
	svc, f, ctx := newTestService(t)

	result, err := svc.Create(ctx, &dto.SurveyorCreateRequest{Username: "alice", Password: "secret123", Name: "Alice"})
	require.NoError(t, err)
	id := result["id"].(int)

	rec := &model.SurveyRecordEntityModel{SurveyRecordEntity: model.SurveyRecordEntity{
		ItemId:     1,
		SurveyorId: id,
		StoreName:  "store-a",
		Price:      1,
	}}
	rec.CreatedAt = *general.Now()
	require.NoError(t, f.Db.Create(rec).Error)

	_, err = svc.Delete(ctx, &dto.SurveyorDeleteByIDRequest{ID: id})
	require.Error(t, err)

	require.NoError(t, f.Db.Delete(rec).Error)
	_, err = svc.Delete(ctx, &dto.SurveyorDeleteByIDRequest{ID: id})
	require.NoError(t, err)
}

func TestStatsAggregatesHistory(t *testing.T) {
	svc, f, ctx := newTestService(t)

	result, err := svc.Create(ctx, &dto.SurveyorCreateRequest{Username: "alice", Password: "secret123", Name: "Alice"})
	require.NoError(t, err)
	id := result["id"].(int)

	now := *general.Now()
	for i, itemId := range []int{1, 1, 2} {
		rec := &model.SurveyRecordEntityModel{SurveyRecordEntity: model.SurveyRecordEntity{
			ItemId:     itemId,
			SurveyorId: id,
			StoreName:  "store-a",
			Price:      1,
		}}
		rec.CreatedAt = now.AddDate(0, 0, -i)
		require.NoError(t, f.Db.Create(rec).Error)
	}

	stats, err := svc.Stats(ctx, &dto.SurveyorStatsRequest{ID: id})
	require.NoError(t, err)
	assert.Equal(t, 3, stats["total_records"])
	assert.Equal(t, 3, stats["active_days"])
	assert.Equal(t, 2, stats["covered_items"])
}

func TestTodayDetailsFiltersByDay(t *testing.T) {
	svc, f, ctx := newTestService(t)

	result, err := svc.Create(ctx, &dto.SurveyorCreateRequest{Username: "alice", Password: "secret123", Name: "Alice"})
	require.NoError(t, err)
	id := result["id"].(int)

	item := &model.SurveyItemEntityModel{SurveyItemEntity: model.SurveyItemEntity{TaskId: 1, Category: "c", ProductName: "p"}}
	require.NoError(t, f.Db.Create(item).Error)

	now := *general.Now()
	today := &model.SurveyRecordEntityModel{SurveyRecordEntity: model.SurveyRecordEntity{ItemId: item.ID, SurveyorId: id, StoreName: "store-a", Price: 1}}
	today.CreatedAt = now
	require.NoError(t, f.Db.Create(today).Error)
	yesterday := &model.SurveyRecordEntityModel{SurveyRecordEntity: model.SurveyRecordEntity{ItemId: item.ID, SurveyorId: id, StoreName: "store-b", Price: 1}}
	yesterday.CreatedAt = now.AddDate(0, 0, -1)
	require.NoError(t, f.Db.Create(yesterday).Error)

	data, err := svc.TodayDetails(ctx, &dto.SurveyorTodayDetailsRequest{ID: id})
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, "store-a", data[0].StoreName)
}
