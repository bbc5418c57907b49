package record

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
		&model.ProductEntityModel{},
	))

	f := &factory.Factory{Db: db}
	f.SetupRepository()

	return NewService(f), f, &abstraction.Context{}
}

func seedFixture(t *testing.T, db *gorm.DB) (*model.SurveyorEntityModel, *model.SurveyItemEntityModel) {
	t.Helper()
	surveyor := &model.SurveyorEntityModel{SurveyorEntity: model.SurveyorEntity{Username: "alice", Name: "Alice", IsActive: true}}
	require.NoError(t, db.Create(surveyor).Error)
	task := &model.SurveyTaskEntityModel{SurveyTaskEntity: model.SurveyTaskEntity{Title: "t", Date: general.DateNow(), Status: "active"}}
	require.NoError(t, db.Create(task).Error)
	item := &model.SurveyItemEntityModel{SurveyItemEntity: model.SurveyItemEntity{TaskId: task.ID, Category: "c", ProductName: "p"}}
	require.NoError(t, db.Create(item).Error)
	return surveyor, item
}

func TestCreateStoresPhotosAsJson(t *testing.T) {
	svc, f, ctx := newTestService(t)
	surveyor, item := seedFixture(t, f.Db)

	result, err := svc.Create(ctx, &dto.RecordCreateRequest{
		ItemId:     item.ID,
		SurveyorId: surveyor.ID,
		StoreName:  "store-a",
		Price:      12.5,
		Photos:     []string{"/photos/survey-photos/a.jpg", "/photos/survey-photos/b.jpg"},
	})
	require.NoError(t, err)

	data, err := svc.FindById(ctx, &dto.RecordFindByIDRequest{ID: result["id"].(int)})
	require.NoError(t, err)
	require.NotNil(t, data.Photos)
	assert.JSONEq(t, `["/photos/survey-photos/a.jpg","/photos/survey-photos/b.jpg"]`, *data.Photos)
	require.NotNil(t, data.PhotoPath)
	assert.Equal(t, "/photos/survey-photos/a.jpg", *data.PhotoPath)
	assert.Equal(t, "Alice", data.Surveyor.Name)
	assert.Equal(t, "p", data.Item.ProductName)
}

func TestCreateRejectsUnknownItem(t *testing.T) {
	svc, f, ctx := newTestService(t)
	surveyor, _ := seedFixture(t, f.Db)

	_, err := svc.Create(ctx, &dto.RecordCreateRequest{
		ItemId:     999,
		SurveyorId: surveyor.ID,
		StoreName:  "store-a",
		Price:      1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not_found")
}

func TestCreateRejectsInactiveSurveyor(t *testing.T) {
	svc, f, ctx := newTestService(t)
	surveyor, item := seedFixture(t, f.Db)
	require.NoError(t, f.Db.Model(&model.SurveyorEntityModel{}).Where("id = ?", surveyor.ID).Update("is_active", false).Error)

	_, err := svc.Create(ctx, &dto.RecordCreateRequest{
		ItemId:     item.ID,
		SurveyorId: surveyor.ID,
		StoreName:  "store-a",
		Price:      1,
	})
	require.Error(t, err)
}

func TestFindFiltersBySurveyorAndDate(t *testing.T) {
	svc, f, ctx := newTestService(t)
	surveyor, item := seedFixture(t, f.Db)

	bob := &model.SurveyorEntityModel{SurveyorEntity: model.SurveyorEntity{Username: "bob", Name: "Bob", IsActive: true}}
	require.NoError(t, f.Db.Create(bob).Error)

	now := *general.Now()
	mkRecord := func(surveyorId int, daysAgo int) {
		rec := &model.SurveyRecordEntityModel{SurveyRecordEntity: model.SurveyRecordEntity{
			ItemId: item.ID, SurveyorId: surveyorId, StoreName: "store-a", Price: 1,
		}}
		rec.CreatedAt = now.AddDate(0, 0, -daysAgo)
		require.NoError(t, f.Db.Create(rec).Error)
	}
	mkRecord(surveyor.ID, 0)
	mkRecord(surveyor.ID, 1)
	mkRecord(bob.ID, 0)

	bySurveyor, err := svc.Find(ctx, &dto.RecordFindRequest{SurveyorId: surveyor.ID})
	require.NoError(t, err)
	assert.Len(t, bySurveyor, 2)

	byDate, err := svc.Find(ctx, &dto.RecordFindRequest{Date: general.DateNow()})
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	both, err := svc.Find(ctx, &dto.RecordFindRequest{SurveyorId: surveyor.ID, Date: general.DateNow()})
	require.NoError(t, err)
	assert.Len(t, both, 1)
}

func TestFindEnrichesWithCatalogCategories(t *testing.T) {
	svc, f, ctx := newTestService(t)
	surveyor, item := seedFixture(t, f.Db)

	grocery := "食品杂货"
	drinks := "饮料"
	require.NoError(t, f.Db.Create(&model.ProductEntityModel{ProductEntity: model.ProductEntity{
		Name: "p", CategoryLevel1Name: &grocery, CategoryLevel2Name: &drinks, IsActive: true,
	}}).Error)

	rec := &model.SurveyRecordEntityModel{SurveyRecordEntity: model.SurveyRecordEntity{
		ItemId: item.ID, SurveyorId: surveyor.ID, StoreName: "store-a", Price: 1,
	}}
	rec.CreatedAt = *general.Now()
	require.NoError(t, f.Db.Create(rec).Error)

	data, err := svc.Find(ctx, &dto.RecordFindRequest{SurveyorId: surveyor.ID})
	require.NoError(t, err)
	require.Len(t, data, 1)
	require.NotNil(t, data[0].CategoryLevel1Name)
	assert.Equal(t, grocery, *data[0].CategoryLevel1Name)
	require.NotNil(t, data[0].CategoryLevel2Name)
	assert.Equal(t, drinks, *data[0].CategoryLevel2Name)
}

func TestUpdateKeepsOwnershipFields(t *testing.T) {
	svc, f, ctx := newTestService(t)
	surveyor, item := seedFixture(t, f.Db)

	result, err := svc.Create(ctx, &dto.RecordCreateRequest{
		ItemId: item.ID, SurveyorId: surveyor.ID, StoreName: "store-a", Price: 1,
	})
	require.NoError(t, err)
	id := result["id"].(int)

	newName := "store-b"
	newPrice := 3.5
	_, err = svc.Update(ctx, &dto.RecordUpdateRequest{ID: id, StoreName: &newName, Price: &newPrice})
	require.NoError(t, err)

	data, err := svc.FindById(ctx, &dto.RecordFindByIDRequest{ID: id})
	require.NoError(t, err)
	assert.Equal(t, "store-b", data.StoreName)
	assert.Equal(t, 3.5, data.Price)
	assert.Equal(t, item.ID, data.ItemId)
	assert.Equal(t, surveyor.ID, data.SurveyorId)
}

func TestExportExcelProducesWorkbook(t *testing.T) {
	svc, f, ctx := newTestService(t)
	surveyor, item := seedFixture(t, f.Db)

	rec := &model.SurveyRecordEntityModel{SurveyRecordEntity: model.SurveyRecordEntity{
		ItemId: item.ID, SurveyorId: surveyor.ID, StoreName: "store-a", Price: 2,
	}}
	rec.CreatedAt = *general.Now()
	require.NoError(t, f.Db.Create(rec).Error)

	filename, buf, err := svc.Export(ctx, &dto.RecordExportRequest{Format: "excel", Date: general.DateNow()})
	require.NoError(t, err)
	assert.Contains(t, filename, ".xlsx")
	assert.Greater(t, buf.Len(), 0)
}

func TestExportPdfProducesDocument(t *testing.T) {
	svc, f, ctx := newTestService(t)
	surveyor, item := seedFixture(t, f.Db)

	rec := &model.SurveyRecordEntityModel{SurveyRecordEntity: model.SurveyRecordEntity{
		ItemId: item.ID, SurveyorId: surveyor.ID, StoreName: "store-a", Price: 2,
	}}
	rec.CreatedAt = *general.Now()
	require.NoError(t, f.Db.Create(rec).Error)

	filename, buf, err := svc.Export(ctx, &dto.RecordExportRequest{Format: "pdf", Date: general.DateNow()})
	require.NoError(t, err)
	assert.Contains(t, filename, ".pdf")
	assert.Greater(t, buf.Len(), 0)
}
