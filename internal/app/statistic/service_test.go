package statistic

import (
	"fmt"
	"testing"
	"time"

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
		&model.ProductEntityModel{},
	))

	f := &factory.Factory{Db: db}
	f.SetupRepository()

	return NewService(f), f, &abstraction.Context{}
}

func seedSurveyor(t *testing.T, db *gorm.DB, name string, active bool) *model.SurveyorEntityModel {
	t.Helper()
	s := &model.SurveyorEntityModel{
		SurveyorEntity: model.SurveyorEntity{
			Username: name,
			Password: "x",
			Name:     name,
			IsActive: active,
		},
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func seedTask(t *testing.T, db *gorm.DB, date string, itemCount int) *model.SurveyTaskEntityModel {
	t.Helper()
	task := &model.SurveyTaskEntityModel{
		SurveyTaskEntity: model.SurveyTaskEntity{
			Title:  "survey " + date,
			Date:   date,
			Status: constant.TASK_STATUS_ACTIVE,
		},
	}
	require.NoError(t, db.Create(task).Error)
	for i := 0; i < itemCount; i++ {
		item := &model.SurveyItemEntityModel{
			SurveyItemEntity: model.SurveyItemEntity{
				TaskId:      task.ID,
				Category:    "乳制品",
				ProductName: "product",
				SortOrder:   i + 1,
			},
		}
		require.NoError(t, db.Create(item).Error)
		task.Items = append(task.Items, *item)
	}
	return task
}

func seedRecord(t *testing.T, db *gorm.DB, itemId, surveyorId int, storeName string, createdAt time.Time) *model.SurveyRecordEntityModel {
	t.Helper()
	rec := &model.SurveyRecordEntityModel{
		SurveyRecordEntity: model.SurveyRecordEntity{
			ItemId:     itemId,
			SurveyorId: surveyorId,
			StoreName:  storeName,
			Price:      9.9,
		},
	}
	rec.CreatedAt = createdAt
	require.NoError(t, db.Create(rec).Error)
	return rec
}

func TestCompletionCountsItemsOnce(t *testing.T) {
	svc, f, ctx := newTestService(t)

	surveyor := seedSurveyor(t, f.Db, "alice", true)
	task := seedTask(t, f.Db, general.DateNow(), 4)
	now := *general.Now()

	// two records against the first item, one against the second
	seedRecord(t, f.Db, task.Items[0].ID, surveyor.ID, "store-a", now)
	seedRecord(t, f.Db, task.Items[0].ID, surveyor.ID, "store-b", now)
	seedRecord(t, f.Db, task.Items[1].ID, surveyor.ID, "store-a", now)

	result, err := svc.Completion(ctx, &dto.StatisticCompletionRequest{TaskId: task.ID, SurveyorId: surveyor.ID})
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalItems)
	assert.Equal(t, 2, result.CompletedItems)
	assert.Equal(t, 3, result.TotalRecords)
	assert.Len(t, result.Items, 4)
	assert.Equal(t, 2, result.Items[0].Count)
	assert.True(t, result.Items[0].Completed)
	assert.True(t, result.Items[1].Completed)
	assert.False(t, result.Items[2].Completed)
	assert.False(t, result.Items[3].Completed)
}

func TestCompletionTaskNotFound(t *testing.T) {
	svc, _, ctx := newTestService(t)

	_, err := svc.Completion(ctx, &dto.StatisticCompletionRequest{TaskId: 999, SurveyorId: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not_found")
}

func TestCompletionZeroItemTask(t *testing.T) {
	svc, f, ctx := newTestService(t)

	surveyor := seedSurveyor(t, f.Db, "alice", true)
	task := seedTask(t, f.Db, general.DateNow(), 0)

	result, err := svc.Completion(ctx, &dto.StatisticCompletionRequest{TaskId: task.ID, SurveyorId: surveyor.ID})
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalItems)
	assert.Equal(t, 0, result.CompletedItems)
	assert.Equal(t, 0, result.TotalRecords)
	assert.Empty(t, result.Items)
}

func TestCompletionSurveyorNotFound(t *testing.T) {
	svc, f, ctx := newTestService(t)

	task := seedTask(t, f.Db, general.DateNow(), 1)

	_, err := svc.Completion(ctx, &dto.StatisticCompletionRequest{TaskId: task.ID, SurveyorId: 999})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not_found")
}

func TestTodayStatusListsDistinctItems(t *testing.T) {
	svc, f, ctx := newTestService(t)

	surveyor := seedSurveyor(t, f.Db, "alice", true)
	task := seedTask(t, f.Db, general.DateNow(), 3)
	now := *general.Now()

	seedRecord(t, f.Db, task.Items[0].ID, surveyor.ID, "store-a", now)
	seedRecord(t, f.Db, task.Items[0].ID, surveyor.ID, "store-b", now)
	seedRecord(t, f.Db, task.Items[2].ID, surveyor.ID, "store-a", now)
	// yesterday's record stays out of today's status
	seedRecord(t, f.Db, task.Items[1].ID, surveyor.ID, "store-a", now.AddDate(0, 0, -1))

	result, err := svc.TodayStatus(ctx, &dto.StatisticTodayStatusRequest{SurveyorId: surveyor.ID})
	require.NoError(t, err)

	assert.Equal(t, 2, result.CompletedCount)
	assert.ElementsMatch(t, []int{task.Items[0].ID, task.Items[2].ID}, result.CompletedItemIds)
}

func TestDailyComputesCompletionRate(t *testing.T) {
	svc, f, ctx := newTestService(t)

	// 10 items, 2 active surveyors, 5 records -> 5/(10*2)*100 = 25.00
	alice := seedSurveyor(t, f.Db, "alice", true)
	seedSurveyor(t, f.Db, "bob", true)
	seedSurveyor(t, f.Db, "carol", false)

	date := general.DateNow()
	task := seedTask(t, f.Db, date, 10)
	now := *general.Now()
	for i := 0; i < 5; i++ {
		seedRecord(t, f.Db, task.Items[i].ID, alice.ID, "store-a", now)
	}

	result, err := svc.Daily(ctx, &dto.StatisticDailyRequest{Date: date})
	require.NoError(t, err)

	assert.Equal(t, date, result.Date)
	assert.Equal(t, 1, result.TotalTasks)
	assert.Equal(t, 10, result.TotalItems)
	assert.Equal(t, 5, result.CompletedRecords)
	assert.Equal(t, 25.0, result.CompletionRate)
}

func TestSeededInactiveSurveyorStaysInactive(t *testing.T) {
	_, f, ctx := newTestService(t)

	seedSurveyor(t, f.Db, "alice", true)
	inactive := seedSurveyor(t, f.Db, "bob", false)

	var stored model.SurveyorEntityModel
	require.NoError(t, f.Db.First(&stored, inactive.ID).Error)
	assert.False(t, stored.IsActive)

	active, err := f.SurveyorRepository.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, active)
}

func TestDailyIsIdempotent(t *testing.T) {
	svc, f, ctx := newTestService(t)

	alice := seedSurveyor(t, f.Db, "alice", true)
	date := general.DateNow()
	task := seedTask(t, f.Db, date, 4)
	now := *general.Now()
	seedRecord(t, f.Db, task.Items[0].ID, alice.ID, "store-a", now)

	first, err := svc.Daily(ctx, &dto.StatisticDailyRequest{Date: date})
	require.NoError(t, err)
	second, err := svc.Daily(ctx, &dto.StatisticDailyRequest{Date: date})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDailyZeroDenominatorYieldsZeroRate(t *testing.T) {
	svc, _, ctx := newTestService(t)

	result, err := svc.Daily(ctx, &dto.StatisticDailyRequest{Date: "2026-01-15"})
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalTasks)
	assert.Equal(t, 0, result.TotalItems)
	assert.Equal(t, 0.0, result.CompletionRate)
}

func TestDailyRejectsMalformedDate(t *testing.T) {
	svc, _, ctx := newTestService(t)

	_, err := svc.Daily(ctx, &dto.StatisticDailyRequest{Date: "15-01-2026"})
	require.Error(t, err)
}

func TestTrendReturnsOnePointPerDay(t *testing.T) {
	svc, f, ctx := newTestService(t)

	alice := seedSurveyor(t, f.Db, "alice", true)
	task := seedTask(t, f.Db, general.DateNow(), 2)
	now := *general.Now()
	seedRecord(t, f.Db, task.Items[0].ID, alice.ID, "store-a", now)
	seedRecord(t, f.Db, task.Items[1].ID, alice.ID, "store-a", now.AddDate(0, 0, -1))

	points, err := svc.Trend(ctx, &dto.StatisticTrendRequest{Days: 3})
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, general.FormatDate(now.AddDate(0, 0, -2)), points[0].Date)
	assert.Equal(t, general.DateNow(), points[2].Date)
	assert.Equal(t, 0, points[0].RecordCount)
	assert.Equal(t, 1, points[1].RecordCount)
	assert.Equal(t, 1, points[2].RecordCount)
	// 1 record / (2 items * 1 active surveyor) = 50.0
	assert.Equal(t, 50.0, points[2].CompletionRate)
}

func TestTrendRejectsNegativeDays(t *testing.T) {
	svc, _, ctx := newTestService(t)

	_, err := svc.Trend(ctx, &dto.StatisticTrendRequest{Days: -1})
	require.Error(t, err)
}

func TestMonthlyTrendIsLeapYearAware(t *testing.T) {
	svc, f, ctx := newTestService(t)

	alice := seedSurveyor(t, f.Db, "alice", true)
	task := seedTask(t, f.Db, "2024-02-10", 1)
	ts := time.Date(2024, 2, 10, 14, 30, 0, 0, general.Location())
	seedRecord(t, f.Db, task.Items[0].ID, alice.ID, "store-a", ts)

	points, err := svc.MonthlyTrend(ctx, &dto.StatisticMonthlyTrendRequest{Year: 2024, Month: 2})
	require.NoError(t, err)
	require.Len(t, points, 29)

	assert.Equal(t, 1, points[0].Day)
	assert.Equal(t, "2024-02-01", points[0].Date)
	assert.Equal(t, 29, points[28].Day)
	assert.Equal(t, "2024-02-29", points[28].Date)
	assert.Equal(t, 1, points[9].RecordCount)
	assert.Equal(t, 0, points[10].RecordCount)
}

func TestMonthlyTrendRejectsBadMonth(t *testing.T) {
	svc, _, ctx := newTestService(t)

	_, err := svc.MonthlyTrend(ctx, &dto.StatisticMonthlyTrendRequest{Year: 2026, Month: 13})
	require.Error(t, err)
}

func TestSurveyorRankingOrdersAndRates(t *testing.T) {
	svc, f, ctx := newTestService(t)

	alice := seedSurveyor(t, f.Db, "alice", true)
	bob := seedSurveyor(t, f.Db, "bob", true)
	carol := seedSurveyor(t, f.Db, "carol", true)
	seedSurveyor(t, f.Db, "idle", true)

	date := general.DateNow()
	task := seedTask(t, f.Db, date, 3)
	now := *general.Now()

	// bob: 3 records in 2 stores, alice: 2, carol: 2 (tie broken by id)
	seedRecord(t, f.Db, task.Items[0].ID, bob.ID, "store-a", now)
	seedRecord(t, f.Db, task.Items[1].ID, bob.ID, "store-a", now)
	seedRecord(t, f.Db, task.Items[2].ID, bob.ID, "store-b", now)
	seedRecord(t, f.Db, task.Items[0].ID, alice.ID, "store-a", now)
	seedRecord(t, f.Db, task.Items[1].ID, alice.ID, "store-b", now)
	seedRecord(t, f.Db, task.Items[0].ID, carol.ID, "store-c", now)
	seedRecord(t, f.Db, task.Items[1].ID, carol.ID, "store-c", now)

	entries, err := svc.SurveyorRanking(ctx, &dto.StatisticSurveyorRankingRequest{Date: date})
	require.NoError(t, err)
	require.Len(t, entries, 3, "surveyors without records stay out of the ranking")

	assert.Equal(t, bob.ID, entries[0].Id)
	assert.Equal(t, 3, entries[0].Count)
	assert.Equal(t, 2, entries[0].StoreCount)
	assert.Equal(t, 100.0, entries[0].CompletionRate)

	assert.Equal(t, alice.ID, entries[1].Id)
	assert.Equal(t, carol.ID, entries[2].Id)
	assert.Equal(t, 2, entries[2].Count)
	assert.Equal(t, 1, entries[2].StoreCount)
	// 2/3*100 = 66.666... -> 66.7
	assert.Equal(t, 66.7, entries[1].CompletionRate)
}

func seedProduct(t *testing.T, db *gorm.DB, name string, level1, level2 *string) {
	t.Helper()
	p := &model.ProductEntityModel{
		ProductEntity: model.ProductEntity{
			Name:               name,
			CategoryLevel1Name: level1,
			CategoryLevel2Name: level2,
			IsActive:           true,
		},
	}
	require.NoError(t, db.Create(p).Error)
}

func TestCategoryDistributionBucketsAndFoldsOther(t *testing.T) {
	svc, f, ctx := newTestService(t)

	grocery := constant.CATEGORY_LEVEL1_GROCERY
	fresh := constant.CATEGORY_LEVEL1_FRESH
	drinks := "饮料"
	vegetables := "蔬菜"
	seedProduct(t, f.Db, "cola", &grocery, &drinks)
	seedProduct(t, f.Db, "mystery", &grocery, nil)
	seedProduct(t, f.Db, "cabbage", &fresh, &vegetables)

	alice := seedSurveyor(t, f.Db, "alice", true)
	now := *general.Now()

	task := &model.SurveyTaskEntityModel{SurveyTaskEntity: model.SurveyTaskEntity{Title: "t", Date: general.DateNow(), Status: constant.TASK_STATUS_ACTIVE}}
	require.NoError(t, f.Db.Create(task).Error)
	mkItem := func(productName string) *model.SurveyItemEntityModel {
		item := &model.SurveyItemEntityModel{SurveyItemEntity: model.SurveyItemEntity{TaskId: task.ID, Category: "x", ProductName: productName}}
		require.NoError(t, f.Db.Create(item).Error)
		return item
	}
	cola := mkItem("cola")
	mystery := mkItem("mystery")
	cabbage := mkItem("cabbage")
	unknown := mkItem("not-in-catalog")

	seedRecord(t, f.Db, cola.ID, alice.ID, "store-a", now)
	seedRecord(t, f.Db, cola.ID, alice.ID, "store-b", now)
	seedRecord(t, f.Db, mystery.ID, alice.ID, "store-a", now)
	seedRecord(t, f.Db, cabbage.ID, alice.ID, "store-a", now)
	seedRecord(t, f.Db, unknown.ID, alice.ID, "store-a", now)
	// outside the window
	seedRecord(t, f.Db, cola.ID, alice.ID, "store-a", now.AddDate(0, 0, -10))

	result, err := svc.CategoryDistribution(ctx, &dto.StatisticCategoryDistributionRequest{Days: 7})
	require.NoError(t, err)

	require.Len(t, result.Grocery, 2)
	assert.Equal(t, drinks, result.Grocery[0].Name)
	assert.Equal(t, 2, result.Grocery[0].Count)
	assert.Equal(t, constant.CATEGORY_OTHER_LABEL, result.Grocery[1].Name)
	assert.Equal(t, 1, result.Grocery[1].Count)

	require.Len(t, result.Fresh, 1)
	assert.Equal(t, vegetables, result.Fresh[0].Name)
	assert.Equal(t, 1, result.Fresh[0].Count)
}

func TestCategoryDistributionRejectsNegativeDays(t *testing.T) {
	svc, _, ctx := newTestService(t)

	_, err := svc.CategoryDistribution(ctx, &dto.StatisticCategoryDistributionRequest{Days: -5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad_request")
}

func TestCategoryDistributionSortsFoldedBucketByCount(t *testing.T) {
	svc, f, ctx := newTestService(t)

	grocery := constant.CATEGORY_LEVEL1_GROCERY
	drinks := "饮料"
	seedProduct(t, f.Db, "cola", &grocery, &drinks)
	seedProduct(t, f.Db, "mystery", &grocery, nil)

	alice := seedSurveyor(t, f.Db, "alice", true)
	now := *general.Now()

	task := &model.SurveyTaskEntityModel{SurveyTaskEntity: model.SurveyTaskEntity{Title: "t", Date: general.DateNow(), Status: constant.TASK_STATUS_ACTIVE}}
	require.NoError(t, f.Db.Create(task).Error)
	cola := &model.SurveyItemEntityModel{SurveyItemEntity: model.SurveyItemEntity{TaskId: task.ID, Category: "x", ProductName: "cola"}}
	require.NoError(t, f.Db.Create(cola).Error)
	mystery := &model.SurveyItemEntityModel{SurveyItemEntity: model.SurveyItemEntity{TaskId: task.ID, Category: "x", ProductName: "mystery"}}
	require.NoError(t, f.Db.Create(mystery).Error)

	// the unnamed subcategory outweighs the named one
	seedRecord(t, f.Db, mystery.ID, alice.ID, "store-a", now)
	seedRecord(t, f.Db, mystery.ID, alice.ID, "store-b", now)
	seedRecord(t, f.Db, mystery.ID, alice.ID, "store-c", now)
	seedRecord(t, f.Db, cola.ID, alice.ID, "store-a", now)

	result, err := svc.CategoryDistribution(ctx, &dto.StatisticCategoryDistributionRequest{Days: 7})
	require.NoError(t, err)

	require.Len(t, result.Grocery, 2)
	assert.Equal(t, constant.CATEGORY_OTHER_LABEL, result.Grocery[0].Name)
	assert.Equal(t, 3, result.Grocery[0].Count)
	assert.Equal(t, drinks, result.Grocery[1].Name)
	assert.Equal(t, 1, result.Grocery[1].Count)
}

func TestSurveyorStatsCollapsesTail(t *testing.T) {
	svc, f, ctx := newTestService(t)

	date := general.DateNow()
	task := seedTask(t, f.Db, date, 1)
	now := *general.Now()

	names := []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7"}
	for i, name := range names {
		s := seedSurveyor(t, f.Db, name, true)
		// s1 submits 8 records, s2 submits 7, down to s7 with 2
		for j := 0; j < 8-i; j++ {
			seedRecord(t, f.Db, task.Items[0].ID, s.ID, "store-a", now)
		}
	}

	entries, err := svc.SurveyorStats(ctx, &dto.StatisticSurveyorStatsRequest{
		Year:  now.Year(),
		Month: int(now.Month()),
	})
	require.NoError(t, err)
	require.Len(t, entries, constant.SURVEYOR_STATS_TOP_N+1)

	assert.Equal(t, "s1", entries[0].Name)
	assert.Equal(t, 8, entries[0].RecordCount)
	assert.Equal(t, "s5", entries[4].Name)
	assert.Equal(t, constant.CATEGORY_OTHER_LABEL, entries[5].Name)
	// s6 + s7 = 3 + 2
	assert.Equal(t, 5, entries[5].RecordCount)
}
