package statistic

import (
	"errors"
	"net/http"
	"sort"

	"retail_survey/internal/abstraction"
	"retail_survey/internal/dto"
	"retail_survey/internal/factory"
	"retail_survey/internal/repository"
	"retail_survey/pkg/constant"
	"retail_survey/pkg/util/general"
	"retail_survey/pkg/util/response"

	"gorm.io/gorm"
)

type Service interface {
	Completion(ctx *abstraction.Context, payload *dto.StatisticCompletionRequest) (*dto.StatisticCompletionResponse, error)
	TodayStatus(ctx *abstraction.Context, payload *dto.StatisticTodayStatusRequest) (*dto.StatisticTodayStatusResponse, error)
	Daily(ctx *abstraction.Context, payload *dto.StatisticDailyRequest) (*dto.StatisticDailyResponse, error)
	Trend(ctx *abstraction.Context, payload *dto.StatisticTrendRequest) ([]dto.TrendPoint, error)
	MonthlyTrend(ctx *abstraction.Context, payload *dto.StatisticMonthlyTrendRequest) ([]dto.MonthlyTrendPoint, error)
	SurveyorRanking(ctx *abstraction.Context, payload *dto.StatisticSurveyorRankingRequest) ([]dto.RankingEntry, error)
	CategoryDistribution(ctx *abstraction.Context, payload *dto.StatisticCategoryDistributionRequest) (*dto.StatisticCategoryDistributionResponse, error)
	SurveyorStats(ctx *abstraction.Context, payload *dto.StatisticSurveyorStatsRequest) ([]dto.SurveyorStatEntry, error)
}

type service struct {
	SurveyorRepository repository.Surveyor
	TaskRepository     repository.Task
	ItemRepository     repository.Item
	RecordRepository   repository.Record

	DB *gorm.DB
}

func NewService(f *factory.Factory) Service {
	return &service{
		SurveyorRepository: f.SurveyorRepository,
		TaskRepository:     f.TaskRepository,
		ItemRepository:     f.ItemRepository,
		RecordRepository:   f.RecordRepository,

		DB: f.Db,
	}
}

// Completion reports, per item of one task, how many records one surveyor
// has submitted. An item counts as completed once it has at least one
// record; extra records never push the completed count past the item count.
func (s *service) Completion(ctx *abstraction.Context, payload *dto.StatisticCompletionRequest) (*dto.StatisticCompletionResponse, error) {
	task, err := s.TaskRepository.FindById(ctx, payload.TaskId)
	if err != nil {
		if err.Error() == "record not found" {
			return nil, response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), "task not found")
		}
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	if _, err := s.SurveyorRepository.FindById(ctx, payload.SurveyorId); err != nil {
		if err.Error() == "record not found" {
			return nil, response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), "surveyor not found")
		}
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}

	itemIds := make([]int, 0, len(task.Items))
	for _, item := range task.Items {
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

	result := &dto.StatisticCompletionResponse{
		TaskId:     task.ID,
		SurveyorId: payload.SurveyorId,
		TotalItems: len(task.Items),
		Items:      make([]dto.CompletionItem, 0, len(task.Items)),
	}
	for _, item := range task.Items {
		count := countByItem[item.ID]
		if count > 0 {
			result.CompletedItems++
		}
		result.TotalRecords += count
		result.Items = append(result.Items, dto.CompletionItem{
			ItemId:      item.ID,
			Category:    item.Category,
			ProductName: item.ProductName,
			Count:       count,
			Completed:   count > 0,
		})
	}

	return result, nil
}

func (s *service) TodayStatus(ctx *abstraction.Context, payload *dto.StatisticTodayStatusRequest) (*dto.StatisticTodayStatusResponse, error) {
	start, end := general.DayRangeOf(*general.Now())

	itemIds, err := s.RecordRepository.FindItemIdsBySurveyorBetween(ctx, payload.SurveyorId, start, end)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	if itemIds == nil {
		itemIds = []int{}
	}

	return &dto.StatisticTodayStatusResponse{
		CompletedCount:   len(itemIds),
		CompletedItemIds: itemIds,
	}, nil
}

// Daily aggregates one calendar day. The completion rate denominator is
// item count times active surveyor count; a zero denominator yields a zero
// rate, never a division error.
func (s *service) Daily(ctx *abstraction.Context, payload *dto.StatisticDailyRequest) (*dto.StatisticDailyResponse, error) {
	date := payload.Date
	if date == "" {
		date = general.DateNow()
	}
	start, end, err := general.DayRange(date)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusBadRequest, err, "invalid date, expected YYYY-MM-DD")
	}

	tasks, err := s.TaskRepository.FindByDate(ctx, date)
	if err != nil && err.Error() != "record not found" {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	totalItems := 0
	for _, task := range tasks {
		totalItems += len(task.Items)
	}

	completedRecords, err := s.RecordRepository.CountBetween(ctx, start, end)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}

	activeSurveyors, err := s.SurveyorRepository.CountActive(ctx)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}

	rate := 0.0
	if denominator := totalItems * activeSurveyors; denominator > 0 {
		rate = general.RoundFloat(float64(completedRecords)/float64(denominator)*100, 2)
	}

	return &dto.StatisticDailyResponse{
		Date:             date,
		TotalTasks:       len(tasks),
		TotalItems:       totalItems,
		CompletedRecords: completedRecords,
		CompletionRate:   rate,
	}, nil
}

// Trend returns one point per day for a window ending today. The active
// surveyor count is read once and reused for every day of the window.
func (s *service) Trend(ctx *abstraction.Context, payload *dto.StatisticTrendRequest) ([]dto.TrendPoint, error) {
	days := payload.Days
	if days == 0 {
		days = constant.DEFAULT_TREND_DAYS
	}
	if days < 1 {
		return nil, response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), "days must be at least 1")
	}

	activeSurveyors, err := s.SurveyorRepository.CountActive(ctx)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}

	todayStart, _ := general.DayRangeOf(*general.Now())
	points := make([]dto.TrendPoint, 0, days)
	for offset := days - 1; offset >= 0; offset-- {
		start := todayStart.AddDate(0, 0, -offset)
		end := start.AddDate(0, 0, 1)
		date := general.FormatDate(start)

		recordCount, err := s.RecordRepository.CountBetween(ctx, start, end)
		if err != nil {
			return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}
		itemCount, err := s.ItemRepository.CountByTaskDate(ctx, date)
		if err != nil {
			return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		rate := 0.0
		if denominator := itemCount * activeSurveyors; denominator > 0 {
			rate = general.RoundFloat(float64(recordCount)/float64(denominator)*100, 1)
		}

		points = append(points, dto.TrendPoint{
			Date:           date,
			RecordCount:    recordCount,
			CompletionRate: rate,
		})
	}

	return points, nil
}

// MonthlyTrend returns one point per calendar day of the month, including
// days without records.
func (s *service) MonthlyTrend(ctx *abstraction.Context, payload *dto.StatisticMonthlyTrendRequest) ([]dto.MonthlyTrendPoint, error) {
	now := general.Now()
	year := payload.Year
	month := payload.Month
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return nil, response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), "month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return nil, response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), "year out of range")
	}

	monthStart, _ := general.MonthRange(year, month)
	totalDays := general.DaysInMonth(year, month)

	points := make([]dto.MonthlyTrendPoint, 0, totalDays)
	for day := 1; day <= totalDays; day++ {
		start := monthStart.AddDate(0, 0, day-1)
		end := start.AddDate(0, 0, 1)

		recordCount, err := s.RecordRepository.CountBetween(ctx, start, end)
		if err != nil {
			return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		points = append(points, dto.MonthlyTrendPoint{
			Day:         day,
			Date:        general.FormatDate(start),
			RecordCount: recordCount,
		})
	}

	return points, nil
}

// SurveyorRanking lists surveyors with at least one record on a day,
// ordered by record count. The per-surveyor rate denominator is the item
// count across all tasks scheduled for that day.
func (s *service) SurveyorRanking(ctx *abstraction.Context, payload *dto.StatisticSurveyorRankingRequest) ([]dto.RankingEntry, error) {
	date := payload.Date
	if date == "" {
		date = general.DateNow()
	}
	start, end, err := general.DayRange(date)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusBadRequest, err, "invalid date, expected YYYY-MM-DD")
	}

	rows, err := s.RecordRepository.Ranking(ctx, start, end)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}

	itemCount, err := s.ItemRepository.CountByTaskDate(ctx, date)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}

	entries := make([]dto.RankingEntry, 0, len(rows))
	for _, row := range rows {
		rate := 0.0
		if itemCount > 0 {
			rate = general.RoundFloat(float64(row.RecordCount)/float64(itemCount)*100, 1)
		}
		entries = append(entries, dto.RankingEntry{
			Id:             row.Id,
			Name:           row.Name,
			Count:          row.RecordCount,
			StoreCount:     row.StoreCount,
			CompletionRate: rate,
		})
	}

	return entries, nil
}

// foldOtherBucket merges rows without a second-level category name into a
// single bucket and keeps the list sorted by count descending. Named
// buckets win ties against the merged one.
func foldOtherBucket(rows []dto.CategoryBucket) []dto.CategoryBucket {
	buckets := make([]dto.CategoryBucket, 0, len(rows))
	other := 0
	for _, row := range rows {
		if row.Name == "" {
			other += row.Count
			continue
		}
		buckets = append(buckets, row)
	}
	if other > 0 {
		buckets = append(buckets, dto.CategoryBucket{Name: constant.CATEGORY_OTHER_LABEL, Count: other})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	return buckets
}

// CategoryDistribution buckets the records of a trailing window by the
// catalog's second-level category, split between the two first-level
// groups.
func (s *service) CategoryDistribution(ctx *abstraction.Context, payload *dto.StatisticCategoryDistributionRequest) (*dto.StatisticCategoryDistributionResponse, error) {
	days := payload.Days
	if days == 0 {
		days = constant.DEFAULT_DISTRIBUTION_DAYS
	}
	if days < 1 {
		return nil, response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), "days must be at least 1")
	}

	todayStart, todayEnd := general.DayRangeOf(*general.Now())
	start := todayStart.AddDate(0, 0, -(days - 1))

	result := &dto.StatisticCategoryDistributionResponse{
		Grocery: []dto.CategoryBucket{},
		Fresh:   []dto.CategoryBucket{},
	}

	for _, group := range []struct {
		level1 string
		target *[]dto.CategoryBucket
	}{
		{constant.CATEGORY_LEVEL1_GROCERY, &result.Grocery},
		{constant.CATEGORY_LEVEL1_FRESH, &result.Fresh},
	} {
		rows, err := s.RecordRepository.SubcategoryCountsBetween(ctx, group.level1, start, todayEnd)
		if err != nil {
			return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}
		buckets := make([]dto.CategoryBucket, 0, len(rows))
		for _, row := range rows {
			buckets = append(buckets, dto.CategoryBucket{Name: row.Name, Count: row.Count})
		}
		*group.target = foldOtherBucket(buckets)
	}

	return result, nil
}

// SurveyorStats ranks surveyors by record count for one month, keeping the
// top entries and collapsing the rest into a single bucket.
func (s *service) SurveyorStats(ctx *abstraction.Context, payload *dto.StatisticSurveyorStatsRequest) ([]dto.SurveyorStatEntry, error) {
	now := general.Now()
	year := payload.Year
	month := payload.Month
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return nil, response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), "month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return nil, response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), "year out of range")
	}

	start, end := general.MonthRange(year, month)
	rows, err := s.RecordRepository.SurveyorCountsBetween(ctx, start, end)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}

	entries := make([]dto.SurveyorStatEntry, 0, constant.SURVEYOR_STATS_TOP_N+1)
	other := 0
	for i, row := range rows {
		if i < constant.SURVEYOR_STATS_TOP_N {
			entries = append(entries, dto.SurveyorStatEntry{Name: row.Name, RecordCount: row.RecordCount})
			continue
		}
		other += row.RecordCount
	}
	if other > 0 {
		entries = append(entries, dto.SurveyorStatEntry{Name: constant.CATEGORY_OTHER_LABEL, RecordCount: other})
	}

	return entries, nil
}
