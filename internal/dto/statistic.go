package dto

type StatisticCompletionRequest struct {
	TaskId     int `param:"task_id" validate:"required,min=1"`
	SurveyorId int `param:"surveyor_id" validate:"required,min=1"`
}

type CompletionItem struct {
	ItemId      int    `json:"item_id"`
	Category    string `json:"category"`
	ProductName string `json:"product_name"`
	Count       int    `json:"count"`
	Completed   bool   `json:"completed"`
}

type StatisticCompletionResponse struct {
	TaskId         int              `json:"task_id"`
	SurveyorId     int              `json:"surveyor_id"`
	TotalItems     int              `json:"total_items"`
	CompletedItems int              `json:"completed_items"`
	TotalRecords   int              `json:"total_records"`
	Items          []CompletionItem `json:"items"`
}

type StatisticTodayStatusRequest struct {
	SurveyorId int `param:"surveyor_id" validate:"required,min=1"`
}

type StatisticTodayStatusResponse struct {
	CompletedCount   int   `json:"completed_count"`
	CompletedItemIds []int `json:"completed_item_ids"`
}

type StatisticDailyRequest struct {
	Date string `query:"date"`
}

type StatisticDailyResponse struct {
	Date             string  `json:"date"`
	TotalTasks       int     `json:"total_tasks"`
	TotalItems       int     `json:"total_items"`
	CompletedRecords int     `json:"completed_records"`
	CompletionRate   float64 `json:"completion_rate"`
}

type StatisticTrendRequest struct {
	Days int `query:"days"`
}

type TrendPoint struct {
	Date           string  `json:"date"`
	RecordCount    int     `json:"record_count"`
	CompletionRate float64 `json:"completion_rate"`
}

type StatisticMonthlyTrendRequest struct {
	Year  int `query:"year"`
	Month int `query:"month"`
}

type MonthlyTrendPoint struct {
	Day         int    `json:"day"`
	Date        string `json:"date"`
	RecordCount int    `json:"record_count"`
}

type StatisticSurveyorRankingRequest struct {
	Date string `query:"date"`
}

type RankingEntry struct {
	Id             int     `json:"id"`
	Name           string  `json:"name"`
	Count          int     `json:"count"`
	StoreCount     int     `json:"store_count"`
	CompletionRate float64 `json:"completion_rate"`
}

type StatisticCategoryDistributionRequest struct {
	Days int `query:"days"`
}

type CategoryBucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type StatisticCategoryDistributionResponse struct {
	Grocery []CategoryBucket `json:"grocery"`
	Fresh   []CategoryBucket `json:"fresh"`
}

type StatisticSurveyorStatsRequest struct {
	Year  int `query:"year"`
	Month int `query:"month"`
}

type SurveyorStatEntry struct {
	Name        string `json:"name"`
	RecordCount int    `json:"record_count"`
}
