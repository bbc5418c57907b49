package statistic

import (
	"retail_survey/internal/middleware"

	"github.com/labstack/echo/v4"
)

func (h *handler) Route(v *echo.Group) {
	v.GET("/completion/:task_id/:surveyor_id", h.Completion, middleware.Authentication)
	v.GET("/today-status/:surveyor_id", h.TodayStatus, middleware.Authentication)
	v.GET("/daily", h.Daily, middleware.Authentication)
	v.GET("/trend", h.Trend, middleware.Authentication)
	v.GET("/monthly-trend", h.MonthlyTrend, middleware.Authentication)
	v.GET("/surveyor-ranking", h.SurveyorRanking, middleware.Authentication)
	v.GET("/category-distribution", h.CategoryDistribution, middleware.Authentication)
	v.GET("/surveyor-stats", h.SurveyorStats, middleware.Authentication)
}
