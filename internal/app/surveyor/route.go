package surveyor

import (
	"retail_survey/internal/middleware"

	"github.com/labstack/echo/v4"
)

func (h *handler) Route(v *echo.Group) {
	v.POST("", h.Create, middleware.Authentication)
	v.GET("", h.Find, middleware.Authentication)
	v.GET("/:id", h.FindById, middleware.Authentication)
	v.PATCH("/:id", h.Update, middleware.Authentication)
	v.DELETE("/:id", h.Delete, middleware.Authentication)
	v.POST("/:id/reset-password", h.ResetPassword, middleware.Authentication, middleware.ResetPasswordIpCheck)
	v.GET("/:id/stats", h.Stats, middleware.Authentication)
	v.GET("/:id/today-details", h.TodayDetails, middleware.Authentication)
}
