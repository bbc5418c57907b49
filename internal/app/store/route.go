package store

import (
	"retail_survey/internal/middleware"

	"github.com/labstack/echo/v4"
)

func (h *handler) Route(v *echo.Group) {
	v.GET("/competitors", h.Competitors, middleware.Authentication)
	v.GET("", h.Find, middleware.Authentication)
	v.POST("", h.Create, middleware.Authentication)
	v.DELETE("/:id", h.Delete, middleware.Authentication)
}
