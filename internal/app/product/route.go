package product

import (
	"retail_survey/internal/middleware"

	"github.com/labstack/echo/v4"
)

func (h *handler) Route(v *echo.Group) {
	v.POST("", h.Create, middleware.Authentication)
	v.POST("/seed", h.Seed, middleware.Authentication)
	v.GET("", h.Find, middleware.Authentication)
	v.GET("/categories", h.Categories, middleware.Authentication)
	v.GET("/suggest", h.Suggest, middleware.Authentication)
	v.PATCH("/:id", h.Update, middleware.Authentication)
	v.DELETE("/:id", h.Delete, middleware.Authentication)
}
