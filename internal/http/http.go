package http

import (
	"fmt"
	"net/http"

	"retail_survey/internal/app/auth"
	"retail_survey/internal/app/product"
	"retail_survey/internal/app/record"
	"retail_survey/internal/app/statistic"
	"retail_survey/internal/app/store"
	"retail_survey/internal/app/surveyor"
	"retail_survey/internal/app/task"
	"retail_survey/internal/config"
	"retail_survey/internal/factory"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func Init(e *echo.Echo, f *factory.Factory) {

	e.GET("/", func(c echo.Context) error {
		message := fmt.Sprintf("Hello there, welcome to app %s version %s.", config.Get().App.App, config.Get().App.Version)
		return c.String(http.StatusOK, message)
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	auth.NewHandler(f).Route(e.Group("/auth"))
	surveyor.NewHandler(f).Route(e.Group("/surveyor"))
	task.NewHandler(f).Route(e.Group("/task"))
	record.NewHandler(f).Route(e.Group("/record"))
	product.NewHandler(f).Route(e.Group("/product"))
	store.NewHandler(f).Route(e.Group("/store"))
	statistic.NewHandler(f).Route(e.Group("/statistic"))
}
