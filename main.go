package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"retail_survey/internal/config"
	"retail_survey/internal/factory"
	httpsurvey "retail_survey/internal/http"
	middlewareEcho "retail_survey/internal/middleware"
	db "retail_survey/pkg/database"
	"retail_survey/pkg/log"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// @title retail_survey
// @version 1.0.0.
// @description This is a doc for retail_survey

func main() {
	config.Init()

	log.Init()

	db.Init()

	db.Migrate()

	e := echo.New()

	f := factory.NewFactory()

	middlewareEcho.Init(e, f.DbRedis)

	httpsurvey.Init(e, f)

	ch := make(chan os.Signal, 1)

	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	go func() {
		err := e.Start(":" + config.Get().App.Port)
		if err != nil {
			if err != http.ErrServerClosed {
				logrus.Fatal(err)
			}
		}
	}()

	<-ch

	logrus.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	e.Shutdown(ctx)
	logrus.Println("Server gracefully stopped")
}
