package middleware

import (
	"net/http"

	"retail_survey/internal/abstraction"
	"retail_survey/pkg/util/validator"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

var dbRedis *redis.Client

func Init(e *echo.Echo, redisClient *redis.Client) {
	dbRedis = redisClient

	e.Validator = validator.NewValidator()

	e.Use(
		echoMiddleware.Recover(),
		echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}),
		echoMiddleware.LoggerWithConfig(echoMiddleware.LoggerConfig{
			Format: `{"time":"${time_rfc3339}","method":"${method}","uri":"${uri}","status":${status},"latency_human":"${latency_human}"}` + "\n",
		}),
		Context,
	)

	logrus.Info("middleware initialized")
}

// Context wraps every request context so handlers can carry auth and
// transaction state downstream.
func Context(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cc := &abstraction.Context{Context: c}
		return next(cc)
	}
}
