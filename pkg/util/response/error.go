package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func ErrorBuilder(code int, err error, message string) *MetaError {
	return &MetaError{
		Success: false,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func ErrorResponse(err error) *MetaError {
	if e, ok := err.(*MetaError); ok {
		return e
	}
	return ErrorBuilder(http.StatusInternalServerError, err, "server_error")
}

func (m *MetaError) Error() string {
	if m.Err != nil {
		return m.Err.Error()
	}
	return m.Message
}

func (m *MetaError) SendError(c echo.Context) error {
	if m.Code >= http.StatusInternalServerError && m.Err != nil {
		logrus.Errorf("%s %s: %s", c.Request().Method, c.Request().RequestURI, m.Err.Error())
	}
	return c.JSON(m.Code, m)
}
