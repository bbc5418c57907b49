package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"retail_survey/internal/abstraction"
	"retail_survey/internal/config"
	"retail_survey/pkg/constant"
	"retail_survey/pkg/util/general"
	"retail_survey/pkg/util/response"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

func parseAuthContext(c echo.Context, validate bool) (*abstraction.AuthContext, *response.MetaError) {
	var (
		id         int
		username   string
		name       string
		uuid_login string
		jwtKey     = config.Get().JWT.SecretKey
	)
	authToken := c.Request().Header.Get("Authorization")
	if authToken == "" {
		return nil, response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "invalid_token")
	}
	if !strings.Contains(authToken, "Bearer") {
		return nil, response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "invalid_token")
	}
	tokenString := strings.Replace(authToken, "Bearer ", "", -1)

	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method :%v", token.Header["alg"])
		}
		return []byte(jwtKey), nil
	}

	var (
		token *jwt.Token
		err   error
	)
	if validate {
		token, err = jwt.Parse(tokenString, keyFunc)
	} else {
		token, err = jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, keyFunc, jwt.WithoutClaimsValidation())
	}
	if token == nil || (validate && (!token.Valid || err != nil)) {
		if errJWT, ok := err.(*jwt.ValidationError); ok && errJWT.Errors == jwt.ValidationErrorExpired {
			return nil, response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), errJWT.Error())
		}
		return nil, response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "invalid_token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, response.ErrorBuilder(http.StatusUnauthorized, err, "error when claim token")
	}

	destructID := claims["id"]
	if destructID == nil {
		return nil, response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "invalid_token")
	}
	if id, err = strconv.Atoi(fmt.Sprintf("%v", destructID)); err != nil {
		return nil, response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "invalid_token")
	}

	destructUsername := claims["username"]
	if destructUsername == nil {
		return nil, response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "invalid_token")
	}
	username = fmt.Sprintf("%v", destructUsername)

	destructName := claims["name"]
	if destructName == nil {
		return nil, response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "invalid_token")
	}
	name = fmt.Sprintf("%v", destructName)

	destructUuidLogin := claims["uuid_login"]
	if destructUuidLogin == nil {
		return nil, response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "invalid_token")
	}
	uuid_login = fmt.Sprintf("%v", destructUuidLogin)

	return &abstraction.AuthContext{
		ID:        id,
		Username:  username,
		Name:      name,
		UuidLogin: uuid_login,
	}, nil
}

func Authentication(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth, errMeta := parseAuthContext(c, true)
		if errMeta != nil {
			return errMeta.SendError(c)
		}

		mustLogout := general.GetRedisUUIDArray(dbRedis, constant.REDIS_KEY_AUTO_LOGOUT)
		if slices.Contains(mustLogout, auth.UuidLogin) {
			return response.ErrorBuilder(http.StatusUnprocessableEntity, errors.New("unprocessable"), "expired_token").SendError(c)
		}

		loggedIn := general.GetRedisUUIDArray(dbRedis, general.GenerateRedisKeySurveyorLogin(auth.ID))
		if !slices.Contains(loggedIn, auth.UuidLogin) {
			return response.ErrorBuilder(http.StatusUnauthorized, errors.New("unauthorized"), "invalid_token").SendError(c)
		}

		cc := c.(*abstraction.Context)
		cc.Auth = auth

		return next(cc)
	}
}

// Logout accepts expired tokens so a stale client can still clear its
// session.
func Logout(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth, errMeta := parseAuthContext(c, false)
		if errMeta != nil {
			return errMeta.SendError(c)
		}

		cc := c.(*abstraction.Context)
		cc.Auth = auth

		return next(cc)
	}
}
