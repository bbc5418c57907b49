package abstraction

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type Context struct {
	echo.Context

	Auth *AuthContext
	Trx  *TrxContext
}

type AuthContext struct {
	ID        int
	Username  string
	Name      string
	UuidLogin string
}

type TrxContext struct {
	Db *gorm.DB
}
