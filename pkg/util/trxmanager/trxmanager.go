package trxmanager

import (
	"retail_survey/internal/abstraction"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type trxManager struct {
	db *gorm.DB
}

func New(db *gorm.DB) *trxManager {
	return &trxManager{db}
}

// WithTrx runs fn inside a single gorm transaction. The transaction
// connection is carried on the context so repositories share it via
// CheckTrx; any error rolls the whole request back.
func (g *trxManager) WithTrx(ctx *abstraction.Context, fn func(ctx *abstraction.Context) error) (err error) {
	trx := g.db.Begin()

	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("panic in transaction, rolling back: %v", r)
			trx.Rollback()
			panic(r)
		}
	}()

	ctx.Trx = &abstraction.TrxContext{
		Db: trx,
	}
	defer func() {
		ctx.Trx = nil
	}()

	if err = fn(ctx); err != nil {
		trx.Rollback()
		return err
	}

	if err = trx.Commit().Error; err != nil {
		trx.Rollback()
		return err
	}
	return nil
}
