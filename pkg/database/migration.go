package database

import (
	"retail_survey/internal/model"

	"github.com/sirupsen/logrus"
)

// Migrate keeps the schema aligned with the entity models.
func Migrate() {
	db, err := Connection("MYSQL")
	if err != nil {
		panic("Failed migrate, connection is undefined")
	}

	if err := db.AutoMigrate(
		&model.SurveyorEntityModel{},
		&model.SurveyTaskEntityModel{},
		&model.SurveyItemEntityModel{},
		&model.SurveyRecordEntityModel{},
		&model.ProductEntityModel{},
		&model.CompetitorStoreEntityModel{},
	); err != nil {
		panic(err)
	}

	logrus.Info("database migrated")
}
