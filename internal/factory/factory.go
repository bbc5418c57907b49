package factory

import (
	"context"

	"retail_survey/internal/repository"
	"retail_survey/pkg/database"
	"retail_survey/pkg/storage"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Factory struct {
	Db *gorm.DB

	DbRedis *redis.Client

	Storage *storage.Client

	Repository_initiated
}

type Repository_initiated struct {
	SurveyorRepository        repository.Surveyor
	TaskRepository            repository.Task
	ItemRepository            repository.Item
	RecordRepository          repository.Record
	ProductRepository         repository.Product
	CompetitorStoreRepository repository.CompetitorStore
}

func NewFactory() *Factory {
	f := &Factory{}
	f.SetupDb()
	f.SetupDbRedis()
	f.SetupStorage()
	f.SetupRepository()
	return f
}

func (f *Factory) SetupDb() {
	db, err := database.Connection("MYSQL")
	if err != nil {
		panic("Failed setup db, connection is undefined")
	}
	f.Db = db
}

func (f *Factory) SetupDbRedis() {
	dbRedis := database.InitRedis()
	f.DbRedis = dbRedis
}

func (f *Factory) SetupStorage() {
	client, err := storage.InitClient()
	if err != nil {
		panic("Failed setup storage, connection is undefined")
	}
	if err := client.EnsureBucket(context.Background()); err != nil {
		logrus.Infof("Failed setup photo bucket, cause: %s", err.Error())
	}
	f.Storage = client
}

func (f *Factory) SetupRepository() {
	if f.Db == nil {
		panic("Failed setup repository, db is undefined")
	}

	f.SurveyorRepository = repository.NewSurveyor(f.Db)
	f.TaskRepository = repository.NewTask(f.Db)
	f.ItemRepository = repository.NewItem(f.Db)
	f.RecordRepository = repository.NewRecord(f.Db)
	f.ProductRepository = repository.NewProduct(f.Db)
	f.CompetitorStoreRepository = repository.NewCompetitorStore(f.Db)
}
