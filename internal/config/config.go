package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	App   App
	DB    DB
	JWT   JWT
	Redis Redis
	Minio Minio
}

type App struct {
	App     string
	Version string
	Port    string
}

type DB struct {
	DbHost string
	DbUser string
	DbPass string
	DbPort string
	DbName string
	DbSsl  string
	DbTz   string
}

type JWT struct {
	SecretKey string
}

type Redis struct {
	RedisHost string
	RedisPort string
	RedisPass string
}

type Minio struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSsl    bool
}

var config *Config

func Init() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, using environment variables")
	}

	config = &Config{
		App: App{
			App:     getEnv("APP_NAME", "retail_survey"),
			Version: getEnv("APP_VERSION", "1.0.0"),
			Port:    getEnv("APP_PORT", "8000"),
		},
		DB: DB{
			DbHost: getEnv("DB_HOST", "localhost"),
			DbUser: getEnv("DB_USER", "root"),
			DbPass: getEnv("DB_PASS", ""),
			DbPort: getEnv("DB_PORT", "3306"),
			DbName: getEnv("DB_NAME", "retail_survey"),
			DbSsl:  getEnv("DB_SSL", "false"),
			DbTz:   getEnv("DB_TZ", "Asia%2FShanghai"),
		},
		JWT: JWT{
			SecretKey: getEnv("JWT_SECRET_KEY", "secret"),
		},
		Redis: Redis{
			RedisHost: getEnv("REDIS_HOST", "localhost"),
			RedisPort: getEnv("REDIS_PORT", "6379"),
			RedisPass: getEnv("REDIS_PASS", ""),
		},
		Minio: Minio{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "retail-survey"),
			UseSsl:    getEnv("MINIO_USE_SSL", "false") == "true",
		},
	}
}

func Get() *Config {
	if config == nil {
		Init()
	}
	return config
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
