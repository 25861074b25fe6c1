// Package config предоставляет структуры и функцию для загрузки конфигурации сервиса.
// Значения читаются из YAML‑файла (CONFIG_PATH) и могут быть переопределены переменными окружения.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env                     string        `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string        `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MigrationsPath          string        `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	PublicURL               string        `yaml:"public_url" env:"PUBLIC_URL" env-default:"http://localhost:8080"`
	HTTPServer              HTTPServer    `yaml:"http_server"`
	Redis                   Redis         `yaml:"redis_connection"`
	ObjectStorage           ObjectStorage `yaml:"object_storage"`
	Submission              Submission    `yaml:"submission"`
	Weather                 Weather       `yaml:"weather"`
	RabbitMQ                RabbitMQ      `yaml:"rabbitmq"`
	SMTP                    SMTP          `yaml:"smtp"`
}

// HTTPServer настройки HTTP‑сервера.
type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	// MaxUploadMemory — объём multipart‑формы в памяти; остальное уходит во временные файлы.
	MaxUploadMemory int64 `yaml:"max_upload_memory" env:"HTTP_MAX_UPLOAD_MEMORY" env-default:"10485760"`
}

// Redis настройки подключения к redis. Пустой Address отключает redis,
// и защита от повторной отправки работает в памяти процесса.
type Redis struct {
	Address     string        `yaml:"address" env:"REDIS_ADDRESS"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	User        string        `yaml:"user" env:"REDIS_USER"`
	DB          int           `yaml:"db" env:"REDIS_DB"`
	MaxRetries  int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES"`
	DialTimeout time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	Timeout     time.Duration `yaml:"timeout" env:"REDIS_TIMEOUT" env-default:"3s"`
}

// ObjectStorage настройки S3‑совместимого хранилища фотографий.
type ObjectStorage struct {
	Endpoint        string `yaml:"endpoint" env:"OBJECT_STORAGE_ENDPOINT"`
	Region          string `yaml:"region" env:"OBJECT_STORAGE_REGION" env-default:"auto"`
	AccessKeyID     string `yaml:"access_key_id" env:"OBJECT_STORAGE_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"OBJECT_STORAGE_SECRET_ACCESS_KEY"`
	Bucket          string `yaml:"bucket" env:"OBJECT_STORAGE_BUCKET" env-default:"trd_images"`
	PublicBaseURL   string `yaml:"public_base_url" env:"OBJECT_STORAGE_PUBLIC_BASE_URL"`
	UsePathStyle    bool   `yaml:"use_path_style" env:"OBJECT_STORAGE_USE_PATH_STYLE" env-default:"true"`
	CacheControl    string `yaml:"cache_control" env:"OBJECT_STORAGE_CACHE_CONTROL" env-default:"max-age=3600"`
}

// Submission настройки отправки формы регистрации.
type Submission struct {
	RedirectDelay time.Duration `yaml:"redirect_delay" env:"SUBMISSION_REDIRECT_DELAY" env-default:"3s"`
	GuardTTL      time.Duration `yaml:"guard_ttl" env:"SUBMISSION_GUARD_TTL" env-default:"2m"`
	RateLimit     float64       `yaml:"rate_limit" env:"SUBMISSION_RATE_LIMIT" env-default:"5"`
	RateBurst     int           `yaml:"rate_burst" env:"SUBMISSION_RATE_BURST" env-default:"10"`
}

// Weather настройки клиента погоды.
type Weather struct {
	BaseURL string        `yaml:"base_url" env:"WEATHER_BASE_URL" env-default:"https://api.open-meteo.com"`
	Timeout time.Duration `yaml:"timeout" env:"WEATHER_TIMEOUT" env-default:"5s"`
	// Wait — сколько профиль ждёт погоду после загрузки записи.
	Wait time.Duration `yaml:"wait" env:"WEATHER_WAIT" env-default:"300ms"`
}

// RabbitMQ настройки брокера событий регистрации. Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	MaxRetries int           `yaml:"max_retries" env:"RABBITMQ_MAX_RETRIES" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env:"RABBITMQ_RETRY_DELAY" env-default:"2s"`
}

// SMTP настройки отправки приветственных писем.
type SMTP struct {
	Host string `yaml:"host" env:"SMTP_HOST"`
	Port string `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	User string `yaml:"user" env:"SMTP_USER"`
	Pass string `yaml:"pass" env:"SMTP_PASS"`
}

// MustLoad загружает конфиг из файла CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из указанного файла.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// String возвращает конфиг без секретов, пригодный для логирования.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer: %s (timeout %s, idle %s)\n"+
			"Redis: %q db=%d\n"+
			"ObjectStorage: %s bucket=%s public=%s\n"+
			"Submission: redirect_delay=%s guard_ttl=%s\n"+
			"Weather: %s\n"+
			"RabbitMQ enabled: %t\n"+
			"SMTP: %s:%s user=%s\n",
		c.Env,
		c.HTTPServer.Address, c.HTTPServer.Timeout, c.HTTPServer.IdleTimeout,
		c.Redis.Address, c.Redis.DB,
		c.ObjectStorage.Endpoint, c.ObjectStorage.Bucket, c.ObjectStorage.PublicBaseURL,
		c.Submission.RedirectDelay, c.Submission.GuardTTL,
		c.Weather.BaseURL,
		c.RabbitMQ.URL != "",
		c.SMTP.Host, c.SMTP.Port, c.SMTP.User,
	)
}
