package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var GConfig *Config

var validate = validator.New()

const (
	StorageLocal  = "local"
	StorageAliOss = "ali_oss"
	StorageMinIO  = "minio"
)

func Init(filePath string) {
	// .env only carries secrets; a missing file is fine.
	_ = godotenv.Load()
	data, err := os.ReadFile(filePath)
	if err != nil {
		panic(err)
	}
	cfg, err := Parse(data)
	if err != nil {
		panic(err)
	}
	GConfig = cfg
}

// InitOrDefault is Init for commands that can run without a config file:
// when filePath does not exist GConfig gets the defaults.
func InitOrDefault(filePath string) {
	if _, err := os.Stat(filePath); errors.Is(err, fs.ErrNotExist) {
		_ = godotenv.Load()
		cfg, err := Parse(nil)
		if err != nil {
			panic(err)
		}
		GConfig = cfg
		return
	}
	Init(filePath)
}

// Parse decodes a yaml config, fills defaults and env secrets, then verifies it.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type Config struct {
	LogLevel      string `yaml:"log_level"`
	LogFile       string `yaml:"log_file"`
	LogMaxSize    int    `yaml:"log_max_size"`
	LogMaxBackups int    `yaml:"log_max_backups"`
	LogMaxAge     int    `yaml:"log_max_age"`

	URLKey         string  `yaml:"url_key" validate:"required"`
	OutputDir      string  `yaml:"output_dir" validate:"required"`
	JSONDir        string  `yaml:"json_dir" validate:"required"`
	HTTPTimeout    string  `yaml:"http_timeout"`
	WorkerPoolSize int     `yaml:"worker_pool_size" validate:"min=1"`
	QueueSize      int     `yaml:"queue_size" validate:"min=1"`
	ThumbnailRatio float64 `yaml:"thumbnail_ratio" validate:"gte=0,lt=1"`
	WatchInterval  string  `yaml:"watch_interval"`

	StorageSupplier string `yaml:"storage_supplier" validate:"oneof=local ali_oss minio"`
	AliOss          `yaml:"ali_oss" validate:"-"`
	MinIO           `yaml:"minio" validate:"-"`
	MySQL           `yaml:"mysql" validate:"-"`
}

func (c *Config) applyDefaults() {
	home, _ := os.UserHomeDir()
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join("logs", "weather-viewer.log")
	}
	if c.LogMaxSize == 0 {
		c.LogMaxSize = 10
	}
	if c.URLKey == "" {
		c.URLKey = "wifi"
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(home, "Documents", "output")
	}
	if c.JSONDir == "" {
		c.JSONDir = filepath.Join(home, "Documents", "PlotWeather", "json")
	}
	if c.HTTPTimeout == "" {
		c.HTTPTimeout = "30s"
	}
	// the sensor samples every 10 minutes, so one outstanding request is enough
	if c.WorkerPoolSize == 0 {
		c.WorkerPoolSize = 1
	}
	if c.QueueSize == 0 {
		c.QueueSize = 16
	}
	if c.WatchInterval == "" {
		c.WatchInterval = "10m"
	}
	if c.StorageSupplier == "" {
		c.StorageSupplier = StorageLocal
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ALI_OSS_ACCESS_KEY_SECRET"); v != "" {
		c.AliOss.AccessKeySecret = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		c.MinIO.SecretKey = v
	}
	if v := os.Getenv("MYSQL_PASSWORD"); v != "" {
		c.MySQL.Password = v
	}
}

func (c *Config) Verify() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, err := time.ParseDuration(c.HTTPTimeout); err != nil {
		return fmt.Errorf("invalid http_timeout: %w", err)
	}
	if d, err := time.ParseDuration(c.WatchInterval); err != nil {
		return fmt.Errorf("invalid watch_interval: %w", err)
	} else if d < time.Minute {
		return fmt.Errorf("watch_interval must be at least 1m")
	}
	switch c.StorageSupplier {
	case StorageAliOss:
		if c.AliOss.AccessKeySecret == "" {
			return &ErrMissingRequiredEnvVar{Name: "ALI_OSS_ACCESS_KEY_SECRET"}
		}
		if err := validate.Struct(c.AliOss); err != nil {
			return err
		}
	case StorageMinIO:
		if c.MinIO.SecretKey == "" {
			return &ErrMissingRequiredEnvVar{Name: "MINIO_SECRET_KEY"}
		}
		if err := validate.Struct(c.MinIO); err != nil {
			return err
		}
	}
	if c.MySQL.Enabled {
		if err := validate.Struct(c.MySQL); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) HTTPTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.HTTPTimeout)
	return d
}

func (c *Config) WatchIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.WatchInterval)
	return d
}

type ErrMissingRequiredEnvVar struct {
	Name string
}

func (e *ErrMissingRequiredEnvVar) Error() string {
	return fmt.Sprintf("required environment variable %q is not set", e.Name)
}

type AliOss struct {
	AccessKeyId     string `yaml:"access_key_id" validate:"required"`
	AccessKeySecret string `yaml:"access_key_secret"`
	Endpoint        string `yaml:"endpoint" validate:"required"`
	Region          string `yaml:"region" validate:"required"`
	Bucket          string `yaml:"bucket" validate:"required"`
	Directory       string `yaml:"directory"`
}

type MinIO struct {
	Endpoint  string `yaml:"endpoint" validate:"required"`
	AccessKey string `yaml:"access_key" validate:"required"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket" validate:"required"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type MySQL struct {
	Enabled      bool   `yaml:"enabled"`
	Host         string `yaml:"host" validate:"required"`
	Port         int    `yaml:"port" validate:"required"`
	Username     string `yaml:"username" validate:"required"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database" validate:"required"`
	Charset      string `yaml:"charset"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}
