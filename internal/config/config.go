package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
		// BaseURL is the externally reachable address of this backend,
		// used to absolutize legacy relative image references.
		BaseURL string `yaml:"base_url"`
	} `yaml:"server"`

	Database struct {
		Type string `yaml:"type"` // memory, dynamodb, postgres
		DSN  string `yaml:"dsn"`  // for postgres

		// DynamoDB settings
		Region     string `yaml:"region"`
		Endpoint   string `yaml:"endpoint"` // for dynamodb-local or compatible stores
		AccessKey  string `yaml:"access_key"`
		SecretKey  string `yaml:"secret_key"`
		UsersTable string `yaml:"users_table"`
		CardsTable string `yaml:"cards_table"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Storage struct {
		Type      string `yaml:"type"`       // local, s3
		BasePath  string `yaml:"base_path"`  // for local storage
		BaseURL   string `yaml:"base_url"`   // public URL base
		Bucket    string `yaml:"bucket"`     // for S3
		Region    string `yaml:"region"`     // for S3
		AccessKey string `yaml:"access_key"` // for S3
		SecretKey string `yaml:"secret_key"` // for S3
		Endpoint  string `yaml:"endpoint"`   // for S3-compatible providers (R2, Wasabi, MinIO)
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"`      // max file size in bytes
		AllowedTypes []string `yaml:"allowed_types"` // allowed MIME types
	} `yaml:"upload"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

var AppConfig *Config

// LoadConfig populates AppConfig either from config.yaml or, when
// DATABASE_TYPE is set, entirely from environment variables (test mode and
// container deployments).
func LoadConfig() {
	var cfg Config

	dbType := os.Getenv("DATABASE_TYPE")

	if dbType == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.Type = dbType
	cfg.Database.DSN = os.Getenv("DATABASE_URL")
	cfg.Database.Region = os.Getenv("AWS_REGION")
	cfg.Database.Endpoint = os.Getenv("DYNAMODB_ENDPOINT")
	cfg.Database.AccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.Database.SecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	cfg.Database.UsersTable = os.Getenv("DYNAMODB_USERS_TABLE")
	cfg.Database.CardsTable = os.Getenv("DYNAMODB_CARDS_TABLE")

	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Server.BaseURL = os.Getenv("SERVER_BASE_URL")

	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	if ttl, err := strconv.Atoi(os.Getenv("JWT_TTL")); err == nil {
		cfg.JWT.TTL = ttl
	}

	cfg.Storage.Type = os.Getenv("STORAGE_TYPE")
	cfg.Storage.BasePath = os.Getenv("STORAGE_BASE_PATH")
	cfg.Storage.BaseURL = os.Getenv("STORAGE_BASE_URL")
	cfg.Storage.Bucket = os.Getenv("S3_BUCKET")
	cfg.Storage.Region = os.Getenv("AWS_REGION")
	cfg.Storage.AccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.Storage.SecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	cfg.Storage.Endpoint = os.Getenv("S3_ENDPOINT_URL")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Database.Type == "" {
		cfg.Database.Type = "memory"
	}
	if cfg.Database.UsersTable == "" {
		cfg.Database.UsersTable = "GetiCardUsers"
	}
	if cfg.Database.CardsTable == "" {
		cfg.Database.CardsTable = "GetiCardCards"
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
		}
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
