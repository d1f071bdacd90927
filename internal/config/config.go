package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port     string
	Env      string
	AdminDir string // static admin bundle served under /admin
	LoginDir string // static login page served under /login
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	TokenExpiry  int // minutes, lifetime of issued tokens
	CookieMaxAge int // hours, lifetime of the admin session cookie
}

// StorageConfig selects the upload backend. Driver is "local" or "s3".
type StorageConfig struct {
	Driver     string
	LocalRoot  string // root directory for the local driver
	BaseURL    string // public URL prefix recorded in image fields
	S3Bucket   string
	S3Region   string
	S3Key      string
	S3Secret   string
	S3Endpoint string // leave empty for real AWS; set for MinIO/R2
}

func Load() *Config {
	// Populate the process env from .env if present, then let viper read it.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("SERVER_ADMIN_DIR", "./web/admin")
	viper.SetDefault("SERVER_LOGIN_DIR", "./web/login")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_TOKEN_EXPIRY", 60)
	viper.SetDefault("JWT_COOKIE_MAX_AGE", 24)
	viper.SetDefault("STORAGE_DRIVER", "local")
	viper.SetDefault("STORAGE_LOCAL_ROOT", "./uploads")
	viper.SetDefault("STORAGE_BASE_URL", "http://localhost:8080/uploads")
	viper.SetDefault("S3_REGION", "us-east-1")

	return &Config{
		Server: ServerConfig{
			Port:     viper.GetString("SERVER_PORT"),
			Env:      viper.GetString("SERVER_ENV"),
			AdminDir: viper.GetString("SERVER_ADMIN_DIR"),
			LoginDir: viper.GetString("SERVER_LOGIN_DIR"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			TokenExpiry:  viper.GetInt("JWT_TOKEN_EXPIRY"),
			CookieMaxAge: viper.GetInt("JWT_COOKIE_MAX_AGE"),
		},
		Storage: StorageConfig{
			Driver:     viper.GetString("STORAGE_DRIVER"),
			LocalRoot:  viper.GetString("STORAGE_LOCAL_ROOT"),
			BaseURL:    viper.GetString("STORAGE_BASE_URL"),
			S3Bucket:   viper.GetString("S3_BUCKET"),
			S3Region:   viper.GetString("S3_REGION"),
			S3Key:      viper.GetString("S3_KEY"),
			S3Secret:   viper.GetString("S3_SECRET"),
			S3Endpoint: viper.GetString("S3_ENDPOINT"),
		},
	}
}

// IsProduction reports whether the server runs in production mode. Controls
// the Secure flag on the session cookie and the log format.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}
