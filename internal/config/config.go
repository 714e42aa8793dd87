package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

type Cache struct {
	RedisURL string
	TTL      time.Duration
	Prefix   string
}

type Config struct {
	ServerPort          int
	DB                  DB
	MinIO               MinIO
	Cache               Cache
	JWTSecretKey        string
	AccessTokenDuration time.Duration
	MaxUploadSize       int64
	LoginURL            string
	LogLevel            string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// parseDuration falls back to fallback when value is not a Go duration.
func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 10 * 1024 * 1024
	}
	return size
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "yatube"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	endpoint := getEnv("MINIO_ENDPOINT", "localhost:9000")
	useSSL := getEnvBool("MINIO_USE_SSL", false)

	scheme := "http://"
	if useSSL {
		scheme = "https://"
	}

	return MinIO{
		Endpoint:   endpoint,
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "media"),
		UseSSL:     useSSL,
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", scheme+endpoint),
	}
}

func LoadCache() Cache {
	return Cache{
		RedisURL: getEnv("REDIS_URL", "localhost:6379"),
		TTL:      parseDuration(getEnv("CACHE_TTL", "20s"), 20*time.Second),
		Prefix:   getEnv("CACHE_PREFIX", "yatube:page:"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Warn(".env file not found, using environment variables")
	}

	return &Config{
		ServerPort:          getEnvAsInt("SERVER_PORT", 8080),
		DB:                  LoadDB(),
		MinIO:               LoadMinIO(),
		Cache:               LoadCache(),
		JWTSecretKey:        getEnv("JWT_SECRET_KEY", ""),
		AccessTokenDuration: parseDuration(getEnv("ACCESS_TOKEN_DURATION", "24h"), 24*time.Hour),
		MaxUploadSize:       parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
		LoginURL:            getEnv("LOGIN_URL", "/auth/login/"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}
}
