package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ServerPort     string
	AllowedOrigins []string

	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string
	DbSSLMode  string

	JwtSecret string
	Issuer    string

	GenAIAPIKey         string
	GenAIModel          string
	GenerateTemperature float64
	OptimizeTemperature float64
	MaxOutputTokens     int

	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
	MinioUseSSL     bool
	MinioBucket     string
	UploadURLExpiry time.Duration

	AnalyticsRetentionDays int
	IPHashSalt             string
	LiveAnalyticsInterval  time.Duration

	LogLevel  string
	LogFormat string
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ServerPort = getEnv("SERVER_PORT", "8080")
	AllowedOrigins = splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"))

	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "formpilot")
	DbSSLMode = getEnv("DB_SSLMODE", "disable")

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	Issuer = getEnv("JWT_ISSUER", "")

	GenAIAPIKey = getEnv("GENAI_API_KEY", "")
	GenAIModel = getEnv("GENAI_MODEL", "gemini-2.0-flash")
	GenerateTemperature = getFloat("GENERATE_TEMPERATURE", 0.7)
	OptimizeTemperature = getFloat("OPTIMIZE_TEMPERATURE", 0.3)
	MaxOutputTokens = getInt("MAX_OUTPUT_TOKENS", 2000)

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioBucket = getEnv("MINIO_BUCKET", "form-uploads")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
	UploadURLExpiry = getDuration("UPLOAD_URL_EXPIRY", 15*time.Minute)

	AnalyticsRetentionDays = getInt("ANALYTICS_RETENTION_DAYS", 365)
	IPHashSalt = getEnv("IP_HASH_SALT", "")
	LiveAnalyticsInterval = getDuration("LIVE_ANALYTICS_INTERVAL", 5*time.Second)

	LogLevel = getEnv("LOG_LEVEL", "info")
	LogFormat = getEnv("LOG_FORMAT", "json")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
