package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port           string
	WebDir         string
	AllowedOrigins []string
	RequestTimeout time.Duration
	MaxUploadBytes int64

	AwsAccessKey string
	AwsSecretKey string
	AwsRegion    string

	OCRProvider string

	LLMProvider    string
	LLMModel       string
	LLMTemperature float32
	LLMMaxTokens   int
	GeminiAPIKey   string
	OpenAIAPIKey   string

	SessionSecret string
	CookieSecure  bool
	SessionTTL    time.Duration
	SessionStore  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel  string
	LogFormat string
}

// LoadConfig loads the environment variables and return config
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		WebDir:         getEnv("WEB_DIR", "./web"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 60*time.Second),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
		AwsAccessKey:   getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey:   getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:      getEnv("AWS_REGION", "us-east-1"),
		OCRProvider:    getEnv("OCR_PROVIDER", "textract"),
		LLMProvider:    getEnv("LLM_PROVIDER", "bedrock"),
		LLMModel:       getEnv("LLM_MODEL", ""),
		LLMTemperature: getEnvFloat("LLM_TEMPERATURE", 0.99),
		LLMMaxTokens:   getEnvInt("LLM_MAX_TOKENS", 2000),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		SessionSecret:  getEnv("SESSION_SECRET", ""),
		CookieSecure:   getEnvBool("COOKIE_SECURE", false),
		SessionTTL:     getEnvDuration("SESSION_TTL", 2*time.Hour),
		SessionStore:   getEnv("SESSION_STORE", "memory"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
	}

	if cfg.SessionSecret == "" {
		log.Warn().Msg("SESSION_SECRET not set; sessions will not survive a restart")
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Int("default", def).Msg("not an int, using default")
		return def
	}
	return n
}

func getEnvFloat(key string, def float32) float32 {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Float32("default", def).Msg("not a float, using default")
		return def
	}
	return float32(f)
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Dur("default", def).Msg("not a duration, using default")
		return def
	}
	return d
}

func getEnvBool(key string, def bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Bool("default", def).Msg("not a bool, using default")
		return def
	}
	return b
}

func getEnvList(key string, def []string) []string {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
