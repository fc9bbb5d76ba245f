package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	// Server
	Port        string
	Env         string
	FrontendURL string
	// Honor X-Forwarded-For / X-Real-IP; only safe behind a reverse proxy
	TrustProxy bool

	// Completion provider
	AIProvider      string
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIBaseURL   string
	GeminiAPIKey    string
	GeminiModel     string
	ChatMaxTokens   int
	ChatTemperature float32

	// Deadline applied to every provider call and SMTP session
	UpstreamTimeout time.Duration

	// SMTP
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// Contact mail content
	OperatorEmail  string
	EmergencyPhone string
	CompanyName    string
	CompanyAddress string

	// Rate limiting (requests per minute per client IP)
	RedisURL         string
	ChatRateLimit    int
	ContactRateLimit int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	smtpUser := getEnvOrDefault("SMTP_USER", "")

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Env:         getEnvOrDefault("ENV", "development"),
		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
		TrustProxy:  getEnvAsBoolOrDefault("TRUST_PROXY", false),

		AIProvider:      strings.ToLower(getEnvOrDefault("AI_PROVIDER", ProviderOpenAI)),
		OpenAIModel:     getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:   getEnvOrDefault("OPENAI_BASE_URL", ""),
		GeminiModel:     getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		ChatMaxTokens:   getEnvAsIntOrDefault("CHAT_MAX_TOKENS", 300),
		ChatTemperature: float32(getEnvAsFloatOrDefault("CHAT_TEMPERATURE", 0.7)),
		UpstreamTimeout: getEnvAsDurationOrDefault("UPSTREAM_TIMEOUT", 30*time.Second),

		SMTPHost: getEnvOrDefault("SMTP_HOST", ""),
		SMTPPort: getEnvOrDefault("SMTP_PORT", "587"),
		SMTPUser: smtpUser,
		SMTPPass: getEnvOrDefault("SMTP_PASS", ""),
		SMTPFrom: getEnvOrDefault("SMTP_FROM", smtpUser),

		OperatorEmail:  getEnvOrDefault("CONTACT_OPERATOR_EMAIL", "info@denizsel.com.tr"),
		EmergencyPhone: getEnvOrDefault("COMPANY_EMERGENCY_PHONE", "+90 532 000 00 00"),
		CompanyName:    getEnvOrDefault("COMPANY_NAME", "Denizsel Teknoloji"),
		CompanyAddress: getEnvOrDefault("COMPANY_ADDRESS", "Tuzla Tersaneler Bölgesi, 34944 Tuzla/İstanbul"),

		RedisURL:         getEnvOrDefault("REDIS_URL", ""),
		ChatRateLimit:    getEnvAsIntOrDefault("CHAT_RATE_LIMIT", 30),
		ContactRateLimit: getEnvAsIntOrDefault("CONTACT_RATE_LIMIT", 5),
	}

	switch cfg.AIProvider {
	case ProviderGemini:
		cfg.GeminiAPIKey = mustGetEnv("GEMINI_API_KEY")
	case ProviderOpenAI:
		cfg.OpenAIAPIKey = mustGetEnv("OPENAI_API_KEY")
	default:
		panic(fmt.Sprintf("unsupported AI_PROVIDER %q (want %q or %q)", cfg.AIProvider, ProviderOpenAI, ProviderGemini))
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

// getEnvAsDurationOrDefault accepts Go duration strings ("45s") or a bare number of seconds.
func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(val); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return defaultVal
}
