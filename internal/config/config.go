package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string

	// Notification archive: "memory", "mongo" or "postgres"
	NotifyArchive string
	PostgresDSN   string

	// TeamViewer API
	TVBaseURL      string
	TVClientID     string
	TVClientSecret string
	DevicePollCron string

	// Stripe
	StripeKey           string
	StripeWebhookSecret string
	BillingScanCron     string

	// Discord fan-out (disabled when empty)
	DiscordWebhookURL string

	// Gemini assistant
	GeminiAPIKey string
	GeminiModel  string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "go-spear"),
		SkipAuth:    getEnv("SKIP_AUTH", "false") == "true",
		Environment: getEnv("ENVIRONMENT", "development"),
		AppId:       getEnv("APP_ID", "go-spear"),

		NotifyArchive: getEnv("NOTIFY_ARCHIVE", "memory"),
		PostgresDSN:   getEnv("POSTGRES_DSN", ""),

		TVBaseURL:      getEnv("TV_BASE_URL", "https://webapi.teamviewer.com"),
		TVClientID:     getEnv("TV_CLIENT_ID", ""),
		TVClientSecret: getEnv("TV_CLIENT_SECRET", ""),
		DevicePollCron: getEnv("DEVICE_POLL_CRON", "*/2 * * * *"),

		StripeKey:           getEnv("STRIPE_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		BillingScanCron:     getEnv("BILLING_SCAN_CRON", "0 9 * * *"),

		DiscordWebhookURL: getEnv("DISCORD_WEBHOOK_URL", ""),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
