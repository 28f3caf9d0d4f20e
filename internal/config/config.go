package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	StorageDatabase = "database"
	StorageFile     = "file"
)

// Config stores runtime configuration loaded from environment variables.
type Config struct {
	Port          string
	LocalTimezone *time.Location

	DatabaseURL    string
	SQLitePath     string
	StorageBackend string
	StorageFile    string

	OpenAIAPIKey string
	OpenAIModel  string

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string
	NotifyWhatsAppTo     string

	StaticDir        string
	ReminderSchedule string
	DoctorCacheTTL   time.Duration

	LogLevel string
	LogFile  string
}

// Load reads configuration values and prepares defaults where applicable.
func Load() *Config {
	_ = godotenv.Load()

	timezoneName := getenvDefault("LOCAL_TIMEZONE", "Local")
	location, err := time.LoadLocation(timezoneName)
	if err != nil {
		log.Printf("config: invalid LOCAL_TIMEZONE %q, defaulting to system local: %v", timezoneName, err)
		location = time.Local
	}

	return &Config{
		Port:          getenvDefault("PORT", "8080"),
		LocalTimezone: location,

		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SQLitePath:     getenvDefault("SQLITE_PATH", "healthai.db"),
		StorageBackend: getenvDefault("STORAGE_BACKEND", StorageDatabase),
		StorageFile:    getenvDefault("STORAGE_FILE", "data/storage.json"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getenvDefault("OPENAI_MODEL", "gpt-4o-mini"),

		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		NotifyWhatsAppTo:     os.Getenv("NOTIFY_WHATSAPP_TO"),

		StaticDir:        getenvDefault("STATIC_DIR", "public"),
		ReminderSchedule: getenvDefault("REMINDER_CHECK_SCHEDULE", "@every 1m"),
		DoctorCacheTTL:   time.Duration(ParseIntEnv("DOCTOR_CACHE_TTL_MINUTES", 60)) * time.Minute,

		LogLevel: getenvDefault("LOG_LEVEL", "info"),
		LogFile:  getenvDefault("LOG_FILE", "logs/healthai.log"),
	}
}

// Validate checks the combinations Load cannot default its way out of.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageDatabase:
	case StorageFile:
		if c.StorageFile == "" {
			return errors.New("STORAGE_FILE is required when STORAGE_BACKEND=file")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StorageDatabase, StorageFile, c.StorageBackend)
	}
	if c.DoctorCacheTTL <= 0 {
		return errors.New("DOCTOR_CACHE_TTL_MINUTES must be positive")
	}
	if c.ReminderSchedule == "" {
		return errors.New("REMINDER_CHECK_SCHEDULE cannot be empty")
	}
	return nil
}

// TwilioEnabled reports whether every WhatsApp setting is present.
func (c *Config) TwilioEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" &&
		c.TwilioWhatsAppNumber != "" && c.NotifyWhatsAppTo != ""
}

func getenvDefault(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}

// ParseIntEnv returns the integer value for an environment variable or the provided default.
func ParseIntEnv(key string, def int) int {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("config: unable to parse %s=%q as int: %v", key, value, err)
		return def
	}
	return parsed
}
