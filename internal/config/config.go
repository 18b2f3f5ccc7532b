package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	SiteBaseURL    string
	AdminPIN       string
	JWTSecret      string
	GeminiAPIKey   string
	RedisURL       string
	LocalStorePath string
	ItemsPerPage   int

	Database DatabaseConfig
	Storage  StorageConfig
	Mail     MailConfig
}

type DatabaseConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
	TimeZone string
}

// Configured reports whether a Postgres host was provided. Without it the
// application runs on the local fallback store.
func (d DatabaseConfig) Configured() bool {
	return d.Host != ""
}

type StorageConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string
}

func (s StorageConfig) Configured() bool {
	return s.Endpoint != "" && s.AccessKeyID != "" && s.SecretAccessKey != ""
}

type MailConfig struct {
	SMTPHost string
	SMTPPort string
	Username string
	Password string
	Sender   string
}

func (m MailConfig) Configured() bool {
	return m.SMTPHost != "" && m.Sender != ""
}

// Load reads .env files (when present) and the process environment.
func Load(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env", "../.env", "../../.env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err == nil {
			log.Printf("Loaded environment from %s", f)
			break
		}
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		SiteBaseURL:    getEnv("SITE_BASE_URL", "https://miss-eklerchik.ru"),
		AdminPIN:       os.Getenv("ADMIN_PIN"),
		JWTSecret:      os.Getenv("JWT_SECRET_KEY"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		RedisURL:       os.Getenv("REDIS_URL"),
		LocalStorePath: getEnv("LOCAL_STORE_PATH", "./local.db"),
		ItemsPerPage:   getEnvInt("ITEMS_PER_PAGE", 6),
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "postgres"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			TimeZone: getEnv("DB_TIMEZONE", "Europe/Moscow"),
		},
		Storage: StorageConfig{
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			Bucket:          getEnv("S3_BUCKET", "article-images"),
			PublicBaseURL:   os.Getenv("S3_PUBLIC_BASE_URL"),
		},
		Mail: MailConfig{
			SMTPHost: os.Getenv("SMTP_HOST"),
			SMTPPort: getEnv("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			Sender:   os.Getenv("SMTP_SENDER"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Ignoring invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
