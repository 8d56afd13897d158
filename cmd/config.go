package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"logistics/internal/adapters/out/postgres/tenancy"
	"logistics/internal/pkg/tenant"

	"github.com/joho/godotenv"
)

type TenantConfig struct {
	ID      tenant.ID
	Domains []string
	DSN     string
}

type Config struct {
	HTTPPort string
	Tenants  []TenantConfig

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTTTL    time.Duration
	RateLimit string

	FCMProjectID       string
	FCMCredentialsFile string
	FrontendBaseURL    string
	NotificationIcon   string
	TelegramToken      string
	TelegramChatID     int64

	AvailabilitySweepSchedule string
	PendingReminderSchedule   string
	PendingReminderMaxWait    time.Duration
	ShutdownTimeout           time.Duration
}

// LoadConfig reads the environment, after merging an optional .env file into it.
//
// Tenants are listed in TENANTS, e.g. "main,edu". Each one needs TENANT_<ID>_DSN
// and TENANT_<ID>_DOMAINS, a comma separated list of the client domains it serves.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	tenants, err := tenantsFromEnv()
	if err != nil {
		return Config{}, err
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}
	chatID, err := getEnvInt64("TELEGRAM_CHAT_ID", 0)
	if err != nil {
		return Config{}, err
	}
	jwtTTL, err := getEnvDuration("JWT_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	maxWait, err := getEnvDuration("PENDING_REMINDER_MAX_WAIT", 15*time.Minute)
	if err != nil {
		return Config{}, err
	}
	shutdown, err := getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}

	config := Config{
		HTTPPort:                  getEnv("HTTP_PORT", "8080"),
		Tenants:                   tenants,
		RedisHost:                 getEnv("REDIS_HOST", "localhost"),
		RedisPort:                 getEnv("REDIS_PORT", "6379"),
		RedisPassword:             getEnv("REDIS_PASSWORD", ""),
		RedisDB:                   redisDB,
		JWTSecret:                 getEnv("JWT_SECRET", ""),
		JWTTTL:                    jwtTTL,
		RateLimit:                 getEnv("RATE_LIMIT", "300-M"),
		FCMProjectID:              getEnv("FCM_PROJECT_ID", ""),
		FCMCredentialsFile:        getEnv("FCM_CREDENTIALS_FILE", ""),
		FrontendBaseURL:           getEnv("FRONTEND_BASE_URL", ""),
		NotificationIcon:          getEnv("NOTIFICATION_ICON_URL", ""),
		TelegramToken:             getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:            chatID,
		AvailabilitySweepSchedule: getEnv("AVAILABILITY_SWEEP_SCHEDULE", ""),
		PendingReminderSchedule:   getEnv("PENDING_REMINDER_SCHEDULE", ""),
		PendingReminderMaxWait:    maxWait,
		ShutdownTimeout:           shutdown,
	}
	return config, nil
}

// TenantTable flattens the tenants into one registry row per domain.
func (c Config) TenantTable() []tenancy.Tenant {
	var table []tenancy.Tenant
	for _, t := range c.Tenants {
		for _, domain := range t.Domains {
			table = append(table, tenancy.Tenant{ID: t.ID, Domain: domain, DSN: t.DSN})
		}
	}
	return table
}

func (c Config) PushEnabled() bool    { return c.FCMProjectID != "" && c.FCMCredentialsFile != "" }
func (c Config) OpsChatEnabled() bool { return c.TelegramToken != "" && c.TelegramChatID != 0 }

func tenantsFromEnv() ([]TenantConfig, error) {
	ids := splitList(getEnv("TENANTS", ""))
	if len(ids) == 0 {
		return nil, errors.New("TENANTS is required")
	}

	tenants := make([]TenantConfig, 0, len(ids))
	for _, id := range ids {
		prefix := "TENANT_" + strings.ToUpper(id) + "_"
		t := TenantConfig{
			ID:      tenant.ID(id),
			Domains: splitList(getEnv(prefix+"DOMAINS", "")),
			DSN:     getEnv(prefix+"DSN", ""),
		}
		if t.DSN == "" || len(t.Domains) == 0 {
			return nil, fmt.Errorf("tenant %s: %sDSN and %sDOMAINS are required", id, prefix, prefix)
		}
		tenants = append(tenants, t)
	}
	return tenants, nil
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getEnv(key, defaultVal string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return n, nil
}

func getEnvInt64(key string, defaultVal int64) (int64, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return d, nil
}
