package cmd

import (
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/tenancy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTenantEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TENANTS", "main, edu")
	t.Setenv("TENANT_MAIN_DSN", "postgres://app@db/main")
	t.Setenv("TENANT_MAIN_DOMAINS", "main.example.com,www.main.example.com")
	t.Setenv("TENANT_EDU_DSN", "postgres://app@db/edu")
	t.Setenv("TENANT_EDU_DOMAINS", "edu.example.com")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setTenantEnv(t)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 15*time.Minute, cfg.PendingReminderMaxWait)
	assert.False(t, cfg.PushEnabled())
	assert.False(t, cfg.OpsChatEnabled())
	assert.Equal(t, []tenancy.Tenant{
		{ID: "main", Domain: "main.example.com", DSN: "postgres://app@db/main"},
		{ID: "main", Domain: "www.main.example.com", DSN: "postgres://app@db/main"},
		{ID: "edu", Domain: "edu.example.com", DSN: "postgres://app@db/edu"},
	}, cfg.TenantTable())
}

func TestLoadConfig_Overrides(t *testing.T) {
	setTenantEnv(t)
	t.Setenv("REDIS_DB", "2")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, int64(-100123), cfg.TelegramChatID)
	assert.True(t, cfg.OpsChatEnabled())
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "missing tenants", key: "TENANTS", value: ""},
		{name: "tenant without dsn", key: "TENANT_EDU_DSN", value: ""},
		{name: "tenant without domains", key: "TENANT_EDU_DOMAINS", value: " , "},
		{name: "bad redis db", key: "REDIS_DB", value: "zero"},
		{name: "bad duration", key: "JWT_TTL", value: "a day"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setTenantEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()

			require.Error(t, err)
		})
	}
}
