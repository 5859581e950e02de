package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.ServerPort)
	assert.Equal(t, 8*time.Second, cfg.ListAcquireTimeout)
	assert.Equal(t, 3, cfg.ListRetryAttempts)
	assert.Equal(t, time.Second, cfg.ListRetryBackoff)
	assert.Equal(t, 5*time.Second, cfg.ListQueryTimeout)
	assert.Equal(t, DefaultCORSOrigins, cfg.CORSAllowedOrigins)
	assert.Contains(t, cfg.DBSource, "dbname=pittmetro_realty")
	assert.False(t, cfg.SMTPConfigured())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("DATABASE_URL", "postgres://u:p@db:5432/realty")
	v.Set("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	v.Set("LIST_RETRY_ATTEMPTS", 0)
	v.Set("SMTP_HOST", "smtp.example.com")
	v.Set("SMTP_USER", "mailer")
	v.Set("SMTP_PASS", "secret")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@db:5432/realty", cfg.DBSource)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 1, cfg.ListRetryAttempts)
	assert.True(t, cfg.SMTPConfigured())
}
