package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 300*time.Second, cfg.Checkout.VerificationWindow)
	assert.True(t, cfg.Checkout.CODThreshold.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, uint8(240), cfg.TryOn.BrightnessThreshold)
	assert.Equal(t, 25.0, cfg.TryOn.BaseWidthPercent)
	assert.Equal(t, "secret", cfg.Auth.JWTSecret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("CHECKOUT_COD_THRESHOLD", "750.50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.True(t, cfg.Checkout.CODThreshold.Equal(decimal.RequireFromString("750.50")))
	assert.Contains(t, cfg.GetDSN(), "port=5432")
	assert.Contains(t, cfg.GetMigrationURL(), "postgres://")
}

func TestGetDSN_MySQL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Driver: "mysql", Host: "db", Port: 3306, User: "u", Password: "p", Name: "eyewear",
	}}

	assert.Equal(t, "u:p@tcp(db:3306)/eyewear?parseTime=true&multiStatements=true", cfg.GetDSN())
	assert.Equal(t, "mysql://u:p@tcp(db:3306)/eyewear?parseTime=true&multiStatements=true", cfg.GetMigrationURL())
}
