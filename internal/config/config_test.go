package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsProduction(t *testing.T) {
	cfg := &Config{}

	cfg.App.Environment = "production"
	assert.True(t, cfg.IsProduction())

	cfg.App.Environment = "development"
	assert.False(t, cfg.IsProduction())

	cfg.App.Environment = "local"
	assert.False(t, cfg.IsProduction())
}

func TestValidate_ProductionRequiresSecrets(t *testing.T) {
	cfg := &Config{}
	cfg.App.Environment = "production"

	err := cfg.Validate()
	assert.ErrorContains(t, err, "JWT_SECRET")

	cfg.Security.JWTSecret = "secret"
	err = cfg.Validate()
	assert.ErrorContains(t, err, "ADMIN_PASSWORD")

	cfg.Security.AdminPassword = "hunter2"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_NegativeThreshold(t *testing.T) {
	cfg := &Config{}
	cfg.App.Environment = "development"
	cfg.Jobs.LowStockThreshold = -1

	err := cfg.Validate()
	assert.ErrorContains(t, err, "LOW_STOCK_THRESHOLD")
}
