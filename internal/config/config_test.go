package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.PendingPaymentTTL)
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.Location().String())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_ProdRejectsDefaultSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_BadTimezone(t *testing.T) {
	cfg := &Config{
		DatabaseURL:       "test.db",
		JWTTTL:            time.Hour,
		PendingPaymentTTL: time.Minute,
		SweepInterval:     time.Minute,
		Timezone:          "Mars/Olympus",
	}
	assert.Error(t, cfg.Validate())
}

func TestValidate_NonPositiveDurations(t *testing.T) {
	cfg := &Config{
		DatabaseURL:       "test.db",
		JWTTTL:            time.Hour,
		PendingPaymentTTL: 0,
		SweepInterval:     time.Minute,
	}
	assert.Error(t, cfg.Validate())
}

func TestLoadRateOverrides(t *testing.T) {
	rates, err := LoadRateOverrides("")
	require.NoError(t, err)
	assert.Equal(t, int64(50000), rates["Sân cầu lông"])

	dir := t.TempDir()
	path := filepath.Join(dir, "rates.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Hội trường lớn": 300000}`), 0o600))

	rates, err = LoadRateOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Hội trường lớn": 300000}, rates)

	require.NoError(t, os.WriteFile(path, []byte(`{"Hội trường lớn": -1}`), 0o600))
	_, err = LoadRateOverrides(path)
	assert.Error(t, err)
}
