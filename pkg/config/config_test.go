package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9980/api", cfg.APIAddr)
	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
	assert.True(t, cfg.MaxFeeRate.IsZero())
	assert.Nil(t, cfg.PublicKey)
	assert.Equal(t, "largest-first", cfg.Strategy)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".siacli"), cfg.Datadir)
	assert.Equal(t, filepath.Join(home, ".siacli", "pending.db"), cfg.PendingDBPath())
}

func TestLoadFromEnv(t *testing.T) {
	pk := common.PublicKey{1, 2, 3}
	t.Setenv("SIACLI_API_ADDR", "https://wallet.example.com/api")
	t.Setenv("SIACLI_API_PASSWORD", "hunter2")
	t.Setenv("SIACLI_LOG_LEVEL", "debug")
	t.Setenv("SIACLI_MAX_FEE_RATE", "1mS")
	t.Setenv("SIACLI_PUBLIC_KEY", pk.String())
	t.Setenv("SIACLI_DATADIR", "/tmp/siacli")
	t.Setenv("SIACLI_STRATEGY", "random")
	t.Setenv("SIACLI_MAX_INPUTS", "20")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "https://wallet.example.com/api", cfg.APIAddr)
	assert.Equal(t, "hunter2", cfg.APIPassword)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
	expected, err := common.ParseCurrency("1mS")
	require.NoError(t, err)
	assert.Equal(t, expected, cfg.MaxFeeRate)
	require.NotNil(t, cfg.PublicKey)
	assert.Equal(t, pk, *cfg.PublicKey)
	assert.Equal(t, "/tmp/siacli", cfg.Datadir)
	assert.Equal(t, "random", cfg.Strategy)
	assert.Equal(t, 20, cfg.MaxInputs)
	assert.NotContains(t, cfg.String(), "hunter2")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "siacli.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_addr: http://10.0.0.2:9980/api\nmax_inputs: 5\n"), 0600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:9980/api", cfg.APIAddr)
	assert.Equal(t, 5, cfg.MaxInputs)
}

func TestReadConfigFileFromDatadir(t *testing.T) {
	dir := t.TempDir()
	v := viper.New()
	v.Set(Datadir, dir)
	require.NoError(t, ReadConfigFile(v, ""))
	assert.Empty(t, v.ConfigFileUsed())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "siacli.yaml"), []byte("strategy: in-order\n"), 0600))
	v = viper.New()
	v.Set(Datadir, dir)
	require.NoError(t, ReadConfigFile(v, ""))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "in-order", cfg.Strategy)

	err = ReadConfigFile(viper.New(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		APIAddr:    "localhost",
		LogLevel:   "loud",
		MaxFeeRate: "lots",
		PublicKey:  "secp256k1:00",
		Strategy:   "knapsack",
		MaxInputs:  "-1",
	}
	for key, value := range tests {
		v := viper.New()
		v.Set(key, value)
		_, err := Load(v)
		assert.Error(t, err, key)
	}
}
