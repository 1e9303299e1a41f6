package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/Keyur279/Sia-Cli-tool/pkg/coinselection"
	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/Keyur279/Sia-Cli-tool/pkg/utils"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment variable, e.g. SIACLI_API_PASSWORD.
const EnvPrefix = "SIACLI"

// Keys understood by Load. Flags bound to viper use the same names.
var (
	APIAddr     = "api_addr"
	APIPassword = "api_password"
	Datadir     = "datadir"
	LogLevel    = "log_level"
	MaxFeeRate  = "max_fee_rate"
	PublicKey   = "public_key"
	Strategy    = "strategy"
	MaxInputs   = "max_inputs"

	defaultAPIAddr    = "http://localhost:9980/api"
	defaultDatadir    = "~/." + utils.AppName
	defaultLogLevel   = "info"
	defaultMaxFeeRate = "0"
	defaultStrategy   = coinselection.StrategyLargestFirst
	defaultMaxInputs  = 0
)

type Config struct {
	APIAddr     string
	APIPassword string `json:"-"`
	Datadir     string
	LogLevel    zapcore.Level
	// MaxFeeRate caps the upstream fee rate, in hastings per byte. Zero
	// disables the cap.
	MaxFeeRate common.Currency
	// PublicKey is nil when not configured.
	PublicKey *common.PublicKey
	Strategy  string
	MaxInputs int
}

func (c *Config) String() string {
	json, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("error while marshalling config JSON: %s", err)
	}
	return string(json)
}

// PendingDBPath is the checkpoint database used between prepare and
// finalize.
func (c *Config) PendingDBPath() string {
	return filepath.Join(c.Datadir, utils.PendingDBName)
}

// SetDefaults registers the environment binding and defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault(APIAddr, defaultAPIAddr)
	v.SetDefault(Datadir, defaultDatadir)
	v.SetDefault(LogLevel, defaultLogLevel)
	v.SetDefault(MaxFeeRate, defaultMaxFeeRate)
	v.SetDefault(Strategy, defaultStrategy)
	v.SetDefault(MaxInputs, defaultMaxInputs)
}

// ReadConfigFile reads path into v. An empty path falls back to
// utils.ConfigFileName inside the configured data directory, which may be
// absent.
func ReadConfigFile(v *viper.Viper, path string) error {
	SetDefaults(v)
	if path == "" {
		datadir, err := expandHome(v.GetString(Datadir))
		if err != nil {
			return err
		}
		path = filepath.Join(datadir, utils.ConfigFileName)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil
		}
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "config: failed to read %s", path)
	}
	return nil
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	addr := strings.TrimSpace(v.GetString(APIAddr))
	if addr == "" {
		return nil, errors.New("config: api_addr not provided")
	}
	u, err := url.Parse(addr)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("config: invalid api_addr %q", addr)
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(v.GetString(LogLevel))); err != nil {
		return nil, errors.Wrap(err, "config: invalid log_level")
	}

	maxFeeRate, err := common.ParseCurrency(v.GetString(MaxFeeRate))
	if err != nil {
		return nil, errors.Wrap(err, "config: invalid max_fee_rate")
	}

	var pk *common.PublicKey
	if s := strings.TrimSpace(v.GetString(PublicKey)); s != "" {
		parsed, err := common.ParsePublicKey(s)
		if err != nil {
			return nil, errors.Wrap(err, "config: invalid public_key")
		}
		pk = &parsed
	}

	strategy := v.GetString(Strategy)
	if _, err := coinselection.New(strategy, 0); err != nil {
		return nil, errors.Wrap(err, "config: invalid strategy")
	}
	maxInputs := v.GetInt(MaxInputs)
	if maxInputs < 0 {
		return nil, errors.Errorf("config: max_inputs must not be negative, got %d", maxInputs)
	}

	datadir, err := expandHome(v.GetString(Datadir))
	if err != nil {
		return nil, err
	}

	return &Config{
		APIAddr:     addr,
		APIPassword: v.GetString(APIPassword),
		Datadir:     datadir,
		LogLevel:    level,
		MaxFeeRate:  maxFeeRate,
		PublicKey:   pk,
		Strategy:    strategy,
		MaxInputs:   maxInputs,
	}, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "config: resolve home directory")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
