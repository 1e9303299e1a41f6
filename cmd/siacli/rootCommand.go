package cmd

import (
	"os"

	"github.com/Keyur279/Sia-Cli-tool/pkg/config"
	"github.com/Keyur279/Sia-Cli-tool/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger = zap.NewNop()
	cfg    *config.Config
	v      = viper.New()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "siacli",
	Short: "siacli builds Sia transactions for offline signing",
	Long: `siacli selects unspent outputs of a wallet, serializes the unsigned
transaction into a blob for an air-gapped signer and broadcasts the
transaction once the signature is supplied.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ReadConfigFile(v, options.configFile); err != nil {
			return err
		}

		var err error
		if cfg, err = config.Load(v); err != nil {
			return err
		}
		if logger, err = newLogger(cfg.LogLevel); err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)
		logger.Debug("loaded config", zap.String("config", cfg.String()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		logger.Debug("command failed", zap.Error(err))
		os.Exit(1)
	}
}

var (
	options struct {
		configFile string
	}
)

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	if level == zapcore.DebugLevel {
		return zap.NewDevelopment(zap.AddStacktrace(zapcore.FatalLevel))
	}
	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(level)
	c.Encoding = "console"
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	c.OutputPaths = []string{"stderr"}
	return c.Build()
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&options.configFile, "config", "", "config file (yaml, json or toml)")
	flags.String("api-addr", "", "walletd API address")
	flags.String("api-password", "", "walletd API password")
	flags.String("datadir", "", "directory for pending transactions")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("public-key", "", "public key of the signing wallet (ed25519:<hex>)")
	flags.String("max-fee-rate", "", "upper bound for the fee rate in hastings per byte")

	for key, flag := range map[string]string{
		config.APIAddr:     "api-addr",
		config.APIPassword: "api-password",
		config.Datadir:     "datadir",
		config.LogLevel:    "log-level",
		config.PublicKey:   "public-key",
		config.MaxFeeRate:  "max-fee-rate",
	} {
		utils.PanicOnError(v.BindPFlag(key, flags.Lookup(flag)))
	}
}
