package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockanalysis/config"
	"github.com/rustyeddy/stockanalysis/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "stockanalysis",
	Short: "Technical analysis signals for daily stock prices",
	Long: `Stockanalysis computes trend, moving average and oscillator indicators
over a symbol's daily close and volume history and turns them into
buy, sell or hold signals.

It provides:
  - Long-term analysis: linear trend and SMA 100/200, EMA 50/100 crossovers
  - Mid-term analysis: SMA 50/100, EMA 20/50 crossovers, derivative
    decision tree, MACD and RSI
  - Short-term analysis: decision trees on the latest changes and ATR

Prices are read from CSV files with date,open,high,low,close,volume rows.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	configPath string
	logLevel   string
	logFormat  string

	// cfg and log are ready once setup has run.
	cfg *config.Config
	log = zerolog.Nop()
)

// Execute adds all child commands to the root command and runs it.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (YAML or JSON), defaults are used when empty")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console or json (overrides config)")
}

// setup loads the configuration and builds the logger for every command.
func setup(cmd *cobra.Command, args []string) error {
	if configPath == "" {
		cfg = config.Default()
	} else {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	l, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	log = l
	log.Debug().Str("config", configPath).Msg("configuration loaded")
	return nil
}
