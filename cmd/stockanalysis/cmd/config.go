package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockanalysis/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage analysis configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  stockanalysis config init -o analysis.yaml
  stockanalysis config validate -f analysis.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Long: `Create a new configuration file with default settings.

Example:
  stockanalysis config init -o analysis.yaml`,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Check if a configuration file is valid and can be loaded.

Example:
  stockanalysis config validate -f analysis.yaml`,
	RunE: runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "analysis.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.Default().SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created default configuration: %s\n", configInitOutput)
	fmt.Fprintln(out, "\nEdit the file and run with:")
	fmt.Fprintf(out, "  stockanalysis analyze --config %s prices.csv\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	c, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Configuration valid: %s\n", configValidatePath)
	fmt.Fprintf(out, "  Long term:  %s, close window %d, volume window %d\n", c.LongTerm.Period, c.LongTerm.CloseWindow, c.LongTerm.VolumeWindow)
	fmt.Fprintf(out, "  Mid term:   %s, close window %d, %s, RSI(%d)\n", c.MidTerm.Period, c.MidTerm.CloseWindow, c.MidTerm.MACD, c.MidTerm.RSIPeriod)
	fmt.Fprintf(out, "  Short term: %s, window %d, ATR(%d)\n", c.ShortTerm.Period, c.ShortTerm.Window, c.ShortTerm.ATRPeriod)
	fmt.Fprintf(out, "  Signals:    slope %g, RSI %g/%g\n", c.Signals.SlopeZero, c.Signals.RSIOversold, c.Signals.RSIOverbought)
	return nil
}
