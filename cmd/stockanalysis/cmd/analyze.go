package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockanalysis/analysis"
	"github.com/rustyeddy/stockanalysis/market"
	"github.com/rustyeddy/stockanalysis/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <prices.csv>...",
	Short: "Analyze daily price files",
	Long: `Run the long-, mid- and short-term analyses over one or more CSV files
of daily bars and print the detected signals.

Each file holds date,open,high,low,close,volume rows; a header row is
optional. The symbol name defaults to the file name without extension.

Examples:
  stockanalysis analyze data/AAPL.csv
  stockanalysis analyze --horizon mid --since 2023-01-01 data/MSFT.csv
  stockanalysis analyze --json data/*.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeHorizon string
	analyzeName    string
	analyzeSince   string
	analyzeNoColor bool
	analyzeJSON    bool
	analyzeSummary bool
	analyzeDump    string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeHorizon, "horizon", "all", "long, mid, short or all (comma separated)")
	analyzeCmd.Flags().StringVar(&analyzeName, "name", "", "symbol name shown in reports (single file only)")
	analyzeCmd.Flags().StringVar(&analyzeSince, "since", "", "drop bars before this date (YYYY-MM-DD)")
	analyzeCmd.Flags().BoolVar(&analyzeNoColor, "no-color", false, "disable ANSI colors")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the latest values as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeSummary, "summary", false, "print one line per analysis")
	analyzeCmd.Flags().StringVar(&analyzeDump, "dump", "", "write the analyzed bars to <dir>/<symbol>.csv")
}

func parseHorizons(s string) ([]analysis.Horizon, error) {
	if s == "" || strings.EqualFold(s, "all") {
		return analysis.Horizons(), nil
	}
	var hs []analysis.Horizon
	for _, part := range strings.Split(s, ",") {
		h, err := analysis.ParseHorizon(part)
		if err != nil {
			return nil, err
		}
		hs = append(hs, h)
	}
	return hs, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	horizons, err := parseHorizons(analyzeHorizon)
	if err != nil {
		return err
	}
	if analyzeName != "" && len(args) > 1 {
		return fmt.Errorf("--name needs a single file, got %d", len(args))
	}

	var since time.Time
	if analyzeSince != "" {
		since, err = time.Parse("2006-01-02", analyzeSince)
		if err != nil {
			return fmt.Errorf("invalid --since: %w", err)
		}
	}

	a := analysis.New(cfg.Options(), log)
	out := cmd.OutOrStdout()

	var all []*analysis.Result
	for _, path := range args {
		bars, err := market.LoadCSV(path, analyzeName)
		if err != nil {
			return err
		}
		if !since.IsZero() {
			bars = bars.Since(since)
		}
		if analyzeDump != "" {
			if err := dumpBars(analyzeDump, bars); err != nil {
				return err
			}
		}
		log.Info().
			Str("symbol", bars.Symbol).
			Int("bars", bars.Len()).
			Str("file", path).
			Msg("bars loaded")

		results, err := a.RunAll(cmd.Context(), bars, horizons...)
		if err != nil {
			return fmt.Errorf("%s: %w", bars.Symbol, err)
		}
		all = append(all, results...)
	}

	switch {
	case analyzeJSON:
		return report.JSON(out, all)
	case analyzeSummary:
		return report.Summary(out, all)
	}
	for _, r := range all {
		if err := report.Text(out, r, !analyzeNoColor); err != nil {
			return err
		}
	}
	return nil
}

// dumpBars writes bars as CSV into dir, named after the symbol.
func dumpBars(dir string, bars market.Bars) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("dump bars: %w", err)
	}
	path := filepath.Join(dir, bars.Symbol+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dump bars: %w", err)
	}
	defer f.Close()

	if err := market.WriteCSV(f, bars.Candles()); err != nil {
		return fmt.Errorf("dump bars %s: %w", path, err)
	}
	log.Debug().Str("file", path).Int("bars", bars.Len()).Msg("bars written")
	return f.Close()
}
