package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxhedge/analysis"
	"github.com/rustyeddy/fxhedge/config"
	"github.com/rustyeddy/fxhedge/journal"
	"github.com/rustyeddy/fxhedge/marketdata"
	"github.com/rustyeddy/fxhedge/pkg/id"
	"github.com/rustyeddy/fxhedge/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full hedge analysis from a config file",
	Long: `Run calibration, path simulation, valuation and risk summarization
for the unhedged exposure and every hedge overlay.

The config file specifies the currency pair, cash-flow schedule, yield
curves, simulation parameters and journal settings; spot and ATM vols come
from the market-data table at the analysis date.

Example:
  fxhedge analyze -f examples/configs/eurusd.yaml`,
	RunE: runAnalyze,
}

var analyzeConfigPath string

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	analyzeCmd.MarkFlagRequired("config")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(analyzeConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fmt.Printf("\nRunning FX hedging analysis...\n")
	fmt.Printf("  Pair: %s, analysis date %s, %d scenarios (seed %d)\n",
		cfg.Pair, cfg.Analysis.Date, cfg.Analysis.Sims, cfg.Analysis.Seed)

	inputs, err := buildInputs(cfg)
	if err != nil {
		return err
	}

	result, err := analysis.Run(*inputs)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	report.Write(os.Stdout, cfg.Pair.String(), result)

	return journalResult(cfg, result)
}

func buildInputs(cfg *config.Config) (*analysis.Inputs, error) {
	table, err := marketdata.Load(cfg.MarketData.File)
	if err != nil {
		return nil, fmt.Errorf("load market data: %w", err)
	}
	snap, err := table.Snapshot(cfg.AnalysisDate())
	if err != nil {
		return nil, fmt.Errorf("market snapshot: %w", err)
	}

	domestic, err := cfg.DomesticCurve()
	if err != nil {
		return nil, fmt.Errorf("build domestic curve: %w", err)
	}
	foreign, err := cfg.ForeignCurve()
	if err != nil {
		return nil, fmt.Errorf("build foreign curve: %w", err)
	}

	return &analysis.Inputs{
		Spot:      snap.Spot,
		ATMVols:   snap.ATMVolPoints(),
		Domestic:  domestic,
		Foreign:   foreign,
		Schedule:  cfg.Schedule(),
		Analysis:  cfg.AnalysisDate(),
		Sims:      cfg.Analysis.Sims,
		Seed:      cfg.Analysis.Seed,
		PutLevel:  cfg.Collar.PutLevel,
		CallLevel: cfg.Collar.CallLevel,
	}, nil
}

func journalResult(cfg *config.Config, result *analysis.Result) error {
	var j journal.Journal
	var err error

	switch cfg.Journal.Type {
	case "csv":
		j, err = journal.NewCSV(cfg.Journal.MetricsFile)
	case "sqlite":
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	runID := id.New()
	if err := j.RecordRun(journal.RunRecord{
		RunID:        runID,
		Time:         time.Now().UTC(),
		Pair:         cfg.Pair.String(),
		AnalysisDate: cfg.AnalysisDate(),
		Sims:         cfg.Analysis.Sims,
		Seed:         cfg.Analysis.Seed,
	}); err != nil {
		return fmt.Errorf("journal run: %w", err)
	}

	if err := j.RecordMetrics(journal.MetricsRecord{
		RunID: runID, Overlay: "unhedged", Metrics: result.Unhedged,
	}); err != nil {
		return fmt.Errorf("journal metrics: %w", err)
	}
	for _, o := range result.Overlays {
		if err := j.RecordMetrics(journal.MetricsRecord{
			RunID: runID, Overlay: o.Name, HedgeCost: o.Cost, Metrics: o.Metrics,
		}); err != nil {
			return fmt.Errorf("journal metrics: %w", err)
		}
	}

	fmt.Printf("Journaled run %s to %s\n", runID, cfg.Journal.Type)
	return nil
}
