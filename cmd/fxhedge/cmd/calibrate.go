package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxhedge/config"
	"github.com/rustyeddy/fxhedge/heston"
	"github.com/rustyeddy/fxhedge/marketdata"
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Calibrate the stochastic-volatility model only",
	Long: `Fit the Heston parameters to the ATM volatility term structure at the
configured analysis date and print them, without running the simulation.

Example:
  fxhedge calibrate -f examples/configs/eurusd.yaml`,
	RunE: runCalibrate,
}

var calibrateConfigPath string

func init() {
	rootCmd.AddCommand(calibrateCmd)

	calibrateCmd.Flags().StringVarP(&calibrateConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	calibrateCmd.MarkFlagRequired("config")
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(calibrateConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	table, err := marketdata.Load(cfg.MarketData.File)
	if err != nil {
		return fmt.Errorf("load market data: %w", err)
	}
	snap, err := table.Snapshot(cfg.AnalysisDate())
	if err != nil {
		return fmt.Errorf("market snapshot: %w", err)
	}

	domestic, err := cfg.DomesticCurve()
	if err != nil {
		return fmt.Errorf("build domestic curve: %w", err)
	}
	foreign, err := cfg.ForeignCurve()
	if err != nil {
		return fmt.Errorf("build foreign curve: %w", err)
	}

	atmVols := make(map[float64]float64)
	for _, p := range snap.ATMVolPoints() {
		atmVols[p.Maturity] = p.Value
	}
	anchor := 0.0
	for m := range atmVols {
		if m > anchor {
			anchor = m
		}
	}

	fmt.Println("Calibrating Heston...")
	params, err := heston.Calibrate(snap.Spot, atmVols, domestic.Rate(anchor), foreign.Rate(anchor))
	if err != nil {
		return fmt.Errorf("calibrate: %w", err)
	}

	fmt.Println("\nCalibrated parameters:")
	fmt.Printf("  v0:    %.6f\n", params.V0)
	fmt.Printf("  kappa: %.6f\n", params.Kappa)
	fmt.Printf("  theta: %.6f\n", params.Theta)
	fmt.Printf("  xi:    %.6f\n", params.Xi)
	fmt.Printf("  rho:   %.6f\n", params.Rho)

	fmt.Println("\nModel vs market ATM vols:")
	for _, p := range snap.ATMVolPoints() {
		fmt.Printf("  %.0fy: model %.4f, market %.4f\n", p.Maturity, params.ATMVol(p.Maturity), p.Value)
	}
	return nil
}
