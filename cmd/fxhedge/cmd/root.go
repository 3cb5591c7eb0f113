package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fxhedge",
	Short: "Monte Carlo FX cash-flow hedge analyzer",
	Long: `fxhedge estimates the dollar-value outcome distribution of a schedule
of foreign-currency cash flows under exchange-rate uncertainty and scores
static hedge overlays against the unhedged exposure.

It provides tools for:
  - Calibrating a Heston stochastic-volatility model to ATM vol quotes
  - Simulating joint rate/variance paths with a reproducible seed
  - Valuing forward, protective-put and collar overlays
  - Summarizing outcome distributions (mean, std, VaR, CVaR)
  - Journaling run metrics to CSV or SQLite`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
