// Package report formats analysis results for the console.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rustyeddy/fxhedge/analysis"
	"github.com/rustyeddy/fxhedge/risk"
)

var overlayTitles = map[string]string{
	"forward": "Forward Hedge",
	"put":     "Put Options",
	"collar":  "Collar",
}

// Write renders the full results block: calibrated parameters, per-overlay
// metrics and the hedge comparison summary.
func Write(w io.Writer, pair string, r *analysis.Result) {
	rule := strings.Repeat("=", 60)

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "RESULTS (%s)\n", pair)
	fmt.Fprintln(w, rule)

	fmt.Fprintf(w, "\nCalibrated parameters:\n")
	fmt.Fprintf(w, "  v0:    %.6f\n", r.Params.V0)
	fmt.Fprintf(w, "  kappa: %.6f\n", r.Params.Kappa)
	fmt.Fprintf(w, "  theta: %.6f\n", r.Params.Theta)
	fmt.Fprintf(w, "  xi:    %.6f\n", r.Params.Xi)
	fmt.Fprintf(w, "  rho:   %.6f\n", r.Params.Rho)

	fmt.Fprintf(w, "\nUnhedged:\n")
	writeMetrics(w, r.Unhedged)

	for _, o := range r.Overlays {
		title := overlayTitles[o.Name]
		if title == "" {
			title = o.Name
		}
		fmt.Fprintf(w, "\n%s:\n", title)
		writeMetrics(w, o.Metrics)
		fmt.Fprintf(w, "  hedge_cost: $%s\n", money(o.Cost))
	}

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintln(w, "COMPARISON")
	fmt.Fprintln(w, rule)

	fmt.Fprintf(w, "\nVolatility reduction:\n")
	for _, o := range r.Overlays {
		reduction := 0.0
		if r.Unhedged.Std > 0 {
			reduction = (1 - o.Metrics.Std/r.Unhedged.Std) * 100
		}
		fmt.Fprintf(w, "  %s: %.1f%%\n", overlayTitles[o.Name], reduction)
	}

	fmt.Fprintf(w, "\nVaR 95%% improvement:\n")
	for _, o := range r.Overlays {
		fmt.Fprintf(w, "  %s: $%s\n", overlayTitles[o.Name], money(o.Metrics.VaR95-r.Unhedged.VaR95))
	}
	fmt.Fprintln(w)
}

func writeMetrics(w io.Writer, m risk.Metrics) {
	fmt.Fprintf(w, "  mean: $%s\n", money(m.Mean))
	fmt.Fprintf(w, "  median: $%s\n", money(m.Median))
	fmt.Fprintf(w, "  std: $%s\n", money(m.Std))
	fmt.Fprintf(w, "  var_95: $%s\n", money(m.VaR95))
	fmt.Fprintf(w, "  var_99: $%s\n", money(m.VaR99))
	fmt.Fprintf(w, "  cvar_95: $%s\n", money(m.CVaR95))
	fmt.Fprintf(w, "  cvar_99: $%s\n", money(m.CVaR99))
}

// money formats a dollar amount with thousands separators and no cents.
func money(x float64) string {
	neg := x < 0
	if neg {
		x = -x
	}
	s := fmt.Sprintf("%.0f", x)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
