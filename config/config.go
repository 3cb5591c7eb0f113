// Package config holds the immutable analysis-run configuration. There is
// no process-wide state: the loaded Config is passed explicitly into every
// component that needs it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/fxhedge/curve"
	"github.com/rustyeddy/fxhedge/valuation"
)

const dateLayout = "2006-01-02"

// Config represents the complete analysis configuration.
type Config struct {
	Pair       PairConfig       `json:"pair" yaml:"pair"`
	Analysis   AnalysisConfig   `json:"analysis" yaml:"analysis"`
	CashFlows  []FlowConfig     `json:"cash_flows" yaml:"cash_flows"`
	Curves     CurvesConfig     `json:"curves" yaml:"curves"`
	Collar     CollarConfig     `json:"collar" yaml:"collar"`
	MarketData MarketDataConfig `json:"market_data" yaml:"market_data"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
}

// PairConfig names the currency pair: notionals are amounts of Base,
// outcomes are reported in Quote.
type PairConfig struct {
	Base  string `json:"base" yaml:"base"`
	Quote string `json:"quote" yaml:"quote"`
}

// String returns the concatenated pair code, e.g. "EURUSD".
func (p PairConfig) String() string { return p.Base + p.Quote }

// AnalysisConfig contains run parameters.
type AnalysisConfig struct {
	Date string `json:"date" yaml:"date"`
	Sims int    `json:"sims" yaml:"sims"`
	Seed uint64 `json:"seed" yaml:"seed"`
}

// FlowConfig is one scheduled cash flow; positive notionals are exposed
// inflows in the base currency.
type FlowConfig struct {
	Date     string  `json:"date" yaml:"date"`
	Notional float64 `json:"notional" yaml:"notional"`
}

// CurvePoint is one (maturity in years, annualized rate) node.
type CurvePoint struct {
	Maturity float64 `json:"maturity" yaml:"maturity"`
	Rate     float64 `json:"rate" yaml:"rate"`
}

// CurvesConfig holds the two yield-curve tables.
type CurvesConfig struct {
	Domestic []CurvePoint `json:"domestic" yaml:"domestic"`
	Foreign  []CurvePoint `json:"foreign" yaml:"foreign"`
}

// CollarConfig sets the collar strike levels as fractions of spot.
type CollarConfig struct {
	PutLevel  float64 `json:"put_level" yaml:"put_level"`
	CallLevel float64 `json:"call_level" yaml:"call_level"`
}

// MarketDataConfig points at the market-data table (.csv or .zip).
type MarketDataConfig struct {
	File string `json:"file" yaml:"file"`
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (format chosen by extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Pair.Base == "" || c.Pair.Quote == "" {
		return fmt.Errorf("pair.base and pair.quote are required")
	}
	if _, err := time.Parse(dateLayout, c.Analysis.Date); err != nil {
		return fmt.Errorf("analysis.date must be YYYY-MM-DD: %w", err)
	}
	if c.Analysis.Sims <= 0 {
		return fmt.Errorf("analysis.sims must be positive")
	}
	if len(c.CashFlows) == 0 {
		return fmt.Errorf("at least one cash flow is required")
	}
	for i, f := range c.CashFlows {
		if _, err := time.Parse(dateLayout, f.Date); err != nil {
			return fmt.Errorf("cash_flows[%d].date must be YYYY-MM-DD: %w", i, err)
		}
		if f.Notional == 0 {
			return fmt.Errorf("cash_flows[%d].notional must be non-zero", i)
		}
	}
	if len(c.Curves.Domestic) < 2 || len(c.Curves.Foreign) < 2 {
		return fmt.Errorf("curves need at least two points each")
	}
	if c.Collar.PutLevel <= 0 || c.Collar.PutLevel >= 1 {
		return fmt.Errorf("collar.put_level must be in (0, 1)")
	}
	if c.Collar.CallLevel <= 1 {
		return fmt.Errorf("collar.call_level must be above 1")
	}
	switch c.Journal.Type {
	case "csv":
		if c.Journal.MetricsFile == "" {
			return fmt.Errorf("journal.metrics_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for SQLite type")
		}
	case "none", "":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	return nil
}

// AnalysisDate returns the parsed analysis date. Validate must have
// accepted the config first.
func (c *Config) AnalysisDate() time.Time {
	d, _ := time.Parse(dateLayout, c.Analysis.Date)
	return d
}

// Schedule converts the configured cash flows into a valuation schedule.
func (c *Config) Schedule() valuation.Schedule {
	sched := make(valuation.Schedule, len(c.CashFlows))
	for i, f := range c.CashFlows {
		d, _ := time.Parse(dateLayout, f.Date)
		sched[i] = valuation.Flow{Date: d, Notional: f.Notional}
	}
	return sched
}

// DomesticCurve builds the quote-currency discount curve.
func (c *Config) DomesticCurve() (*curve.Curve, error) {
	return buildCurve(c.Curves.Domestic)
}

// ForeignCurve builds the base-currency yield curve.
func (c *Config) ForeignCurve() (*curve.Curve, error) {
	return buildCurve(c.Curves.Foreign)
}

func buildCurve(points []CurvePoint) (*curve.Curve, error) {
	pts := make([]curve.Point, len(points))
	for i, p := range points {
		pts[i] = curve.Point{Maturity: p.Maturity, Value: p.Rate}
	}
	return curve.New(pts)
}

// Default returns a configuration with sensible defaults: the EURUSD
// exposure analyzed as of 2025-08-01.
func Default() *Config {
	return &Config{
		Pair: PairConfig{Base: "EUR", Quote: "USD"},
		Analysis: AnalysisConfig{
			Date: "2025-08-01",
			Sims: 10000,
			Seed: 42,
		},
		CashFlows: []FlowConfig{
			{Date: "2025-10-01", Notional: -10_000_000},
			{Date: "2026-10-01", Notional: 1_000_000},
			{Date: "2027-10-01", Notional: 1_000_000},
			{Date: "2029-10-01", Notional: 1_000_000},
			{Date: "2030-10-01", Notional: 11_000_000},
		},
		Curves: CurvesConfig{
			Domestic: []CurvePoint{
				{Maturity: 0.25, Rate: 0.0430},
				{Maturity: 1, Rate: 0.0415},
				{Maturity: 2, Rate: 0.0400},
				{Maturity: 5, Rate: 0.0395},
				{Maturity: 10, Rate: 0.0405},
			},
			Foreign: []CurvePoint{
				{Maturity: 0.25, Rate: 0.0210},
				{Maturity: 1, Rate: 0.0220},
				{Maturity: 2, Rate: 0.0230},
				{Maturity: 5, Rate: 0.0250},
				{Maturity: 10, Rate: 0.0270},
			},
		},
		Collar: CollarConfig{PutLevel: 0.95, CallLevel: 1.05},
		MarketData: MarketDataConfig{
			File: "./data/eurusd.csv",
		},
		Journal: JournalConfig{
			Type:        "csv",
			MetricsFile: "./metrics.csv",
		},
	}
}
