// Package marketdata loads the EUR/USD market-data table: daily spot
// fixes plus ATM, 25-delta risk-reversal and butterfly vol quotes at the
// 1y and 5y tenors. The analysis core only consumes spot and the two ATM
// columns; the remaining quotes are carried for completeness.
package marketdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xyproto/unzip"

	"github.com/rustyeddy/fxhedge/curve"
)

const dateLayout = "2006-01-02"

// ErrNoData is returned when a requested date has no complete row.
var ErrNoData = errors.New("marketdata: no data for date")

// Snapshot is one complete market-data row. Volatilities are stored as
// decimals (the source file quotes them in percent).
type Snapshot struct {
	Date  time.Time
	Spot  float64
	ATM1Y float64
	RR1Y  float64
	BF1Y  float64
	ATM5Y float64
	RR5Y  float64
	BF5Y  float64
}

// ATMVolPoints returns the snapshot's ATM vol nodes at the quoted tenors.
func (s Snapshot) ATMVolPoints() []curve.Point {
	return []curve.Point{
		{Maturity: 1, Value: s.ATM1Y},
		{Maturity: 5, Value: s.ATM5Y},
	}
}

// Table is the date-keyed market-data series.
type Table struct {
	rows  []Snapshot
	byDay map[string]Snapshot
}

// Load reads a market-data table from a CSV file. Paths ending in .zip
// are unpacked first and the archive's CSV member is parsed. Rows with
// missing or unparsable fields are dropped, matching the requirement that
// only complete quotes are usable.
func Load(path string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return loadZip(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open market data: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

func loadZip(path string) (*Table, error) {
	dir, err := os.MkdirTemp("", "fxhedge-marketdata-")
	if err != nil {
		return nil, fmt.Errorf("unpack market data: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := unzip.Extract(path, dir); err != nil {
		return nil, fmt.Errorf("unpack market data: %w", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("unpack market data: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("unpack market data: no csv member in %s", path)
	}
	f, err := os.Open(matches[0])
	if err != nil {
		return nil, fmt.Errorf("open market data: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads the CSV stream. The expected header is
// date,spot,vol_1y_atm,vol_1y_25d_rr,vol_1y_25d_bf,vol_5y_atm,vol_5y_25d_rr,vol_5y_25d_bf.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse market data: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse market data: empty file")
	}

	t := &Table{byDay: make(map[string]Snapshot)}
	for i, rec := range records {
		if i == 0 && isHeader(rec) {
			continue
		}
		snap, ok := parseRow(rec)
		if !ok {
			continue
		}
		t.rows = append(t.rows, snap)
	}

	sort.Slice(t.rows, func(i, j int) bool { return t.rows[i].Date.Before(t.rows[j].Date) })
	for _, snap := range t.rows {
		t.byDay[snap.Date.Format(dateLayout)] = snap
	}

	if len(t.rows) == 0 {
		return nil, fmt.Errorf("parse market data: no complete rows")
	}
	return t, nil
}

func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	_, err := time.Parse(dateLayout, strings.TrimSpace(rec[0]))
	return err != nil
}

func parseRow(rec []string) (Snapshot, bool) {
	if len(rec) < 8 {
		return Snapshot{}, false
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(rec[0]))
	if err != nil {
		return Snapshot{}, false
	}

	vals := make([]float64, 7)
	for i := 0; i < 7; i++ {
		s := strings.TrimSpace(rec[i+1])
		if s == "" {
			return Snapshot{}, false
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Snapshot{}, false
		}
		vals[i] = v
	}

	return Snapshot{
		Date:  date,
		Spot:  vals[0],
		ATM1Y: vals[1] / 100,
		RR1Y:  vals[2] / 100,
		BF1Y:  vals[3] / 100,
		ATM5Y: vals[4] / 100,
		RR5Y:  vals[5] / 100,
		BF5Y:  vals[6] / 100,
	}, true
}

// Snapshot returns the complete row for the given date.
func (t *Table) Snapshot(date time.Time) (Snapshot, error) {
	snap, ok := t.byDay[date.Format(dateLayout)]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrNoData, date.Format(dateLayout))
	}
	return snap, nil
}

// Len returns the number of complete rows loaded.
func (t *Table) Len() int { return len(t.rows) }

// First and Last return the series date bounds.
func (t *Table) First() time.Time { return t.rows[0].Date }
func (t *Table) Last() time.Time  { return t.rows[len(t.rows)-1].Date }
