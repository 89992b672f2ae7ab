package cache

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"StockScope/internal/model"
)

// ErrNotFound is returned by Load when no cache entry exists for a symbol.
// Callers are expected to check IsValid first.
var ErrNotFound = errors.New("cache: entry not found")

const dateLayout = "2006-01-02"

// Store persists one flat CSV file per symbol under a data directory.
// Validity is purely time-based: an entry is valid while the file's
// modification time is within the TTL. Concurrent writers for the same
// symbol race benignly; the last writer wins.
type Store struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewStore creates the data directory if needed and returns a Store.
func NewStore(dir string, ttl time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Store{dir: dir, ttl: ttl, now: time.Now}, nil
}

// Path returns the cache file path for a symbol.
func (s *Store) Path(symbol string) string {
	return filepath.Join(s.dir, symbol+".csv")
}

// IsValid reports whether a cache entry exists and is within the TTL.
func (s *Store) IsValid(symbol string) bool {
	info, err := os.Stat(s.Path(symbol))
	if err != nil {
		return false
	}
	return s.now().Sub(info.ModTime()) < s.ttl
}

// Load reads the cached series for a symbol. It does not check the TTL.
func (s *Store) Load(symbol string) (*model.TimeSeries, error) {
	f, err := os.Open(s.Path(symbol))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open cache file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate extra derived columns
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read cache file for %s: %w", symbol, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("cache file for %s is empty", symbol)
	}

	// Column positions come from the header so files written with extra
	// columns still load.
	cols := map[string]int{}
	for i, name := range records[0] {
		cols[name] = i
	}
	for _, name := range []string{"Date", "Open", "High", "Low", "Close", "Volume"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("cache file for %s missing column %s", symbol, name)
		}
	}

	series := &model.TimeSeries{Symbol: symbol, Bars: make([]model.Bar, 0, len(records)-1)}
	for _, rec := range records[1:] {
		date, err := time.Parse(dateLayout, rec[cols["Date"]])
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", rec[cols["Date"]], err)
		}
		bar := model.Bar{Date: date}
		for _, fld := range []struct {
			name string
			dst  *float64
		}{
			{"Open", &bar.Open},
			{"High", &bar.High},
			{"Low", &bar.Low},
			{"Close", &bar.Close},
			{"Volume", &bar.Volume},
		} {
			v, err := strconv.ParseFloat(rec[cols[fld.name]], 64)
			if err != nil {
				return nil, fmt.Errorf("parse %s %q: %w", fld.name, rec[cols[fld.name]], err)
			}
			*fld.dst = v
		}
		series.Bars = append(series.Bars, bar)
	}
	return series, nil
}

// Save overwrites the entry for a symbol. The file's modification time
// becomes the entry's last-written timestamp.
func (s *Store) Save(symbol string, series *model.TimeSeries) error {
	f, err := os.Create(s.Path(symbol))
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Date", "Open", "High", "Low", "Close", "Volume"}); err != nil {
		return fmt.Errorf("write cache header: %w", err)
	}
	for _, b := range series.Bars {
		rec := []string{
			b.Date.Format(dateLayout),
			strconv.FormatFloat(b.Open, 'f', -1, 64),
			strconv.FormatFloat(b.High, 'f', -1, 64),
			strconv.FormatFloat(b.Low, 'f', -1, 64),
			strconv.FormatFloat(b.Close, 'f', -1, 64),
			strconv.FormatFloat(b.Volume, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write cache row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush cache file: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"symbol": symbol,
		"rows":   len(series.Bars),
		"path":   s.Path(symbol),
	}).Debug("cached series")
	return nil
}
