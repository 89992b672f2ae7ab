// seedcache pre-populates the per-symbol CSV cache so the dashboard can
// run without touching the upstream provider. By default it writes
// deterministic demo data for every configured symbol; with -fetch it
// pulls real data instead.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"StockScope/internal/cache"
	"StockScope/internal/collector"
	"StockScope/internal/config"
	"StockScope/internal/model"
)

// Demo base prices, roughly matching the real quotes of the default
// registry symbols.
var basePrices = map[string]float64{
	"RELIANCE.NS": 2850,
	"TCS.NS":      3650,
	"INFY.NS":     1450,
	"HDFCBANK.NS": 1650,
}

func main() {
	fetch := flag.Bool("fetch", false, "fetch real data from upstream instead of generating demo data")
	days := flag.Int("days", 252, "number of trading days to generate in demo mode")
	flag.Parse()

	_ = godotenv.Load()
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	store, err := cache.NewStore(cfg.Cache.Dir, time.Duration(cfg.Cache.TTLHours)*time.Hour)
	if err != nil {
		logrus.Fatalf("init cache store: %v", err)
	}

	if *fetch {
		fetcher := collector.NewYahooFetcher(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second, cfg.Proxy)
		col := collector.NewCollector(fetcher, store, cfg.Fetch.MaxAttempts,
			time.Duration(cfg.Fetch.RetryDelaySeconds)*time.Second)
		for _, symbol := range cfg.Symbols() {
			series, _, err := col.GetSeries(context.Background(), symbol)
			if err != nil {
				logrus.WithFields(logrus.Fields{"symbol": symbol, "error": err}).Error("fetch failed")
				continue
			}
			latest, _ := series.Latest()
			logrus.WithFields(logrus.Fields{
				"symbol": symbol,
				"rows":   len(series.Bars),
				"close":  latest.Close,
			}).Info("cached upstream data")
		}
		return
	}

	for _, symbol := range cfg.Symbols() {
		base := basePrices[symbol]
		if base == 0 {
			base = 1000
		}
		series := &model.TimeSeries{
			Symbol: symbol,
			Bars:   collector.GenerateDemoBars(symbol, base, *days),
		}
		if err := store.Save(symbol, series); err != nil {
			logrus.WithFields(logrus.Fields{"symbol": symbol, "error": err}).Error("save failed")
			continue
		}
		latest, _ := series.Latest()
		logrus.WithFields(logrus.Fields{
			"symbol": symbol,
			"rows":   len(series.Bars),
			"close":  latest.Close,
			"path":   store.Path(symbol),
		}).Info("generated demo data")
	}
}
