// Package metadata retrieves descriptive and fundamental attributes for
// a symbol. Resolution never fails outward: any upstream problem yields
// a degraded record instead of an error.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"StockScope/internal/model"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Resolver looks up per-symbol metadata from the Yahoo quoteSummary API.
type Resolver struct {
	BaseURL  string
	Client   *http.Client
	registry map[string]string
}

// NewResolver creates a Resolver backed by the given symbol → display
// name registry.
func NewResolver(registry map[string]string, timeout time.Duration, proxyURL string) *Resolver {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Resolver{
		BaseURL: defaultBaseURL,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		registry: registry,
	}
}

// rawValue mirrors Yahoo's {raw, fmt} numeric wrapper.
type rawValue struct {
	Raw float64 `json:"raw"`
}

// quoteSummary mirrors the Yahoo quoteSummary response, trimmed to the
// modules and fields we read.
type quoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			SummaryProfile struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
			} `json:"summaryProfile"`
			SummaryDetail struct {
				MarketCap        rawValue `json:"marketCap"`
				TrailingPE       rawValue `json:"trailingPE"`
				DividendYield    rawValue `json:"dividendYield"`
				FiftyTwoWeekHigh rawValue `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow  rawValue `json:"fiftyTwoWeekLow"`
			} `json:"summaryDetail"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// Resolve returns the metadata snapshot for a symbol. On any upstream
// failure it returns the fallback record and logs the cause.
func (r *Resolver) Resolve(ctx context.Context, symbol string) model.Metadata {
	md, err := r.lookup(ctx, symbol)
	if err != nil {
		logrus.WithFields(logrus.Fields{"symbol": symbol, "error": err}).
			Warn("metadata lookup failed, using fallback")
		return r.Fallback(symbol)
	}
	return md
}

func (r *Resolver) lookup(ctx context.Context, symbol string) (model.Metadata, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=summaryProfile%%2CsummaryDetail",
		r.BaseURL, url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.Metadata{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := r.Client.Do(req)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("quoteSummary fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("quoteSummary read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.Metadata{}, fmt.Errorf("quoteSummary: status %d", resp.StatusCode)
	}

	var qs quoteSummary
	if err := json.Unmarshal(body, &qs); err != nil {
		return model.Metadata{}, fmt.Errorf("quoteSummary decode: %w", err)
	}
	if qs.QuoteSummary.Error != nil {
		return model.Metadata{}, fmt.Errorf("quoteSummary api error: %s", qs.QuoteSummary.Error.Description)
	}
	if len(qs.QuoteSummary.Result) == 0 {
		return model.Metadata{}, fmt.Errorf("quoteSummary: no result for %s", symbol)
	}

	res := qs.QuoteSummary.Result[0]
	md := model.Metadata{
		Name:          r.displayName(symbol),
		Sector:        res.SummaryProfile.Sector,
		Industry:      res.SummaryProfile.Industry,
		MarketCap:     res.SummaryDetail.MarketCap.Raw,
		PERatio:       res.SummaryDetail.TrailingPE.Raw,
		DividendYield: res.SummaryDetail.DividendYield.Raw,
		High52w:       res.SummaryDetail.FiftyTwoWeekHigh.Raw,
		Low52w:        res.SummaryDetail.FiftyTwoWeekLow.Raw,
	}
	if md.Sector == "" {
		md.Sector = "N/A"
	}
	if md.Industry == "" {
		md.Industry = "N/A"
	}
	return md, nil
}

// Fallback is the degraded record returned when the upstream lookup
// fails: zero numerics, "N/A" strings, name from the registry.
func (r *Resolver) Fallback(symbol string) model.Metadata {
	return model.Metadata{
		Name:     r.displayName(symbol),
		Sector:   "N/A",
		Industry: "N/A",
	}
}

func (r *Resolver) displayName(symbol string) string {
	if name, ok := r.registry[symbol]; ok {
		return name
	}
	return symbol
}
