package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRegistry = map[string]string{
	"RELIANCE.NS": "Reliance Industries",
	"TCS.NS":      "Tata Consultancy Services",
}

const quoteSummaryResponse = `{
  "quoteSummary": {
    "result": [{
      "summaryProfile": {"sector": "Energy", "industry": "Oil & Gas Refining & Marketing"},
      "summaryDetail": {
        "marketCap": {"raw": 19300000000000},
        "trailingPE": {"raw": 28.4},
        "dividendYield": {"raw": 0.0035},
        "fiftyTwoWeekHigh": {"raw": 3024.9},
        "fiftyTwoWeekLow": {"raw": 2220.3}
      }
    }],
    "error": null
  }
}`

func newTestResolver(handler http.HandlerFunc) (*Resolver, *httptest.Server) {
	srv := httptest.NewServer(handler)
	r := NewResolver(testRegistry, 5*time.Second, "")
	r.BaseURL = srv.URL
	return r, srv
}

func TestResolveSuccess(t *testing.T) {
	var gotPath string
	r, srv := newTestResolver(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		fmt.Fprint(w, quoteSummaryResponse)
	})
	defer srv.Close()

	md := r.Resolve(context.Background(), "RELIANCE.NS")

	assert.Equal(t, "/v10/finance/quoteSummary/RELIANCE.NS", gotPath)
	assert.Equal(t, "Reliance Industries", md.Name)
	assert.Equal(t, "Energy", md.Sector)
	assert.Equal(t, "Oil & Gas Refining & Marketing", md.Industry)
	assert.Equal(t, 1.93e13, md.MarketCap)
	assert.Equal(t, 28.4, md.PERatio)
	assert.Equal(t, 0.0035, md.DividendYield)
	assert.Equal(t, 3024.9, md.High52w)
	assert.Equal(t, 2220.3, md.Low52w)
}

func TestResolveUpstreamFailure(t *testing.T) {
	r, srv := newTestResolver(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})
	defer srv.Close()

	md := r.Resolve(context.Background(), "TCS.NS")

	assert.Equal(t, "Tata Consultancy Services", md.Name, "name still comes from the registry")
	assert.Equal(t, "N/A", md.Sector)
	assert.Equal(t, "N/A", md.Industry)
	assert.Equal(t, 0.0, md.MarketCap)
	assert.Equal(t, 0.0, md.PERatio)
	assert.Equal(t, 0.0, md.High52w)
}

func TestResolveUnregisteredSymbol(t *testing.T) {
	r, srv := newTestResolver(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})
	defer srv.Close()

	md := r.Resolve(context.Background(), "WIPRO.NS")
	assert.Equal(t, "WIPRO.NS", md.Name, "unregistered symbols fall back to the raw symbol")
	assert.Equal(t, "N/A", md.Sector)
}

func TestResolveAPIError(t *testing.T) {
	r, srv := newTestResolver(func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"quoteSummary":{"result":null,"error":{"code":"Not Found","description":"Quote not found"}}}`)
	})
	defer srv.Close()

	md := r.Resolve(context.Background(), "RELIANCE.NS")
	assert.Equal(t, "Reliance Industries", md.Name)
	assert.Equal(t, "N/A", md.Sector)
}

func TestResolveNeverPanicsOnDeadServer(t *testing.T) {
	r, srv := newTestResolver(func(w http.ResponseWriter, req *http.Request) {})
	srv.Close() // connection refused

	require.NotPanics(t, func() {
		md := r.Resolve(context.Background(), "TCS.NS")
		assert.Equal(t, "N/A", md.Sector)
	})
}
