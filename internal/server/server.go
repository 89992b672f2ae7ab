// Package server exposes the research pipeline over HTTP. The routes
// mirror a thin JSON API: stock data with indicators, AI reports, and
// the supported-symbol registry.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"StockScope/internal/collector"
	"StockScope/internal/config"
	"StockScope/internal/indicator"
	"StockScope/internal/metadata"
	"StockScope/internal/report"
)

// Server wires the pipeline components behind the HTTP routes.
type Server struct {
	stocks      []config.Stock
	registry    map[string]string
	collector   *collector.Collector
	resolver    *metadata.Resolver
	synthesizer *report.Synthesizer
	engine      *gin.Engine
}

// New builds the server and registers its routes.
func New(stocks []config.Stock, col *collector.Collector, res *metadata.Resolver, syn *report.Synthesizer) *Server {
	registry := make(map[string]string, len(stocks))
	for _, s := range stocks {
		registry[s.Symbol] = s.Name
	}
	s := &Server{
		stocks:      stocks,
		registry:    registry,
		collector:   col,
		resolver:    res,
		synthesizer: syn,
		engine:      gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.engine.Group("/api")
	api.GET("/stocks", s.handleStocks)
	api.GET("/stock/:symbol", s.handleStock)
	api.GET("/report/:symbol", s.handleReport)
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	logrus.WithField("addr", addr).Info("http server listening")
	return s.engine.Run(addr)
}

// pricePoint is one per-date record of the price_data array. Undefined
// indicator values serialize as JSON null.
type pricePoint struct {
	Date   string   `json:"Date"`
	Open   float64  `json:"Open"`
	High   float64  `json:"High"`
	Low    float64  `json:"Low"`
	Close  float64  `json:"Close"`
	Volume float64  `json:"Volume"`
	MA20   *float64 `json:"MA20"`
	MA50   *float64 `json:"MA50"`
	MA200  *float64 `json:"MA200"`
	RSI    *float64 `json:"RSI"`
}

// handleStocks returns the supported-symbol registry in config order.
func (s *Server) handleStocks(c *gin.Context) {
	type entry struct {
		Symbol string `json:"symbol"`
		Name   string `json:"name"`
	}
	stocks := make([]entry, len(s.stocks))
	for i, st := range s.stocks {
		stocks[i] = entry{Symbol: st.Symbol, Name: st.Name}
	}
	c.JSON(http.StatusOK, gin.H{"stocks": stocks})
}

// handleStock returns the cached-or-fetched series with indicators and
// metadata for one symbol.
func (s *Server) handleStock(c *gin.Context) {
	symbol := c.Param("symbol")
	if _, ok := s.registry[symbol]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unsupported stock symbol: %s", symbol)})
		return
	}

	series, status, err := s.collector.GetSeries(c.Request.Context(), symbol)
	if err != nil {
		s.pipelineError(c, symbol, err)
		return
	}

	frame := indicator.Compute(series)
	md := s.resolver.Resolve(c.Request.Context(), symbol)

	points := make([]pricePoint, len(frame.Points))
	for i, p := range frame.Points {
		points[i] = pricePoint{
			Date:   p.Date.Format("2006-01-02"),
			Open:   p.Open,
			High:   p.High,
			Low:    p.Low,
			Close:  p.Close,
			Volume: p.Volume,
			MA20:   p.MA20,
			MA50:   p.MA50,
			MA200:  p.MA200,
			RSI:    p.RSI14,
		}
	}

	latest, _ := frame.Latest()
	c.JSON(http.StatusOK, gin.H{
		"symbol":        symbol,
		"name":          md.Name,
		"metadata":      md,
		"current_price": latest.Close,
		"price_data":    points,
		"cache_status":  string(status),
	})
}

// handleReport generates the AI investment report for one symbol.
// Synthesis failures are part of the outcome body, not HTTP errors.
func (s *Server) handleReport(c *gin.Context) {
	symbol := c.Param("symbol")
	if _, ok := s.registry[symbol]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unsupported stock symbol: %s", symbol)})
		return
	}

	series, _, err := s.collector.GetSeries(c.Request.Context(), symbol)
	if err != nil {
		s.pipelineError(c, symbol, err)
		return
	}

	frame := indicator.Compute(series)
	md := s.resolver.Resolve(c.Request.Context(), symbol)

	outcome := s.synthesizer.Synthesize(c.Request.Context(), symbol, frame, md)
	c.JSON(http.StatusOK, outcome)
}

func (s *Server) pipelineError(c *gin.Context, symbol string, err error) {
	logrus.WithFields(logrus.Fields{"symbol": symbol, "error": err}).
		Error("pipeline request failed")
	var unavailable *collector.DataUnavailableError
	if errors.As(err, &unavailable) {
		c.JSON(http.StatusBadGateway, gin.H{"error": unavailable.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
