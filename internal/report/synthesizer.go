// Package report turns numeric signals into a structured natural-language
// request and invokes a text-generation backend to produce an investment
// report.
package report

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"StockScope/internal/model"
)

// TextGenerator produces a completion for an assembled prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Synthesizer derives signals from an indicator frame, builds the prompt
// and calls the backend. Backend failures never escape as errors; they
// are folded into the returned outcome.
type Synthesizer struct {
	gen      TextGenerator
	currency string
	timeout  time.Duration
	now      func() time.Time
}

// NewSynthesizer creates a Synthesizer. The timeout is the ceiling for a
// single backend invocation.
func NewSynthesizer(gen TextGenerator, currency string, timeout time.Duration) *Synthesizer {
	return &Synthesizer{
		gen:      gen,
		currency: currency,
		timeout:  timeout,
		now:      time.Now,
	}
}

// Synthesize produces the report outcome for a symbol. Frames with fewer
// than two bars fail without invoking the backend.
func (s *Synthesizer) Synthesize(ctx context.Context, symbol string, frame *model.IndicatorFrame, md model.Metadata) model.ReportOutcome {
	sig, err := DeriveSignals(frame)
	if err != nil {
		logrus.WithFields(logrus.Fields{"symbol": symbol, "bars": len(frame.Points)}).
			Warn("report synthesis skipped: not enough data")
		return model.ReportFailure(err)
	}

	prompt := BuildPrompt(symbol, s.currency, md, sig)

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := s.now()
	text, err := s.gen.Generate(genCtx, prompt)
	if err != nil {
		logrus.WithFields(logrus.Fields{"symbol": symbol, "error": err}).
			Error("report generation failed")
		return model.ReportFailure(err)
	}

	logrus.WithFields(logrus.Fields{
		"symbol":   symbol,
		"length":   len(text),
		"duration": time.Since(start),
	}).Info("report generated")
	return model.ReportSuccess(text, s.now())
}
