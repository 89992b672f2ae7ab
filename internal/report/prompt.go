package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"StockScope/internal/model"
)

// money renders a price with exactly two decimals and the configured
// currency symbol. decimal avoids float formatting drift on round values.
func money(currency string, v float64) string {
	return currency + decimal.NewFromFloat(v).StringFixed(2)
}

// largeAmount renders a whole-number amount with thousands separators.
func largeAmount(currency string, v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	out := currency + b.String()
	if neg {
		out = currency + "-" + b.String()
	}
	return out
}

// BuildPrompt assembles the structured analyst request sent to the text
// backend. Indicator lines are left out when the underlying value is
// undefined for the latest bar.
func BuildPrompt(symbol, currency string, md model.Metadata, sig *Signals) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("You are a professional financial analyst. Write a concise investment research report for %s (%s).\n\n", md.Name, symbol))

	b.WriteString("Current Data:\n")
	b.WriteString(fmt.Sprintf("- Current Price: %s (%+.2f%% from yesterday)\n", money(currency, sig.LatestClose), sig.PriceChangePct))
	b.WriteString(fmt.Sprintf("- 52-Week High: %s (currently %+.1f%% from high)\n", money(currency, sig.YearHigh), sig.DistanceFromHighPct))
	b.WriteString(fmt.Sprintf("- 52-Week Low: %s\n", money(currency, sig.YearLow)))
	b.WriteString(fmt.Sprintf("- P/E Ratio: %.2f\n", md.PERatio))
	b.WriteString(fmt.Sprintf("- Market Cap: %s\n", largeAmount(currency, md.MarketCap)))
	b.WriteString(fmt.Sprintf("- Sector: %s\n", md.Sector))

	if len(sig.MASignals) > 0 || sig.RSISignal != "" {
		b.WriteString("\nTechnical Indicators:\n")
		if len(sig.MASignals) > 0 {
			b.WriteString(fmt.Sprintf("- Price is %s\n", strings.Join(sig.MASignals, ", ")))
		}
		if sig.RSISignal != "" {
			b.WriteString(fmt.Sprintf("- RSI indicator shows %s\n", sig.RSISignal))
		}
	}

	b.WriteString("\nWrite a 200-300 word report with:\n")
	b.WriteString("1. Investment Thesis (2-3 sentences on why to invest/avoid)\n")
	b.WriteString("2. Key Risks (2-3 bullet points)\n")
	b.WriteString("3. Recommendation (Buy/Hold/Sell with rationale)\n\n")
	b.WriteString("Keep it professional, data-driven, and executive-friendly. Focus on facts, not speculation.")

	return b.String()
}
