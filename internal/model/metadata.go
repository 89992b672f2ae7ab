package model

// Metadata is the per-symbol descriptive snapshot returned to clients.
// Textual fields fall back to "N/A" and numeric fields to zero when the
// upstream lookup fails.
type Metadata struct {
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	Industry      string  `json:"industry"`
	MarketCap     float64 `json:"market_cap"`
	PERatio       float64 `json:"pe_ratio"`
	DividendYield float64 `json:"dividend_yield"`
	High52w       float64 `json:"52w_high"`
	Low52w        float64 `json:"52w_low"`
}
