package analyze

// Per-million-token prices in USD, matching the default Gemini Flash tier.
const (
	inputPricePerM  = 0.30
	outputPricePerM = 2.50
)

// Stats aggregates one run's outcome counts and token spend.
type Stats struct {
	InputTokens   int
	OutputTokens  int
	CachedCount   int
	AnalyzedCount int
	SkippedCount  int
}

// EstimatedCost converts token counts to a dollar figure. Cached and skipped
// files contribute the tokens recorded when they were originally analyzed.
func (s Stats) EstimatedCost() float64 {
	return float64(s.InputTokens)/1e6*inputPricePerM + float64(s.OutputTokens)/1e6*outputPricePerM
}
