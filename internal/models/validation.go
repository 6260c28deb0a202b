package models

// ValidationResult is the quality assessment of a field-set
type ValidationResult struct {
	IsValid     bool     `json:"isValid"`
	Score       int      `json:"score"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

// ScoreBand buckets a score for display
type ScoreBand string

const (
	BandGood ScoreBand = "good"
	BandFair ScoreBand = "fair"
	BandPoor ScoreBand = "poor"
)

// Band returns the display band for the result's score
func (r ValidationResult) Band() ScoreBand {
	switch {
	case r.Score >= 80:
		return BandGood
	case r.Score >= 60:
		return BandFair
	default:
		return BandPoor
	}
}
