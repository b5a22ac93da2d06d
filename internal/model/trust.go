package model

// Dimension identifies one axis of credibility assessment
type Dimension string

const (
	DimensionSource       Dimension = "source"
	DimensionAuthor       Dimension = "author"
	DimensionBias         Dimension = "bias"
	DimensionFacts        Dimension = "facts"
	DimensionTransparency Dimension = "transparency"
	DimensionManipulation Dimension = "manipulation"
)

// NormalizedScore is a single dimension's resolved 0-100 value.
// Resolved=false means no data - absence is never conflated with zero.
type NormalizedScore struct {
	Dimension Dimension `json:"dimension"`
	Value     float64   `json:"value"`
	Resolved  bool      `json:"resolved"`
}

// Confidence describes how many independent dimensions backed a composite
type Confidence string

const (
	ConfidenceFull         Confidence = "full"
	ConfidencePartial      Confidence = "partial"
	ConfidenceInsufficient Confidence = "insufficient"
)

// TrustLevel is the human-readable band for a composite trust score
type TrustLevel string

const (
	TrustLevelHigh     TrustLevel = "high"
	TrustLevelModerate TrustLevel = "moderate"
	TrustLevelLow      TrustLevel = "low"
	TrustLevelVeryLow  TrustLevel = "very-low"
	TrustLevelUnrated  TrustLevel = "unrated"
)

// TrustScore is the composite credibility verdict.
// Score is nil when no dimension resolved - "unavailable" is explicit,
// never an implied number.
type TrustScore struct {
	Score                  *int        `json:"score"` // 0-100, nil = unavailable
	Level                  TrustLevel  `json:"level"`
	ContributingDimensions []Dimension `json:"contributing_dimensions"`
	TotalWeight            float64     `json:"total_weight"`
	Confidence             Confidence  `json:"confidence"`
}

// Available reports whether a composite score could be computed
func (t TrustScore) Available() bool {
	return t.Score != nil
}

// TrustLevelForScore maps a composite score to its band
func TrustLevelForScore(score int) TrustLevel {
	switch {
	case score >= 80:
		return TrustLevelHigh
	case score >= 60:
		return TrustLevelModerate
	case score >= 40:
		return TrustLevelLow
	default:
		return TrustLevelVeryLow
	}
}
