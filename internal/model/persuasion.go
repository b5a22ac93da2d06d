package model

// Severity classifies how strongly a single indicator category fired
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank orders severities for sorting (higher is more severe)
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// ManipulationLevel is the human-readable verdict for a persuasion score
type ManipulationLevel string

const (
	LevelMinimal  ManipulationLevel = "Minimal"
	LevelLow      ManipulationLevel = "Low"
	LevelModerate ManipulationLevel = "Moderate"
	LevelHigh     ManipulationLevel = "High"
)

// Detection represents one indicator category that matched in the text
type Detection struct {
	Type        string   `json:"type"`        // Category ID (e.g., "fear_mongering")
	Name        string   `json:"name"`        // Display name
	Description string   `json:"description"` // What this tactic is
	Keywords    []string `json:"keywords"`    // Distinct matched terms
	Count       int      `json:"count"`       // Number of distinct matches
	Score       float64  `json:"score"`       // Category contribution after adjustments
	Severity    Severity `json:"severity"`    // low, medium, high
}

// PersuasionReport is the complete output of the manipulation scorer.
// Immutable once produced; one per analysis request.
type PersuasionReport struct {
	Score             int               `json:"score"` // 0-100
	TacticsFound      []Detection       `json:"tactics_found"`
	ManipulationLevel ManipulationLevel `json:"manipulation_level"`
	TacticCount       int               `json:"tactic_count"`
	WordCount         int               `json:"word_count"` // Words used for length normalization
}

// EmptyPersuasionReport returns the zero-score report used for empty
// or malformed input. Degraded input is data, never an error.
func EmptyPersuasionReport() PersuasionReport {
	return PersuasionReport{
		Score:             0,
		TacticsFound:      []Detection{},
		ManipulationLevel: LevelMinimal,
		TacticCount:       0,
		WordCount:         0,
	}
}

// LevelForScore maps a final 0-100 persuasion score to its verdict label
func LevelForScore(score int) ManipulationLevel {
	switch {
	case score < 20:
		return LevelMinimal
	case score < 40:
		return LevelLow
	case score < 70:
		return LevelModerate
	default:
		return LevelHigh
	}
}
