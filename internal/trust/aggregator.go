package trust

import (
	"math"

	"github.com/credlens/credlens/internal/model"
)

// Aggregator combines independently-produced dimension scores into one
// composite trust score. A dimension that failed to resolve contributes
// nothing - absence of data is never treated as a low score.
type Aggregator struct {
	cfg model.ScoringConfig
}

// NewAggregator creates a new aggregator with the given calibration config
func NewAggregator(cfg model.ScoringConfig) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// Combine aggregates the resolved dimension scores. Iteration follows the
// configured order so the contributing-dimension list is deterministic.
func (a *Aggregator) Combine(resolved map[model.Dimension]float64, weights map[model.Dimension]float64, configured []model.Dimension) model.TrustScore {
	var contributing []model.Dimension
	weightedSum := 0.0
	totalWeight := 0.0

	for _, dim := range configured {
		score, ok := resolved[dim]
		if !ok {
			continue
		}

		weight := weights[dim]
		if weight <= 0 {
			weight = 1
		}

		contributing = append(contributing, dim)
		weightedSum += score * weight
		totalWeight += weight
	}

	confidence := a.confidence(len(contributing), len(configured))

	switch {
	case len(contributing) == 0:
		// Explicitly unavailable, never 0 or any other implied number
		return model.TrustScore{
			Score:                  nil,
			Level:                  model.TrustLevelUnrated,
			ContributingDimensions: []model.Dimension{},
			TotalWeight:            0,
			Confidence:             confidence,
		}

	case len(contributing) == 1:
		// A single uncorroborated signal cannot justify a very high rating
		composite := int(math.Round(resolved[contributing[0]]))
		if composite > a.cfg.SingleSourceCeiling {
			composite = a.cfg.SingleSourceCeiling
		}
		composite = clampScore(composite)
		return model.TrustScore{
			Score:                  &composite,
			Level:                  model.TrustLevelForScore(composite),
			ContributingDimensions: contributing,
			TotalWeight:            totalWeight,
			Confidence:             confidence,
		}

	default:
		composite := clampScore(int(math.Round(weightedSum / totalWeight)))
		return model.TrustScore{
			Score:                  &composite,
			Level:                  model.TrustLevelForScore(composite),
			ContributingDimensions: contributing,
			TotalWeight:            totalWeight,
			Confidence:             confidence,
		}
	}
}

// confidence tiers the verdict by how many configured dimensions resolved
func (a *Aggregator) confidence(resolved, configured int) model.Confidence {
	switch {
	case resolved < 2:
		return model.ConfidenceInsufficient
	case resolved == configured:
		return model.ConfidenceFull
	default:
		return model.ConfidencePartial
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
