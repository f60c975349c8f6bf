package rules

import (
	"fmt"

	"github.com/stratix-platform/importcheck/internal/domain"
	"github.com/stratix-platform/importcheck/internal/ports"
)

var _ ports.FieldRule = WeightRule{}

// WeightRule validates the optional initiative weight. Absent weights
// default to 1.0 downstream; present weights must be numeric and inside
// [0.1, 3.0].
type WeightRule struct{}

// Field returns the semantic field name this rule owns.
func (WeightRule) Field() string { return domain.FieldWeight }

// Evaluate checks a single weight cell.
func (WeightRule) Evaluate(value any, _ *domain.ValidationContext) []domain.Finding {
	if isBlank(value) {
		return nil
	}

	weight, outcome := toFloat(value)
	if outcome != parsedOK {
		return []domain.Finding{finding(domain.FieldWeight, domain.SeverityError,
			domain.CodeWeightInvalid,
			fmt.Sprintf("%v is not a valid weight", value), value)}
	}

	if weight < minWeight || weight > maxWeight {
		f := finding(domain.FieldWeight, domain.SeverityError, domain.CodeWeightOutOfRange,
			fmt.Sprintf("Weight %.4g is outside the allowed range [%.1f, %.1f]", weight, minWeight, maxWeight),
			value)
		f.SuggestedValue = clampWeight(weight)
		return []domain.Finding{f}
	}

	return nil
}

// clampWeight pulls an out-of-range weight back into [minWeight, maxWeight].
func clampWeight(w float64) float64 {
	if w < minWeight {
		return minWeight
	}
	if w > maxWeight {
		return maxWeight
	}
	return w
}
