package rules

import (
	"fmt"

	"github.com/stratix-platform/importcheck/internal/domain"
	"github.com/stratix-platform/importcheck/internal/ports"
	"github.com/stratix-platform/importcheck/internal/similarity"
)

var _ ports.FieldRule = AreaRule{}

// AreaRule validates the area field against the tenant's existing areas.
// Exact case-insensitive matches pass silently, close misspellings become
// correctable fuzzy-match warnings, and unknown names are errors carrying
// the closest candidates as suggestions. When area restriction is enforced,
// rows resolving to a foreign area are additionally rejected.
type AreaRule struct{}

// Field returns the semantic field name this rule owns.
func (AreaRule) Field() string { return domain.FieldArea }

// Evaluate checks a single area cell against the validation context.
func (AreaRule) Evaluate(value any, ctx *domain.ValidationContext) []domain.Finding {
	name, isText := stringValue(value)
	if !isText || isBlank(value) {
		f := finding(domain.FieldArea, domain.SeverityError, domain.CodeAreaRequired,
			"Area is required and must be text", value)
		f.Suggestions = suggestAreas(ctx.AreaNames)
		return []domain.Finding{f}
	}

	var findings []domain.Finding

	resolved := name
	folded := similarity.Fold(name)
	exact := false
	for _, existing := range ctx.AreaNames {
		if similarity.Fold(existing) == folded {
			resolved = existing
			exact = true
			break
		}
	}

	if !exact {
		match, ok := similarity.BestMatch(name, ctx.AreaNames)
		if ok && match.Confidence >= areaFuzzyThreshold {
			resolved = match.Candidate
			f := finding(domain.FieldArea, domain.SeverityWarning, domain.CodeAreaFuzzyMatch,
				fmt.Sprintf("Area %q is not an exact match; did you mean %q?", name, match.Candidate), value)
			f.SuggestedValue = match.Candidate
			findings = append(findings, f)
		} else {
			f := finding(domain.FieldArea, domain.SeverityError, domain.CodeAreaNotFound,
				fmt.Sprintf("Area %q does not exist in this organization", name), value)
			f.Suggestions = closestAreas(name, ctx.AreaNames)
			findings = append(findings, f)
		}
	}

	if ctx.Rules.EnforceAreaRestriction && ctx.AreaName != "" &&
		similarity.Fold(resolved) != similarity.Fold(ctx.AreaName) {
		f := finding(domain.FieldArea, domain.SeverityError, domain.CodeAreaPermissionDenied,
			fmt.Sprintf("Your role only allows importing rows into area %q", ctx.AreaName), value)
		f.SuggestedValue = ctx.AreaName
		findings = append(findings, f)
	}

	return findings
}

// suggestAreas returns the first few existing areas for a missing-area
// finding.
func suggestAreas(areas []string) []string {
	if len(areas) > maxAreaSuggestions {
		areas = areas[:maxAreaSuggestions]
	}
	out := make([]string, len(areas))
	copy(out, areas)
	return out
}

// closestAreas returns the existing areas most similar to the input.
func closestAreas(input string, areas []string) []string {
	matches := similarity.TopMatches(input, areas, maxAreaSuggestions)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Candidate)
	}
	return out
}
