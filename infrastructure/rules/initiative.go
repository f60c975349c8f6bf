package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/stratix-platform/importcheck/internal/domain"
	"github.com/stratix-platform/importcheck/internal/ports"
	"github.com/stratix-platform/importcheck/internal/similarity"
)

var _ ports.FieldRule = InitiativeRule{}

// InitiativeRule validates the free-text initiative title: presence, length
// bounds, and fuzzy comparison against existing initiative titles to catch
// near-duplicate imports before they land in the store.
type InitiativeRule struct{}

// Field returns the semantic field name this rule owns.
func (InitiativeRule) Field() string { return domain.FieldInitiative }

// Evaluate checks a single initiative title cell.
func (InitiativeRule) Evaluate(value any, ctx *domain.ValidationContext) []domain.Finding {
	title, isText := stringValue(value)
	if !isText || isBlank(value) {
		return []domain.Finding{finding(domain.FieldInitiative, domain.SeverityError,
			domain.CodeInitiativeRequired, "Initiative title is required", value)}
	}

	var findings []domain.Finding

	trimmed := strings.TrimSpace(title)
	switch length := utf8.RuneCountInString(trimmed); {
	case length < minTitleLength:
		findings = append(findings, finding(domain.FieldInitiative, domain.SeverityWarning,
			domain.CodeInitiativeTooShort,
			fmt.Sprintf("Initiative title is very short (%d characters); titles under %d characters are hard to identify", length, minTitleLength),
			value))
	case length > maxTitleLength:
		findings = append(findings, finding(domain.FieldInitiative, domain.SeverityWarning,
			domain.CodeInitiativeTooLong,
			fmt.Sprintf("Initiative title is very long (%d characters); the limit for display is %d", length, maxTitleLength),
			value))
	}

	if dup, conf, ok := closestInitiative(trimmed, ctx.Initiatives); ok && conf > titleDuplicateThreshold {
		f := finding(domain.FieldInitiative, domain.SeverityWarning,
			domain.CodeInitiativePotentialDuplicate,
			fmt.Sprintf("Initiative %q closely matches existing initiative %q (%.0f%% similar)", trimmed, dup.Title, conf*100),
			value)
		f.Suggestions = []string{dup.Title}
		findings = append(findings, f)
	}

	return findings
}

// closestInitiative finds the existing initiative whose title is most
// similar to the input, honoring the similarity candidate cap.
func closestInitiative(title string, existing []domain.InitiativeRef) (domain.InitiativeRef, float64, bool) {
	if len(existing) > similarity.MaxCandidates {
		existing = existing[:similarity.MaxCandidates]
	}

	folded := similarity.Fold(title)
	best := -1.0
	var bestRef domain.InitiativeRef
	for _, ref := range existing {
		if score := similarity.Confidence(folded, similarity.Fold(ref.Title)); score > best {
			best = score
			bestRef = ref
		}
	}

	return bestRef, best, best >= 0
}
