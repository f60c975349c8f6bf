package domain

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Canonical status and priority values accepted without conversion.
const (
	StatusPlanning   = "planning"
	StatusInProgress = "in_progress"
	StatusOnHold     = "on_hold"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"

	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Lexicon holds the canonical enum sets and the locale alias tables used to
// normalize free-text status and priority cells. It is configuration data,
// not code: deployments targeting other locales replace it wholesale via
// LexiconFromYAML without touching any rule.
type Lexicon struct {
	// Statuses is the canonical status set.
	Statuses []string `yaml:"statuses" json:"statuses"`

	// StatusAliases maps folded localized synonyms to canonical statuses.
	StatusAliases map[string]string `yaml:"status_aliases" json:"status_aliases"`

	// Priorities is the canonical priority set.
	Priorities []string `yaml:"priorities" json:"priorities"`

	// PriorityAliases maps folded localized synonyms to canonical
	// priorities.
	PriorityAliases map[string]string `yaml:"priority_aliases" json:"priority_aliases"`
}

// DefaultLexicon returns the built-in Spanish lexicon shipped with the
// platform.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Statuses: []string{
			StatusPlanning, StatusInProgress, StatusOnHold,
			StatusCompleted, StatusCancelled,
		},
		StatusAliases: map[string]string{
			"planificacion":  StatusPlanning,
			"planificación":  StatusPlanning,
			"planeacion":     StatusPlanning,
			"planeación":     StatusPlanning,
			"en progreso":    StatusInProgress,
			"en curso":       StatusInProgress,
			"activo":         StatusInProgress,
			"activa":         StatusInProgress,
			"en pausa":       StatusOnHold,
			"pausado":        StatusOnHold,
			"pausada":        StatusOnHold,
			"detenido":       StatusOnHold,
			"completado":     StatusCompleted,
			"completada":     StatusCompleted,
			"terminado":      StatusCompleted,
			"terminada":      StatusCompleted,
			"finalizado":     StatusCompleted,
			"finalizada":     StatusCompleted,
			"cancelado":      StatusCancelled,
			"cancelada":      StatusCancelled,
		},
		Priorities: []string{
			PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical,
		},
		PriorityAliases: map[string]string{
			"baja":    PriorityLow,
			"media":   PriorityMedium,
			"normal":  PriorityMedium,
			"alta":    PriorityHigh,
			"critica": PriorityCritical,
			"crítica": PriorityCritical,
			"urgente": PriorityCritical,
		},
	}
}

// LexiconFromYAML decodes a replacement lexicon, rejecting unknown fields
// so configuration typos surface instead of being silently ignored.
func LexiconFromYAML(data []byte) (Lexicon, error) {
	var lex Lexicon

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&lex); err != nil {
		return Lexicon{}, fmt.Errorf("%w: failed to decode (check for typos): %v", ErrInvalidLexicon, err)
	}

	if len(lex.Statuses) == 0 || len(lex.Priorities) == 0 {
		return Lexicon{}, fmt.Errorf("%w: canonical statuses and priorities must both be defined", ErrInvalidLexicon)
	}

	return lex, nil
}

// CanonicalStatus resolves a folded status value. It returns the canonical
// form and whether the input was an exact canonical value or an alias.
func (l Lexicon) CanonicalStatus(folded string) (canonical string, exact, alias bool) {
	for _, s := range l.Statuses {
		if folded == s {
			return s, true, false
		}
	}
	if c, ok := l.StatusAliases[folded]; ok {
		return c, false, true
	}
	return "", false, false
}

// CanonicalPriority resolves a folded priority value. It returns the
// canonical form and whether the input was exact or an alias.
func (l Lexicon) CanonicalPriority(folded string) (canonical string, exact, alias bool) {
	for _, p := range l.Priorities {
		if folded == p {
			return p, true, false
		}
	}
	if c, ok := l.PriorityAliases[folded]; ok {
		return c, false, true
	}
	return "", false, false
}
