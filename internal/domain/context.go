package domain

import "time"

// Role identifies the acting user's role for an import request.
// Roles determine which validation rules are tightened or relaxed.
type Role string

// Supported roles, from broadest to narrowest scope.
const (
	// RoleAdmin manages the whole tenant and must supply budget data.
	RoleAdmin Role = "admin"

	// RoleManager manages multiple areas and must supply budget data.
	RoleManager Role = "manager"

	// RoleAreaManager is restricted to a single organizational area.
	RoleAreaManager Role = "area_manager"

	// RoleContributor can import rows but carries no budget obligations.
	RoleContributor Role = "contributor"
)

// InitiativeRef is a lightweight reference to an initiative that already
// exists in the operational store, used for duplicate detection.
type InitiativeRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Area  string `json:"area,omitempty"`
}

// ValidationRules configures which checks run and with what thresholds.
// A ValidationRules value is assembled once per import request, typically
// via RulesForRole, and read-only thereafter.
type ValidationRules struct {
	// RequiredFields lists semantic fields that must be present and
	// non-blank on every row.
	RequiredFields []string `yaml:"required_fields" json:"required_fields"`

	// ProgressRequired forces every row to carry a progress value.
	ProgressRequired bool `yaml:"progress_required" json:"progress_required"`

	// BudgetRequired forces every row to carry a budget value.
	BudgetRequired bool `yaml:"budget_required" json:"budget_required"`

	// MaxProgress is the upper bound for the progress field. Values above
	// 100 up to this bound are flagged but not rejected.
	MaxProgress float64 `yaml:"max_progress" json:"max_progress" validate:"gt=0"`

	// AllowNegativeProgress permits progress values below zero.
	AllowNegativeProgress bool `yaml:"allow_negative_progress" json:"allow_negative_progress"`

	// BudgetVarianceTolerance is the per-row |budget-cost|/budget ratio
	// above which a cross-field warning is raised.
	BudgetVarianceTolerance float64 `yaml:"budget_variance_tolerance" json:"budget_variance_tolerance" validate:"gte=0"`

	// EnforceAreaRestriction rejects rows whose area differs from the
	// acting user's assigned area.
	EnforceAreaRestriction bool `yaml:"enforce_area_restriction" json:"enforce_area_restriction"`

	// CheckKPIConsistency enables the progress/status cross-field checks.
	CheckKPIConsistency bool `yaml:"check_kpi_consistency" json:"check_kpi_consistency"`

	// Lexicon supplies the canonical enum sets and locale alias tables used
	// by the status and priority rules.
	Lexicon Lexicon `yaml:"lexicon" json:"lexicon"`
}

// DefaultValidationRules returns the baseline rule set: initiative and area
// required, progress capped at 150, 15% budget variance tolerance, KPI
// consistency on, Spanish alias lexicon.
func DefaultValidationRules() ValidationRules {
	return ValidationRules{
		RequiredFields:          []string{"initiative", "area"},
		MaxProgress:             150,
		BudgetVarianceTolerance: 0.15,
		CheckKPIConsistency:     true,
		Lexicon:                 DefaultLexicon(),
	}
}

// RulesForRole assembles role-appropriate validation rules: elevated roles
// must supply budgets, area-scoped roles are pinned to their own area.
func RulesForRole(role Role) ValidationRules {
	rules := DefaultValidationRules()

	switch role {
	case RoleAdmin, RoleManager:
		rules.BudgetRequired = true
		rules.ProgressRequired = true
	case RoleAreaManager:
		rules.EnforceAreaRestriction = true
	}

	return rules
}

// ValidationContext carries every piece of reference data one engine
// invocation needs: who is importing, into which tenant, what already
// exists, how columns map to fields, and which rules apply.
// It is constructed once per import request from data fetched by an
// external collaborator and is read-only thereafter, which keeps the
// engine pure and independently testable.
type ValidationContext struct {
	// Role is the acting user's role.
	Role Role `json:"role" validate:"required"`

	// TenantID scopes the import to one tenant.
	TenantID string `json:"tenant_id" validate:"required"`

	// AreaID optionally identifies the acting user's assigned area.
	AreaID string `json:"area_id,omitempty"`

	// AreaName is the display name of the user's assigned area, used as the
	// suggested replacement when area restriction denies a row.
	AreaName string `json:"area_name,omitempty"`

	// AreaNames lists every existing area name in the tenant.
	AreaNames []string `json:"area_names"`

	// Initiatives lists every existing initiative in the tenant.
	Initiatives []InitiativeRef `json:"initiatives"`

	// ColumnMapping is the active original-column to semantic-field mapping.
	ColumnMapping ColumnMapping `json:"column_mapping" validate:"required,min=1"`

	// Rules is the active rule configuration.
	Rules ValidationRules `json:"rules"`

	// Now anchors "current moment" checks such as past-date detection so a
	// whole run sees one consistent clock reading.
	Now time.Time `json:"-"`
}

// NewValidationContext builds an immutable context for one engine
// invocation. The mapping and reference slices are copied so later caller
// mutations cannot leak into a running validation.
func NewValidationContext(
	role Role,
	tenantID string,
	mapping ColumnMapping,
	areas []string,
	initiatives []InitiativeRef,
	rules ValidationRules,
) *ValidationContext {
	mappingCopy := make(ColumnMapping, len(mapping))
	for col, field := range mapping {
		mappingCopy[col] = field
	}

	areasCopy := make([]string, len(areas))
	copy(areasCopy, areas)

	initiativesCopy := make([]InitiativeRef, len(initiatives))
	copy(initiativesCopy, initiatives)

	return &ValidationContext{
		Role:          role,
		TenantID:      tenantID,
		AreaNames:     areasCopy,
		Initiatives:   initiativesCopy,
		ColumnMapping: mappingCopy,
		Rules:         rules,
		Now:           time.Now(),
	}
}
