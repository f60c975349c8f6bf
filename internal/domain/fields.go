package domain

// Semantic field names produced by the column mapping. Columns in the
// uploaded file map onto these names; rules are keyed by them.
const (
	FieldArea           = "area"
	FieldInitiative     = "initiative"
	FieldDescription    = "description"
	FieldProgress       = "progress"
	FieldStatus         = "status"
	FieldBudget         = "budget"
	FieldActualCost     = "actual_cost"
	FieldEstimatedHours = "estimated_hours"
	FieldActualHours    = "actual_hours"
	FieldTargetDate     = "target_date"
	FieldPriority       = "priority"
	FieldWeight         = "weight"
	FieldSubtaskWeights = "subtask_weights"
)
