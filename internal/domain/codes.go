package domain

// Stable machine codes attached to findings. Codes drive categorization,
// documentation lookup, and fix-action selection, and are never reused
// across unrelated conditions.
const (
	CodeAreaRequired         = "AREA_REQUIRED"
	CodeAreaFuzzyMatch       = "AREA_FUZZY_MATCH"
	CodeAreaNotFound         = "AREA_NOT_FOUND"
	CodeAreaPermissionDenied = "AREA_PERMISSION_DENIED"

	CodeInitiativeRequired           = "INITIATIVE_REQUIRED"
	CodeInitiativeTooShort           = "INITIATIVE_TOO_SHORT"
	CodeInitiativeTooLong            = "INITIATIVE_TOO_LONG"
	CodeInitiativePotentialDuplicate = "INITIATIVE_POTENTIAL_DUPLICATE"

	CodeProgressRequired      = "PROGRESS_REQUIRED"
	CodeProgressInvalidFormat = "PROGRESS_INVALID_FORMAT"
	CodeProgressNotNumeric    = "PROGRESS_NOT_NUMERIC"
	CodeProgressNegative      = "PROGRESS_NEGATIVE"
	CodeProgressExceedsMax    = "PROGRESS_EXCEEDS_MAX"
	CodeProgressOver100       = "PROGRESS_OVER_100"

	CodeStatusAliasConversion = "STATUS_ALIAS_CONVERSION"
	CodeStatusUnknown         = "STATUS_UNKNOWN"

	CodeBudgetRequired    = "BUDGET_REQUIRED"
	CodeCurrencyInvalid   = "CURRENCY_INVALID"
	CodeCurrencyNegative  = "CURRENCY_NEGATIVE"
	CodeCurrencyVeryLarge = "CURRENCY_VERY_LARGE"

	CodeHoursInvalid  = "HOURS_INVALID"
	CodeHoursNegative = "HOURS_NEGATIVE"
	CodeHoursVeryHigh = "HOURS_VERY_HIGH"

	CodeDateInvalidFormat = "DATE_INVALID_FORMAT"
	CodeDateInvalidValue  = "DATE_INVALID_VALUE"
	CodeDateInPast        = "DATE_IN_PAST"

	CodePriorityAliasConversion = "PRIORITY_ALIAS_CONVERSION"
	CodePriorityUnknown         = "PRIORITY_UNKNOWN"

	CodeWeightInvalid    = "WEIGHT_INVALID"
	CodeWeightOutOfRange = "WEIGHT_OUT_OF_RANGE"

	CodeTextWhitespace = "TEXT_WHITESPACE"
	CodeTextTooLong    = "TEXT_TOO_LONG"

	CodeRequiredFieldMissing = "REQUIRED_FIELD_MISSING"

	CodeBudgetVarianceHigh     = "BUDGET_VARIANCE_HIGH"
	CodeHoursOverrun           = "HOURS_OVERRUN"
	CodeProgressStatusMismatch = "PROGRESS_STATUS_MISMATCH"
	CodeStatusProgressMismatch = "STATUS_PROGRESS_MISMATCH"

	CodeSubtaskWeightsExceed100 = "SUBTASK_WEIGHTS_EXCEED_100"
	CodeSubtaskWeightsLow       = "SUBTASK_WEIGHTS_LOW"

	// CodeRowValidationPanic is the synthetic code attached when validating
	// a single row fails unexpectedly; the row is marked invalid instead of
	// aborting the batch.
	CodeRowValidationPanic = "ROW_VALIDATION_PANIC"
)
