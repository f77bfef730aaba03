package rubric

import "errors"

// Sentinel kinds for rubric construction errors.
var (
	ErrNoCriteria         = errors.New("rubric needs at least one criterion")
	ErrBlankCriterionID   = errors.New("criterion id must not be blank")
	ErrDuplicateCriterion = errors.New("duplicate criterion id")
	ErrInvalidWeight      = errors.New("criterion weight must be positive")
)
