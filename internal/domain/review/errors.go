package review

import "errors"

// Sentinel kinds for review validation errors. These are rejected before any
// store mutation and never retried automatically.
var (
	ErrUnknownCriterion = errors.New("score references an unknown criterion")
	ErrScoreOutOfRange  = errors.New("score outside the 1-5 range")
	ErrIncompleteScores = errors.New("every criterion must be scored before completion")
	ErrEmptyComment     = errors.New("a comment is required before completion")
)
