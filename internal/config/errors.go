package config

import "errors"

// Sentinels distinguishing a config that failed to load from one that loaded
// but does not validate. Callers match with errors.Is.
var (
	ErrInvalidConfig = errors.New("configuration is invalid")
	ErrLoadConfig    = errors.New("configuration could not be loaded")
)
