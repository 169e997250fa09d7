package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig matches every *ConfigError via errors.Is.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyCorpus is returned when an index is built from zero chunks.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrNoIndex is returned when retrieval runs without a built index.
	// It is distinct from an empty result, which means "no hits".
	ErrNoIndex = errors.New("no index available")
)

// ConfigError reports a configuration value that violates its constraint.
type ConfigError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s=%d: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// RequirePositive returns a *ConfigError unless value > 0.
func RequirePositive(field string, value int) error {
	if value <= 0 {
		return &ConfigError{Field: field, Value: value, Reason: "must be greater than zero"}
	}
	return nil
}

// ValidateWindow checks the chunk_size/overlap relationship.
func ValidateWindow(chunkSize, overlap int) error {
	if err := RequirePositive("chunk_size", chunkSize); err != nil {
		return err
	}
	if overlap < 0 {
		return &ConfigError{Field: "overlap", Value: overlap, Reason: "must not be negative"}
	}
	if overlap >= chunkSize {
		return &ConfigError{
			Field:  "overlap",
			Value:  overlap,
			Reason: fmt.Sprintf("must be smaller than chunk_size %d", chunkSize),
		}
	}
	return nil
}
