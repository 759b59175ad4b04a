package embedding

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyEmbedding marks a nil or zero-length vector.
	ErrEmptyEmbedding = errors.New("embedding is nil or empty")

	// ErrDimensionMismatch marks a vector whose length differs from the
	// collection's configured dimensionality.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// Validate checks that a vector is non-empty and matches the expected
// dimensionality. It is a pure predicate with no side effects; the indexing
// orchestrator runs it before persistence and the store runs it again at its
// own boundary so an invalid vector can never reach the collection.
func Validate(vector []float32, expectedDimensions int) error {
	if len(vector) == 0 {
		return ErrEmptyEmbedding
	}
	if len(vector) != expectedDimensions {
		return fmt.Errorf("%w: got %d, expected %d", ErrDimensionMismatch, len(vector), expectedDimensions)
	}
	return nil
}
