package storage

import "errors"

var (
	ErrQdrantUnreachable = errors.New("qdrant server unreachable")
	ErrInvalidRecord     = errors.New("invalid document vector record")
)
