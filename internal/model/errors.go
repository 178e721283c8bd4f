package model

import "errors"

var (
	// ErrDimensionMismatch means a vector does not fit the trained feature space.
	// It points at artifacts produced by different training runs.
	ErrDimensionMismatch = errors.New("feature dimension mismatch")
	// ErrArtifactKind is returned when an artifact file holds the wrong kind of model.
	ErrArtifactKind = errors.New("unexpected artifact kind")
)
