package engine

import "errors"

var (
	// ErrEmptyInput is returned when a run is started with no pieces.
	ErrEmptyInput = errors.New("no pieces to pack")

	// ErrDimensionMismatch is returned when the pieces do not all share the same height.
	ErrDimensionMismatch = errors.New("pieces must all be the same height")

	// ErrInvalidSize is returned for pieces with a negative or non-finite dimension.
	ErrInvalidSize = errors.New("invalid piece size")

	// ErrInvalidSettings is returned when the packing settings cannot drive a run.
	ErrInvalidSettings = errors.New("invalid pack settings")

	// ErrRadiusLimit is returned when the bounding circle grows past the safety limit.
	ErrRadiusLimit = errors.New("bounding radius exceeded limit")

	// ErrOverlap is returned by Verify when two placed pieces overlap.
	ErrOverlap = errors.New("placed pieces overlap")

	// ErrOutsideRadius is returned by Verify when a placed corner lies outside the radius.
	ErrOutsideRadius = errors.New("placed piece outside bounding radius")
)
