package services

import "errors"

// Sentinel errors surfaced by the core pipeline. Controllers map these to
// HTTP statuses; grading.ErrMalformedAnswer passes through unchanged.
var (
	ErrNotFound               = errors.New("not found")
	ErrNotEnrolled            = errors.New("not enrolled")
	ErrReviewNotEligible      = errors.New("review not eligible")
	ErrConcurrentModification = errors.New("concurrent modification")
)
