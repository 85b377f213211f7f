package study

import "errors"

// Sentinel errors returned by the application registry and session manager.
// The API handlers map these to HTTP status codes; everything else is treated
// as an internal error.
var (
	ErrStudyKeyRequired        = errors.New("studyKey is required")
	ErrEligibilityNotConfirmed = errors.New("eligibility must be confirmed")
	ErrInvalidReviewDecision   = errors.New("review decision must be accepted or rejected")
	ErrStudyNotActive          = errors.New("study is not accepting applications")

	ErrNotFound              = errors.New("resource not found")
	ErrForbidden             = errors.New("not allowed to access this resource")
	ErrNoAcceptedApplication = errors.New("no approved application for this study")
	ErrWrongStatus           = errors.New("operation not allowed in the current status")
)
