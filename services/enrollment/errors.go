package enrollment

import "errors"

// Sentinel errors returned by the workflow engine. Controllers map them to
// HTTP status codes with errors.Is; everything not listed here is a storage
// failure and surfaces as a 500.
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEnrollmentNotFound = errors.New("enrollment request not found")

	// ErrDuplicateRequest: the email already has a pending or accepted
	// request for the same course.
	ErrDuplicateRequest = errors.New("an active enrollment request already exists for this course")

	// ErrCapacityFull: the course is at max enrollment at acceptance time.
	ErrCapacityFull = errors.New("course has reached maximum enrollment")

	// ErrLedgerCorrupt: the seat counter was found in an impossible state
	// (decrement would drive it negative). Signals a prior bug or race and is
	// surfaced rather than silently clamped.
	ErrLedgerCorrupt = errors.New("course enrollment counter is inconsistent")

	// ErrReviewConflict: another decision on the same request committed
	// between the status read and the status write. The caller may retry
	// against the fresh status.
	ErrReviewConflict = errors.New("enrollment request was updated by a concurrent review")

	ErrInvalidTransition = errors.New("invalid enrollment status transition")
	ErrAlreadyEnrolled   = errors.New("user is already enrolled in this course")
	ErrNotEnrolled       = errors.New("user is not enrolled in this course")
)
