package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrollmentStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusAccepted.Valid())
	assert.True(t, StatusRejected.Valid())
	assert.False(t, EnrollmentStatus("approved").Valid())
	assert.False(t, EnrollmentStatus("").Valid())
}

func TestEnrollmentTransitions(t *testing.T) {
	cases := []struct {
		from    EnrollmentStatus
		to      EnrollmentStatus
		allowed bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusRejected, true},
		{StatusAccepted, StatusRejected, true},
		{StatusRejected, StatusAccepted, true},
		// Same-status moves are handled as no-ops by the engine, not by the table
		{StatusPending, StatusPending, false},
		{StatusAccepted, StatusAccepted, false},
		{StatusRejected, StatusRejected, false},
		// Nothing goes back to pending
		{StatusAccepted, StatusPending, false},
		{StatusRejected, StatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
