package enrollment

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLedgerConsistent(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 30)

	enr, err := Submit(db, submitInput(crs.ID, "amina@example.com"))
	require.NoError(t, err)
	_, err = Review(db, enr.ID, courseModels.StatusAccepted, 42, "")
	require.NoError(t, err)

	drifts, err := AuditLedger(db)
	require.NoError(t, err)
	assert.Empty(t, drifts)
}

func TestAuditLedgerDetectsDrift(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 30)

	enr, err := Submit(db, submitInput(crs.ID, "amina@example.com"))
	require.NoError(t, err)
	_, err = Review(db, enr.ID, courseModels.StatusAccepted, 42, "")
	require.NoError(t, err)

	// Corrupt the counter behind the engine's back
	require.NoError(t, db.Model(&courseModels.Course{}).
		Where("id = ?", crs.ID).
		Update("current_enrollment", 5).Error)

	drifts, err := AuditLedger(db)
	require.NoError(t, err)

	require.Len(t, drifts, 1)
	assert.Equal(t, crs.ID, drifts[0].CourseID)
	assert.Equal(t, 5, drifts[0].Stored)
	assert.Equal(t, int64(1), drifts[0].Actual)
}

func TestAuditLedgerDetectsOverCapacity(t *testing.T) {
	db := newTestDB(t)
	crs := createCourse(t, db, 1)

	// Counter equals the accepted count but exceeds max enrollment
	require.NoError(t, db.Model(&courseModels.Course{}).
		Where("id = ?", crs.ID).
		Update("current_enrollment", 2).Error)

	drifts, err := AuditLedger(db)
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, 2, drifts[0].Stored)
}
