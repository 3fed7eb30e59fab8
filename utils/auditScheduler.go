package utils

import (
	"fmt"
	"log"
	"time"

	"lms/config"
	"lms/database"
	enrollmentService "lms/services/enrollment"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// logAudit logs ledger-audit events with timestamp
func logAudit(message string) {
	log.Printf("[LEDGER-AUDIT %s] %s", time.Now().Format(time.RFC3339), message)
}

// runLedgerAudit recomputes accepted-enrollment counts and reports courses
// whose stored seat counter has drifted. Runs off the transition path.
func runLedgerAudit() {
	windowStart := now.BeginningOfDay()

	drifts, err := enrollmentService.AuditLedger(database.Database.Db)
	if err != nil {
		logAudit("Error running ledger audit: " + err.Error())
		return
	}

	if len(drifts) == 0 {
		logAudit(fmt.Sprintf("Ledger consistent for audit window starting %s", windowStart.Format("2006-01-02")))
		return
	}

	for _, drift := range drifts {
		logAudit(fmt.Sprintf("DRIFT course=%d (%s) stored=%d actual=%d", drift.CourseID, drift.Title, drift.Stored, drift.Actual))
		go SendIntegrityAlert("ledgerAudit", drift.CourseID,
			fmt.Sprintf("stored counter %d, actual accepted enrollments %d", drift.Stored, drift.Actual))
	}
}

// StartLedgerAuditScheduler schedules the periodic capacity-ledger
// consistency check.
func StartLedgerAuditScheduler() {
	c := cron.New()

	spec := config.AppConfig.AuditCronSpec
	if _, err := c.AddFunc(spec, runLedgerAudit); err != nil {
		log.Fatalf("Failed to schedule ledger audit (%q): %v", spec, err)
	}

	c.Start()
	logAudit("Ledger audit scheduled: " + spec)
}
