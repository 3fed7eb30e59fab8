package utils

import (
	"log"
	"time"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// SendIntegrityAlert pushes an operator alert when the enrollment ledger is
// found in an impossible state. Faults are never repaired automatically;
// someone has to look.
func SendIntegrityAlert(operation string, entityID uint, detail string) {
	log.Printf("[INTEGRITY-ALERT] operation=%s entity=%d detail=%s", operation, entityID, detail)

	webhookURL := config.AppConfig.AlertWebhookURL
	if webhookURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)

	_, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"service":   "enrollment-ledger",
			"operation": operation,
			"entity_id": entityID,
			"detail":    detail,
			"at":        time.Now().Format(time.RFC3339),
		}).
		Post(webhookURL)
	if err != nil {
		log.Printf("Error sending integrity alert webhook: %v", err)
	}
}
