package workflow

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"estate-sales-portal-server/models"
	"estate-sales-portal-server/utils"

	"gorm.io/gorm"
)

// Outbox event kinds.
const (
	EmailApplicationConfirmation = "email_application_confirmation"
	EmailApplicationApproved     = "email_application_approved"
	EmailApplicationRejected     = "email_application_rejected"
	EmailPaymentVerification     = "email_payment_verification"
)

const maxOutboxAttempts = 5

// SendMail is swapped out in tests.
var SendMail = utils.SendMail

// EnqueueEmail records an email intent. Delivery happens from the outbox
// worker, never inside the request that triggered it.
func EnqueueEmail(db *gorm.DB, kind string, payload map[string]string) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := models.OutboxEvent{
		Kind:    kind,
		Payload: string(raw),
		Status:  models.OutboxPending,
	}
	return db.Create(&event).Error
}

func composeEmail(kind string, payload map[string]string) (subject, body string, err error) {
	switch kind {
	case EmailApplicationConfirmation:
		subject = "We received your application"
		body = fmt.Sprintf(
			"Dear %s,\n\nYour application %s for %s has been received and is pending review.\nTotal amount: %s\n\nWe will be in touch shortly.",
			payload["name"], payload["reference"], payload["property"], payload["total"])
	case EmailApplicationApproved:
		subject = "Your application has been approved"
		body = fmt.Sprintf(
			"Dear %s,\n\nYour application %s has been approved.\n\nSet up your client dashboard access using this one-time link:\n%s\n\nThe link expires in 7 days.",
			payload["name"], payload["reference"], payload["invite_url"])
	case EmailApplicationRejected:
		subject = "Update on your application"
		body = fmt.Sprintf(
			"Dear %s,\n\nWe are unable to proceed with your application %s.\nReason: %s",
			payload["name"], payload["reference"], payload["reason"])
	case EmailPaymentVerification:
		subject = "Payment verified"
		body = fmt.Sprintf(
			"Dear %s,\n\nYour payment of %s on application %s has been verified.\nPayment progress: %s%%\nRemaining balance: %s\nNew documents: %s",
			payload["name"], payload["amount"], payload["reference"],
			payload["percentage"], payload["balance"], payload["documents"])
	default:
		return "", "", fmt.Errorf("unknown outbox kind %q", kind)
	}
	return subject, body, nil
}

func deliver(event *models.OutboxEvent) error {
	var payload map[string]string
	if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
		return err
	}

	subject, body, err := composeEmail(event.Kind, payload)
	if err != nil {
		return err
	}

	return SendMail(payload["to"], subject, body)
}

// ProcessOutbox delivers pending events once. Failures increment the attempt
// counter; events past maxOutboxAttempts are marked failed and left for
// inspection.
func ProcessOutbox(db *gorm.DB) {
	var events []models.OutboxEvent
	if err := db.Where("status = ?", models.OutboxPending).Order("id").Limit(50).Find(&events).Error; err != nil {
		log.Printf("Failed to load pending outbox events: %v", err)
		return
	}

	for i := range events {
		event := &events[i]
		err := deliver(event)

		event.Attempts++
		if err == nil {
			event.Status = models.OutboxSent
			event.LastError = ""
		} else {
			event.LastError = err.Error()
			if event.Attempts >= maxOutboxAttempts {
				event.Status = models.OutboxFailed
			}
			log.Printf("Outbox delivery failed (event %d, kind %s, attempt %d): %v",
				event.ID, event.Kind, event.Attempts, err)
		}

		if err := db.Save(event).Error; err != nil {
			log.Printf("Failed to update outbox event %d: %v", event.ID, err)
		}
	}
}

// StartOutboxWorker processes the outbox on a fixed interval until the
// program exits.
func StartOutboxWorker(db *gorm.DB, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			ProcessOutbox(db)
		}
	}()
}
