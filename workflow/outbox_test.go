package workflow

import (
	"errors"
	"testing"

	"estate-sales-portal-server/models"
	"estate-sales-portal-server/utils"

	"github.com/stretchr/testify/require"
)

func TestOutboxDeliversPendingEvents(t *testing.T) {
	db := setupTestDB(t)

	var sent []string
	SendMail = func(to, subject, body string) error {
		sent = append(sent, to+"|"+subject)
		return nil
	}
	defer func() { SendMail = utils.SendMail }()

	require.NoError(t, EnqueueEmail(db, EmailApplicationConfirmation, map[string]string{
		"to":        "amina@example.com",
		"name":      "Amina Bello",
		"reference": "ref-1",
		"property":  "4-Bedroom Terrace",
		"total":     "40000000.00",
	}))

	ProcessOutbox(db)

	require.Len(t, sent, 1)
	require.Contains(t, sent[0], "amina@example.com")

	var event models.OutboxEvent
	require.NoError(t, db.First(&event).Error)
	require.Equal(t, models.OutboxSent, event.Status)
	require.Equal(t, 1, event.Attempts)
}

func TestOutboxRetriesAndEventuallyFails(t *testing.T) {
	db := setupTestDB(t)

	SendMail = func(to, subject, body string) error {
		return errors.New("smtp unavailable")
	}
	defer func() { SendMail = utils.SendMail }()

	require.NoError(t, EnqueueEmail(db, EmailApplicationRejected, map[string]string{
		"to":     "amina@example.com",
		"name":   "Amina Bello",
		"reason": "incomplete documents",
	}))

	for i := 0; i < maxOutboxAttempts; i++ {
		var event models.OutboxEvent
		require.NoError(t, db.First(&event).Error)
		if i < maxOutboxAttempts {
			require.NotEqual(t, models.OutboxSent, event.Status)
		}
		ProcessOutbox(db)
	}

	var event models.OutboxEvent
	require.NoError(t, db.First(&event).Error)
	require.Equal(t, models.OutboxFailed, event.Status)
	require.Equal(t, maxOutboxAttempts, event.Attempts)
	require.Contains(t, event.LastError, "smtp unavailable")

	// Failed events are not retried again
	ProcessOutbox(db)
	require.NoError(t, db.First(&event).Error)
	require.Equal(t, maxOutboxAttempts, event.Attempts)
}

func TestOutboxUnknownKindFails(t *testing.T) {
	db := setupTestDB(t)

	SendMail = func(to, subject, body string) error { return nil }
	defer func() { SendMail = utils.SendMail }()

	require.NoError(t, EnqueueEmail(db, "email_unknown", map[string]string{"to": "x@example.com"}))

	ProcessOutbox(db)

	var event models.OutboxEvent
	require.NoError(t, db.First(&event).Error)
	require.Equal(t, 1, event.Attempts)
	require.NotEmpty(t, event.LastError)
}
