package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusNoShow},
	}
	for _, tc := range allowed {
		assert.NoError(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusCompleted},
		{StatusPending, StatusNoShow},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusConfirmed},
		{StatusNoShow, StatusPending},
		{StatusCompleted, StatusCompleted},
	}
	for _, tc := range denied {
		err := CanTransition(tc.from, tc.to)
		require.Error(t, err, "%s -> %s", tc.from, tc.to)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusConfirmed))
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusNoShow))
}

func TestCompleteSetsPaymentAndTimestamp(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusConfirmed)}
	now := time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)

	require.NoError(t, Complete(ap, now, "pix"))

	assert.Equal(t, string(StatusCompleted), ap.Status)
	assert.Equal(t, "pix", ap.PaymentMethod)
	require.NotNil(t, ap.CompletedAt)
	assert.Equal(t, now, *ap.CompletedAt)
}

func TestCancelFromPendingAndConfirmed(t *testing.T) {
	now := time.Now().UTC()

	for _, from := range []Status{StatusPending, StatusConfirmed} {
		ap := &models.Appointment{Status: string(from)}
		require.NoError(t, Cancel(ap, now))
		assert.Equal(t, string(StatusCancelled), ap.Status)
		require.NotNil(t, ap.CancelledAt)
	}

	done := &models.Appointment{Status: string(StatusCompleted)}
	assert.Error(t, Cancel(done, now))
}

func TestValidateDeletion(t *testing.T) {
	pending := &models.Appointment{Status: string(StatusPending)}
	assert.NoError(t, ValidateDeletion(pending, ""))

	confirmed := &models.Appointment{Status: string(StatusConfirmed)}
	err := ValidateDeletion(confirmed, "   ")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "deletion_reason_required"))

	assert.NoError(t, ValidateDeletion(confirmed, "cliente remarcou"))

	completed := &models.Appointment{Status: string(StatusCompleted)}
	assert.Error(t, ValidateDeletion(completed, ""))
}
