package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment) error {
	if err := CanTransition(Status(ap.Status), StatusConfirmed); err != nil {
		return err
	}
	ap.Status = string(StatusConfirmed)
	return nil
}

func Complete(ap *models.Appointment, now time.Time, paymentMethod string) error {
	if err := CanTransition(Status(ap.Status), StatusCompleted); err != nil {
		return err
	}
	ap.Status = string(StatusCompleted)
	ap.PaymentMethod = paymentMethod
	ap.CompletedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusCancelled); err != nil {
		return err
	}
	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func MarkNoShow(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusNoShow); err != nil {
		return err
	}
	ap.Status = string(StatusNoShow)
	ap.CancelledAt = &now
	return nil
}

// ValidateDeletion aplica a regra de exclusão: confirmado/concluído só sai
// com motivo não vazio (espaços não contam).
func ValidateDeletion(ap *models.Appointment, reason string) error {
	if RequiresDeletionReason(Status(ap.Status)) && strings.TrimSpace(reason) == "" {
		return httperr.ErrInvalidInput("deletion_reason_required")
	}
	return nil
}
