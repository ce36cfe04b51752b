package appointment

import "github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// Grafo de transições. completed, cancelled e no_show são terminais.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

func IsValid(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrConflict("invalid_state")
}

// RequiresDeletionReason: excluir um agendamento confirmado ou concluído
// exige motivo e gera registro de auditoria; pendente não.
func RequiresDeletionReason(s Status) bool {
	return s == StatusConfirmed || s == StatusCompleted
}

// InitialStatus para agendamentos vindos do canal conversacional.
func InitialStatus() Status {
	return StatusPending
}
