package fidelity

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/audit"
)

// O incremento de cortesias é feito por um trigger externo ao concluir a
// visita, de forma assíncrona em relação a este código. A checagem é uma
// releitura após um atraso curto: melhor esforço, não garantia.
const DefaultRecheckDelay = 1500 * time.Millisecond

type CourtesyReader interface {
	CourtesiesByPhone(ctx context.Context, unitID uint, phone string) (int, error)
}

type Checker struct {
	clients CourtesyReader
	audit   *audit.Dispatcher
	logger  *zap.Logger
	delay   time.Duration
}

func NewChecker(clients CourtesyReader, auditor *audit.Dispatcher, logger *zap.Logger) *Checker {
	return &Checker{
		clients: clients,
		audit:   auditor,
		logger:  logger,
		delay:   DefaultRecheckDelay,
	}
}

// WithDelay é usado em teste para não dormir 1.5s.
func (c *Checker) WithDelay(d time.Duration) *Checker {
	c.delay = d
	return c
}

// CheckCycleAsync dispara a verificação de ciclo de fidelidade em segundo
// plano. Nunca bloqueia nem falha a operação que a disparou.
func (c *Checker) CheckCycleAsync(unitID uint, appointmentID uint, phone string, courtesiesBefore int) {
	if phone == "" {
		return
	}

	go func() {
		time.Sleep(c.delay)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		current, err := c.clients.CourtesiesByPhone(ctx, unitID, phone)
		if err != nil {
			c.logger.Debug("fidelity recheck failed",
				zap.Uint("unit_id", unitID),
				zap.Error(err),
			)
			return
		}

		if current <= courtesiesBefore {
			return
		}

		c.logger.Info("fidelity cycle completed",
			zap.Uint("unit_id", unitID),
			zap.String("phone", phone),
			zap.Int("courtesies", current),
		)

		c.audit.Dispatch(audit.Event{
			UnitID:   unitID,
			Action:   "fidelity_cycle_completed",
			Entity:   "appointment",
			EntityID: &appointmentID,
			Metadata: map[string]any{
				"phone":             phone,
				"courtesies_before": courtesiesBefore,
				"courtesies_after":  current,
			},
		})
	}()
}
