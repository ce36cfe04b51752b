package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/client"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/validators"
)

type RegisterInput struct {
	UnitID    uint
	Name      string
	Phone     string
	BirthDate string
	Notes     string
	Tags      []string
}

// Register cria um cadastro explícito. Diferente do Resolve, telefone já
// em uso é erro: o chamador pediu um cadastro novo, não um merge.
type Register struct {
	repo    domain.Repository
	auditor *audit.Dispatcher
}

func NewRegister(repo domain.Repository, auditor *audit.Dispatcher) *Register {
	return &Register{repo: repo, auditor: auditor}
}

func (uc *Register) Execute(
	ctx context.Context,
	in RegisterInput,
) (*models.Client, error) {

	if in.Name == "" {
		return nil, httperr.ErrInvalidInput("client_name_required")
	}
	if in.Phone == "" {
		return nil, httperr.ErrInvalidInput("client_phone_required")
	}
	if !validators.IsPlausiblePhone(in.Phone) {
		return nil, httperr.ErrInvalidInput("invalid_phone")
	}

	existing, err := uc.repo.FindByPhone(ctx, in.UnitID, in.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperr.ErrConflict("client_already_exists")
	}

	tags := in.Tags
	if len(tags) == 0 {
		tags = defaultTags
	}

	c := &models.Client{
		ExternalID: uuid.NewString(),
		UnitID:     in.UnitID,
		Name:       in.Name,
		Phone:      in.Phone,
		BirthDate:  in.BirthDate,
		Notes:      in.Notes,
		Tags:       tags,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	uc.auditor.Dispatch(audit.Event{
		UnitID:   in.UnitID,
		Action:   "client_registered",
		Entity:   "client",
		EntityID: &c.ID,
		Metadata: map[string]any{"phone": in.Phone},
	})

	return c, nil
}
