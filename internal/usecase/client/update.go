package client

import (
	"context"

	"github.com/BruksfildServices01/barbersoft-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/client"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/validators"
)

type UpdateInput struct {
	UnitID uint

	// Chave de busca do cadastro.
	Phone string

	Name      string
	NewPhone  string
	BirthDate string

	// NotesSet distingue "não enviado" de "enviado vazio" (limpa o campo).
	Notes    string
	NotesSet bool

	Tags []string
}

type UpdateResult struct {
	Client        *models.Client
	UpdatedFields []string
}

// Update altera o cadastro localizado pelo telefone atual. Só toca nos
// campos enviados e devolve a lista do que mudou.
type Update struct {
	repo    domain.Repository
	auditor *audit.Dispatcher
}

func NewUpdate(repo domain.Repository, auditor *audit.Dispatcher) *Update {
	return &Update{repo: repo, auditor: auditor}
}

func (uc *Update) Execute(
	ctx context.Context,
	in UpdateInput,
) (*UpdateResult, error) {

	if in.Phone == "" {
		return nil, httperr.ErrInvalidInput("client_phone_required")
	}

	c, err := uc.repo.FindByPhone(ctx, in.UnitID, in.Phone)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, httperr.ErrNotFound("client_not_found")
	}

	var updated []string

	if in.Name != "" && in.Name != c.Name {
		c.Name = in.Name
		updated = append(updated, "name")
	}

	if in.NewPhone != "" && in.NewPhone != c.Phone {
		if !validators.IsPlausiblePhone(in.NewPhone) {
			return nil, httperr.ErrInvalidInput("invalid_phone")
		}
		inUse, err := uc.repo.FindByPhone(ctx, in.UnitID, in.NewPhone)
		if err != nil {
			return nil, err
		}
		if inUse != nil {
			return nil, httperr.ErrConflict("phone_in_use")
		}
		c.Phone = in.NewPhone
		updated = append(updated, "phone")
	}

	if in.BirthDate != "" && in.BirthDate != c.BirthDate {
		c.BirthDate = in.BirthDate
		updated = append(updated, "birth_date")
	}

	if in.NotesSet && in.Notes != c.Notes {
		c.Notes = in.Notes
		updated = append(updated, "notes")
	}

	if len(in.Tags) > 0 {
		c.Tags = in.Tags
		updated = append(updated, "tags")
	}

	if len(updated) == 0 {
		return &UpdateResult{Client: c, UpdatedFields: []string{}}, nil
	}

	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	uc.auditor.Dispatch(audit.Event{
		UnitID:   in.UnitID,
		Action:   "client_updated",
		Entity:   "client",
		EntityID: &c.ID,
		Metadata: map[string]any{"updated_fields": updated},
	})

	return &UpdateResult{Client: c, UpdatedFields: updated}, nil
}
