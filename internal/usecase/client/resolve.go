package client

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/client"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/validators"
)

// Tag aplicada a todo cadastro criado pelo canal conversacional sem tags
// explícitas.
var defaultTags = []string{"Novo"}

// ======================================================
// INPUT / OUTPUT
// ======================================================

type ResolveInput struct {
	UnitID uint
	Name   string

	// Aceito em qualquer formato; vazio quando o cliente não informou.
	Phone string

	BirthDate string
	Notes     string
	Tags      []string
}

type ResolveResult struct {
	Client  *models.Client
	Created bool
}

// ======================================================
// USE CASE
// ======================================================

// Resolve localiza ou cria o cadastro do cliente de forma idempotente.
// Com telefone a chave é (unit_id, phone) e o merge só aceita campos que
// trazem informação nova. Sem telefone o casamento é por nome (e data de
// nascimento, se houver) e falha de cadastro não bloqueia o agendamento.
type Resolve struct {
	repo   domain.Repository
	logger *zap.Logger
}

func NewResolve(repo domain.Repository, logger *zap.Logger) *Resolve {
	return &Resolve{repo: repo, logger: logger}
}

func (uc *Resolve) Execute(
	ctx context.Context,
	in ResolveInput,
) (*ResolveResult, error) {

	// A chave de idempotência é o telefone em dígitos: "(11) 98765-4321"
	// do painel e "11987654321" do bot apontam para o mesmo cadastro.
	in.Phone = validators.NormalizePhone(in.Phone)

	if in.Phone != "" {
		return uc.resolveByPhone(ctx, in)
	}
	return uc.resolveByName(ctx, in)
}

// Tag padrão só em cadastro novo; merge em cadastro existente usa apenas
// as tags realmente enviadas.
func creationTags(tags []string) []string {
	if len(tags) == 0 {
		return defaultTags
	}
	return tags
}

func (uc *Resolve) resolveByPhone(
	ctx context.Context,
	in ResolveInput,
) (*ResolveResult, error) {

	existing, err := uc.repo.FindByPhone(ctx, in.UnitID, in.Phone)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if domain.MergeInformative(existing, in.BirthDate, in.Notes, in.Tags) {
			if err := uc.repo.Update(ctx, existing); err != nil {
				// Merge é oportunista: devolve o cadastro como estava.
				uc.logger.Warn("client merge update failed",
					zap.Uint("client_id", existing.ID),
					zap.Error(err),
				)
			}
		}
		return &ResolveResult{Client: existing, Created: false}, nil
	}

	created := &models.Client{
		ExternalID: uuid.NewString(),
		UnitID:     in.UnitID,
		Name:       in.Name,
		Phone:      in.Phone,
		BirthDate:  in.BirthDate,
		Notes:      in.Notes,
		Tags:       creationTags(in.Tags),
	}
	if err := uc.repo.Create(ctx, created); err != nil {
		return nil, err
	}
	return &ResolveResult{Client: created, Created: true}, nil
}

func (uc *Resolve) resolveByName(
	ctx context.Context,
	in ResolveInput,
) (*ResolveResult, error) {

	existing, err := uc.repo.FindByName(ctx, in.UnitID, in.Name, in.BirthDate)
	if err == nil && existing != nil {
		return &ResolveResult{Client: existing, Created: false}, nil
	}
	if err != nil {
		uc.logger.Warn("client lookup by name failed", zap.Error(err))
	}

	created := &models.Client{
		ExternalID: uuid.NewString(),
		UnitID:     in.UnitID,
		Name:       in.Name,
		BirthDate:  in.BirthDate,
		Notes:      in.Notes,
		Tags:       creationTags(in.Tags),
	}
	if err := uc.repo.Create(ctx, created); err != nil {
		// Sem telefone o cadastro é melhor esforço: o agendamento segue.
		uc.logger.Warn("client create without phone failed", zap.Error(err))
		return &ResolveResult{}, nil
	}
	return &ResolveResult{Client: created, Created: true}, nil
}
