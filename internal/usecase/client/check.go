package client

import (
	"context"

	domain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/client"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
)

type CheckResult struct {
	Found  bool
	Client *models.Client
}

// Check responde se o telefone já tem cadastro na unidade. Não encontrar
// não é erro: o bot usa a resposta para decidir entre cadastrar ou seguir.
type Check struct {
	repo domain.Repository
}

func NewCheck(repo domain.Repository) *Check {
	return &Check{repo: repo}
}

func (uc *Check) Execute(
	ctx context.Context,
	unitID uint,
	phone string,
) (*CheckResult, error) {

	if phone == "" {
		return nil, httperr.ErrInvalidInput("client_phone_required")
	}

	c, err := uc.repo.FindByPhone(ctx, unitID, phone)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return &CheckResult{Found: false}, nil
	}
	return &CheckResult{Found: true, Client: c}, nil
}
