package client

import (
	"context"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/client"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
)

type fakeRepo struct {
	clients    []models.Client
	courtesies map[string]int

	createErr error
	updateErr error
	nextID    uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{courtesies: map[string]int{}, nextID: 500}
}

func (r *fakeRepo) FindByPhone(_ context.Context, unitID uint, phone string) (*models.Client, error) {
	for i := range r.clients {
		if r.clients[i].UnitID == unitID && r.clients[i].Phone == phone {
			out := r.clients[i]
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindByName(_ context.Context, unitID uint, name, birthDate string) (*models.Client, error) {
	for i := range r.clients {
		c := r.clients[i]
		if c.UnitID != unitID || !strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			continue
		}
		if birthDate != "" && c.BirthDate != birthDate {
			continue
		}
		out := c
		return &out, nil
	}
	return nil, nil
}

func (r *fakeRepo) Create(_ context.Context, c *models.Client) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	c.ID = r.nextID
	r.clients = append(r.clients, *c)
	return nil
}

func (r *fakeRepo) Update(_ context.Context, c *models.Client) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for i := range r.clients {
		if r.clients[i].ID == c.ID {
			r.clients[i] = *c
			return nil
		}
	}
	return httperr.ErrNotFound("client_not_found")
}

func (r *fakeRepo) RegisterVisit(_ context.Context, clientID uint, at time.Time) error {
	for i := range r.clients {
		if r.clients[i].ID == clientID {
			r.clients[i].TotalVisits++
			r.clients[i].LastVisitAt = &at
		}
	}
	return nil
}

func (r *fakeRepo) CourtesiesByPhone(_ context.Context, _ uint, phone string) (int, error) {
	return r.courtesies[phone], nil
}

func (r *fakeRepo) UseCourtesy(_ context.Context, _ uint, phone string) error {
	if r.courtesies[phone] <= 0 {
		return httperr.ErrConflict("no_courtesies_available")
	}
	r.courtesies[phone]--
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

type noopSink struct{}

func (noopSink) Log(uint, *uint, string, string, *uint, any) error { return nil }
