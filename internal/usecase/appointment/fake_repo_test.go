package appointment

import (
	"context"
	"sort"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/barbersoft-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/models"
	"github.com/BruksfildServices01/barbersoft-agenda/internal/notify"
)

// fakeRepo reproduz em memória a semântica do repositório gorm: filtro de
// ativos, casamento de nome por substring sem caixa e exclusão dos status
// que não bloqueiam horário.
type fakeRepo struct {
	unit          models.Unit
	barbers       []models.Barber
	services      []models.Service
	appointments  []models.Appointment
	cancellations []models.CancellationHistory

	createErr error
	nextID    uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		unit: models.Unit{
			ID:          1,
			Name:        "Unidade Centro",
			Slug:        "centro",
			Timezone:    "America/Sao_Paulo",
			OpeningHour: 8,
			ClosingHour: 21,
		},
		nextID: 100,
	}
}

func blocking(status string) bool {
	return status != string(domain.StatusCancelled) && status != string(domain.StatusNoShow)
}

func nameMatches(name, filter string) bool {
	return strings.Contains(
		strings.ToLower(name),
		strings.ToLower(strings.TrimSpace(filter)),
	)
}

func (r *fakeRepo) GetUnitByID(_ context.Context, id uint) (*models.Unit, error) {
	if id != r.unit.ID {
		return nil, httperr.ErrNotFound("unit_not_found")
	}
	u := r.unit
	return &u, nil
}

func (r *fakeRepo) GetUnitByInstanceName(_ context.Context, instanceName string) (*models.Unit, error) {
	if r.unit.InstanceName != instanceName {
		return nil, httperr.ErrNotFound("unit_not_found")
	}
	u := r.unit
	return &u, nil
}

func (r *fakeRepo) ListActiveBarbers(_ context.Context, unitID uint, nameFilter string) ([]models.Barber, error) {
	var out []models.Barber
	for _, b := range r.barbers {
		if b.UnitID != unitID || !b.IsActive {
			continue
		}
		if nameFilter != "" && !nameMatches(b.Name, nameFilter) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeRepo) FindActiveBarberByName(ctx context.Context, unitID uint, name string) (*models.Barber, error) {
	barbers, _ := r.ListActiveBarbers(ctx, unitID, name)
	if len(barbers) == 0 {
		return nil, nil
	}
	return &barbers[0], nil
}

func (r *fakeRepo) GetBarber(_ context.Context, unitID, barberID uint) (*models.Barber, error) {
	for _, b := range r.barbers {
		if b.ID == barberID && b.UnitID == unitID {
			out := b
			return &out, nil
		}
	}
	return nil, httperr.ErrNotFound("barber_not_found")
}

func (r *fakeRepo) ListActiveServices(_ context.Context, unitID uint) ([]models.Service, error) {
	var out []models.Service
	for _, s := range r.services {
		if s.UnitID == unitID && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindActiveServiceByName(_ context.Context, unitID uint, name string) (*models.Service, error) {
	for _, s := range r.services {
		if s.UnitID == unitID && s.IsActive && nameMatches(s.Name, name) {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) GetService(_ context.Context, unitID, serviceID uint) (*models.Service, error) {
	for _, s := range r.services {
		if s.ID == serviceID && s.UnitID == unitID {
			out := s
			return &out, nil
		}
	}
	return nil, httperr.ErrNotFound("service_not_found")
}

func (r *fakeRepo) ListAppointmentsBetween(_ context.Context, unitID uint, window domain.TimeRange) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.UnitID != unitID || !blocking(ap.Status) {
			continue
		}
		if ap.StartTime.Before(window.Start) || ap.StartTime.After(window.End) {
			continue
		}
		out = append(out, ap)
	}
	return out, nil
}

func (r *fakeRepo) ListBarberConflicts(_ context.Context, unitID, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.UnitID != unitID || ap.BarberID != barberID || !blocking(ap.Status) {
			continue
		}
		if domain.Overlaps(start, end, ap.StartTime, ap.EndTime) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, unitID, appointmentID uint) (*models.Appointment, error) {
	for i := range r.appointments {
		ap := r.appointments[i]
		if ap.ID == appointmentID && ap.UnitID == unitID {
			r.attach(&ap)
			return &ap, nil
		}
	}
	return nil, httperr.ErrNotFound("appointment_not_found")
}

func (r *fakeRepo) FindCancellableByPhone(
	_ context.Context,
	unitID uint,
	phone string,
	window *domain.TimeRange,
	nowUTC time.Time,
) (*models.Appointment, error) {

	var candidates []models.Appointment
	for _, ap := range r.appointments {
		if ap.UnitID != unitID || ap.ClientPhone != phone {
			continue
		}
		if ap.Status != string(domain.StatusPending) && ap.Status != string(domain.StatusConfirmed) {
			continue
		}
		if window != nil {
			if ap.StartTime.Before(window.Start) || ap.StartTime.After(window.End) {
				continue
			}
		} else if ap.StartTime.Before(nowUTC) {
			continue
		}
		candidates = append(candidates, ap)
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].StartTime.Equal(candidates[j].StartTime) {
			return candidates[i].StartTime.Before(candidates[j].StartTime)
		}
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})

	out := candidates[0]
	r.attach(&out)
	return &out, nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, unitID, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.UnitID != unitID {
			continue
		}
		if barberID != 0 && ap.BarberID != barberID {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		r.attach(&ap)
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeRepo) CreateAppointmentChecked(ctx context.Context, ap *models.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}

	conflicts, _ := r.ListBarberConflicts(ctx, ap.UnitID, ap.BarberID, ap.StartTime, ap.EndTime)
	if len(conflicts) > 0 {
		return httperr.ErrConflict("time_conflict")
	}

	r.nextID++
	ap.ID = r.nextID
	if ap.CreatedAt.IsZero() {
		ap.CreatedAt = time.Now().UTC()
	}
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range r.appointments {
		if r.appointments[i].ID == ap.ID {
			r.appointments[i] = *ap
			return nil
		}
	}
	return httperr.ErrNotFound("appointment_not_found")
}

func (r *fakeRepo) DeleteAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range r.appointments {
		if r.appointments[i].ID == ap.ID {
			r.appointments = append(r.appointments[:i], r.appointments[i+1:]...)
			return nil
		}
	}
	return httperr.ErrNotFound("appointment_not_found")
}

func (r *fakeRepo) RecordCancellation(_ context.Context, rec *models.CancellationHistory) error {
	r.cancellations = append(r.cancellations, *rec)
	return nil
}

// attach preenche as associações que o repositório real resolve via Preload.
func (r *fakeRepo) attach(ap *models.Appointment) {
	for _, b := range r.barbers {
		if b.ID == ap.BarberID {
			ap.Barber = b
		}
	}
	for _, s := range r.services {
		if s.ID == ap.ServiceID {
			ap.Service = s
		}
	}
}

var _ domain.Repository = (*fakeRepo)(nil)

// --------------------------------------------------
// Fakes auxiliares
// --------------------------------------------------

type fakeClientRepo struct {
	clients    []models.Client
	courtesies map[string]int
	visits     map[uint]int
	createErr  error
	nextID     uint
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{
		courtesies: map[string]int{},
		visits:     map[uint]int{},
		nextID:     500,
	}
}

func (r *fakeClientRepo) FindByPhone(_ context.Context, unitID uint, phone string) (*models.Client, error) {
	for i := range r.clients {
		if r.clients[i].UnitID == unitID && r.clients[i].Phone == phone {
			out := r.clients[i]
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) FindByName(_ context.Context, unitID uint, name, birthDate string) (*models.Client, error) {
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

func (r *fakeClientRepo) Create(_ context.Context, c *models.Client) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	c.ID = r.nextID
	r.clients = append(r.clients, *c)
	return nil
}

func (r *fakeClientRepo) Update(_ context.Context, c *models.Client) error {
	for i := range r.clients {
		if r.clients[i].ID == c.ID {
			r.clients[i] = *c
			return nil
		}
	}
	return httperr.ErrNotFound("client_not_found")
}

func (r *fakeClientRepo) RegisterVisit(_ context.Context, clientID uint, at time.Time) error {
	r.visits[clientID]++
	for i := range r.clients {
		if r.clients[i].ID == clientID {
			r.clients[i].TotalVisits++
			r.clients[i].LastVisitAt = &at
		}
	}
	return nil
}

func (r *fakeClientRepo) CourtesiesByPhone(_ context.Context, _ uint, phone string) (int, error) {
	return r.courtesies[phone], nil
}

func (r *fakeClientRepo) UseCourtesy(_ context.Context, _ uint, phone string) error {
	if r.courtesies[phone] <= 0 {
		return httperr.ErrConflict("no_courtesies_available")
	}
	r.courtesies[phone]--
	return nil
}

type noopSink struct{}

func (noopSink) Log(uint, *uint, string, string, *uint, any) error { return nil }

type fakeNotifier struct {
	sent []notify.ConfirmationInput
}

func (f *fakeNotifier) SendConfirmationAsync(in notify.ConfirmationInput) {
	f.sent = append(f.sent, in)
}
