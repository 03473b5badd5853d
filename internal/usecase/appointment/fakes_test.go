package appointment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/clock"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/events"
	"github.com/BruksfildServices01/appointment-scheduler/internal/logging"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

var (
	carla = domain.User{ID: "cli-1", Name: "Carla", Role: domain.RoleClient}
	ana   = domain.User{ID: "pro-1", Name: "Ana", Role: domain.RoleProfessional}
	bruno = domain.User{ID: "pro-2", Name: "Bruno", Role: domain.RoleProfessional}
	root  = domain.User{ID: "adm-1", Name: "Root", Role: domain.RoleAdmin}
)

type catalog map[string]*domain.Service

func (c catalog) FindServiceByID(_ context.Context, id string) (*domain.Service, error) {
	s, ok := c[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

type users []domain.User

func (u users) FindUserByID(_ context.Context, id string) (*domain.User, error) {
	for _, x := range u {
		if x.ID == id {
			cp := x
			return &cp, nil
		}
	}
	return nil, nil
}

func (u users) ListProfessionals(context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, x := range u {
		if x.IsProfessional() {
			out = append(out, x)
		}
	}
	return out, nil
}

type memStore struct {
	mu   sync.Mutex
	rows map[string]domain.Appointment
}

func newMemStore() *memStore { return &memStore{rows: map[string]domain.Appointment{}} }

func (s *memStore) FindByID(_ context.Context, id string) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ap, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	return &ap, nil
}

func (s *memStore) FindByProfessionalAndDate(_ context.Context, professionalID string, date time.Time) ([]domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Appointment
	for _, ap := range s.rows {
		if ap.ProfessionalID == professionalID && ap.Date.Equal(date) && ap.Status == domain.StatusScheduled {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (s *memStore) Create(_ context.Context, ap *domain.Appointment) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[ap.ID] = *ap
	cp := *ap
	return &cp, nil
}

func (s *memStore) Update(_ context.Context, ap *domain.Appointment, from domain.Status) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.rows[ap.ID]
	if !ok || cur.Status != from {
		return nil, domain.ErrStaleStatus
	}
	s.rows[ap.ID] = *ap
	cp := *ap
	return &cp, nil
}

func (s *memStore) HasConflict(ctx context.Context, professionalID string, date time.Time, start, end string) (bool, error) {
	aps, _ := s.FindByProfessionalAndDate(ctx, professionalID, date)
	for _, ap := range aps {
		if overlaps(start, end, ap.StartTime, ap.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) ListEndedScheduled(_ context.Context, now time.Time, limit int) ([]domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Appointment
	for _, ap := range s.rows {
		end, _ := ap.EndsAt(now.Location())
		if ap.Status == domain.StatusScheduled && !end.After(now) {
			out = append(out, ap)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) put(ap domain.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[ap.ID] = ap
}

type auditRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *auditRecorder) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *auditRecorder) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

type publisherRecorder struct {
	events []events.Event
	err    error
}

func (p *publisherRecorder) Publish(_ context.Context, ev events.Event) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *publisherRecorder) Close() error { return nil }

type notifierRecorder struct {
	created   []string
	cancelled []string
}

func (n *notifierRecorder) AppointmentCreated(_ context.Context, ap *domain.Appointment) error {
	n.created = append(n.created, ap.ProfessionalID)
	return nil
}

func (n *notifierRecorder) AppointmentCancelled(_ context.Context, ap *domain.Appointment) error {
	n.cancelled = append(n.cancelled, ap.ProfessionalID)
	return errors.New("notification store down")
}

type harness struct {
	store     *memStore
	clock     *clock.Manual
	manager   *domain.Manager
	audit     *auditRecorder
	publisher *publisherRecorder
	notifier  *notifierRecorder
	effects   Effects
}

func newHarness() *harness {
	h := &harness{
		store:     newMemStore(),
		clock:     clock.NewManual(time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)),
		audit:     &auditRecorder{},
		publisher: &publisherRecorder{},
		notifier:  &notifierRecorder{},
	}
	svc := catalog{"svc-cut": {ID: "svc-cut", Name: "Corte", DurationMin: 30, Active: true}}
	h.manager = domain.NewManager(svc, users{carla, ana, bruno, root}, h.store, h.clock)
	h.effects = Effects{
		Audit:    h.audit,
		Events:   h.publisher,
		Notifier: h.notifier,
		Clock:    h.clock,
		Logger:   logging.Discard(),
	}
	return h
}

type listerStub struct {
	byClient       []models.Appointment
	byProfessional []models.Appointment
	agendaFor      string
	agendaDate     time.Time
}

func (l *listerStub) ListByClient(context.Context, string) ([]models.Appointment, error) {
	return l.byClient, nil
}

func (l *listerStub) ListByProfessional(context.Context, string) ([]models.Appointment, error) {
	return l.byProfessional, nil
}

func (l *listerStub) ListAgenda(_ context.Context, professionalID string, date time.Time) ([]models.Appointment, error) {
	l.agendaFor, l.agendaDate = professionalID, date
	return l.byProfessional, nil
}

func overlaps(s1, e1, s2, e2 string) bool {
	a, err1 := domain.Minutes(s1)
	b, err2 := domain.Minutes(e1)
	c, err3 := domain.Minutes(s2)
	d, err4 := domain.Minutes(e2)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return true
	}
	return domain.Overlaps(a, b, c, d)
}
