package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-scheduler/internal/clock"
)

type CreateInput struct {
	ServiceID string
	ClientID  string
	Date      time.Time
	StartTime string
}

type CancelInput struct {
	AppointmentID    string
	RequestingUserID string
	Reason           string
}

// Manager owns the state machine of a single appointment:
// create -> SCHEDULED -> CANCELLED | COMPLETED.
type Manager struct {
	services ServiceLookup
	users    UserLookup
	store    AppointmentStore

	clock    clock.Clock
	locker   Locker
	assigner Assigner
	policy   Policy
	newID    func() string
}

type Option func(*Manager)

func WithLocker(l Locker) Option     { return func(m *Manager) { m.locker = l } }
func WithAssigner(a Assigner) Option { return func(m *Manager) { m.assigner = a } }
func WithPolicy(p Policy) Option     { return func(m *Manager) { m.policy = p } }

func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) { m.newID = fn }
}

func NewManager(
	services ServiceLookup,
	users UserLookup,
	store AppointmentStore,
	clk clock.Clock,
	opts ...Option,
) *Manager {
	m := &Manager{
		services: services,
		users:    users,
		store:    store,
		clock:    clk,
		locker:   NewKeyedMutex(),
		assigner: FirstFit{},
		policy:   DefaultPolicy(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ======================================================
// CREATE
// ======================================================

func (m *Manager) Create(ctx context.Context, in CreateInput) (*Appointment, error) {

	svc, err := loadBookableService(ctx, m.services, in.ServiceID)
	if err != nil {
		return nil, err
	}

	client, err := m.users.FindUserByID(ctx, in.ClientID)
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	if client == nil {
		return nil, notFound("client_not_found")
	}
	if !client.IsClient() {
		return nil, permission("not_a_client")
	}

	start, err := ParseClock(in.StartTime)
	if err != nil {
		return nil, validation("invalid_start_time")
	}
	end := start + svc.DurationMin

	professionals, err := m.users.ListProfessionals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list professionals: %w", err)
	}
	if len(professionals) == 0 {
		return nil, noAvailability("no_professionals")
	}

	// Outside the window no professional can take it.
	if !m.policy.Fits(start, end) {
		return nil, noAvailability("no_availability")
	}

	now := m.clock.Now()
	req := Request{
		ServiceID: svc.ID,
		Date:      DateOnly(in.Date),
		StartTime: FormatClock(start),
		EndTime:   FormatClock(end),
	}

	for _, p := range m.assigner.Order(ctx, professionals, req) {
		ap := &Appointment{
			ID:             m.newID(),
			ServiceID:      svc.ID,
			ClientID:       client.ID,
			ProfessionalID: p.ID,
			Date:           req.Date,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			Status:         InitialStatus(),
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		created, err := m.tryBook(ctx, ap)
		if errors.Is(err, ErrSlotTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return created, nil
	}

	return nil, noAvailability("no_availability")
}

// tryBook holds the professional+date lock across the conflict check and
// the insert.
func (m *Manager) tryBook(ctx context.Context, ap *Appointment) (*Appointment, error) {
	unlock, err := m.locker.Lock(ctx, LockKey(ap.ProfessionalID, ap.Date))
	if err != nil {
		return nil, fmt.Errorf("lock schedule: %w", err)
	}
	defer unlock()

	conflict, err := m.store.HasConflict(ctx, ap.ProfessionalID, ap.Date, ap.StartTime, ap.EndTime)
	if err != nil {
		return nil, fmt.Errorf("check conflict: %w", err)
	}
	if conflict {
		return nil, ErrSlotTaken
	}

	created, err := m.store.Create(ctx, ap)
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return created, nil
}

// ======================================================
// CANCEL
// ======================================================

func (m *Manager) Cancel(ctx context.Context, in CancelInput) (*Appointment, error) {

	ap, err := m.store.FindByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	if ap == nil {
		return nil, notFound("appointment_not_found")
	}

	if ap.ClientID != in.RequestingUserID {
		return nil, permission("not_appointment_owner")
	}

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, validation("cancel_reason_required")
	}

	if err := Cancel(ap, reason, m.clock.Now(), m.policy.CancelLeadTime); err != nil {
		return nil, err
	}

	return m.persistTransition(ctx, ap)
}

// ======================================================
// COMPLETE
// ======================================================

func (m *Manager) Complete(ctx context.Context, appointmentID string) (*Appointment, error) {

	ap, err := m.store.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	if ap == nil {
		return nil, notFound("appointment_not_found")
	}

	if err := Complete(ap, m.clock.Now()); err != nil {
		return nil, err
	}

	return m.persistTransition(ctx, ap)
}

func (m *Manager) persistTransition(ctx context.Context, ap *Appointment) (*Appointment, error) {
	updated, err := m.store.Update(ctx, ap, StatusScheduled)
	if err != nil {
		if errors.Is(err, ErrStaleStatus) {
			return nil, invalidState("invalid_state")
		}
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return updated, nil
}
