package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-scheduler/internal/clock"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

const (
	TypeAppointmentCreated   = "APPOINTMENT_CREATED"
	TypeAppointmentCancelled = "APPOINTMENT_CANCELLED"
	TypeAppointmentReminder  = "APPOINTMENT_REMINDER"
)

type Repository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByProfessional(ctx context.Context, professionalID string, unreadOnly bool) ([]models.Notification, error)
	FindByID(ctx context.Context, id string) (*models.Notification, error)
	MarkRead(ctx context.Context, id string, at time.Time) error
}

// ======================================================
// NOTIFIER
// ======================================================

// Notifier records a notification for the professional assigned to an
// appointment.
type Notifier struct {
	repo  Repository
	clock clock.Clock
}

func NewNotifier(repo Repository, clk clock.Clock) *Notifier {
	return &Notifier{repo: repo, clock: clk}
}

func (n *Notifier) AppointmentCreated(ctx context.Context, ap *domain.Appointment) error {
	return n.record(ctx, ap, TypeAppointmentCreated,
		fmt.Sprintf("Novo agendamento em %s às %s.", ap.Date.Format("02/01/2006"), ap.StartTime))
}

func (n *Notifier) AppointmentCancelled(ctx context.Context, ap *domain.Appointment) error {
	return n.record(ctx, ap, TypeAppointmentCancelled,
		fmt.Sprintf("Agendamento de %s às %s cancelado: %s", ap.Date.Format("02/01/2006"), ap.StartTime, ap.CancelReason))
}

func (n *Notifier) AppointmentReminder(ctx context.Context, ap *domain.Appointment) error {
	return n.record(ctx, ap, TypeAppointmentReminder,
		fmt.Sprintf("Lembrete: agendamento em %s às %s.", ap.Date.Format("02/01/2006"), ap.StartTime))
}

func (n *Notifier) record(ctx context.Context, ap *domain.Appointment, typ, msg string) error {
	return n.repo.Create(ctx, &models.Notification{
		ID:             uuid.NewString(),
		ProfessionalID: ap.ProfessionalID,
		AppointmentID:  ap.ID,
		Type:           typ,
		Message:        msg,
		CreatedAt:      n.clock.Now(),
	})
}

// ======================================================
// LIST
// ======================================================

type ListNotifications struct {
	repo Repository
}

func NewListNotifications(repo Repository) *ListNotifications {
	return &ListNotifications{repo: repo}
}

func (uc *ListNotifications) Execute(
	ctx context.Context,
	professionalID string,
	unreadOnly bool,
) ([]models.Notification, error) {
	return uc.repo.ListByProfessional(ctx, professionalID, unreadOnly)
}

// ======================================================
// MARK AS READ
// ======================================================

type MarkNotificationRead struct {
	repo  Repository
	clock clock.Clock
}

func NewMarkNotificationRead(repo Repository, clk clock.Clock) *MarkNotificationRead {
	return &MarkNotificationRead{repo: repo, clock: clk}
}

// Execute is idempotent: marking an already-read notification succeeds.
func (uc *MarkNotificationRead) Execute(
	ctx context.Context,
	professionalID string,
	notificationID string,
) (*models.Notification, error) {

	n, err := uc.repo.FindByID(ctx, notificationID)
	if err != nil {
		return nil, fmt.Errorf("find notification: %w", err)
	}
	if n == nil {
		return nil, domain.NewError(domain.KindNotFound, "notification_not_found")
	}
	if n.ProfessionalID != professionalID {
		return nil, domain.NewError(domain.KindPermission, "not_notification_owner")
	}
	if n.Read {
		return n, nil
	}

	now := uc.clock.Now()
	if err := uc.repo.MarkRead(ctx, n.ID, now); err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}

	n.Read = true
	n.ReadAt = &now
	return n, nil
}
