package appointment

import (
	"context"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/clock"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
)

type ReminderStore interface {
	ListDueReminders(ctx context.Context, from, to time.Time, limit int) ([]domain.Appointment, error)
	MarkReminded(ctx context.Context, id string, at time.Time) (bool, error)
}

type ReminderNotifier interface {
	AppointmentReminder(ctx context.Context, ap *domain.Appointment) error
}

type ReminderConfig struct {
	Interval  time.Duration
	LeadTime  time.Duration
	BatchSize int
}

// Reminder notifies the assigned professional once per SCHEDULED
// appointment starting within the lead time.
type Reminder struct {
	store     ReminderStore
	notifier  ReminderNotifier
	clock     clock.Clock
	logger    *slog.Logger
	interval  time.Duration
	leadTime  time.Duration
	batchSize int
}

func NewReminder(
	store ReminderStore,
	notifier ReminderNotifier,
	effects Effects,
	cfg ReminderConfig,
) *Reminder {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	if cfg.LeadTime <= 0 {
		cfg.LeadTime = 24 * time.Hour
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &Reminder{
		store:     store,
		notifier:  notifier,
		clock:     effects.Clock,
		logger:    effects.Logger,
		interval:  cfg.Interval,
		leadTime:  cfg.LeadTime,
		batchSize: cfg.BatchSize,
	}
}

func (w *Reminder) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := w.RunOnce(ctx)
			if err != nil {
				w.logger.Error("reminder batch failed", "err", err)
				continue
			}
			if n > 0 {
				w.logger.Info("appointment reminders sent", "count", n)
			}
		}
	}
}

// RunOnce sends one batch of reminders and returns how many it recorded.
// The claim comes first, so a reminder is sent at most once even with
// several workers.
func (w *Reminder) RunOnce(ctx context.Context) (int, error) {
	now := w.clock.Now()
	due, err := w.store.ListDueReminders(ctx, now, now.Add(w.leadTime), w.batchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range due {
		ap := &due[i]
		claimed, err := w.store.MarkReminded(ctx, ap.ID, now)
		if err != nil {
			return sent, err
		}
		if !claimed {
			continue
		}
		if err := w.notifier.AppointmentReminder(ctx, ap); err != nil {
			w.logger.Error("reminder notification failed", "appointment_id", ap.ID, "err", err)
			continue
		}
		sent++
	}
	return sent, nil
}
