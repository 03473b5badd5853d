package appointment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/clock"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/events"
)

type EndedFinder interface {
	ListEndedScheduled(ctx context.Context, now time.Time, limit int) ([]domain.Appointment, error)
}

type AutoCompleterConfig struct {
	Interval  time.Duration
	BatchSize int
}

// AutoCompleter periodically completes SCHEDULED appointments whose end has
// passed.
type AutoCompleter struct {
	manager   *domain.Manager
	finder    EndedFinder
	effects   Effects
	clock     clock.Clock
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

func NewAutoCompleter(
	manager *domain.Manager,
	finder EndedFinder,
	effects Effects,
	cfg AutoCompleterConfig,
) *AutoCompleter {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &AutoCompleter{
		manager:   manager,
		finder:    finder,
		effects:   effects,
		clock:     effects.Clock,
		logger:    effects.Logger,
		interval:  cfg.Interval,
		batchSize: cfg.BatchSize,
	}
}

func (w *AutoCompleter) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := w.RunOnce(ctx)
			if err != nil {
				w.logger.Error("auto-complete batch failed", "err", err)
				continue
			}
			if n > 0 {
				w.logger.Info("auto-completed appointments", "count", n)
			}
		}
	}
}

// RunOnce completes one batch and returns how many transitions it made.
func (w *AutoCompleter) RunOnce(ctx context.Context) (int, error) {
	due, err := w.finder.ListEndedScheduled(ctx, w.clock.Now(), w.batchSize)
	if err != nil {
		return 0, err
	}

	done := 0
	for _, candidate := range due {
		ap, err := w.manager.Complete(ctx, candidate.ID)
		if err != nil {
			// cancelled or completed in the meantime
			if errors.Is(err, domain.ErrInvalidState) || errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return done, err
		}
		done++
		w.effects.audit("", audit.ActionAppointmentCompleted, ap.ID, map[string]any{"auto": true})
		w.effects.publish(ctx, events.TypeAppointmentCompleted, ap)
	}
	return done, nil
}
