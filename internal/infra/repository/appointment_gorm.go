package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Leitura
// --------------------------------------------------

func (r *AppointmentGormRepository) FindByID(
	ctx context.Context,
	id string,
) (*domain.Appointment, error) {

	if !ValidID(id) {
		return nil, nil
	}

	var m models.Appointment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || isInvalidText(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ap := toDomainAppointment(m)
	return &ap, nil
}

func (r *AppointmentGormRepository) FindByProfessionalAndDate(
	ctx context.Context,
	professionalID string,
	date time.Time,
) ([]domain.Appointment, error) {

	var rows []models.Appointment
	if err := r.scheduledForDay(r.db.WithContext(ctx), professionalID, date).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Appointment, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainAppointment(m))
	}
	return out, nil
}

func (r *AppointmentGormRepository) scheduledForDay(
	q *gorm.DB,
	professionalID string,
	date time.Time,
) *gorm.DB {
	return q.
		Where(
			"professional_id = ? AND date = ? AND status = ?",
			professionalID,
			domain.DateOnly(date),
			string(domain.StatusScheduled),
		).
		Order("start_minute ASC")
}

// --------------------------------------------------
// Conflito
// --------------------------------------------------

func (r *AppointmentGormRepository) HasConflict(
	ctx context.Context,
	professionalID string,
	date time.Time,
	startTime string,
	endTime string,
) (bool, error) {
	return hasConflict(r.db.WithContext(ctx), professionalID, date, startTime, endTime)
}

func hasConflict(
	q *gorm.DB,
	professionalID string,
	date time.Time,
	startTime string,
	endTime string,
) (bool, error) {

	start, err := domain.Minutes(startTime)
	if err != nil {
		return false, err
	}
	end, err := domain.Minutes(endTime)
	if err != nil {
		return false, err
	}

	var count int64
	if err := q.
		Model(&models.Appointment{}).
		Where(
			"professional_id = ? AND date = ? AND status = ? AND start_minute < ? AND end_minute > ?",
			professionalID,
			domain.DateOnly(date),
			string(domain.StatusScheduled),
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Escrita
// --------------------------------------------------

// Create re-checks the overlap inside a transaction that holds an advisory
// lock on the professional's day, so concurrent API instances serialise here
// even without Redis.
func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *domain.Appointment,
) (*domain.Appointment, error) {

	m, err := fromDomainAppointment(ap)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(?))",
			domain.LockKey(ap.ProfessionalID, ap.Date),
		).Error; err != nil {
			return fmt.Errorf("advisory lock: %w", err)
		}

		conflict, err := hasConflict(tx, ap.ProfessionalID, ap.Date, ap.StartTime, ap.EndTime)
		if err != nil {
			return err
		}
		if conflict {
			return domain.ErrSlotTaken
		}

		return tx.Create(&m).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) || isExclusionConflict(err) {
			return nil, domain.ErrSlotTaken
		}
		return nil, err
	}

	created := toDomainAppointment(m)
	return &created, nil
}

// Update only writes while the row still has status from.
func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	ap *domain.Appointment,
	from domain.Status,
) (*domain.Appointment, error) {

	if !ap.Status.Valid() {
		return nil, fmt.Errorf("unknown appointment status %q", ap.Status)
	}

	updates := map[string]any{
		"status":        string(ap.Status),
		"cancel_reason": ap.CancelReason,
		"updated_at":    ap.UpdatedAt,
	}
	switch ap.Status {
	case domain.StatusCancelled:
		updates["cancelled_at"] = ap.UpdatedAt
	case domain.StatusCompleted:
		updates["completed_at"] = ap.UpdatedAt
	}

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, string(from)).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrStaleStatus
	}

	out := *ap
	return &out, nil
}

// --------------------------------------------------
// Listagens
// --------------------------------------------------

func (r *AppointmentGormRepository) ListByClient(
	ctx context.Context,
	clientID string,
) ([]models.Appointment, error) {
	return r.listWithNames(ctx, "client_id = ?", clientID)
}

func (r *AppointmentGormRepository) ListByProfessional(
	ctx context.Context,
	professionalID string,
) ([]models.Appointment, error) {
	return r.listWithNames(ctx, "professional_id = ?", professionalID)
}

func (r *AppointmentGormRepository) listWithNames(
	ctx context.Context,
	where string,
	arg any,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Client").
		Preload("Professional").
		Where(where, arg).
		Order("date DESC").
		Order("start_minute DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// ListAgenda returns the professional's SCHEDULED appointments for the day
// with client and service preloaded.
func (r *AppointmentGormRepository) ListAgenda(
	ctx context.Context,
	professionalID string,
	date time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.scheduledForDay(
		r.db.WithContext(ctx).Preload("Service").Preload("Client"),
		professionalID,
		date,
	).Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// ListEndedScheduled returns SCHEDULED appointments whose end is at or
// before now, read as naive wall-clock time.
func (r *AppointmentGormRepository) ListEndedScheduled(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]domain.Appointment, error) {

	today := domain.DateOnly(now)
	minute := now.Hour()*60 + now.Minute()

	var rows []models.Appointment
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.StatusScheduled)).
		Where("(date < ? OR (date = ? AND end_minute <= ?))", today, today, minute).
		Order("date ASC").
		Order("end_minute ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Appointment, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainAppointment(m))
	}
	return out, nil
}

// ListDueReminders returns SCHEDULED appointments starting in [from, to),
// read as naive wall-clock time, that were not reminded yet.
func (r *AppointmentGormRepository) ListDueReminders(
	ctx context.Context,
	from time.Time,
	to time.Time,
	limit int,
) ([]domain.Appointment, error) {

	fromDay, fromMin := domain.DateOnly(from), from.Hour()*60+from.Minute()
	toDay, toMin := domain.DateOnly(to), to.Hour()*60+to.Minute()

	var rows []models.Appointment
	err := r.db.WithContext(ctx).
		Where("status = ? AND reminded_at IS NULL", string(domain.StatusScheduled)).
		Where("(date > ? OR (date = ? AND start_minute >= ?))", fromDay, fromDay, fromMin).
		Where("(date < ? OR (date = ? AND start_minute < ?))", toDay, toDay, toMin).
		Order("date ASC").
		Order("start_minute ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Appointment, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainAppointment(m))
	}
	return out, nil
}

// MarkReminded claims the reminder for id. It reports false when another
// worker already claimed it.
func (r *AppointmentGormRepository) MarkReminded(ctx context.Context, id string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND reminded_at IS NULL", id).
		Update("reminded_at", at)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Compile-time check
var _ domain.AppointmentStore = (*AppointmentGormRepository)(nil)
