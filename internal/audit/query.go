package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type Filter struct {
	Action string
	Entity string
	UserID string
	From   *time.Time
	To     *time.Time // exclusive
	Page   int
	Limit  int
}

// List returns one page of audit entries, newest first, plus the total
// matching the filter.
func (l *Logger) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	// user_id is a uuid column: a malformed id matches nothing.
	if f.UserID != "" && uuid.Validate(f.UserID) != nil {
		return []models.AuditLog{}, 0, nil
	}

	q := l.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
