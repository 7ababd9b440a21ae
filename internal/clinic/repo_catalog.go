package clinic

import (
	"context"
	"time"

	"github.com/suPer8Hu/clinic-inbox/internal/models"
	"gorm.io/gorm/clause"
)

// ListActiveChannels returns channels flagged active.
func (r *Repo) ListActiveChannels(ctx context.Context) ([]models.Channel, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return []models.Channel{}, nil
	}
	return list[models.Channel](db.Where("is_active = ?", true).Order("id ASC"))
}

func (r *Repo) GetChannelByID(ctx context.Context, id uint64) (*models.Channel, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return nil, nil
	}
	return first[models.Channel](db.Where("id = ?", id))
}

func (r *Repo) CreateChannel(ctx context.Context, c *models.Channel) error {
	db, err := r.writer(ctx)
	if err != nil {
		return err
	}
	c.IsActive = true
	return db.Create(c).Error
}

// ListQuickReplies returns active templates grouped by category, then title.
func (r *Repo) ListQuickReplies(ctx context.Context) ([]models.QuickReply, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return []models.QuickReply{}, nil
	}
	return list[models.QuickReply](db.
		Where("is_active = ?", true).
		Order("category ASC").
		Order("title ASC"))
}

func (r *Repo) ListQuickRepliesByCategory(ctx context.Context, category string) ([]models.QuickReply, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return []models.QuickReply{}, nil
	}
	return list[models.QuickReply](db.
		Where("is_active = ? AND category = ?", true, category).
		Order("title ASC"))
}

func (r *Repo) CreateQuickReply(ctx context.Context, q *models.QuickReply) error {
	db, err := r.writer(ctx)
	if err != nil {
		return err
	}
	q.IsActive = true
	return db.Create(q).Error
}

// ListAppointmentsByPatient returns a patient's appointments, latest first.
func (r *Repo) ListAppointmentsByPatient(ctx context.Context, patientID uint64) ([]models.Appointment, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return []models.Appointment{}, nil
	}
	return list[models.Appointment](db.
		Where("patient_id = ?", patientID).
		Order("scheduled_at DESC"))
}

// ListUpcomingAppointments returns scheduled appointments at or after now, soonest first.
func (r *Repo) ListUpcomingAppointments(ctx context.Context, now time.Time) ([]models.Appointment, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return []models.Appointment{}, nil
	}
	return list[models.Appointment](db.
		Where("scheduled_at >= ? AND status = ?", now.UTC(), models.AppointmentScheduled).
		Order("scheduled_at ASC"))
}

func (r *Repo) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	db, err := r.writer(ctx)
	if err != nil {
		return err
	}
	a.ScheduledAt = a.ScheduledAt.UTC()
	if a.Status == "" {
		a.Status = models.AppointmentScheduled
	}
	return db.Create(a).Error
}

func (r *Repo) UpdateAppointmentStatus(ctx context.Context, id uint64, status models.AppointmentStatus) error {
	db, err := r.writer(ctx)
	if err != nil {
		return err
	}
	return db.Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ListAppointmentsDueForReminder returns scheduled or confirmed appointments in
// [from, to] whose reminder has not gone out.
func (r *Repo) ListAppointmentsDueForReminder(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return []models.Appointment{}, nil
	}
	return list[models.Appointment](db.
		Where("scheduled_at >= ? AND scheduled_at <= ?", from.UTC(), to.UTC()).
		Where("status IN ?", []models.AppointmentStatus{models.AppointmentScheduled, models.AppointmentConfirmed}).
		Where("reminder_sent = ?", false).
		Order("scheduled_at ASC"))
}

func (r *Repo) MarkReminderSent(ctx context.Context, id uint64) error {
	db, err := r.writer(ctx)
	if err != nil {
		return err
	}
	return db.Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("reminder_sent", true).Error
}

// ListAttendantMetrics returns one attendant's snapshots dated within [start, end], latest first.
func (r *Repo) ListAttendantMetrics(ctx context.Context, attendantID uint64, start, end time.Time) ([]models.AttendantMetric, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return []models.AttendantMetric{}, nil
	}
	return list[models.AttendantMetric](db.
		Where("attendant_id = ?", attendantID).
		Where("date >= ? AND date <= ?", start.UTC(), end.UTC()).
		Order("date DESC"))
}

func (r *Repo) ListAllMetrics(ctx context.Context, start, end time.Time) ([]models.AttendantMetric, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return []models.AttendantMetric{}, nil
	}
	return list[models.AttendantMetric](db.
		Where("date >= ? AND date <= ?", start.UTC(), end.UTC()).
		Order("date DESC").
		Order("attendant_id ASC"))
}

// UpsertAttendantMetric writes the counters of m for (attendant, date). The
// satisfaction score is owned by the survey collector and is not overwritten.
func (r *Repo) UpsertAttendantMetric(ctx context.Context, m *models.AttendantMetric) error {
	db, err := r.writer(ctx)
	if err != nil {
		return err
	}
	m.Date = m.Date.UTC()
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "attendant_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_conversations",
			"closed_conversations",
			"avg_response_time",
			"avg_resolution_time",
		}),
	}).Create(m).Error
}
