package clinic

import (
	"context"

	"github.com/suPer8Hu/clinic-inbox/internal/models"
)

// priorityRank orders urgent > high > normal > low independent of the column type.
const priorityRank = "CASE priority WHEN 'urgent' THEN 3 WHEN 'high' THEN 2 WHEN 'normal' THEN 1 ELSE 0 END DESC"

func (r *Repo) GetConversationByID(ctx context.Context, id uint64) (*models.Conversation, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return nil, nil
	}
	return first[models.Conversation](db.Where("id = ?", id))
}

// ListConversations returns every conversation, most recent activity first.
func (r *Repo) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return []models.Conversation{}, nil
	}
	return list[models.Conversation](db.Order("last_message_at DESC").Order("id DESC"))
}

// ListOpenConversations returns open conversations in triage order: priority
// descending, then newest first.
func (r *Repo) ListOpenConversations(ctx context.Context) ([]models.Conversation, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return []models.Conversation{}, nil
	}
	return list[models.Conversation](db.
		Where("status = ?", models.ConversationOpen).
		Order(priorityRank).
		Order("created_at DESC").
		Order("id DESC"))
}

func (r *Repo) ListConversationsByPatient(ctx context.Context, patientID uint64) ([]models.Conversation, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return []models.Conversation{}, nil
	}
	return list[models.Conversation](db.
		Where("patient_id = ?", patientID).
		Order("last_message_at DESC").
		Order("id DESC"))
}

func (r *Repo) ListConversationsByAttendant(ctx context.Context, attendantID uint64) ([]models.Conversation, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return []models.Conversation{}, nil
	}
	return list[models.Conversation](db.
		Where("attendant_id = ?", attendantID).
		Order("last_message_at DESC").
		Order("id DESC"))
}

// CreateConversation inserts c as open with normal priority unless set. Foreign
// keys are left to the store.
func (r *Repo) CreateConversation(ctx context.Context, c *models.Conversation) error {
	db, err := r.writer(ctx)
	if err != nil {
		return err
	}
	c.Status = models.ConversationOpen
	if c.Priority == "" {
		c.Priority = models.PriorityNormal
	}
	if c.LastMessageAt.IsZero() {
		c.LastMessageAt = utcNow()
	}
	return db.Create(c).Error
}

// UpdateConversationStatus writes status; closing also stamps closed_at. Other
// statuses leave closed_at as it was.
func (r *Repo) UpdateConversationStatus(ctx context.Context, id uint64, status models.ConversationStatus) error {
	db, err := r.writer(ctx)
	if err != nil {
		return err
	}
	updates := map[string]any{"status": status}
	if status == models.ConversationClosed {
		updates["closed_at"] = utcNow()
	}
	return db.Model(&models.Conversation{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *Repo) AssignConversation(ctx context.Context, id, attendantID uint64) error {
	db, err := r.writer(ctx)
	if err != nil {
		return err
	}
	return db.Model(&models.Conversation{}).
		Where("id = ?", id).
		Update("attendant_id", attendantID).Error
}

// TouchConversation moves last_message_at to now.
func (r *Repo) TouchConversation(ctx context.Context, id uint64) error {
	db, err := r.writer(ctx)
	if err != nil {
		return err
	}
	return db.Model(&models.Conversation{}).
		Where("id = ?", id).
		Update("last_message_at", utcNow()).Error
}
