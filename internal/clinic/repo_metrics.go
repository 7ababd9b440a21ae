package clinic

import (
	"context"
	"time"

	"github.com/suPer8Hu/clinic-inbox/internal/models"
)

// ListAssignedActiveSince returns the attendant's conversations with a message at or after since.
func (r *Repo) ListAssignedActiveSince(ctx context.Context, attendantID uint64, since time.Time) ([]models.Conversation, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return []models.Conversation{}, nil
	}
	return list[models.Conversation](db.
		Where("attendant_id = ? AND last_message_at >= ?", attendantID, since.UTC()).
		Order("id ASC"))
}

// ListAssignedClosedBetween returns the attendant's conversations closed within [start, end).
func (r *Repo) ListAssignedClosedBetween(ctx context.Context, attendantID uint64, start, end time.Time) ([]models.Conversation, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return []models.Conversation{}, nil
	}
	return list[models.Conversation](db.
		Where("attendant_id = ? AND status = ?", attendantID, models.ConversationClosed).
		Where("closed_at >= ? AND closed_at < ?", start.UTC(), end.UTC()).
		Order("id ASC"))
}

// ListMessagesByConversations returns the messages of several conversations,
// grouped by conversation and chronological within each.
func (r *Repo) ListMessagesByConversations(ctx context.Context, conversationIDs []uint64) ([]models.Message, error) {
	db, ok := r.reader(ctx)
	if !ok || len(conversationIDs) == 0 {
		return []models.Message{}, nil
	}
	return list[models.Message](db.
		Where("conversation_id IN ?", conversationIDs).
		Order("conversation_id ASC").
		Order("created_at ASC").
		Order("id ASC"))
}
