package clinic

import (
	"context"

	"github.com/suPer8Hu/clinic-inbox/internal/models"
)

// ListMessagesByConversation returns the thread in chronological order.
func (r *Repo) ListMessagesByConversation(ctx context.Context, conversationID uint64) ([]models.Message, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return []models.Message{}, nil
	}
	return list[models.Message](db.
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Order("id ASC"))
}

func (r *Repo) InsertMessage(ctx context.Context, m *models.Message) error {
	db, err := r.writer(ctx)
	if err != nil {
		return err
	}
	if m.MessageType == "" {
		m.MessageType = models.MessageText
	}
	return db.Create(m).Error
}

func (r *Repo) MarkMessagesAsRead(ctx context.Context, conversationID uint64) error {
	db, err := r.writer(ctx)
	if err != nil {
		return err
	}
	return db.Model(&models.Message{}).
		Where("conversation_id = ? AND is_read = ?", conversationID, false).
		Update("is_read", true).Error
}

func (r *Repo) CountUnreadMessages(ctx context.Context, conversationID uint64) (int64, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return 0, nil
	}
	var n int64
	if err := db.Model(&models.Message{}).
		Where("conversation_id = ? AND is_read = ?", conversationID, false).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// ListNotesByConversation returns notes most recent first.
func (r *Repo) ListNotesByConversation(ctx context.Context, conversationID uint64) ([]models.ConversationNote, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return []models.ConversationNote{}, nil
	}
	return list[models.ConversationNote](db.
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Order("id DESC"))
}

func (r *Repo) InsertNote(ctx context.Context, n *models.ConversationNote) error {
	db, err := r.writer(ctx)
	if err != nil {
		return err
	}
	return db.Create(n).Error
}
