package clinic

import (
	"context"
	"log"
	"time"

	"github.com/suPer8Hu/clinic-inbox/internal/common"
	"github.com/suPer8Hu/clinic-inbox/internal/events"
	"github.com/suPer8Hu/clinic-inbox/internal/models"
)

type Service struct {
	repo   *Repo
	events events.Publisher
	loc    *time.Location
	now    func() time.Time
}

// NewService wires the repo with an event publisher and the clinic timezone used
// for day boundaries. A nil publisher drops events, a nil location means time.Local.
func NewService(repo *Repo, pub events.Publisher, loc *time.Location) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{repo: repo, events: pub, loc: loc, now: time.Now}
}

func (s *Service) Repo() *Repo { return s.repo }

type CreateConversationInput struct {
	PatientID uint64
	ChannelID uint64
	Subject   *string
	Priority  models.Priority
}

func (s *Service) CreateConversation(ctx context.Context, in CreateConversationInput) (*models.Conversation, error) {
	c := &models.Conversation{
		PatientID: in.PatientID,
		ChannelID: in.ChannelID,
		Subject:   in.Subject,
		Priority:  in.Priority,
	}
	if err := s.repo.CreateConversation(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

type SendMessageInput struct {
	ConversationID uint64
	Content        string
	MessageType    models.MessageType
	AttachmentURL  *string
}

// SendMessage inserts the message, then moves the parent's last_message_at.
// The two writes are not atomic: a failure after the insert leaves the message
// with a stale parent timestamp and is reported to the caller.
func (s *Service) SendMessage(ctx context.Context, sender *models.User, in SendMessageInput) (*models.Message, error) {
	if sender == nil {
		return nil, common.ErrUnauthenticated
	}
	m := &models.Message{
		ConversationID: in.ConversationID,
		SenderID:       sender.ID,
		SenderType:     models.SenderTypeFor(sender.Role),
		Content:        in.Content,
		MessageType:    in.MessageType,
		AttachmentURL:  in.AttachmentURL,
	}
	if err := s.repo.InsertMessage(ctx, m); err != nil {
		return nil, err
	}
	if err := s.repo.TouchConversation(ctx, in.ConversationID); err != nil {
		return nil, err
	}

	s.emit(ctx, events.MessageSent, in.ConversationID, func(e *events.Event) {
		e.MessageID = m.ID
	})
	return m, nil
}

func (s *Service) UpdateConversationStatus(ctx context.Context, id uint64, status models.ConversationStatus) error {
	if err := s.repo.UpdateConversationStatus(ctx, id, status); err != nil {
		return err
	}
	s.emit(ctx, events.ConversationStatusChanged, id, func(e *events.Event) {
		e.Status = string(status)
	})
	return nil
}

// AssignConversation sets the owner; the event carries the previous owner so
// both daily snapshots can be rebuilt.
func (s *Service) AssignConversation(ctx context.Context, id, attendantID uint64) error {
	var previous uint64
	if conv, err := s.repo.GetConversationByID(ctx, id); err != nil {
		return err
	} else if conv != nil && conv.AttendantID != nil {
		previous = *conv.AttendantID
	}
	if err := s.repo.AssignConversation(ctx, id, attendantID); err != nil {
		return err
	}
	s.emit(ctx, events.ConversationAssigned, id, func(e *events.Event) {
		e.AttendantID = attendantID
		e.PreviousAttendantID = previous
	})
	return nil
}

// CreateNote records an internal note authored by the caller's attendant record.
// Callers without one are refused even when their role is attendant tier.
func (s *Service) CreateNote(ctx context.Context, author *models.User, conversationID uint64, note string) (*models.ConversationNote, error) {
	if author == nil {
		return nil, common.ErrUnauthenticated
	}
	if !s.repo.Available() {
		return nil, common.ErrStoreUnavailable
	}
	att, err := s.repo.GetAttendantByUserID(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	if att == nil {
		return nil, common.ErrForbidden
	}
	n := &models.ConversationNote{
		ConversationID: conversationID,
		AttendantID:    att.ID,
		Note:           note,
	}
	if err := s.repo.InsertNote(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// emit publishes after the write has succeeded; a broker failure is logged only.
func (s *Service) emit(ctx context.Context, t events.Type, conversationID uint64, fill func(*events.Event)) {
	e, err := events.New(t, conversationID)
	if err != nil {
		log.Printf("[Events] new %s failed conversation_id=%d err=%v", t, conversationID, err)
		return
	}
	if fill != nil {
		fill(&e)
	}
	if err := s.events.Publish(ctx, e); err != nil {
		log.Printf("[Events] publish %s failed conversation_id=%d event_id=%s err=%v", t, conversationID, e.ID, err)
	}
}
