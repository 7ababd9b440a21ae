package models

import "time"

type ConversationStatus string

const (
	ConversationOpen      ConversationStatus = "open"
	ConversationWaiting   ConversationStatus = "waiting"
	ConversationClosed    ConversationStatus = "closed"
	ConversationEscalated ConversationStatus = "escalated"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank orders priorities for triage, urgent highest.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	case PriorityNormal:
		return 1
	}
	return 0
}

// Conversation is the unified per-patient thread. ClosedAt is stamped on every
// transition to closed and is never cleared.
type Conversation struct {
	ID            uint64             `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID     uint64             `gorm:"index;not null" json:"patientId"`
	AttendantID   *uint64            `gorm:"index" json:"attendantId"`
	ChannelID     uint64             `gorm:"not null" json:"channelId"`
	Status        ConversationStatus `gorm:"type:varchar(16);index;not null;default:open" json:"status"`
	Priority      Priority           `gorm:"type:varchar(16);not null;default:normal" json:"priority"`
	Subject       *string            `gorm:"type:varchar(255)" json:"subject"`
	LastMessageAt time.Time          `gorm:"index;not null" json:"lastMessageAt"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	ClosedAt      *time.Time         `json:"closedAt"`
}

func (Conversation) TableName() string { return "conversations" }

type SenderType string

const (
	SenderPatient   SenderType = "patient"
	SenderAttendant SenderType = "attendant"
	SenderSystem    SenderType = "system"
)

// SenderTypeFor derives the sender type from the role held at send time.
func SenderTypeFor(role Role) SenderType {
	if role.IsStaff() {
		return SenderAttendant
	}
	return SenderPatient
}

type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
	MessageFile  MessageType = "file"
	MessageAudio MessageType = "audio"
	MessageVideo MessageType = "video"
)

type Message struct {
	ID             uint64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uint64      `gorm:"not null;index:idx_msg_conversation_created,priority:1" json:"conversationId"`
	SenderID       uint64      `gorm:"not null" json:"senderId"`
	SenderType     SenderType  `gorm:"type:varchar(16);not null" json:"senderType"`
	Content        string      `gorm:"type:text;not null" json:"content"`
	MessageType    MessageType `gorm:"type:varchar(16);not null;default:text" json:"messageType"`
	AttachmentURL  *string     `gorm:"column:attachment_url;type:text" json:"attachmentUrl"`
	IsRead         bool        `gorm:"not null;default:false" json:"isRead"`
	CreatedAt      time.Time   `gorm:"index:idx_msg_conversation_created,priority:2" json:"createdAt"`
}

func (Message) TableName() string { return "messages" }

type ConversationNote struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uint64    `gorm:"index;not null" json:"conversationId"`
	AttendantID    uint64    `gorm:"not null" json:"attendantId"`
	Note           string    `gorm:"type:text;not null" json:"note"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (ConversationNote) TableName() string { return "conversation_notes" }
