package models

import "time"

type QuickReply struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"type:varchar(100);not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Category  *string   `gorm:"type:varchar(50);index" json:"category"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedBy uint64    `gorm:"not null" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (QuickReply) TableName() string { return "quick_replies" }

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

type Appointment struct {
	ID           uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID    uint64            `gorm:"index;not null" json:"patientId"`
	DoctorName   string            `gorm:"type:varchar(255);not null" json:"doctorName"`
	Specialty    *string           `gorm:"type:varchar(100)" json:"specialty"`
	ScheduledAt  time.Time         `gorm:"index;not null" json:"scheduledAt"`
	Status       AppointmentStatus `gorm:"type:varchar(16);index;not null;default:scheduled" json:"status"`
	Notes        *string           `gorm:"type:text" json:"notes"`
	ReminderSent bool              `gorm:"not null;default:false" json:"reminderSent"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func (Appointment) TableName() string { return "appointments" }

// AttendantMetric is a daily performance snapshot. Times are in seconds,
// SatisfactionScore is 0-100.
type AttendantMetric struct {
	ID                  uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	AttendantID         uint64    `gorm:"not null;uniqueIndex:uniq_metric_attendant_date,priority:1" json:"attendantId"`
	Date                time.Time `gorm:"not null;uniqueIndex:uniq_metric_attendant_date,priority:2" json:"date"`
	TotalConversations  int       `gorm:"not null;default:0" json:"totalConversations"`
	ClosedConversations int       `gorm:"not null;default:0" json:"closedConversations"`
	AvgResponseTime     int       `gorm:"not null;default:0" json:"avgResponseTime"`
	AvgResolutionTime   int       `gorm:"not null;default:0" json:"avgResolutionTime"`
	SatisfactionScore   int       `gorm:"not null;default:0" json:"satisfactionScore"`
	CreatedAt           time.Time `json:"createdAt"`
}

func (AttendantMetric) TableName() string { return "attendant_metrics" }

// All lists every table for migrations.
func All() []any {
	return []any{
		&User{}, &Patient{}, &Attendant{}, &Channel{}, &Conversation{}, &Message{},
		&QuickReply{}, &Appointment{}, &AttendantMetric{}, &ConversationNote{},
	}
}
