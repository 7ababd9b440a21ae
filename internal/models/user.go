package models

import "time"

type Role string

const (
	RolePatient   Role = "patient"
	RoleAttendant Role = "attendant"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleAttendant, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role answers conversations (attendant tier).
func (r Role) IsStaff() bool {
	return r == RoleAttendant || r == RoleManager || r == RoleAdmin
}

type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	OpenID       string    `gorm:"column:open_id;type:varchar(64);uniqueIndex;not null" json:"openId"`
	Name         *string   `gorm:"type:text" json:"name"`
	Email        *string   `gorm:"type:varchar(320)" json:"email"`
	LoginMethod  *string   `gorm:"type:varchar(64)" json:"loginMethod"`
	Role         Role      `gorm:"type:varchar(16);not null;default:patient" json:"role"`
	Phone        *string   `gorm:"type:varchar(20)" json:"phone"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LastSignedIn time.Time `json:"lastSignedIn"`
}

func (User) TableName() string { return "users" }

type Patient struct {
	ID               uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           uint64     `gorm:"uniqueIndex;not null" json:"userId"`
	CPF              *string    `gorm:"column:cpf;type:varchar(14)" json:"cpf"`
	BirthDate        *time.Time `json:"birthDate"`
	Address          *string    `gorm:"type:text" json:"address"`
	PreferredChannel *string    `gorm:"type:varchar(50)" json:"preferredChannel"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func (Patient) TableName() string { return "patients" }

type AttendantStatus string

const (
	AttendantAvailable AttendantStatus = "available"
	AttendantBusy      AttendantStatus = "busy"
	AttendantOffline   AttendantStatus = "offline"
)

// Attendant load counters are informational; nothing in this service adjusts them.
type Attendant struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint64          `gorm:"uniqueIndex;not null" json:"userId"`
	Status      AttendantStatus `gorm:"type:varchar(16);index;not null;default:offline" json:"status"`
	CurrentLoad int             `gorm:"not null;default:0" json:"currentLoad"`
	MaxLoad     int             `gorm:"not null;default:5" json:"maxLoad"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (Attendant) TableName() string { return "attendants" }
