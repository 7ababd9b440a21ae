package clinic

import (
	"context"
	"errors"
	"time"

	"github.com/suPer8Hu/clinic-inbox/internal/models"
	"gorm.io/gorm/clause"
)

// UpsertUserInput carries the identity fields of a login. Nil fields are left
// untouched on an existing row.
type UpsertUserInput struct {
	OpenID       string
	Name         *string
	Email        *string
	LoginMethod  *string
	Phone        *string
	Role         models.Role
	LastSignedIn *time.Time
}

// UpsertUser creates the user on first login and refreshes it afterwards. The
// role only changes when given explicitly, except for the owner who becomes admin.
func (r *Repo) UpsertUser(ctx context.Context, in UpsertUserInput) (*models.User, error) {
	if in.OpenID == "" {
		return nil, errors.New("user openId is required for upsert")
	}
	if in.Role != "" && !in.Role.Valid() {
		return nil, errors.New("invalid role " + string(in.Role))
	}
	db, err := r.writer(ctx)
	if err != nil {
		return nil, err
	}

	signedIn := utcNow()
	if in.LastSignedIn != nil {
		signedIn = in.LastSignedIn.UTC()
	}

	u := models.User{
		OpenID:       in.OpenID,
		Role:         models.RolePatient,
		LastSignedIn: signedIn,
	}
	update := []string{"last_signed_in", "updated_at"}

	if in.Name != nil {
		u.Name = in.Name
		update = append(update, "name")
	}
	if in.Email != nil {
		u.Email = in.Email
		update = append(update, "email")
	}
	if in.LoginMethod != nil {
		u.LoginMethod = in.LoginMethod
		update = append(update, "login_method")
	}
	if in.Phone != nil {
		u.Phone = in.Phone
		update = append(update, "phone")
	}
	switch {
	case in.Role != "":
		u.Role = in.Role
		update = append(update, "role")
	case r.ownerOpenID != "" && in.OpenID == r.ownerOpenID:
		u.Role = models.RoleAdmin
		update = append(update, "role")
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "open_id"}},
		DoUpdates: clause.AssignmentColumns(update),
	}).Create(&u).Error; err != nil {
		return nil, err
	}
	return r.GetUserByOpenID(ctx, in.OpenID)
}

func (r *Repo) GetUserByOpenID(ctx context.Context, openID string) (*models.User, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return nil, nil
	}
	return first[models.User](db.Where("open_id = ?", openID))
}

func (r *Repo) GetUserByID(ctx context.Context, id uint64) (*models.User, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return nil, nil
	}
	return first[models.User](db.Where("id = ?", id))
}

// ListUsers returns all users, newest first.
func (r *Repo) ListUsers(ctx context.Context) ([]models.User, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return []models.User{}, nil
	}
	return list[models.User](db.Order("created_at DESC").Order("id DESC"))
}

func (r *Repo) GetPatientByUserID(ctx context.Context, userID uint64) (*models.Patient, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return nil, nil
	}
	return first[models.Patient](db.Where("user_id = ?", userID))
}

func (r *Repo) GetPatientByID(ctx context.Context, id uint64) (*models.Patient, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return nil, nil
	}
	return first[models.Patient](db.Where("id = ?", id))
}

func (r *Repo) ListPatients(ctx context.Context) ([]models.Patient, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return []models.Patient{}, nil
	}
	return list[models.Patient](db.Order("created_at DESC").Order("id DESC"))
}

func (r *Repo) CreatePatient(ctx context.Context, p *models.Patient) error {
	db, err := r.writer(ctx)
	if err != nil {
		return err
	}
	return db.Create(p).Error
}

func (r *Repo) GetAttendantByUserID(ctx context.Context, userID uint64) (*models.Attendant, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return nil, nil
	}
	return first[models.Attendant](db.Where("user_id = ?", userID))
}

func (r *Repo) ListAttendants(ctx context.Context) ([]models.Attendant, error) {
	db, ok := r.reader(ctx)
	if !ok {
		return []models.Attendant{}, nil
	}
	return list[models.Attendant](db.Order("id ASC"))
}

func (r *Repo) CreateAttendant(ctx context.Context, a *models.Attendant) error {
	db, err := r.writer(ctx)
	if err != nil {
		return err
	}
	if a.Status == "" {
		a.Status = models.AttendantOffline
	}
	if a.MaxLoad == 0 {
		a.MaxLoad = 5
	}
	return db.Create(a).Error
}

func (r *Repo) UpdateAttendantStatus(ctx context.Context, attendantID uint64, status models.AttendantStatus) error {
	db, err := r.writer(ctx)
	if err != nil {
		return err
	}
	return db.Model(&models.Attendant{}).
		Where("id = ?", attendantID).
		Update("status", status).Error
}
