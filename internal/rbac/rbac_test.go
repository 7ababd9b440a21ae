package rbac

import (
	"errors"
	"testing"

	"github.com/suPer8Hu/clinic-inbox/internal/common"
	"github.com/suPer8Hu/clinic-inbox/internal/models"
)

func user(role models.Role) *models.User {
	return &models.User{ID: 1, OpenID: "u-" + string(role), Role: role}
}

func deniedMessage(t *testing.T, err error) string {
	t.Helper()
	var denied *common.AccessDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected access denied, got %v", err)
	}
	return denied.Message
}

func TestCheck_PatientDeniedAboveAuthenticated(t *testing.T) {
	for op, tier := range Permissions {
		err := Check(op, user(models.RolePatient))
		switch tier {
		case TierPublic, TierAuthenticated:
			if err != nil {
				t.Fatalf("%s: patient should pass, got %v", op, err)
			}
		case TierAttendant:
			if msg := deniedMessage(t, err); msg != "Access restricted to attendants" {
				t.Fatalf("%s: unexpected message %q", op, msg)
			}
		case TierManager:
			if msg := deniedMessage(t, err); msg != "Access restricted to managers" {
				t.Fatalf("%s: unexpected message %q", op, msg)
			}
		}
	}
}

func TestCheck_AttendantTier(t *testing.T) {
	for op, tier := range Permissions {
		err := Check(op, user(models.RoleAttendant))
		if tier == TierManager {
			if msg := deniedMessage(t, err); msg != "Access restricted to managers" {
				t.Fatalf("%s: unexpected message %q", op, msg)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: attendant should pass, got %v", op, err)
		}
	}
}

func TestCheck_ManagerAndAdminPassEverything(t *testing.T) {
	for _, role := range []models.Role{models.RoleManager, models.RoleAdmin} {
		for op := range Permissions {
			if err := Check(op, user(role)); err != nil {
				t.Fatalf("%s as %s: %v", op, role, err)
			}
		}
	}
}

func TestCheck_UnauthenticatedBeforeRole(t *testing.T) {
	for op, tier := range Permissions {
		err := Check(op, nil)
		if tier == TierPublic {
			if err != nil {
				t.Fatalf("%s: public op should pass anonymous caller, got %v", op, err)
			}
			continue
		}
		if !errors.Is(err, common.ErrUnauthenticated) {
			t.Fatalf("%s: expected unauthenticated, got %v", op, err)
		}
	}
}

func TestCheck_UnknownOperation(t *testing.T) {
	err := Check("conversations.delete", user(models.RoleAdmin))
	var denied *common.AccessDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected unknown op to be denied, got %v", err)
	}
}

func TestPermissions_Tiers(t *testing.T) {
	want := map[string]Tier{
		UsersGetAll:                 TierManager,
		PatientsGetMyProfile:        TierAuthenticated,
		PatientsGetAll:              TierAttendant,
		AttendantsGetAll:            TierManager,
		AttendantsUpdateStatus:      TierAttendant,
		ChannelsCreate:              TierManager,
		ConversationsGetAll:         TierAttendant,
		ConversationsGetOpen:        TierAttendant,
		ConversationsCreate:         TierAuthenticated,
		ConversationsUpdateStatus:   TierAttendant,
		ConversationsAssign:         TierManager,
		MessagesSend:                TierAuthenticated,
		QuickRepliesCreate:          TierManager,
		AppointmentsGetUpcoming:     TierAttendant,
		MetricsGetDashboardStats:    TierManager,
		NotesCreate:                 TierAttendant,
		ConversationsGetByAttendant: TierAttendant,
	}
	for op, tier := range want {
		if got, ok := Permissions[op]; !ok || got != tier {
			t.Fatalf("%s: got %s want %s", op, got, tier)
		}
	}
}
