// Package rbac holds the permission model: every operation maps to the minimum
// tier allowed to call it, and Check is the only place that decision is made.
package rbac

import (
	"github.com/suPer8Hu/clinic-inbox/internal/common"
	"github.com/suPer8Hu/clinic-inbox/internal/models"
)

type Tier int

const (
	TierPublic Tier = iota
	TierAuthenticated
	TierAttendant
	TierManager
)

const (
	msgAttendantsOnly = "Access restricted to attendants"
	msgManagersOnly   = "Access restricted to managers"
)

var tierRoles = map[Tier][]models.Role{
	TierAttendant: {models.RoleAttendant, models.RoleManager, models.RoleAdmin},
	TierManager:   {models.RoleManager, models.RoleAdmin},
}

func (t Tier) String() string {
	switch t {
	case TierPublic:
		return "public"
	case TierAuthenticated:
		return "authenticated"
	case TierAttendant:
		return "attendant"
	case TierManager:
		return "manager"
	}
	return "unknown"
}

// Allows reports whether role satisfies the tier. Public and authenticated tiers
// accept every role.
func (t Tier) Allows(role models.Role) bool {
	allowed, ok := tierRoles[t]
	if !ok {
		return t == TierPublic || t == TierAuthenticated
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

func (t Tier) deniedMessage() string {
	if t == TierManager {
		return msgManagersOnly
	}
	return msgAttendantsOnly
}

// Check evaluates caller against the tier required by op. A nil caller fails with
// common.ErrUnauthenticated before any role is considered.
func Check(op string, caller *models.User) error {
	tier, ok := Permissions[op]
	if !ok {
		// unknown operations are never callable
		return &common.AccessDeniedError{Message: "unknown operation " + op}
	}
	return CheckTier(tier, caller)
}

func CheckTier(tier Tier, caller *models.User) error {
	if tier == TierPublic {
		return nil
	}
	if caller == nil {
		return common.ErrUnauthenticated
	}
	if !tier.Allows(caller.Role) {
		return &common.AccessDeniedError{Message: tier.deniedMessage()}
	}
	return nil
}
