package domain

import (
	"github.com/cockroachdb/errors"
)

type Guild struct {
	ID   string
	Name string
}

type Role struct {
	ID       string
	GuildID  string
	Name     string
	Colour   int
	Position int

	// HolderIDs are the user ids of every member currently holding the role.
	HolderIDs []string
}

// IsDefault reports whether the role is the guild's implicit @everyone role,
// which shares its id with the guild.
func (r *Role) IsDefault() bool {
	return r != nil && r.ID == r.GuildID
}

type Member struct {
	UserID  string
	GuildID string
	// Roles excludes the default role and is ordered lowest position first.
	Roles []*Role
}

// RoleEdit describes a mutation; a nil Name leaves the name unchanged.
type RoleEdit struct {
	Colour int
	Name   *string
}

var (
	ErrPermissionDenied = errors.New("platform: missing permissions")
	ErrPlatformFailure  = errors.New("platform: request failed")
)

type EditOutcome int

const (
	EditApplied EditOutcome = iota
	EditForbidden
	EditFailed
)

func (o EditOutcome) String() string {
	switch o {
	case EditApplied:
		return "applied"
	case EditForbidden:
		return "forbidden"
	default:
		return "failed"
	}
}

// OutcomeOf folds an EditRole error into the closed outcome set.
func OutcomeOf(err error) EditOutcome {
	switch {
	case err == nil:
		return EditApplied
	case errors.Is(err, ErrPermissionDenied):
		return EditForbidden
	default:
		return EditFailed
	}
}
