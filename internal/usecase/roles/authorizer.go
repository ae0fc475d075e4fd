// Package roles decides which roles a member may manage through the bot.
package roles

import (
	"context"
	"iter"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"persoole/internal/domain"
)

// PersonalRole is a role that passed IsPersonalRole, with the guild it lives in.
type PersonalRole struct {
	Guild domain.Guild
	Role  *domain.Role
}

type Authorizer struct {
	dir domain.GuildDirectory
}

func NewAuthorizer(dir domain.GuildDirectory) *Authorizer {
	return &Authorizer{dir: dir}
}

// IsPersonalRole is true iff the role is held by exactly userID and sits
// strictly below the bot's top role.
func IsPersonalRole(role *domain.Role, userID string, botTopPosition int) bool {
	if role == nil || role.IsDefault() {
		return false
	}
	if len(role.HolderIDs) != 1 || role.HolderIDs[0] != userID {
		return false
	}
	return role.Position < botTopPosition
}

// Authorize resolves the bot's top role in the role's guild and applies IsPersonalRole.
func (a *Authorizer) Authorize(ctx context.Context, role *domain.Role, userID string) (bool, error) {
	if role == nil {
		return false, nil
	}
	top, err := a.dir.BotTopRolePosition(ctx, role.GuildID)
	if err != nil {
		return false, errors.Wrapf(err, "roles: bot top role in guild %s", role.GuildID)
	}
	return IsPersonalRole(role, userID, top), nil
}

// ResolveRoleByID searches every guild for the role. Ids are assumed unique
// across guilds; on a collision the first guild listed wins.
func (a *Authorizer) ResolveRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	guilds, err := a.dir.Guilds(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "roles: list guilds")
	}

	for _, g := range guilds {
		role, err := a.dir.Role(ctx, g.ID, roleID)
		if err != nil {
			slog.WarnContext(ctx, "roles: role lookup failed", "guild_id", g.ID, "role_id", roleID, "error", err)
			continue
		}
		if role != nil {
			return role, nil
		}
	}
	return nil, nil
}

// PersonalRoles walks every guild the user shares with the bot and yields the
// user's personal roles, lowest first. Guilds are queried as the caller pulls,
// so an abandoned iteration stops issuing lookups.
func (a *Authorizer) PersonalRoles(ctx context.Context, userID string) iter.Seq[PersonalRole] {
	return func(yield func(PersonalRole) bool) {
		guilds, err := a.dir.Guilds(ctx)
		if err != nil {
			slog.WarnContext(ctx, "roles: list guilds failed", "error", err)
			return
		}

		for _, g := range guilds {
			member, err := a.dir.Member(ctx, g.ID, userID)
			if err != nil {
				slog.WarnContext(ctx, "roles: member lookup failed", "guild_id", g.ID, "error", err)
				continue
			}
			if member == nil {
				continue
			}

			top, err := a.dir.BotTopRolePosition(ctx, g.ID)
			if err != nil {
				slog.WarnContext(ctx, "roles: bot top role failed", "guild_id", g.ID, "error", err)
				continue
			}

			owned := lo.Filter(member.Roles, func(r *domain.Role, _ int) bool {
				return IsPersonalRole(r, userID, top)
			})
			for _, r := range owned {
				if !yield(PersonalRole{Guild: g, Role: r}) {
					return
				}
			}
		}
	}
}
