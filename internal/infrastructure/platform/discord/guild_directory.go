// Package discord implements the guild directory on top of a discordgo session.
package discord

import (
	"context"
	"net/http"
	"slices"

	"github.com/bwmarrin/discordgo"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"persoole/internal/domain"
)

// GuildDirectory reads guilds, roles and members from the session state,
// falling back to REST for members the state has not seen.
type GuildDirectory struct {
	session *discordgo.Session
}

func NewGuildDirectory(session *discordgo.Session) *GuildDirectory {
	return &GuildDirectory{session: session}
}

func (d *GuildDirectory) Guilds(context.Context) ([]domain.Guild, error) {
	state := d.session.State
	state.RLock()
	defer state.RUnlock()

	return lo.Map(state.Guilds, func(g *discordgo.Guild, _ int) domain.Guild {
		return domain.Guild{ID: g.ID, Name: g.Name}
	}), nil
}

func (d *GuildDirectory) Role(_ context.Context, guildID, roleID string) (*domain.Role, error) {
	role, err := d.session.State.Role(guildID, roleID)
	if errors.Is(err, discordgo.ErrStateNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "discord: role %s in guild %s", roleID, guildID)
	}
	return d.toDomainRole(guildID, role), nil
}

func (d *GuildDirectory) Member(ctx context.Context, guildID, userID string) (*domain.Member, error) {
	m, err := d.member(ctx, guildID, userID)
	if err != nil || m == nil {
		return nil, err
	}

	out := &domain.Member{UserID: userID, GuildID: guildID}
	for _, id := range m.Roles {
		if id == guildID {
			continue
		}
		role, err := d.session.State.Role(guildID, id)
		if err != nil {
			continue
		}
		out.Roles = append(out.Roles, d.toDomainRole(guildID, role))
	}
	slices.SortStableFunc(out.Roles, func(a, b *domain.Role) int { return a.Position - b.Position })
	return out, nil
}

func (d *GuildDirectory) BotTopRolePosition(ctx context.Context, guildID string) (int, error) {
	botID := d.botID()
	if botID == "" {
		return 0, errors.New("discord: session not ready")
	}

	m, err := d.member(ctx, guildID, botID)
	if err != nil {
		return 0, err
	}
	if m == nil {
		return 0, errors.Newf("discord: bot is not a member of guild %s", guildID)
	}

	positions := lo.FilterMap(m.Roles, func(id string, _ int) (int, bool) {
		role, err := d.session.State.Role(guildID, id)
		if err != nil {
			return 0, false
		}
		return role.Position, true
	})
	return max(0, lo.Max(positions)), nil
}

func (d *GuildDirectory) EditRole(ctx context.Context, guildID, roleID string, edit domain.RoleEdit) error {
	colour := edit.Colour
	params := &discordgo.RoleParams{Color: &colour}
	if edit.Name != nil {
		params.Name = *edit.Name
	}

	_, err := d.session.GuildRoleEdit(guildID, roleID, params, discordgo.WithContext(ctx))
	if err != nil {
		return classifyEditError(errors.Wrapf(err, "discord: edit role %s", roleID))
	}
	return nil
}

// classifyEditError marks err with ErrPermissionDenied for 403 / missing
// permissions and ErrPlatformFailure otherwise, keeping the original cause.
func classifyEditError(err error) error {
	var rest *discordgo.RESTError
	if errors.As(err, &rest) {
		forbidden := rest.Response != nil && rest.Response.StatusCode == http.StatusForbidden
		missing := rest.Message != nil && rest.Message.Code == discordgo.ErrCodeMissingPermissions
		if forbidden || missing {
			return errors.Mark(err, domain.ErrPermissionDenied)
		}
	}
	return errors.Mark(err, domain.ErrPlatformFailure)
}

// member returns nil, nil when the user is not in the guild.
func (d *GuildDirectory) member(ctx context.Context, guildID, userID string) (*discordgo.Member, error) {
	m, err := d.session.State.Member(guildID, userID)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, discordgo.ErrStateNotFound) {
		return nil, errors.Wrapf(err, "discord: member %s in guild %s", userID, guildID)
	}

	m, err = d.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		var rest *discordgo.RESTError
		if errors.As(err, &rest) && rest.Response != nil && rest.Response.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "discord: fetch member %s in guild %s", userID, guildID)
	}
	return m, nil
}

func (d *GuildDirectory) botID() string {
	state := d.session.State
	state.RLock()
	defer state.RUnlock()
	if state.User == nil {
		return ""
	}
	return state.User.ID
}

func (d *GuildDirectory) toDomainRole(guildID string, r *discordgo.Role) *domain.Role {
	return &domain.Role{
		ID:        r.ID,
		GuildID:   guildID,
		Name:      r.Name,
		Colour:    r.Color,
		Position:  r.Position,
		HolderIDs: d.holders(guildID, r.ID),
	}
}

// holders lists the cached members carrying roleID. Large guilds are only
// complete once their member chunks have arrived.
func (d *GuildDirectory) holders(guildID, roleID string) []string {
	state := d.session.State
	state.RLock()
	defer state.RUnlock()

	g, ok := lo.Find(state.Guilds, func(g *discordgo.Guild) bool { return g.ID == guildID })
	if !ok {
		return nil
	}

	var ids []string
	for _, m := range g.Members {
		if m.User != nil && slices.Contains(m.Roles, roleID) {
			ids = append(ids, m.User.ID)
		}
	}
	return ids
}
