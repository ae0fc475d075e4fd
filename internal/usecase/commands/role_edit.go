package commands

import (
	"context"
	"log/slog"

	"persoole/internal/app/events"
	"persoole/internal/domain"
	"persoole/internal/usecase/colour"
	"persoole/internal/usecase/roles"
)

// Publisher receives audit events; the events.Bus satisfies it.
type Publisher interface {
	Publish(topic string, payload any)
}

// RoleEditCommand handles "<roleId> <colour> [name...]".
type RoleEditCommand struct {
	auth   *roles.Authorizer
	dir    domain.GuildDirectory
	events Publisher
}

func NewRoleEditCommand(auth *roles.Authorizer, dir domain.GuildDirectory, events Publisher) *RoleEditCommand {
	return &RoleEditCommand{
		auth:   auth,
		dir:    dir,
		events: events,
	}
}

func (c *RoleEditCommand) Kinds() []Kind {
	return []Kind{KindRoleEdit, KindRoleEditMissingColour, KindRoleEditInvalidRole}
}

func (c *RoleEditCommand) Handle(ctx context.Context, cmdCtx *Context) error {
	cmd := cmdCtx.Command
	userID := cmdCtx.Message.UserID

	if cmd.Kind == KindRoleEditInvalidRole {
		return cmdCtx.ReplyText(ctx, InvalidRoleID)
	}

	role := c.personalRole(ctx, cmd.RoleID, userID)
	if role == nil {
		return cmdCtx.ReplyText(ctx, InvalidRoleID)
	}

	if cmd.Kind == KindRoleEditMissingColour {
		return cmdCtx.ReplyText(ctx, NoColour)
	}

	value, err := colour.Resolve(cmd.ColourToken)
	if err != nil {
		return cmdCtx.ReplyText(ctx, InvalidColour)
	}

	edit := domain.RoleEdit{Colour: value, Name: cmd.Name}
	err = c.dir.EditRole(ctx, role.GuildID, role.ID, edit)
	outcome := domain.OutcomeOf(err)

	logger := slog.With("guild_id", role.GuildID, "role_id", role.ID, "outcome", outcome.String())
	if err != nil {
		logger.WarnContext(ctx, "commands: role edit rejected", "error", err)
	} else {
		logger.InfoContext(ctx, "commands: role edited", "colour", colour.Hex(value))
	}
	c.publish(cmdCtx.Message, role, edit, outcome)

	switch outcome {
	case domain.EditApplied:
		return cmdCtx.ReplyText(ctx, Confirmation)
	case domain.EditForbidden:
		return cmdCtx.ReplyText(ctx, EditForbidden)
	default:
		return cmdCtx.ReplyText(ctx, EditFailed)
	}
}

// personalRole returns the role only if it exists and the user may manage it.
// Lookup errors are logged and read as "not found".
func (c *RoleEditCommand) personalRole(ctx context.Context, roleID, userID string) *domain.Role {
	role, err := c.auth.ResolveRoleByID(ctx, roleID)
	if err != nil {
		slog.WarnContext(ctx, "commands: role lookup failed", "role_id", roleID, "error", err)
		return nil
	}
	if role == nil {
		return nil
	}

	ok, err := c.auth.Authorize(ctx, role, userID)
	if err != nil {
		slog.WarnContext(ctx, "commands: role authorization failed", "role_id", roleID, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	return role
}

func (c *RoleEditCommand) publish(msg domain.Message, role *domain.Role, edit domain.RoleEdit, outcome domain.EditOutcome) {
	if c.events == nil {
		return
	}
	c.events.Publish(events.TopicRoleEdit, events.NewRoleEditDTO(msg, role, edit, outcome))
}
