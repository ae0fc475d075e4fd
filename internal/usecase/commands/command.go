package commands

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"

	"persoole/internal/domain"
)

type Kind int

const (
	KindHelpOverview Kind = iota
	KindHelpColours
	KindHelpRoles
	KindHelpInvalid
	KindRoleEdit
	KindRoleEditMissingColour
	KindRoleEditInvalidRole
)

func (k Kind) String() string {
	switch k {
	case KindHelpOverview:
		return "help"
	case KindHelpColours:
		return "help_colours"
	case KindHelpRoles:
		return "help_roles"
	case KindHelpInvalid:
		return "help_invalid"
	case KindRoleEdit:
		return "role_edit"
	case KindRoleEditMissingColour:
		return "role_edit_missing_colour"
	case KindRoleEditInvalidRole:
		return "role_edit_invalid_role"
	default:
		return "unknown"
	}
}

// Command is the parsed intent of one message.
type Command struct {
	Kind Kind

	RoleID      string
	ColourToken string
	// Name is nil when no name tokens follow the colour.
	Name *string
}

// Parse tokenizes on whitespace. Only the first token (and the help option)
// is case-insensitive; the colour token is lower-cased later by the resolver.
func Parse(text string) Command {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Command{Kind: KindRoleEditInvalidRole}
	}

	if strings.ToLower(fields[0]) == "help" {
		return parseHelp(fields[1:])
	}

	id, err := snowflake.ParseString(fields[0])
	if err != nil {
		return Command{Kind: KindRoleEditInvalidRole}
	}

	cmd := Command{Kind: KindRoleEdit, RoleID: id.String()}
	if len(fields) == 1 {
		cmd.Kind = KindRoleEditMissingColour
		return cmd
	}

	cmd.ColourToken = fields[1]
	if len(fields) > 2 {
		name := strings.Join(fields[2:], " ")
		cmd.Name = &name
	}
	return cmd
}

func parseHelp(args []string) Command {
	switch len(args) {
	case 0:
		return Command{Kind: KindHelpOverview}
	case 1:
		switch strings.ToLower(args[0]) {
		case "colours", "colors":
			return Command{Kind: KindHelpColours}
		case "roles":
			return Command{Kind: KindHelpRoles}
		}
	}
	return Command{Kind: KindHelpInvalid}
}

// Handler executes one or more kinds of Command.
type Handler interface {
	Kinds() []Kind
	Handle(ctx context.Context, c *Context) error
}

type Context struct {
	Message domain.Message
	Out     domain.DirectMessenger
	Command Command
}

func (c *Context) Reply(ctx context.Context, reply domain.Reply) error {
	return c.Out.SendDirect(ctx, c.Message.Platform, c.Message.UserID, reply)
}

func (c *Context) ReplyText(ctx context.Context, text string) error {
	return c.Reply(ctx, domain.TextReply(text))
}
