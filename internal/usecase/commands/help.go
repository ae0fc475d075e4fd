package commands

import (
	"context"
	"iter"

	"persoole/internal/domain"
	"persoole/internal/usecase/colour"
	"persoole/internal/usecase/pacing"
	"persoole/internal/usecase/roles"
)

// HelpCommand answers "help", "help colours|colors" and "help roles".
type HelpCommand struct {
	seq  *pacing.Sequencer
	auth *roles.Authorizer
}

func NewHelpCommand(seq *pacing.Sequencer, auth *roles.Authorizer) *HelpCommand {
	return &HelpCommand{
		seq:  seq,
		auth: auth,
	}
}

func (c *HelpCommand) Kinds() []Kind {
	return []Kind{KindHelpOverview, KindHelpColours, KindHelpRoles, KindHelpInvalid}
}

func (c *HelpCommand) Handle(ctx context.Context, cmdCtx *Context) error {
	switch cmdCtx.Command.Kind {
	case KindHelpOverview:
		return cmdCtx.ReplyText(ctx, Usage)
	case KindHelpColours:
		return c.seq.Run(ctx, cmdCtx.Message, colourSteps())
	case KindHelpRoles:
		return c.seq.Run(ctx, cmdCtx.Message, c.roleSteps(ctx, cmdCtx.Message.UserID))
	default:
		return cmdCtx.ReplyText(ctx, InvalidOption)
	}
}

func colourSteps() iter.Seq[domain.Reply] {
	return func(yield func(domain.Reply) bool) {
		for _, named := range colour.Table() {
			step := domain.Reply{
				Content: ColourStepQuote,
				Embed: &domain.Embed{
					Author:      named.Name,
					Description: HexPrefix + colour.Hex(named.Value),
					Colour:      named.Value,
				},
			}
			if !yield(step) {
				return
			}
		}
	}
}

func (c *HelpCommand) roleSteps(ctx context.Context, userID string) iter.Seq[domain.Reply] {
	return func(yield func(domain.Reply) bool) {
		for pr := range c.auth.PersonalRoles(ctx, userID) {
			step := domain.Reply{
				Content: "> " + pr.Role.ID,
				Embed: &domain.Embed{
					Author:      RoleStepAuthor,
					Title:       pr.Role.Name,
					Description: HexPrefix + colour.Hex(pr.Role.Colour),
					Footer:      pr.Guild.Name,
					Colour:      pr.Role.Colour,
				},
			}
			if !yield(step) {
				return
			}
		}
	}
}
