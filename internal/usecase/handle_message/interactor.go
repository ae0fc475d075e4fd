// Package handle_message
package handle_message

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"persoole/internal/app/events"
	"persoole/internal/domain"
	"persoole/internal/infrastructure/logger"
	"persoole/internal/usecase/commands"
	"persoole/internal/usecase/conversation"
	"persoole/internal/usecase/pacing"
)

type Interactor struct {
	router *commands.Router
	out    domain.DirectMessenger
	state  *conversation.State
	seq    *pacing.Sequencer
	events commands.Publisher
}

func NewInteractor(
	out domain.DirectMessenger,
	router *commands.Router,
	state *conversation.State,
	seq *pacing.Sequencer,
	publisher commands.Publisher,
) *Interactor {
	return &Interactor{
		router: router,
		out:    out,
		state:  state,
		seq:    seq,
		events: publisher,
	}
}

// Accept filters msg and records it as the user's latest message. Only private
// messages from other users are accepted. Accept must be called in arrival
// order; the returned context carries the message's log fields and is what
// Process expects.
func (uc *Interactor) Accept(ctx context.Context, msg domain.Message) (context.Context, bool) {
	if !msg.IsPrivate || msg.IsSelf {
		return ctx, false
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		RequestID: uuid.NewString(),
		UserID:    msg.UserID,
		MessageID: msg.MessageID,
		Component: "handle_message",
	})

	uc.state.Record(msg.UserID, msg.MessageID)
	if uc.events != nil {
		uc.events.Publish(events.TopicChatMessage, events.NewChatMessageDTO(msg))
	}
	return ctx, true
}

// Process runs an accepted message: one pause, then the command. It is dropped
// silently whenever a newer message from the same user overtakes it. Process
// may run concurrently with later Accept calls.
func (uc *Interactor) Process(ctx context.Context, msg domain.Message) error {
	err := uc.seq.Pause(ctx, msg)
	if err == nil {
		err = uc.router.Handle(ctx, msg, uc.out)
	}

	if errors.Is(err, conversation.ErrSuperseded) {
		slog.DebugContext(ctx, "handle_message: superseded by a newer message")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "handle_message")
	}
	return nil
}

// Handle is Accept followed by Process on the calling goroutine.
func (uc *Interactor) Handle(ctx context.Context, msg domain.Message) error {
	ctx, ok := uc.Accept(ctx, msg)
	if !ok {
		return nil
	}
	return uc.Process(ctx, msg)
}
