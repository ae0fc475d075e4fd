// Package pacing sends multi-step replies at a human cadence and stops as soon
// as the user sends something newer.
package pacing

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"

	"persoole/internal/domain"
	"persoole/internal/usecase/conversation"
)

// Confirmation closes every completed sequence.
const Confirmation = "Done!"

// WaitFunc suspends for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

type Sequencer struct {
	out      domain.DirectMessenger
	state    *conversation.State
	interval time.Duration
	wait     WaitFunc
}

type Option func(*Sequencer)

// WithWait replaces the timer used between steps.
func WithWait(w WaitFunc) Option {
	return func(s *Sequencer) {
		if w != nil {
			s.wait = w
		}
	}
}

func NewSequencer(out domain.DirectMessenger, state *conversation.State, interval time.Duration, opts ...Option) *Sequencer {
	s := &Sequencer{
		out:      out,
		state:    state,
		interval: interval,
		wait:     sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pause shows the typing indicator, waits one interval, then returns
// conversation.ErrSuperseded if msg is no longer the user's latest message.
func (s *Sequencer) Pause(ctx context.Context, msg domain.Message) error {
	if err := s.out.TriggerTyping(ctx, msg.Platform, msg.UserID); err != nil {
		slog.WarnContext(ctx, "pacing: typing indicator failed", "error", err)
	}
	if err := s.wait(ctx, s.interval); err != nil {
		return err
	}
	return s.state.Check(msg.UserID, msg.MessageID)
}

// Run sends each step followed by a Pause, then the confirmation. It returns
// conversation.ErrSuperseded, with nothing further sent, when interrupted.
func (s *Sequencer) Run(ctx context.Context, msg domain.Message, steps iter.Seq[domain.Reply]) error {
	for step := range steps {
		if err := s.out.SendDirect(ctx, msg.Platform, msg.UserID, step); err != nil {
			return errors.Wrap(err, "pacing: send step")
		}
		if err := s.Pause(ctx, msg); err != nil {
			return err
		}
	}

	if err := s.out.SendDirect(ctx, msg.Platform, msg.UserID, domain.TextReply(Confirmation)); err != nil {
		return errors.Wrap(err, "pacing: send confirmation")
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
