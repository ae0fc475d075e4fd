package notifications

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"persoole/internal/app/events"
)

// EventLogger writes one audit line per bus event.
type EventLogger struct {
	bus    *events.Bus
	logger *slog.Logger
	now    func() time.Time
}

func NewEventLogger(bus *events.Bus, logger *slog.Logger) *EventLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventLogger{
		bus:    bus,
		logger: logger.With("component", "audit"),
		now:    time.Now,
	}
}

// Run consumes chat and role edit events until ctx ends or the bus closes.
func (l *EventLogger) Run(ctx context.Context) {
	chats, unsubChats := l.bus.Subscribe(events.TopicChatMessage)
	defer unsubChats()
	edits, unsubEdits := l.bus.Subscribe(events.TopicRoleEdit)
	defer unsubEdits()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); l.drain(ctx, chats) }()
	go func() { defer wg.Done(); l.drain(ctx, edits) }()
	wg.Wait()
}

func (l *EventLogger) drain(ctx context.Context, ch <-chan any) {
	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-ch:
			if !ok {
				return
			}
			l.log(ctx, payload)
		}
	}
}

func (l *EventLogger) log(ctx context.Context, payload any) {
	received := l.now().UTC().Format(time.RFC3339Nano)
	switch p := payload.(type) {
	case events.ChatMessageDTO:
		l.logger.InfoContext(ctx, "direct message",
			"received_at", received,
			"user_id", p.UserID,
			"username", p.Username,
			"message_id", p.MessageID,
		)
	case events.RoleEditDTO:
		attrs := []any{
			"received_at", received,
			"user_id", p.UserID,
			"guild_id", p.GuildID,
			"role_id", p.RoleID,
			"colour", p.Colour,
			"outcome", p.Outcome,
		}
		if p.Name != nil {
			attrs = append(attrs, "name", *p.Name)
		}
		l.logger.InfoContext(ctx, "role edit", attrs...)
	default:
		l.logger.DebugContext(ctx, "unknown event", "payload", payload)
	}
}
