package commands

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"persoole/internal/domain"
)

type Router struct {
	index map[Kind]Handler
}

func NewRouter() *Router {
	return &Router{
		index: make(map[Kind]Handler),
	}
}

func (r *Router) Register(h Handler) {
	for _, k := range h.Kinds() {
		r.index[k] = h
	}
}

func (r *Router) Handle(ctx context.Context, msg domain.Message, out domain.DirectMessenger) error {
	cmd := Parse(msg.Text)

	h, ok := r.index[cmd.Kind]
	if !ok {
		return errors.Newf("commands: no handler registered for %s", cmd.Kind)
	}

	slog.DebugContext(ctx, "commands: dispatch", "kind", cmd.Kind.String())

	return h.Handle(ctx, &Context{
		Message: msg,
		Out:     out,
		Command: cmd,
	})
}
