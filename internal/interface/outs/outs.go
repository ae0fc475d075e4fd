package outs

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"

	"persoole/internal/domain"
)

// MultiSender routes direct replies to the messenger registered for the message's platform.
type MultiSender struct {
	mu      sync.RWMutex
	senders map[domain.Platform]domain.DirectMessenger
}

func NewMultiSender() *MultiSender {
	return &MultiSender{
		senders: make(map[domain.Platform]domain.DirectMessenger),
	}
}

func (m *MultiSender) Register(platform domain.Platform, sender domain.DirectMessenger) {
	if m == nil || sender == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.senders[platform] = sender
}

func (m *MultiSender) Unregister(platform domain.Platform) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.senders, platform)
}

func (m *MultiSender) SendDirect(ctx context.Context, platform domain.Platform, userID string, reply domain.Reply) error {
	sender, err := m.lookup(platform)
	if err != nil {
		return err
	}
	return sender.SendDirect(ctx, platform, userID, reply)
}

func (m *MultiSender) TriggerTyping(ctx context.Context, platform domain.Platform, userID string) error {
	sender, err := m.lookup(platform)
	if err != nil {
		return err
	}
	return sender.TriggerTyping(ctx, platform, userID)
}

func (m *MultiSender) lookup(platform domain.Platform) (domain.DirectMessenger, error) {
	if m == nil {
		return nil, errors.New("outs: no multi sender configured")
	}
	m.mu.RLock()
	sender, ok := m.senders[platform]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.Newf("outs: no sender registered for platform %s", platform)
	}
	return sender, nil
}
