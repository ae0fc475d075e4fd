// Package domaintest provides in-memory implementations of the domain ports.
package domaintest

import (
	"context"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"

	"persoole/internal/domain"
)

type Sent struct {
	Platform domain.Platform
	UserID   string
	Reply    domain.Reply
}

// Messenger records every outbound reply and typing indicator.
type Messenger struct {
	mu     sync.Mutex
	sent   []Sent
	typing []string

	SendErr error
	// OnSend runs after a reply is recorded, outside the lock.
	OnSend func(Sent)
}

func (m *Messenger) SendDirect(_ context.Context, platform domain.Platform, userID string, reply domain.Reply) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	s := Sent{Platform: platform, UserID: userID, Reply: reply}
	m.mu.Lock()
	m.sent = append(m.sent, s)
	hook := m.OnSend
	m.mu.Unlock()
	if hook != nil {
		hook(s)
	}
	return nil
}

func (m *Messenger) TriggerTyping(_ context.Context, _ domain.Platform, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.typing = append(m.typing, userID)
	return nil
}

func (m *Messenger) Sent() []Sent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.sent)
}

// Contents returns the text content of every reply, in order.
func (m *Messenger) Contents() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, s := range m.sent {
		out = append(out, s.Reply.Content)
	}
	return out
}

func (m *Messenger) TypingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.typing)
}

type Edit struct {
	GuildID string
	RoleID  string
	Edit    domain.RoleEdit
}

// Directory is a guild/role/member store built up by the test.
type Directory struct {
	mu      sync.Mutex
	guilds  []domain.Guild
	roles   map[string]map[string]*domain.Role
	members map[string]map[string][]string
	botTop  map[string]int
	edits   []Edit

	GuildsErr error
	EditErr   error
}

func NewDirectory() *Directory {
	return &Directory{
		roles:   make(map[string]map[string]*domain.Role),
		members: make(map[string]map[string][]string),
		botTop:  make(map[string]int),
	}
}

func (d *Directory) AddGuild(id, name string, botTopPosition int) *Directory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.guilds = append(d.guilds, domain.Guild{ID: id, Name: name})
	d.roles[id] = map[string]*domain.Role{
		id: {ID: id, GuildID: id, Name: "@everyone"},
	}
	d.members[id] = make(map[string][]string)
	d.botTop[id] = botTopPosition
	return d
}

func (d *Directory) AddRole(guildID, roleID, name string, colour, position int) *Directory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.roles[guildID][roleID] = &domain.Role{
		ID:       roleID,
		GuildID:  guildID,
		Name:     name,
		Colour:   colour,
		Position: position,
	}
	return d
}

// AddMember joins the user to the guild holding the given roles.
func (d *Directory) AddMember(guildID, userID string, roleIDs ...string) *Directory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.members[guildID][userID] = append(d.members[guildID][userID], roleIDs...)
	for _, id := range roleIDs {
		r := d.roles[guildID][id]
		r.HolderIDs = append(r.HolderIDs, userID)
	}
	return d
}

func (d *Directory) Guilds(context.Context) ([]domain.Guild, error) {
	if d.GuildsErr != nil {
		return nil, d.GuildsErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.guilds), nil
}

func (d *Directory) Role(_ context.Context, guildID, roleID string) (*domain.Role, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.roles[guildID][roleID]
	if !ok {
		return nil, nil
	}
	cp := *r
	cp.HolderIDs = slices.Clone(r.HolderIDs)
	return &cp, nil
}

func (d *Directory) Member(_ context.Context, guildID, userID string) (*domain.Member, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ids, ok := d.members[guildID][userID]
	if !ok {
		return nil, nil
	}
	m := &domain.Member{UserID: userID, GuildID: guildID}
	for _, id := range ids {
		r := *d.roles[guildID][id]
		r.HolderIDs = slices.Clone(r.HolderIDs)
		m.Roles = append(m.Roles, &r)
	}
	slices.SortStableFunc(m.Roles, func(a, b *domain.Role) int { return a.Position - b.Position })
	return m, nil
}

func (d *Directory) BotTopRolePosition(_ context.Context, guildID string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	top, ok := d.botTop[guildID]
	if !ok {
		return 0, errors.Newf("domaintest: unknown guild %s", guildID)
	}
	return top, nil
}

func (d *Directory) EditRole(_ context.Context, guildID, roleID string, edit domain.RoleEdit) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.edits = append(d.edits, Edit{GuildID: guildID, RoleID: roleID, Edit: edit})
	if d.EditErr != nil {
		return d.EditErr
	}
	r := d.roles[guildID][roleID]
	r.Colour = edit.Colour
	if edit.Name != nil {
		r.Name = *edit.Name
	}
	return nil
}

func (d *Directory) Edits() []Edit {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.edits)
}
