// Package discordadapter connects the bot to the Discord gateway.
package discordadapter

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/cockroachdb/errors"

	"persoole/internal/domain"
)

type Config struct {
	Token string
}

// Pipeline receives inbound messages. Accept runs on the gateway's event
// goroutine, so calls happen in arrival order; Process then runs on its own
// goroutine.
type Pipeline interface {
	Accept(ctx context.Context, msg domain.Message) (context.Context, bool)
	Process(ctx context.Context, msg domain.Message) error
}

const intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMembers |
	discordgo.IntentsDirectMessages

type Adapter struct {
	session  *discordgo.Session
	pipeline Pipeline
	inflight sync.WaitGroup

	mu       sync.RWMutex
	botID    string
	channels map[string]string // user id -> DM channel id
}

func NewAdapter(cfg Config) (*Adapter, error) {
	if cfg.Token == "" {
		return nil, errors.New("discord: empty bot token")
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, errors.Wrap(err, "discord: new session")
	}
	session.Identify.Intents = intents
	session.SyncEvents = true

	return &Adapter{
		session:  session,
		channels: make(map[string]string),
	}, nil
}

// Session is shared with the guild directory so both read one state cache.
func (a *Adapter) Session() *discordgo.Session {
	return a.session
}

func (a *Adapter) SetPipeline(p Pipeline) {
	a.mu.Lock()
	a.pipeline = p
	a.mu.Unlock()
}

// Start opens the gateway and blocks until ctx is done.
func (a *Adapter) Start(ctx context.Context) error {
	a.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		a.mu.Lock()
		a.botID = r.User.ID
		a.mu.Unlock()
		slog.InfoContext(ctx, "discord: connected", "user", r.User.Username, "guilds", len(r.Guilds))
	})

	a.session.AddHandler(func(s *discordgo.Session, g *discordgo.GuildCreate) {
		if !g.Large {
			return
		}
		if err := s.RequestGuildMembers(g.ID, "", 0, "", false); err != nil {
			slog.WarnContext(ctx, "discord: request guild members failed", "guild_id", g.ID, "error", err)
		}
	})

	a.session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		a.onMessageCreate(ctx, m)
	})

	if err := a.session.Open(); err != nil {
		return errors.Wrap(err, "discord: open gateway")
	}

	<-ctx.Done()

	if err := a.session.Close(); err != nil {
		slog.Warn("discord: close gateway", "error", err)
	}
	a.inflight.Wait()
	return ctx.Err()
}

// onMessageCreate accepts the message inline and hands the rest to a goroutine
// so a paced reply never holds up the next event.
func (a *Adapter) onMessageCreate(ctx context.Context, m *discordgo.MessageCreate) {
	a.mu.RLock()
	pipeline, botID := a.pipeline, a.botID
	a.mu.RUnlock()
	if pipeline == nil || m.Author == nil {
		return
	}

	msg := mapMessageToDomain(m.Message, botID)
	msgCtx, ok := pipeline.Accept(ctx, msg)
	if !ok {
		return
	}

	a.inflight.Add(1)
	go func() {
		defer a.inflight.Done()
		if err := pipeline.Process(msgCtx, msg); err != nil {
			slog.ErrorContext(msgCtx, "discord: handler failed", "message_id", msg.MessageID, "error", err)
		}
	}()
}

func (a *Adapter) SendDirect(ctx context.Context, platform domain.Platform, userID string, reply domain.Reply) error {
	if platform != domain.PlatformDiscord {
		return errors.Newf("discord adapter does not support platform %s", platform)
	}

	channelID, err := a.directChannel(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := a.session.ChannelMessageSendComplex(channelID, toMessageSend(reply), discordgo.WithContext(ctx)); err != nil {
		return errors.Wrapf(err, "discord: send to %s", userID)
	}
	return nil
}

func (a *Adapter) TriggerTyping(ctx context.Context, platform domain.Platform, userID string) error {
	if platform != domain.PlatformDiscord {
		return errors.Newf("discord adapter does not support platform %s", platform)
	}

	channelID, err := a.directChannel(ctx, userID)
	if err != nil {
		return err
	}
	return errors.Wrapf(a.session.ChannelTyping(channelID, discordgo.WithContext(ctx)), "discord: typing for %s", userID)
}

func (a *Adapter) directChannel(ctx context.Context, userID string) (string, error) {
	a.mu.RLock()
	id, ok := a.channels[userID]
	a.mu.RUnlock()
	if ok {
		return id, nil
	}

	ch, err := a.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return "", errors.Wrapf(err, "discord: open DM with %s", userID)
	}

	a.mu.Lock()
	a.channels[userID] = ch.ID
	a.mu.Unlock()
	return ch.ID, nil
}

func mapMessageToDomain(m *discordgo.Message, botID string) domain.Message {
	return domain.Message{
		Platform:  domain.PlatformDiscord,
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		UserID:    m.Author.ID,
		Username:  m.Author.Username,
		Text:      m.Content,

		IsPrivate: m.GuildID == "",
		IsSelf:    botID != "" && m.Author.ID == botID,
	}
}

func toMessageSend(reply domain.Reply) *discordgo.MessageSend {
	send := &discordgo.MessageSend{Content: reply.Content}
	if reply.Embed != nil {
		send.Embeds = []*discordgo.MessageEmbed{toEmbed(reply.Embed)}
	}
	return send
}

func toEmbed(e *domain.Embed) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Colour,
	}
	if e.Author != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{Name: e.Author}
	}
	if e.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	return embed
}
