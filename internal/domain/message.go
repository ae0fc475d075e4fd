package domain

type Platform string

const (
	PlatformDiscord Platform = "discord"
)

type Message struct {
	Platform  Platform
	ChannelID string
	MessageID string
	UserID    string
	Username  string
	Text      string

	// Filled in by the adapter.
	IsPrivate bool
	IsSelf    bool
}

// Reply is one outbound direct message: text, an embed, or both.
type Reply struct {
	Content string
	Embed   *Embed
}

// Embed carries the data of a rich attachment; rendering is up to the adapter.
type Embed struct {
	Author      string
	Title       string
	Description string
	Footer      string
	Colour      int
}

func TextReply(content string) Reply {
	return Reply{Content: content}
}
