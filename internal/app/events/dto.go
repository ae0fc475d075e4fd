package events

import (
	"time"

	"persoole/internal/domain"
)

// ChatMessageDTO describes an accepted inbound private message.
type ChatMessageDTO struct {
	Platform  string `json:"platform"`
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

func NewChatMessageDTO(msg domain.Message) ChatMessageDTO {
	return ChatMessageDTO{
		Platform:  string(msg.Platform),
		ChannelID: msg.ChannelID,
		MessageID: msg.MessageID,
		UserID:    msg.UserID,
		Username:  msg.Username,
		Text:      msg.Text,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
}

// RoleEditDTO records one role edit attempt and how it ended.
type RoleEditDTO struct {
	Platform  string  `json:"platform"`
	UserID    string  `json:"user_id"`
	MessageID string  `json:"message_id"`
	GuildID   string  `json:"guild_id"`
	RoleID    string  `json:"role_id"`
	Colour    int     `json:"colour"`
	Name      *string `json:"name,omitempty"`
	Outcome   string  `json:"outcome"`
	Timestamp string  `json:"timestamp"`
}

func NewRoleEditDTO(msg domain.Message, role *domain.Role, edit domain.RoleEdit, outcome domain.EditOutcome) RoleEditDTO {
	dto := RoleEditDTO{
		Platform:  string(msg.Platform),
		UserID:    msg.UserID,
		MessageID: msg.MessageID,
		Colour:    edit.Colour,
		Name:      edit.Name,
		Outcome:   outcome.String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if role != nil {
		dto.GuildID = role.GuildID
		dto.RoleID = role.ID
	}
	return dto
}
