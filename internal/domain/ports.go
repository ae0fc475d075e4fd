package domain

import "context"

// DirectMessenger delivers private replies to a user.
type DirectMessenger interface {
	SendDirect(ctx context.Context, platform Platform, userID string, reply Reply) error
	TriggerTyping(ctx context.Context, platform Platform, userID string) error
}

// GuildDirectory is the read/edit view of the guilds the bot is in.
type GuildDirectory interface {
	Guilds(ctx context.Context) ([]Guild, error)

	// Role returns nil, nil when the guild has no role with that id.
	Role(ctx context.Context, guildID, roleID string) (*Role, error)

	// Member returns nil, nil when the user is not in the guild.
	Member(ctx context.Context, guildID, userID string) (*Member, error)

	// BotTopRolePosition is the position of the bot's highest role, 0 if it only has the default role.
	BotTopRolePosition(ctx context.Context, guildID string) (int, error)

	// EditRole wraps ErrPermissionDenied or ErrPlatformFailure on rejection.
	EditRole(ctx context.Context, guildID, roleID string, edit RoleEdit) error
}
