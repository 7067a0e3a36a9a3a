package tickets

import (
	"context"

	"github.com/Jacobbrewer1/discordgo"
)

// Platform is the subset of the Discord API that the ticket lifecycle needs.
type Platform interface {
	// GuildChannels lists every channel in the guild, categories included.
	GuildChannels(ctx context.Context, guildID string) ([]*discordgo.Channel, error)

	// GuildChannelCreate creates a channel or category in the guild.
	GuildChannelCreate(ctx context.Context, guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error)

	// ChannelMove re-parents a channel under the category. Permission overwrites are left untouched.
	ChannelMove(ctx context.Context, channelID, parentID string) (*discordgo.Channel, error)

	// SendMessage posts a message to a channel.
	SendMessage(ctx context.Context, channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error)
}

// findTextChannel returns the first text channel with the exact name.
func findTextChannel(channels []*discordgo.Channel, name string) *discordgo.Channel {
	for _, c := range channels {
		if c.Type == discordgo.ChannelTypeGuildText && c.Name == name {
			return c
		}
	}
	return nil
}

// findCategory returns the category with the ID, or nil if there is no such category.
func findCategory(channels []*discordgo.Channel, id string) *discordgo.Channel {
	for _, c := range channels {
		if c.ID == id {
			if c.Type != discordgo.ChannelTypeGuildCategory {
				return nil
			}
			return c
		}
	}
	return nil
}

// findChannel returns the channel with the ID.
func findChannel(channels []*discordgo.Channel, id string) *discordgo.Channel {
	for _, c := range channels {
		if c.ID == id {
			return c
		}
	}
	return nil
}
