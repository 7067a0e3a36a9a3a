package platform

import (
	"context"
	"fmt"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	opGuildChannels      = "guild_channels"
	opGuildChannelCreate = "guild_channel_create"
	opChannelMove        = "channel_move"
	opSendMessage        = "send_message"
)

// Discord implements the ticket platform on top of a Discord session.
type Discord struct {
	// s is the discord session.
	s *discordgo.Session
}

// NewDiscord creates a new Discord platform.
func NewDiscord(s *discordgo.Session) *Discord {
	return &Discord{
		s: s,
	}
}

// track starts the prometheus metrics for an operation. The returned function records the outcome.
func track(op string) func(err error) {
	t := prometheus.NewTimer(DiscordApiLatency.WithLabelValues(op))
	return func(err error) {
		t.ObserveDuration()

		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		DiscordApiTotalRequests.WithLabelValues(op, outcome).Inc()
	}
}

// GuildChannels lists the channels of the guild from the REST API rather than the state cache, so that channels
// created moments ago are always seen.
func (d *Discord) GuildChannels(ctx context.Context, guildID string) (channels []*discordgo.Channel, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := track(opGuildChannels)
	defer func() { done(err) }()

	channels, err = d.s.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("error getting channels for guild %s: %w", guildID, err)
	}
	return channels, nil
}

func (d *Discord) GuildChannelCreate(ctx context.Context, guildID string, data discordgo.GuildChannelCreateData) (channel *discordgo.Channel, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := track(opGuildChannelCreate)
	defer func() { done(err) }()

	channel, err = d.s.GuildChannelCreateComplex(guildID, data, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("error creating channel %s in guild %s: %w", data.Name, guildID, err)
	}
	return channel, nil
}

// ChannelMove re-parents the channel. Only the parent is sent, so the channel keeps its permission overwrites.
func (d *Discord) ChannelMove(ctx context.Context, channelID, parentID string) (channel *discordgo.Channel, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := track(opChannelMove)
	defer func() { done(err) }()

	channel, err = d.s.ChannelEditComplex(channelID, &discordgo.ChannelEdit{
		ParentID: parentID,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("error moving channel %s: %w", channelID, err)
	}
	return channel, nil
}

func (d *Discord) SendMessage(ctx context.Context, channelID string, msg *discordgo.MessageSend) (message *discordgo.Message, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := track(opSendMessage)
	defer func() { done(err) }()

	message, err = d.s.ChannelMessageSendComplex(channelID, msg, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("error sending message to channel %s: %w", channelID, err)
	}
	return message, nil
}
