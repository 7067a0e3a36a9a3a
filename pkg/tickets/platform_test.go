package tickets

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Jacobbrewer1/discordgo"
)

// fakePlatform is an in-memory guild. Channels are copied on the way out so callers cannot mutate its state.
type fakePlatform struct {
	mu sync.Mutex

	nextID   int
	channels map[string][]*discordgo.Channel
	messages map[string][]*discordgo.MessageSend

	creates int
	moves   int

	// listDelay widens the gap between listing and creating channels.
	listDelay time.Duration

	sendErr error

	// failCreateAt fails the nth create, counting from 1. Zero never fails.
	failCreateAt int
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		nextID:   1000,
		channels: make(map[string][]*discordgo.Channel),
		messages: make(map[string][]*discordgo.MessageSend),
	}
}

func (f *fakePlatform) addChannel(guildID string, c *discordgo.Channel) *discordgo.Channel {
	f.mu.Lock()
	defer f.mu.Unlock()

	c.GuildID = guildID
	f.channels[guildID] = append(f.channels[guildID], c)
	return c
}

func (f *fakePlatform) addCategory(guildID, id, name string) *discordgo.Channel {
	return f.addChannel(guildID, &discordgo.Channel{ID: id, Name: name, Type: discordgo.ChannelTypeGuildCategory})
}

// removeChannel deletes the channel, as a moderator would by hand.
func (f *fakePlatform) removeChannel(guildID, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	channels := f.channels[guildID]
	for i, c := range channels {
		if c.ID == id {
			f.channels[guildID] = append(channels[:i], channels[i+1:]...)
			return
		}
	}
}

func (f *fakePlatform) channel(guildID, id string) *discordgo.Channel {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.channels[guildID] {
		if c.ID == id {
			cp := *c
			return &cp
		}
	}
	return nil
}

func (f *fakePlatform) named(guildID, name string) []*discordgo.Channel {
	f.mu.Lock()
	defer f.mu.Unlock()

	found := make([]*discordgo.Channel, 0)
	for _, c := range f.channels[guildID] {
		if c.Name == name {
			cp := *c
			found = append(found, &cp)
		}
	}
	return found
}

func (f *fakePlatform) sent(channelID string) []*discordgo.MessageSend {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*discordgo.MessageSend(nil), f.messages[channelID]...)
}

func (f *fakePlatform) mutations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates + f.moves
}

func (f *fakePlatform) GuildChannels(_ context.Context, guildID string) ([]*discordgo.Channel, error) {
	f.mu.Lock()
	channels := make([]*discordgo.Channel, 0, len(f.channels[guildID]))
	for _, c := range f.channels[guildID] {
		cp := *c
		channels = append(channels, &cp)
	}
	f.mu.Unlock()

	if f.listDelay > 0 {
		time.Sleep(f.listDelay)
	}
	return channels, nil
}

func (f *fakePlatform) GuildChannelCreate(_ context.Context, guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCreateAt > 0 && f.creates+1 == f.failCreateAt {
		return nil, fmt.Errorf("missing permissions")
	}

	f.nextID++
	f.creates++
	c := &discordgo.Channel{
		ID:                   strconv.Itoa(f.nextID),
		GuildID:              guildID,
		Name:                 data.Name,
		Type:                 data.Type,
		ParentID:             data.ParentID,
		PermissionOverwrites: data.PermissionOverwrites,
	}
	f.channels[guildID] = append(f.channels[guildID], c)

	cp := *c
	return &cp, nil
}

func (f *fakePlatform) ChannelMove(_ context.Context, channelID, parentID string) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, channels := range f.channels {
		for _, c := range channels {
			if c.ID == channelID {
				f.moves++
				c.ParentID = parentID
				cp := *c
				return &cp, nil
			}
		}
	}
	return nil, fmt.Errorf("unknown channel %s", channelID)
}

func (f *fakePlatform) SendMessage(_ context.Context, channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sendErr != nil {
		return nil, f.sendErr
	}

	f.messages[channelID] = append(f.messages[channelID], msg)
	return &discordgo.Message{ChannelID: channelID, Content: msg.Content}, nil
}
