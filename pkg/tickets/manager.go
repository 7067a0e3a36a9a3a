package tickets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/swig/pkg/config"
	"github.com/Jacobbrewer1/swig/pkg/entities"
	"github.com/Jacobbrewer1/swig/pkg/logging"
	"github.com/Jacobbrewer1/swig/pkg/messages"
	"golang.org/x/time/rate"
)

const (
	// defaultOpenLimit is how often a requester may open a ticket once the burst is spent.
	defaultOpenLimit = rate.Limit(1.0 / 5)

	// defaultOpenBurst is how many tickets a requester may open back to back.
	defaultOpenBurst = 3
)

// Option configures a Manager.
type Option func(m *Manager)

// WithRecorder sets the audit ledger.
func WithRecorder(r Recorder) Option {
	return func(m *Manager) {
		if r != nil {
			m.recorder = r
		}
	}
}

// WithLocker sets the locker used to serialise ticket creation per requester.
func WithLocker(l Locker) Option {
	return func(m *Manager) {
		if l != nil {
			m.locker = l
		}
	}
}

// WithOpenLimit sets how fast a single requester may open tickets. rate.Inf disables the limit.
func WithOpenLimit(limit rate.Limit, burst int) Option {
	return func(m *Manager) {
		m.openLimit = limit
		m.openBurst = burst
	}
}

// Manager owns the ticket lifecycle. Every decision is derived from the guild's channels at the time of the call.
type Manager struct {
	// l is the logger.
	l *slog.Logger

	adminRoleID string
	staffRoleID string
	categories  config.Categories

	platform Platform
	recorder Recorder
	locker   Locker

	openLimit rate.Limit
	openBurst int

	// limiters holds a token bucket per guild and requester.
	limiters *limiterSet

	// now returns the current time.
	now func() time.Time
}

// NewManager creates a new ticket lifecycle manager.
func NewManager(l *slog.Logger, cfg *config.Config, p Platform, opts ...Option) *Manager {
	m := &Manager{
		l:           l,
		adminRoleID: cfg.AdminRoleID,
		staffRoleID: cfg.StaffRoleID,
		categories:  cfg.Categories,
		platform:    p,
		recorder:    nopRecorder{},
		locker:      NewKeyedMutex(),
		openLimit:   defaultOpenLimit,
		openBurst:   defaultOpenBurst,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.limiters = newLimiterSet(m.openLimit, m.openBurst)
	return m
}

// Setup creates any of the ticket categories that do not exist yet and returns the names it created. A failed
// create returns a *SetupError alongside the names created before it.
func (m *Manager) Setup(ctx context.Context, guildID string, actor Actor) ([]string, error) {
	if err := m.Authorize(actor, CapabilityAdmin); err != nil {
		return nil, err
	}

	channels, err := m.platform.GuildChannels(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("error getting guild channels: %w", err)
	}

	existing := make(map[string]struct{}, len(channels))
	for _, c := range channels {
		if c.Type == discordgo.ChannelTypeGuildCategory {
			existing[c.Name] = struct{}{}
		}
	}

	created := make([]string, 0, len(SetupCategoryNames))
	for _, name := range SetupCategoryNames {
		if _, ok := existing[name]; ok {
			continue
		}

		if _, err := m.platform.GuildChannelCreate(ctx, guildID, discordgo.GuildChannelCreateData{
			Name: name,
			Type: discordgo.ChannelTypeGuildCategory,
		}); err != nil {
			return created, &SetupError{
				Created: created,
				Err:     fmt.Errorf("error creating category %s: %w", name, err),
			}
		}

		created = append(created, name)
	}

	m.l.Info("Ticket categories set up",
		slog.String(logging.KeyGuild, guildID),
		slog.Any("created", created),
	)
	return created, nil
}

// OpenTicket creates the requester's ticket channel. An *AlreadyOpenError is returned if the requester already
// has one, whatever their rate limit. Only channel creation spends from the limit.
func (m *Manager) OpenTicket(ctx context.Context, guildID string, requester Actor) (*discordgo.Channel, error) {
	unlock, err := m.locker.Lock(ctx, guildID+":"+requester.UserID)
	if err != nil {
		return nil, fmt.Errorf("error locking requester: %w", err)
	}
	defer unlock()

	channels, err := m.platform.GuildChannels(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("error getting guild channels: %w", err)
	}

	name := ChannelName(requester.UserID)
	if existing := findTextChannel(channels, name); existing != nil {
		return nil, &AlreadyOpenError{Channel: existing}
	}

	support := findCategory(channels, m.categories.Support)
	if support == nil {
		return nil, ErrSupportCategoryMissing
	}

	if !m.limiters.allow(guildID+":"+requester.UserID, m.now()) {
		return nil, ErrRateLimited
	}

	channel, err := m.platform.GuildChannelCreate(ctx, guildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		ParentID:             support.ID,
		PermissionOverwrites: m.ticketOverwrites(guildID, requester.UserID),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating ticket channel: %w", err)
	}

	l := m.l.With(
		slog.String(logging.KeyGuild, guildID),
		slog.String(logging.KeyChannel, channel.ID),
		slog.String(logging.KeyUser, requester.UserID),
	)

	// The channel exists from here on, so a failed welcome must not fail the open.
	if _, err := m.platform.SendMessage(ctx, channel.ID, &discordgo.MessageSend{
		Content: fmt.Sprintf(messages.TicketWelcome, requester.UserID),
	}); err != nil {
		l.Warn("Error sending ticket welcome message", slog.String(logging.KeyError, err.Error()))
	}

	m.record(ctx, &entities.TicketEvent{
		GuildID:     guildID,
		ChannelID:   channel.ID,
		RequesterID: requester.UserID,
		ActorID:     requester.UserID,
		Action:      entities.TicketActionOpened,
	})

	l.Info("Ticket opened")
	return channel, nil
}

// ticketOverwrites hides the channel from everyone except the requester, who may talk, and staff, who may view.
func (m *Manager) ticketOverwrites(guildID, requesterID string) []*discordgo.PermissionOverwrite {
	return []*discordgo.PermissionOverwrite{
		// The @everyone role shares its ID with the guild.
		{
			ID:    guildID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: 0,
			Deny:  discordgo.PermissionViewChannel,
		},
		{
			ID:    requesterID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages,
			Deny:  0,
		},
		{
			ID:    m.staffRoleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: discordgo.PermissionViewChannel,
			Deny:  0,
		},
	}
}

// ClaimTicket authorises a staff member to claim the ticket in the channel. Claims are announcements only:
// nothing stops a ticket from being claimed again.
func (m *Manager) ClaimTicket(ctx context.Context, guildID, channelID string, actor Actor) error {
	if err := m.Authorize(actor, CapabilityStaff); err != nil {
		return err
	}

	m.record(ctx, &entities.TicketEvent{
		GuildID:   guildID,
		ChannelID: channelID,
		ActorID:   actor.UserID,
		Action:    entities.TicketActionClaimed,
	})
	return nil
}

// CloseTicket moves the channel into the closed category.
func (m *Manager) CloseTicket(ctx context.Context, guildID, channelID string, actor Actor) error {
	return m.move(ctx, guildID, channelID, actor, m.categories.Closed, ErrClosedCategoryMissing, entities.TicketActionClosed)
}

// ReopenTicket moves the channel back into the support category.
func (m *Manager) ReopenTicket(ctx context.Context, guildID, channelID string, actor Actor) error {
	return m.move(ctx, guildID, channelID, actor, m.categories.Support, ErrSupportCategoryMissing, entities.TicketActionReopened)
}

func (m *Manager) move(ctx context.Context, guildID, channelID string, actor Actor, categoryID string, missing error, action entities.TicketAction) error {
	if err := m.Authorize(actor, CapabilityStaff); err != nil {
		return err
	}

	channels, err := m.platform.GuildChannels(ctx, guildID)
	if err != nil {
		return fmt.Errorf("error getting guild channels: %w", err)
	}

	category := findCategory(channels, categoryID)
	if category == nil {
		return missing
	}

	if _, err := m.platform.ChannelMove(ctx, channelID, category.ID); err != nil {
		return fmt.Errorf("error moving channel to %s: %w", category.Name, err)
	}

	event := &entities.TicketEvent{
		GuildID:   guildID,
		ChannelID: channelID,
		ActorID:   actor.UserID,
		Action:    action,
	}
	if c := findChannel(channels, channelID); c != nil {
		event.RequesterID, _ = ParseChannelName(c.Name)
	}
	m.record(ctx, event)

	m.l.Info("Ticket moved",
		slog.String(logging.KeyGuild, guildID),
		slog.String(logging.KeyChannel, channelID),
		slog.String(logging.KeyUser, actor.UserID),
		slog.String("action", string(action)),
	)
	return nil
}

// SendPanel posts the ticket panel into the channel.
func (m *Manager) SendPanel(ctx context.Context, guildID, channelID string, actor Actor) error {
	if err := m.Authorize(actor, CapabilityAdmin); err != nil {
		return err
	}

	if _, err := m.platform.SendMessage(ctx, channelID, PanelMessage()); err != nil {
		return fmt.Errorf("error sending ticket panel: %w", err)
	}

	m.l.Info("Ticket panel sent",
		slog.String(logging.KeyGuild, guildID),
		slog.String(logging.KeyChannel, channelID),
	)
	return nil
}

// History returns the recorded transitions of the channel, oldest first.
func (m *Manager) History(ctx context.Context, guildID, channelID string, actor Actor) ([]*entities.TicketEvent, error) {
	if err := m.Authorize(actor, CapabilityStaff); err != nil {
		return nil, err
	}

	events, err := m.recorder.ChannelEvents(ctx, guildID, channelID)
	if errors.Is(err, ErrHistoryDisabled) {
		return nil, err
	} else if err != nil {
		return nil, fmt.Errorf("error getting ticket history: %w", err)
	}
	return events, nil
}

// record stores the event in the audit ledger. Failures are logged and never returned.
func (m *Manager) record(ctx context.Context, event *entities.TicketEvent) {
	event.CreatedAt = m.now().UTC()
	if err := m.recorder.RecordEvent(ctx, event); err != nil {
		m.l.Error("Error recording ticket event",
			slog.String(logging.KeyError, err.Error()),
			slog.String(logging.KeyGuild, event.GuildID),
			slog.String(logging.KeyChannel, event.ChannelID),
			slog.String("action", string(event.Action)),
		)
	}
}
