package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/swig/pkg/entities"
	"github.com/Jacobbrewer1/swig/pkg/messages"
	"github.com/Jacobbrewer1/swig/pkg/tickets"
)

// historyColor is the colour of the history embed. (Blue)
const historyColor = 0x3498db

// actorFromInteraction returns the invoking member. The interaction router guarantees that Member is set.
func actorFromInteraction(i *discordgo.InteractionCreate) tickets.Actor {
	return tickets.Actor{
		UserID: i.Member.User.ID,
		Roles:  i.Member.Roles,
	}
}

func ticketSetupHandler(ctx context.Context, a IApp, i *discordgo.InteractionCreate) error {
	created, err := a.Tickets().Setup(ctx, i.GuildID, actorFromInteraction(i))
	if err != nil {
		return fmt.Errorf("error setting up ticket categories: %w", err)
	}
	return respondEphemeral(a, i, setupResponse(created))
}

func setupResponse(created []string) string {
	return fmt.Sprintf(messages.SetupComplete, categoryList(created))
}

func categoryList(created []string) string {
	if len(created) == 0 {
		return messages.SetupNoneCreated
	}
	return strings.Join(created, ", ")
}

func openTicketHandler(ctx context.Context, a IApp, i *discordgo.InteractionCreate) error {
	channel, err := a.Tickets().OpenTicket(ctx, i.GuildID, actorFromInteraction(i))
	if err != nil {
		return fmt.Errorf("error opening ticket: %w", err)
	}
	return respondEphemeral(a, i, fmt.Sprintf(messages.TicketCreated, channel.ID))
}

func ticketClaimHandler(ctx context.Context, a IApp, i *discordgo.InteractionCreate) error {
	actor := actorFromInteraction(i)
	if err := a.Tickets().ClaimTicket(ctx, i.GuildID, i.ChannelID, actor); err != nil {
		return fmt.Errorf("error claiming ticket: %w", err)
	}
	return respondPublic(a, i, fmt.Sprintf(messages.TicketClaimed, actor.UserID))
}

func ticketCloseHandler(ctx context.Context, a IApp, i *discordgo.InteractionCreate) error {
	if err := a.Tickets().CloseTicket(ctx, i.GuildID, i.ChannelID, actorFromInteraction(i)); err != nil {
		return fmt.Errorf("error closing ticket: %w", err)
	}
	return respondPublic(a, i, messages.TicketClosed)
}

func ticketReopenHandler(ctx context.Context, a IApp, i *discordgo.InteractionCreate) error {
	if err := a.Tickets().ReopenTicket(ctx, i.GuildID, i.ChannelID, actorFromInteraction(i)); err != nil {
		return fmt.Errorf("error reopening ticket: %w", err)
	}
	return respondPublic(a, i, messages.TicketReopened)
}

func ticketPanelHandler(ctx context.Context, a IApp, i *discordgo.InteractionCreate) error {
	if err := a.Tickets().SendPanel(ctx, i.GuildID, i.ChannelID, actorFromInteraction(i)); err != nil {
		return fmt.Errorf("error sending ticket panel: %w", err)
	}
	return respondEphemeral(a, i, messages.PanelSent)
}

func ticketHistoryHandler(ctx context.Context, a IApp, i *discordgo.InteractionCreate) error {
	events, err := a.Tickets().History(ctx, i.GuildID, i.ChannelID, actorFromInteraction(i))
	if err != nil {
		return fmt.Errorf("error getting ticket history: %w", err)
	}

	if len(events) == 0 {
		return respondEphemeral(a, i, messages.HistoryEmpty)
	}
	return respondEmbedEphemeral(a, i, historyEmbed(events))
}

// historyEmbed lists the events oldest first, one per line.
func historyEmbed(events []*entities.TicketEvent) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, fmt.Sprintf(messages.HistoryLine, e.CreatedAt.Unix(), e.Action, e.ActorID))
	}

	return &discordgo.MessageEmbed{
		Title:       messages.HistoryTitle,
		Description: strings.Join(lines, "\n"),
		Color:       historyColor,
	}
}
