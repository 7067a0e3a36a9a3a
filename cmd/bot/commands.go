package main

import (
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
)

const (
	// TicketSetupCmdName creates the ticket categories.
	TicketSetupCmdName = "ticket_setup"

	// TicketClaimCmdName announces that a staff member has claimed the ticket.
	TicketClaimCmdName = "ticket_claim"

	// TicketCloseCmdName moves the ticket into the closed category.
	TicketCloseCmdName = "ticket_close"

	// TicketReopenCmdName moves the ticket back into the support category.
	TicketReopenCmdName = "ticket_reopen"

	// TicketPanelCmdName posts the ticket panel.
	TicketPanelCmdName = "ticket_panel"

	// TicketHistoryCmdName lists the recorded transitions of the ticket.
	TicketHistoryCmdName = "ticket_history"
)

// dmPermission is false for every command. Tickets only exist inside a guild.
var dmPermission = false

// slashCommands are the commands registered with Discord. None of them take options.
var slashCommands = []*discordgo.ApplicationCommand{
	{
		Name:         TicketSetupCmdName,
		Type:         discordgo.ChatApplicationCommand,
		Description:  "Setup ticket categories",
		DMPermission: &dmPermission,
	},
	{
		Name:         TicketClaimCmdName,
		Type:         discordgo.ChatApplicationCommand,
		Description:  "Claim the ticket",
		DMPermission: &dmPermission,
	},
	{
		Name:         TicketCloseCmdName,
		Type:         discordgo.ChatApplicationCommand,
		Description:  "Close the ticket",
		DMPermission: &dmPermission,
	},
	{
		Name:         TicketReopenCmdName,
		Type:         discordgo.ChatApplicationCommand,
		Description:  "Reopen the ticket",
		DMPermission: &dmPermission,
	},
	{
		Name:         TicketPanelCmdName,
		Type:         discordgo.ChatApplicationCommand,
		Description:  "Send the ticket panel embed with button",
		DMPermission: &dmPermission,
	},
	{
		Name:         TicketHistoryCmdName,
		Type:         discordgo.ChatApplicationCommand,
		Description:  "Show the recorded history of the ticket",
		DMPermission: &dmPermission,
	},
}

// registerSlashCommands replaces the application's commands with slashCommands. Commands are registered in the
// configured guild, or globally when none is configured.
func (a *App) registerSlashCommands() error {
	registered, err := a.s.ApplicationCommandBulkOverwrite(a.cfg.ApplicationID, a.cfg.GuildID, slashCommands)
	if err != nil {
		return fmt.Errorf("error overwriting slash commands: %w", err)
	}

	for _, cmd := range registered {
		a.Debug("Registered slash command", slog.String("name", cmd.Name), slog.String("id", cmd.ID))
	}

	a.Info(fmt.Sprintf("Registered %d slash commands", len(registered)))
	return nil
}
