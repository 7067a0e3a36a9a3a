package tickets

import (
	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/swig/pkg/messages"
)

// OpenTicketButtonID is the custom ID of the panel button. It must never change: panels posted before a restart
// keep routing to OpenTicket through it.
const OpenTicketButtonID = "open_ticket"

// panelColor is the colour of the panel embed. (Blue)
const panelColor = 0x3498db

// SetupCategoryNames are the categories that Setup ensures exist, in creation order.
var SetupCategoryNames = []string{
	"Package Purchase",
	"General Support",
	"Closed Tickets",
}

// PanelMessage builds the ticket panel with its open ticket button.
func PanelMessage() *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       messages.PanelTitle,
				Description: messages.PanelDescription,
				Color:       panelColor,
			},
		},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    messages.PanelButtonLabel,
						Style:    discordgo.SuccessButton,
						Disabled: false,
						CustomID: OpenTicketButtonID,
					},
				},
			},
		},
	}
}
