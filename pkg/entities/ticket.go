package entities

import "time"

// TicketAction is a transition in the lifecycle of a ticket.
type TicketAction string

const (
	// TicketActionOpened is recorded when a ticket channel is created.
	TicketActionOpened TicketAction = "opened"

	// TicketActionClaimed is recorded each time a staff member claims a ticket.
	TicketActionClaimed TicketAction = "claimed"

	// TicketActionClosed is recorded when a ticket is moved to the closed category.
	TicketActionClosed TicketAction = "closed"

	// TicketActionReopened is recorded when a ticket is moved back to the support category.
	TicketActionReopened TicketAction = "reopened"
)

// TicketEvent is an audit record of a single ticket transition.
type TicketEvent struct {
	// GuildID is the ID of the guild that the ticket is in.
	GuildID string `json:"guild_id" bson:"guild_id"`

	// ChannelID is the ID of the ticket channel.
	ChannelID string `json:"channel_id" bson:"channel_id"`

	// RequesterID is the ID of the user that owns the ticket. It is empty when the channel is not a ticket channel.
	RequesterID string `json:"requester_id,omitempty" bson:"requester_id,omitempty"`

	// ActorID is the ID of the user that performed the action.
	ActorID string `json:"actor_id" bson:"actor_id"`

	// Action is the transition that happened.
	Action TicketAction `json:"action" bson:"action"`

	// CreatedAt is the time the action happened.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
