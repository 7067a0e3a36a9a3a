package tickets

import (
	"context"

	"github.com/Jacobbrewer1/swig/pkg/entities"
)

// Recorder stores the audit trail of ticket transitions. It never takes part in lifecycle decisions.
type Recorder interface {
	// RecordEvent stores a single transition.
	RecordEvent(ctx context.Context, event *entities.TicketEvent) error

	// ChannelEvents returns the transitions of a channel, oldest first.
	ChannelEvents(ctx context.Context, guildID, channelID string) ([]*entities.TicketEvent, error)
}

// nopRecorder is used when no audit ledger is configured.
type nopRecorder struct{}

func (nopRecorder) RecordEvent(context.Context, *entities.TicketEvent) error {
	return nil
}

func (nopRecorder) ChannelEvents(context.Context, string, string) ([]*entities.TicketEvent, error) {
	return nil, ErrHistoryDisabled
}
