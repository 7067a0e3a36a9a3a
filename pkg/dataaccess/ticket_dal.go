package dataaccess

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/swig/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/swig/pkg/entities"
	"github.com/Jacobbrewer1/swig/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ticketDalName = "ticket_dal"

// historyLimit caps how many events are returned for a single channel.
const historyLimit = 50

type TicketDal interface {
	// EnsureIndexes creates the indexes that the ticket queries rely on.
	EnsureIndexes(ctx context.Context) error

	// RecordEvent saves a ticket lifecycle event.
	RecordEvent(ctx context.Context, event *entities.TicketEvent) error

	// ChannelEvents gets the events of a ticket channel, oldest first.
	ChannelEvents(ctx context.Context, guildID, channelID string) ([]*entities.TicketEvent, error)
}

type ticketDal struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewTicketDal creates a new ticket data access layer.
func NewTicketDal(logger *slog.Logger, client *mongo.Client) TicketDal {
	l := logger.With(slog.String(logging.KeyDal, ticketDalName))

	if client == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &ticketDal{
		l:      l,
		client: client,
	}
}

func (d *ticketDal) collection() *mongo.Collection {
	return d.client.Database(mongoDatabase).Collection(ticketEventsCollection)
}

func (d *ticketDal) EnsureIndexes(ctx context.Context) error {
	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "ensure_indexes", mongoDatabase, ticketEventsCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "ensure_indexes", mongoDatabase, ticketEventsCollection))
	defer t.ObserveDuration()

	name, err := d.collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "guild_id", Value: 1},
			{Key: "channel_id", Value: 1},
			{Key: "created_at", Value: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("error creating ticket event index: %w", err)
	}

	d.l.Debug("Ensured ticket event index", slog.String("index", name))
	return nil
}

func (d *ticketDal) RecordEvent(ctx context.Context, event *entities.TicketEvent) error {
	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "record_event", mongoDatabase, ticketEventsCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "record_event", mongoDatabase, ticketEventsCollection))
	defer t.ObserveDuration()

	if _, err := d.collection().InsertOne(ctx, event); err != nil {
		return fmt.Errorf("error inserting ticket event: %w", err)
	}
	return nil
}

func (d *ticketDal) ChannelEvents(ctx context.Context, guildID, channelID string) ([]*entities.TicketEvent, error) {
	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "channel_events", mongoDatabase, ticketEventsCollection).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "channel_events", mongoDatabase, ticketEventsCollection))
	defer t.ObserveDuration()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(historyLimit)

	cursor, err := d.collection().Find(ctx, bson.M{
		"guild_id":   guildID,
		"channel_id": channelID,
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding ticket events: %w", err)
	}

	events := make([]*entities.TicketEvent, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("error decoding ticket events: %w", err)
	}
	return events, nil
}
