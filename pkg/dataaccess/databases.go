package dataaccess

const (
	// mongoDatabase is the database that the audit ledger lives in.
	mongoDatabase = "swig"

	// ticketEventsCollection is the collection of ticket lifecycle events.
	ticketEventsCollection = "ticket_events"

	// lockKeyPrefix namespaces requester locks in Redis.
	lockKeyPrefix = "swig:lock:"
)
