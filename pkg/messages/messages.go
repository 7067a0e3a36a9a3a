package messages

// Generic responses.
const (
	// ErrUserErrorProcessing is the response when a command fails for a reason the user cannot fix.
	ErrUserErrorProcessing = "There was an error processing your request. Please try again later."

	// ErrGuildOnly is the response when a command is used outside of a guild.
	ErrGuildOnly = "This command can only be used in a server."

	// ErrForbidden is the response when the user does not hold the required role.
	ErrForbidden = "You do not have permission to use this command."

	// ErrRateLimited is the response when the user is opening tickets too quickly.
	ErrRateLimited = "You are opening tickets too quickly. Please wait a moment and try again."
)

// Ticket lifecycle responses. The verbs take Discord mention arguments.
const (
	// TicketAlreadyOpen is the private response when the user already has a ticket. Takes a channel ID.
	TicketAlreadyOpen = "You already have an open ticket: <#%s>"

	// TicketCreated is the private response when a ticket has been created. Takes a channel ID.
	TicketCreated = "\U0001F39F️ Ticket created: <#%s>"

	// TicketWelcome is the message sent into a new ticket channel. Takes a user ID.
	TicketWelcome = "<@%s>, thanks for reaching out. A staff member will be with you shortly."

	// TicketClaimed is the public announcement of a claim. Takes a user ID.
	TicketClaimed = "<@%s> has claimed this ticket."

	// TicketClosed is the public announcement of a close.
	TicketClosed = "✅ Ticket closed and moved to Closed Tickets."

	// TicketReopened is the public announcement of a reopen.
	TicketReopened = "\U0001F513 Ticket reopened and moved to General Support."

	// ErrClosedCategoryMissing is the private response when the closed category cannot be found.
	ErrClosedCategoryMissing = "❌ Closed category not found."

	// ErrSupportCategoryMissing is the private response when the support category cannot be found.
	ErrSupportCategoryMissing = "❌ Support category not found."
)

// Admin responses.
const (
	// SetupComplete is the private response to the setup command. Takes the created category names.
	SetupComplete = "Setup complete. Created: %s"

	// SetupIncomplete is the private response when setup fails partway. Takes the created category names.
	SetupIncomplete = "❌ Setup failed. Created before the failure: %s"

	// SetupNoneCreated replaces the list of created categories when nothing was created.
	SetupNoneCreated = "none"

	// PanelSent is the private response once the ticket panel has been posted.
	PanelSent = "\U0001F3AB Ticket panel sent!"
)

// History responses.
const (
	// HistoryDisabled is the private response when the audit ledger is not configured.
	HistoryDisabled = "Ticket history is not enabled on this bot."

	// HistoryEmpty is the private response when a channel has no recorded events.
	HistoryEmpty = "No ticket history has been recorded for this channel."

	// HistoryTitle is the title of the history embed.
	HistoryTitle = "Ticket History"

	// HistoryLine is a single event in the history embed. Takes a timestamp, action and user ID.
	HistoryLine = "<t:%d:f> **%s** by <@%s>"
)

// Panel content.
const (
	// PanelTitle is the title of the ticket panel embed.
	PanelTitle = "Swig Management Support Center"

	// PanelDescription is the body of the ticket panel embed.
	PanelDescription = "\U0001F44B Welcome to the MCL Support Center!\n\n" +
		"Need help with something? We've got you covered.\n" +
		"Select a button according to your need and you will get connected with our team."

	// PanelButtonLabel is the label of the open ticket button.
	PanelButtonLabel = "\U0001F39F️ Open Ticket"
)
