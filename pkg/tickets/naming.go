package tickets

import "strings"

// ChannelPrefix is the prefix of every ticket channel name.
const ChannelPrefix = "ticket-"

// ChannelName returns the name of the ticket channel owned by the requester.
func ChannelName(requesterID string) string {
	return ChannelPrefix + requesterID
}

// ParseChannelName returns the requester that owns the ticket channel with the given name.
func ParseChannelName(name string) (requesterID string, ok bool) {
	requesterID, ok = strings.CutPrefix(name, ChannelPrefix)
	if !ok || requesterID == "" {
		return "", false
	}
	return requesterID, true
}
