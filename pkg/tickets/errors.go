package tickets

import (
	"errors"
	"fmt"

	"github.com/Jacobbrewer1/discordgo"
)

var (
	// ErrForbidden is returned when the actor does not hold the role an operation requires.
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadyOpen is returned when the requester already has a ticket channel.
	ErrAlreadyOpen = errors.New("ticket already open")

	// ErrClosedCategoryMissing is returned when the configured closed category is not a category in the guild.
	ErrClosedCategoryMissing = errors.New("closed category missing")

	// ErrSupportCategoryMissing is returned when the configured support category is not a category in the guild.
	ErrSupportCategoryMissing = errors.New("support category missing")

	// ErrRateLimited is returned when a requester opens tickets faster than allowed.
	ErrRateLimited = errors.New("rate limited")

	// ErrHistoryDisabled is returned when no audit ledger is configured.
	ErrHistoryDisabled = errors.New("ticket history disabled")
)

// AlreadyOpenError is returned by OpenTicket when the requester already has a ticket channel.
type AlreadyOpenError struct {
	// Channel is the existing ticket channel.
	Channel *discordgo.Channel
}

func (e *AlreadyOpenError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAlreadyOpen, e.Channel.ID)
}

func (e *AlreadyOpenError) Unwrap() error {
	return ErrAlreadyOpen
}

// SetupError is returned by Setup when a category cannot be created. The categories created before the failure
// are left in place.
type SetupError struct {
	// Created are the categories created before the failure, in creation order.
	Created []string

	// Err is the cause of the failure.
	Err error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("error setting up categories after creating %d: %s", len(e.Created), e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}
