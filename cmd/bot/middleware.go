package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/swig/pkg/logging"
	"github.com/Jacobbrewer1/swig/pkg/messages"
	"github.com/Jacobbrewer1/swig/pkg/request"
	"github.com/Jacobbrewer1/swig/pkg/tickets"
	"github.com/gorilla/mux"
)

// interactionTimeout bounds the platform calls made while handling a single interaction.
const interactionTimeout = 10 * time.Second

const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// interactionProcessor handles a single slash command or button press. It responds to the interaction itself on
// success; a returned error is turned into a private reply by interactionHandler.
type interactionProcessor func(ctx context.Context, a IApp, i *discordgo.InteractionCreate) error

type Controller func(w http.ResponseWriter, r *http.Request)

func middlewareHttp(a IApp, handler Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		cw := request.NewClientWriter(w)

		// Recover from any panics that occur in the handler.
		defer func() {
			if rec := recover(); rec != nil {
				a.Log().Error("Panic in handler",
					slog.String(logging.KeyError, fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				request.Encode(a.Log(), cw, http.StatusInternalServerError, request.NewMessage(request.ErrInternalServer.Error()))
			}
		}()

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}

		defer func() {
			// The status code is only known once the handler has run.
			status := fmt.Sprintf("%d", cw.StatusCode())
			HttpTotalRequests.WithLabelValues(path, r.Method, status).Inc()
			HttpRequestDuration.WithLabelValues(path, r.Method, status).Observe(time.Since(now).Seconds())
		}()

		handler(cw, r)
	}
}

// interactionKey returns the command name or button custom ID of the interaction, and whether it is a button.
func interactionKey(i *discordgo.InteractionCreate) (key string, button bool, ok bool) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return i.ApplicationCommandData().Name, false, true
	case discordgo.InteractionMessageComponent:
		return i.MessageComponentData().CustomID, true, true
	}
	return "", false, false
}

// interactionHandler routes slash commands by name and buttons by custom ID.
func interactionHandler(a IApp, commands, buttons map[string]interactionProcessor) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		key, button, ok := interactionKey(i)
		if !ok {
			return
		}

		l := a.Log().With(
			slog.String(logging.KeyCommand, key),
			slog.String(logging.KeyGuild, i.GuildID),
			slog.String(logging.KeyChannel, i.ChannelID),
		)
		l.Debug("Handling interaction")

		controllers := commands
		if button {
			controllers = buttons
		}

		processor, found := controllers[key]
		if !found {
			// Buttons from other bots or retired panels end up here.
			l.Warn("No processor found for interaction")
			if err := respondError(a, i); err != nil {
				l.Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
			}
			return
		}

		start := time.Now()
		defer func() {
			DiscordCommandDuration.WithLabelValues(key).Observe(time.Since(start).Seconds())
		}()

		defer func() {
			if rec := recover(); rec != nil {
				l.Error("Panic in interaction processor",
					slog.String(logging.KeyError, fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				TicketOperations.WithLabelValues(key, outcomeError).Inc()
				if err := respondError(a, i); err != nil {
					l.Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
				}
			}
		}()

		// Every ticket operation needs the guild and the invoking member's roles.
		if i.GuildID == "" || i.Member == nil || i.Member.User == nil {
			TicketOperations.WithLabelValues(key, outcomeRejected).Inc()
			if err := respondEphemeral(a, i, messages.ErrGuildOnly); err != nil {
				l.Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
			}
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
		defer cancel()

		err := processor(ctx, a, i)
		if err == nil {
			TicketOperations.WithLabelValues(key, outcomeOK).Inc()
			return
		}

		content, expected := errorResponse(err)
		if expected {
			TicketOperations.WithLabelValues(key, outcomeRejected).Inc()
			l.Debug("Interaction rejected", slog.String(logging.KeyError, err.Error()))
		} else {
			TicketOperations.WithLabelValues(key, outcomeError).Inc()
			l.Error("Error processing interaction", slog.String(logging.KeyError, err.Error()))
		}

		if err := respondEphemeral(a, i, content); err != nil {
			l.Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
		}
	}
}

// errorResponse maps an error to the private reply shown to the user. The boolean reports whether the error is an
// expected outcome of the operation rather than a failure.
func errorResponse(err error) (string, bool) {
	var (
		alreadyOpen *tickets.AlreadyOpenError
		setupErr    *tickets.SetupError
	)
	switch {
	case errors.As(err, &alreadyOpen):
		return fmt.Sprintf(messages.TicketAlreadyOpen, alreadyOpen.Channel.ID), true
	case errors.As(err, &setupErr):
		// The admin needs to know which categories now exist before running setup again.
		return fmt.Sprintf(messages.SetupIncomplete, categoryList(setupErr.Created)), false
	case errors.Is(err, tickets.ErrForbidden):
		return messages.ErrForbidden, true
	case errors.Is(err, tickets.ErrRateLimited):
		return messages.ErrRateLimited, true
	case errors.Is(err, tickets.ErrClosedCategoryMissing):
		return messages.ErrClosedCategoryMissing, true
	case errors.Is(err, tickets.ErrSupportCategoryMissing):
		return messages.ErrSupportCategoryMissing, true
	case errors.Is(err, tickets.ErrHistoryDisabled):
		return messages.HistoryDisabled, true
	}
	return messages.ErrUserErrorProcessing, false
}
