package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/swig/pkg/messages"
	"github.com/Jacobbrewer1/swig/pkg/tickets"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	l       *slog.Logger
	s       *discordgo.Session
	tickets *tickets.Manager
}

func newTestApp() *testApp {
	return &testApp{l: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))}
}

func (a *testApp) Session() *discordgo.Session { return a.s }

func (a *testApp) Log() *slog.Logger { return a.l }

func (a *testApp) Tickets() *tickets.Manager { return a.tickets }

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     string
		expected bool
	}{
		{
			name:     "already open",
			err:      fmt.Errorf("error opening ticket: %w", &tickets.AlreadyOpenError{Channel: &discordgo.Channel{ID: "42"}}),
			want:     "You already have an open ticket: <#42>",
			expected: true,
		},
		{
			name:     "forbidden",
			err:      fmt.Errorf("error closing ticket: %w", tickets.ErrForbidden),
			want:     messages.ErrForbidden,
			expected: true,
		},
		{
			name:     "rate limited",
			err:      tickets.ErrRateLimited,
			want:     messages.ErrRateLimited,
			expected: true,
		},
		{
			name:     "closed category missing",
			err:      fmt.Errorf("error closing ticket: %w", tickets.ErrClosedCategoryMissing),
			want:     "❌ Closed category not found.",
			expected: true,
		},
		{
			name:     "support category missing",
			err:      tickets.ErrSupportCategoryMissing,
			want:     "❌ Support category not found.",
			expected: true,
		},
		{
			name:     "history disabled",
			err:      tickets.ErrHistoryDisabled,
			want:     messages.HistoryDisabled,
			expected: true,
		},
		{
			name: "setup failed partway",
			err: fmt.Errorf("error setting up ticket categories: %w", &tickets.SetupError{
				Created: []string{"Package Purchase"},
				Err:     errors.New("missing permissions"),
			}),
			want:     "❌ Setup failed. Created before the failure: Package Purchase",
			expected: false,
		},
		{
			name:     "setup failed first",
			err:      &tickets.SetupError{Err: errors.New("missing permissions")},
			want:     "❌ Setup failed. Created before the failure: none",
			expected: false,
		},
		{
			name:     "unknown",
			err:      errors.New("boom"),
			want:     messages.ErrUserErrorProcessing,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, expected := errorResponse(tt.err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.expected, expected)
		})
	}
}

func TestInteractionKey(t *testing.T) {
	cmd := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: TicketCloseCmdName},
	}}
	key, button, ok := interactionKey(cmd)
	require.True(t, ok)
	require.False(t, button)
	require.Equal(t, TicketCloseCmdName, key)

	press := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent,
		Data: discordgo.MessageComponentInteractionData{CustomID: tickets.OpenTicketButtonID},
	}}
	key, button, ok = interactionKey(press)
	require.True(t, ok)
	require.True(t, button)
	require.Equal(t, tickets.OpenTicketButtonID, key)

	ping := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{Type: discordgo.InteractionPing}}
	_, _, ok = interactionKey(ping)
	require.False(t, ok)
}

func TestMiddlewareHttp(t *testing.T) {
	a := newTestApp()

	h := middlewareHttp(a, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusTeapot, w.Code)
}

func TestMiddlewareHttp_Panic(t *testing.T) {
	a := newTestApp()

	h := middlewareHttp(a, func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"Message":"internal server error"}`, w.Body.String())
}
