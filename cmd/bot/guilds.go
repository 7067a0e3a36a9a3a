package main

import (
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/swig/pkg/logging"
)

func guildJoinedHandler(a IApp) func(s *discordgo.Session, g *discordgo.GuildCreate) {
	return func(_ *discordgo.Session, g *discordgo.GuildCreate) {
		a.Log().Info("Joined guild",
			slog.String(logging.KeyGuild, g.ID),
			slog.String("name", g.Name),
		)

		// Increment the total number of guilds.
		TotalDiscordGuilds.Inc()
	}
}

func guildLeaveHandler(a IApp) func(s *discordgo.Session, g *discordgo.GuildDelete) {
	return func(_ *discordgo.Session, g *discordgo.GuildDelete) {
		// Outages are reported as deletes too, but the guild is only gone when it is no longer unavailable.
		if g.Unavailable {
			a.Log().Warn("Guild became unavailable", slog.String(logging.KeyGuild, g.ID))
			return
		}

		a.Log().Info("Left guild", slog.String(logging.KeyGuild, g.ID))

		// Decrement the total number of guilds.
		TotalDiscordGuilds.Dec()
	}
}
