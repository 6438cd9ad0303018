package main

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/DiscordGophers/dr-manual/outline"
	"github.com/DiscordGophers/dr-manual/store"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/utils/httputil"
)

type botState struct {
	cfg   configuration
	state *state.State
	store *store.Store

	mu     sync.RWMutex
	manual *outline.Manual
	items  int
	loaded time.Time
}

func (b *botState) OnCommand(e *gateway.InteractionCreateEvent) {
	if e.GuildID != 0 {
		e.User = &e.Member.User
	}

	switch data := e.Data.(type) {
	case *discord.CommandInteraction:
		switch data.Name {
		case "manual":
			b.handleManual(e, data)
		case "reload":
			b.handleReload(e, data)
		case "info":
			b.handleInfo(e, data)
		}
	}
}

func loadCommands(s *state.State, me discord.UserID, registered map[string]bool) error {
	appID := discord.AppID(me)

	for _, c := range commands {
		if registered[c.Name] {
			continue
		}
		if _, err := s.CreateCommand(appID, c); err != nil {
			var httperr *httputil.HTTPError
			if errors.As(err, &httperr) {
				log.Println(string(httperr.Body))
			}
			return fmt.Errorf("could not register: %s, %w", c.Name, err)
		}
		log.Println("Created command:", c.Name)
	}

	return nil
}

var commands = []api.CreateCommandData{
	{
		Name:        "manual",
		Description: "Search the manual",
		Options: []discord.CommandOption{
			&discord.StringOption{
				OptionName:  "query",
				Description: "Search query (a heading, or words from a section)",
				Required:    true,
			},
		},
	},
	{
		Name:        "reload",
		Description: "Re-import the manual from its source",
	},
	{
		Name:        "info",
		Description: "Generic Bot Info",
	},
}
