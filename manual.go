package main

import (
	"fmt"
	"log"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

// manualResponse answers a /manual query.
func (b *botState) manualResponse(query string) (discord.Embed, bool) {
	if len(query) < 3 || len(query) > 40 {
		return failEmbed("Error", "Your query must be between 3 and 40 characters."), true
	}

	m := b.index()
	if m == nil {
		return failEmbed("Error", "The manual has not been loaded yet."), true
	}

	sections := m.Search(query)
	switch len(sections) {
	case 0:
		return failEmbed("Error", fmt.Sprintf("No sections were found for %q", query)), true
	case 1:
		return sectionEmbed(m.Title, sections[0]), false
	}
	return matchesEmbed(query, sections), true
}

func (b *botState) handleManual(e *gateway.InteractionCreateEvent, d *discord.CommandInteraction) {
	// only arg and required, always present
	query := d.Options[0].String()

	log.Printf("%s used manual(%q)", e.User.Tag(), query)

	embed, ephemeral := b.manualResponse(query)

	data := &api.InteractionResponseData{
		Embeds: &[]discord.Embed{embed},
	}
	if ephemeral {
		data.Flags = api.EphemeralResponse
	}

	if err := b.state.RespondInteraction(e.ID, e.Token, api.InteractionResponse{
		Type: api.MessageInteractionWithSource,
		Data: data,
	}); err != nil {
		log.Printf("Could not respond to manual(%q): %v", query, err)
	}
}
