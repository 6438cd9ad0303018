package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

const warningLimit = 1500

func (b *botState) handleReload(e *gateway.InteractionCreateEvent, _ *discord.CommandInteraction) {
	log.Printf("%s used reload", e.User.Tag())

	if !b.canReload(e) {
		b.state.RespondInteraction(e.ID, e.Token, api.InteractionResponse{
			Type: api.MessageInteractionWithSource,
			Data: &api.InteractionResponseData{
				Flags:  api.EphemeralResponse,
				Embeds: &[]discord.Embed{failEmbed("Error", "You are not allowed to reload the manual.")},
			},
		})
		return
	}

	data := api.InteractionResponse{
		Type: api.DeferredMessageInteractionWithSource,
		Data: &api.InteractionResponseData{Flags: api.EphemeralResponse},
	}
	if err := b.state.RespondInteraction(e.ID, e.Token, data); err != nil {
		log.Println(fmt.Errorf("could not send interaction callback, %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var embed discord.Embed
	res, err := b.reload(ctx)
	if err != nil {
		embed = failEmbed("Error", fmt.Sprintf("Could not reload the manual: `%v`", err))
	} else {
		warnings, _ := warningList(res.Warnings, warningLimit)
		embed = discord.Embed{
			Title:       "Success",
			Description: fmt.Sprintf("Reloaded **%s**: %s\n\n%s", b.cfg.Name, importStats(res), warnings),
			Color:       accentColor,
		}
	}

	if _, err := b.state.EditInteractionResponse(e.AppID, e.Token, api.EditInteractionResponseData{
		Embeds: &[]discord.Embed{embed},
	}); err != nil {
		log.Printf("could not edit reload response: %v", err)
	}
}

// canReload allows members holding a reload role and administrators.
func (b *botState) canReload(e *gateway.InteractionCreateEvent) bool {
	if e.Member == nil {
		return false
	}
	for _, role := range e.Member.RoleIDs {
		if b.cfg.Permissions.Reload[role] {
			return true
		}
	}

	perms, err := b.state.Permissions(e.ChannelID, e.User.ID)
	if err != nil {
		return false
	}
	return perms.Has(discord.PermissionAdministrator)
}
