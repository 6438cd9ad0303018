package main

import (
	"fmt"
	"strings"

	"github.com/DiscordGophers/dr-manual/outline"
	"github.com/diamondburned/arikawa/v3/discord"
)

const (
	sectionLimit = 2800
	matchLimit   = 10

	accentColor = 0x007D9C
)

func sectionEmbed(title string, s *outline.Section) discord.Embed {
	md, _ := s.Render(sectionLimit)
	if md == "" {
		md = "*This section is empty*"
	}
	return discord.Embed{
		Title:       fmt.Sprintf("%s: %s", title, s.Heading),
		Description: md,
		Color:       accentColor,
	}
}

func matchesEmbed(query string, sections []*outline.Section) discord.Embed {
	var b strings.Builder
	for i, s := range sections {
		if i == matchLimit {
			fmt.Fprintf(&b, "*%d more results omitted*", len(sections)-matchLimit)
			break
		}
		b.WriteString(s.Match())
	}
	return discord.Embed{
		Title:       fmt.Sprintf("Results for %q", query),
		Description: b.String() + "\nSearch for a full heading to view its contents.",
		Color:       accentColor,
	}
}

func failEmbed(title, description string) discord.Embed {
	return discord.Embed{
		Title:       title,
		Description: description,
		Color:       0xEE0000,
	}
}
