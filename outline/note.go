package outline

import (
	"strconv"
	"strings"

	"github.com/DiscordGophers/dr-manual/element"
	"github.com/DiscordGophers/dr-manual/richtext"
)

// Note is a piece of section content that can be shown in a message.
type Note interface {
	Markdown() string
}

type Heading struct {
	Level int
	Text  string
}

type Text struct {
	Value richtext.Raw
}

type List struct {
	Ordered bool
	Items   []Note
}

type Code struct {
	Language string
	Value    string
}

type Image struct {
	Sources []string
	Caption string
}

// Aside is a sidebar note.
type Aside struct {
	Title   string
	Content richtext.Raw
}

type Tools []element.ToolboxItem

type Shortcut struct {
	Title   string
	Content richtext.Raw
	Keys    [][]element.Key
}

type Table struct {
	Rows []Row
}

type Row struct {
	Header bool
	Cells  []string
}

func (h Heading) Markdown() string {
	switch h.Level {
	case 2:
		return "__**" + h.Text + "**__"
	case 3:
		return "__" + h.Text + "__"
	}
	return "**" + h.Text + "**"
}

func (t Text) Markdown() string {
	return richtext.Markdown(t.Value)
}

const bullet = "  • "

func (l List) prefix(n int) string {
	if l.Ordered {
		return strconv.Itoa(n) + ". "
	}
	return bullet
}

func (l List) Markdown() string {
	switch len(l.Items) {
	case 0:
		return ""
	case 1:
		return l.prefix(1) + l.Items[0].Markdown()
	}

	var b strings.Builder

	b.WriteString(l.prefix(1))
	b.WriteString(l.Items[0].Markdown())

	i := 2
	for _, n := range l.Items[1:] {
		b.WriteRune('\n')
		b.WriteString(l.prefix(i))
		b.WriteString(n.Markdown())
		i++
	}

	return b.String()
}

func (c Code) Markdown() string {
	return "```" + c.Language + "\n" + c.Value + "\n```"
}

func (i Image) Markdown() string {
	if i.Caption == "" {
		return "*[image: " + strings.Join(i.Sources, ", ") + "]*"
	}
	return "*[image: " + i.Caption + "]*"
}

func (a Aside) Markdown() string {
	lines := strings.Split(richtext.Markdown(a.Content), "\n")
	if a.Title != "" {
		lines = append([]string{"**" + a.Title + "**"}, lines...)
	}
	return "> " + strings.Join(lines, "\n> ")
}

func (t Tools) Markdown() string {
	var b strings.Builder
	for i, tool := range t {
		if i > 0 {
			b.WriteRune('\n')
		}
		b.WriteString(bullet + "**" + tool.Name + "** " + tool.Description)
	}
	return b.String()
}

func (s Shortcut) Markdown() string {
	var b strings.Builder
	b.WriteString("**" + s.Title + "**")

	var sequences []string
	for _, keys := range s.Keys {
		if len(keys) == 0 {
			continue
		}
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = "`" + string(k) + "`"
		}
		sequences = append(sequences, strings.Join(parts, "+"))
	}
	if len(sequences) > 0 {
		b.WriteString(" " + strings.Join(sequences, " / "))
	}

	if content := richtext.Markdown(s.Content); content != "" {
		b.WriteString("\n" + content)
	}
	return b.String()
}

func (t Table) Markdown() string {
	var b strings.Builder
	for i, r := range t.Rows {
		if i > 0 {
			b.WriteRune('\n')
		}
		cells := r.Cells
		if r.Header {
			cells = make([]string, len(r.Cells))
			for j, c := range r.Cells {
				cells[j] = "**" + c + "**"
			}
		}
		b.WriteString(strings.Join(cells, " | "))
	}
	return b.String()
}
