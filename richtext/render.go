package richtext

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

var blockTags = map[BlockType]string{
	Unstyled:          "p",
	HeaderOne:         "h1",
	HeaderTwo:         "h2",
	HeaderThree:       "h3",
	HeaderFour:        "h4",
	HeaderFive:        "h5",
	HeaderSix:         "h6",
	UnorderedListItem: "li",
	OrderedListItem:   "li",
	Blockquote:        "blockquote",
	CodeBlock:         "pre",
}

var styleTags = map[Style]string{
	Bold:          "strong",
	Italic:        "em",
	Underline:     "u",
	Code:          "code",
	Strikethrough: "del",
}

var listTags = map[BlockType]string{
	UnorderedListItem: "ul",
	OrderedListItem:   "ol",
}

// ToHTML renders r as an HTML fragment that FromHTML parses back into r.
func ToHTML(r Raw) string {
	var b strings.Builder
	var list BlockType

	for _, block := range r.Blocks {
		if list != "" && block.Type != list {
			b.WriteString("</" + listTags[list] + ">")
			list = ""
		}
		if tag, ok := listTags[block.Type]; ok && list == "" {
			b.WriteString("<" + tag + ">")
			list = block.Type
		}

		tag, ok := blockTags[block.Type]
		if !ok {
			tag = "p"
		}
		b.WriteString("<" + tag + ">")
		writeInline(&b, block, r.EntityMap)
		b.WriteString("</" + tag + ">")
	}
	if list != "" {
		b.WriteString("</" + listTags[list] + ">")
	}
	return b.String()
}

// span is a run of runes sharing the same formatting.
type span struct {
	text []rune
	char
}

func spans(block Block) []span {
	text := []rune(block.Text)
	cs := chars(block)

	var out []span
	for i, r := range text {
		if n := len(out); n > 0 && out[n-1].char == cs[i] {
			out[n-1].text = append(out[n-1].text, r)
			continue
		}
		out = append(out, span{text: []rune{r}, char: cs[i]})
	}
	return out
}

func writeInline(b *strings.Builder, block Block, entities map[int]Entity) {
	ss := spans(block)
	for i := 0; i < len(ss); {
		entity := ss[i].entity
		j := i
		for j < len(ss) && ss[j].entity == entity {
			j++
		}

		e, ok := entities[entity]
		linked := ok && e.Type == LinkEntity
		if linked {
			b.WriteString(`<a href="` + html.EscapeString(e.Data["url"]) + `"`)
			if title, ok := e.Data["title"]; ok {
				b.WriteString(` title="` + html.EscapeString(title) + `"`)
			}
			b.WriteString(">")
		}
		for _, s := range ss[i:j] {
			writeStyled(b, s)
		}
		if linked {
			b.WriteString("</a>")
		}
		i = j
	}
}

func writeStyled(b *strings.Builder, s span) {
	for bit, style := range styles {
		if s.styles.has(bit) {
			b.WriteString("<" + styleTags[style] + ">")
		}
	}
	for i, line := range strings.Split(string(s.text), "\n") {
		if i > 0 {
			b.WriteString("<br>")
		}
		b.WriteString(html.EscapeString(line))
	}
	for bit := len(styles) - 1; bit >= 0; bit-- {
		if s.styles.has(bit) {
			b.WriteString("</" + styleTags[styles[bit]] + ">")
		}
	}
}

// PlainText returns the text of every block, one block per line.
func PlainText(r Raw) string {
	lines := make([]string, len(r.Blocks))
	for i, block := range r.Blocks {
		lines[i] = block.Text
	}
	return strings.Join(lines, "\n")
}

var markdownMarks = map[Style]string{
	Bold:          "**",
	Italic:        "*",
	Underline:     "__",
	Code:          "`",
	Strikethrough: "~~",
}

const bullet = "  • "

// Markdown renders r with Discord flavoured markdown.
func Markdown(r Raw) string {
	var b strings.Builder
	n := 0
	for i, block := range r.Blocks {
		if i > 0 {
			b.WriteRune('\n')
		}
		if block.Type != OrderedListItem {
			n = 0
		}

		switch block.Type {
		case CodeBlock:
			b.WriteString("```\n" + block.Text + "\n```")
			continue
		case UnorderedListItem:
			b.WriteString(bullet)
		case OrderedListItem:
			n++
			b.WriteString(strconv.Itoa(n) + ". ")
		case Blockquote:
			b.WriteString("> ")
		}

		var line strings.Builder
		for _, s := range spans(block) {
			text := string(s.text)
			if e, ok := r.EntityMap[s.entity]; ok && e.Type == LinkEntity {
				text = "[" + text + "](" + e.Data["url"] + ")"
			}
			for bit, style := range styles {
				if s.styles.has(bit) {
					text = markdownMarks[style] + text + markdownMarks[style]
				}
			}
			line.WriteString(text)
		}

		if block.Type != Unstyled && strings.HasPrefix(string(block.Type), "header-") {
			b.WriteString("__**" + line.String() + "**__")
			continue
		}
		b.WriteString(line.String())
	}
	return b.String()
}
