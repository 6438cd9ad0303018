// Package outline folds a manual document into sections by heading and
// indexes them for keyword search.
package outline

import (
	"strings"
	"unicode"

	"github.com/DiscordGophers/dr-manual/document"
	"github.com/DiscordGophers/dr-manual/element"
	"github.com/DiscordGophers/dr-manual/richtext"
)

// MaxLevel is the deepest heading level that opens a section. Deeper
// headings are kept as content.
const MaxLevel = 4

type Manual struct {
	Title    string
	Sections []*Section
	Headings map[string]*Section

	keywords map[string]map[*Section]struct{}
	Keywords map[string][]*Section
}

type Section struct {
	Level    int
	Heading  string
	Content  []Note
	Sections []*Section
}

// Build folds the ordering of doc into sections. Content placed before the
// first heading goes into a section named after the manual.
func Build(title string, doc *document.Document) (*Manual, error) {
	nodes, err := doc.Tree()
	if err != nil {
		return nil, err
	}

	m := &Manual{
		Title:    title,
		Headings: make(map[string]*Section),
		keywords: make(map[string]map[*Section]struct{}),
		Keywords: make(map[string][]*Section),
	}

	var stack []*Section
	current := func() *Section {
		if len(stack) == 0 {
			s := &Section{Level: 1, Heading: title}
			m.Sections = append(m.Sections, s)
			m.Headings[strings.ToLower(title)] = s
			m.addKeywords(title, s)
			stack = append(stack, s)
		}
		return stack[len(stack)-1]
	}

	for _, n := range nodes {
		if h, ok := n.Item.State.(element.HeadingState); ok && n.Leaf() && h.Level <= MaxLevel {
			for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
				stack = stack[:len(stack)-1]
			}

			s := &Section{Level: h.Level, Heading: h.Value}
			if len(stack) == 0 {
				m.Sections = append(m.Sections, s)
			} else {
				parent := stack[len(stack)-1]
				parent.Sections = append(parent.Sections, s)
			}
			stack = append(stack, s)

			if _, ok := m.Headings[strings.ToLower(h.Value)]; !ok {
				m.Headings[strings.ToLower(h.Value)] = s
			}
			m.addKeywords(h.Value, s)
			continue
		}

		note := toNote(n)
		if note == nil {
			continue
		}
		s := current()
		s.Content = append(s.Content, note)
		m.addKeywords(plain(note), s)
	}

	m.keywords = nil
	return m, nil
}

// Lookup returns the section with the given heading, ignoring case.
func (m *Manual) Lookup(heading string) (*Section, bool) {
	s, ok := m.Headings[strings.ToLower(strings.TrimSpace(heading))]
	return s, ok
}

func (m *Manual) addKeywords(text string, s *Section) {
	for _, key := range words(text) {
		val := m.keywords[key]
		if val == nil {
			m.keywords[key] = make(map[*Section]struct{})
		}

		if _, ok := m.keywords[key][s]; ok {
			continue
		}

		m.keywords[key][s] = struct{}{}
		m.Keywords[key] = append(m.Keywords[key], s)
	}
}

// words splits text into lower-cased words, dropping punctuation.
func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func toNote(n *document.Node) Note {
	if !n.Leaf() {
		return container(n)
	}

	switch s := n.Item.State.(type) {
	case element.HeadingState:
		return Heading{Level: s.Level, Text: s.Value}
	case element.RichTextState:
		return Text{Value: s.Value}
	case element.CodeState:
		return Code{Language: s.Language, Value: s.Value}
	case element.SingleImageState:
		return Image{Sources: []string{s.Source}, Caption: s.Caption}
	case element.SideBySideImageState:
		return Image{Sources: []string{s.LeftSource, s.RightSource}, Caption: s.Caption}
	case element.SidebarNoteState:
		return Aside{Title: s.Title, Content: s.Content}
	case element.ToolboxState:
		return Tools(s.Value)
	case element.KeyboardShortcutState:
		sc := Shortcut{Title: s.Title, Content: s.Content}
		if s.Type != element.NoShortcut {
			sc.Keys = s.Shortcuts
		}
		return sc
	}
	// raw HTML has nothing to show in a chat message
	return nil
}

func container(n *document.Node) Note {
	switch n.Item.Type {
	case element.UnorderedList, element.OrderedList, element.InstructionList:
		l := List{Ordered: n.Item.Type != element.UnorderedList}
		for _, c := range n.Children {
			if note := toNote(c); note != nil {
				l.Items = append(l.Items, note)
			}
		}
		return l

	case element.Table:
		var t Table
		for _, row := range n.Children {
			t.Rows = append(t.Rows, tableRow(row))
		}
		return t
	}
	return nil
}

func tableRow(n *document.Node) Row {
	var r Row
	header := len(n.Children) > 0
	for _, cell := range n.Children {
		if cell.Item.Type != element.TableHeader {
			header = false
		}

		var parts []string
		for _, c := range cell.Children {
			if note := toNote(c); note != nil {
				parts = append(parts, plain(note))
			}
		}
		r.Cells = append(r.Cells, strings.Join(parts, " "))
	}
	r.Header = header
	return r
}

// plain is the searchable text of a note.
func plain(note Note) string {
	switch v := note.(type) {
	case Heading:
		return v.Text
	case Text:
		return richtext.PlainText(v.Value)
	case Code:
		return v.Value
	case Image:
		return v.Caption
	case Aside:
		return v.Title + "\n" + richtext.PlainText(v.Content)
	case Tools:
		var b strings.Builder
		for _, t := range v {
			b.WriteString(t.Name + " " + t.Description + "\n")
		}
		return b.String()
	case Shortcut:
		return v.Title + "\n" + richtext.PlainText(v.Content)
	case List:
		var parts []string
		for _, item := range v.Items {
			parts = append(parts, plain(item))
		}
		return strings.Join(parts, "\n")
	case Table:
		var parts []string
		for _, r := range v.Rows {
			parts = append(parts, strings.Join(r.Cells, " "))
		}
		return strings.Join(parts, "\n")
	}
	return ""
}
