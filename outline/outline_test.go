package outline

import (
	"testing"

	"github.com/DiscordGophers/dr-manual/document"
	"github.com/DiscordGophers/dr-manual/element"
	"github.com/DiscordGophers/dr-manual/richtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heading(level int, value string) element.Info {
	return element.Leaf{Element: element.Heading, State: element.HeadingState{Level: level, Value: value}}
}

func text(t *testing.T, typ element.Type, value string) element.Info {
	raw, err := richtext.FromText(value)
	require.NoError(t, err)
	return element.Leaf{Element: typ, State: element.RichTextState{Value: raw}}
}

func wrap(t *testing.T, typ element.Type, items ...element.Info) []element.Info {
	out, err := element.Wrap(typ, items)
	require.NoError(t, err)
	return out
}

func paintManual(t *testing.T) *Manual {
	raw, err := richtext.FromText("Undoes.")
	require.NoError(t, err)

	var infos []element.Info
	infos = append(infos,
		heading(1, "Introduction"),
		text(t, element.RichText, "Welcome to Paint."),
		heading(2, "Brushes"),
		text(t, element.RichText, "Round brushes paint soft strokes."),
		heading(3, "Brush size"),
		text(t, element.RichText, "Use the slider."),
	)
	infos = append(infos, wrap(t, element.UnorderedList,
		text(t, element.ListItem, "Small"),
		text(t, element.ListItem, "Large"),
	)...)
	infos = append(infos,
		heading(2, "Layers"),
		text(t, element.RichText, "Layers stack paint."),
		element.Leaf{Element: element.KeyboardShortcut, State: element.KeyboardShortcutState{
			Title:     "Undo",
			Content:   raw,
			Shortcuts: [][]element.Key{{"ctrl", "z"}},
			Type:      element.Shortcut,
		}},
		element.Leaf{Element: element.RawHTML, State: element.RawHTMLState{Value: "<custom>hi</custom>"}},
	)

	doc := document.New()
	doc.Add(infos, true)

	m, err := Build("Paint", doc)
	require.NoError(t, err)
	return m
}

func TestBuild(t *testing.T) {
	m := paintManual(t)

	require.Len(t, m.Sections, 1)
	intro := m.Sections[0]
	assert.Equal(t, "Introduction", intro.Heading)
	require.Len(t, intro.Sections, 2)

	brushes, layers := intro.Sections[0], intro.Sections[1]
	assert.Equal(t, "Brushes", brushes.Heading)
	assert.Equal(t, "Layers", layers.Heading)
	require.Len(t, brushes.Sections, 1)
	assert.Equal(t, 3, brushes.Sections[0].Level)

	// raw HTML is dropped
	assert.Len(t, layers.Content, 2)

	s, ok := m.Lookup("  BRUSH SIZE ")
	require.True(t, ok)
	assert.Same(t, brushes.Sections[0], s)
}

func TestBuildContentBeforeHeading(t *testing.T) {
	doc := document.New()
	doc.Add([]element.Info{text(t, element.RichText, "Preface."), heading(2, "Start")}, true)

	m, err := Build("Paint", doc)
	require.NoError(t, err)
	require.Len(t, m.Sections, 1)
	assert.Equal(t, "Paint", m.Sections[0].Heading)
	assert.Len(t, m.Sections[0].Content, 1)
	require.Len(t, m.Sections[0].Sections, 1)
	assert.Equal(t, "Start", m.Sections[0].Sections[0].Heading)
}

func TestBuildUnbalanced(t *testing.T) {
	doc := document.New()
	doc.Add([]element.Info{element.Meta{Element: element.Table, Kind: element.Open}}, true)

	_, err := Build("Paint", doc)
	assert.ErrorIs(t, err, document.ErrUnbalanced)
}

func TestSearch(t *testing.T) {
	m := paintManual(t)

	headings := func(sections []*Section) []string {
		var out []string
		for _, s := range sections {
			out = append(out, s.Heading)
		}
		return out
	}

	cases := []struct {
		query string
		want  []string
	}{
		{"brush size", []string{"Brush size"}},
		{"paint", []string{"Brushes", "Layers", "Introduction"}},
		{"brush", []string{"Brush size"}},
		{"Small", []string{"Brush size"}},
		{"undo", []string{"Layers"}},
		{"nothing here", nil},
		{"   ", nil},
	}

	for _, c := range cases {
		got := headings(m.Search(c.query))
		assert.Equal(t, c.want, got, c.query)
	}
}

func TestRender(t *testing.T) {
	m := paintManual(t)

	size, _ := m.Lookup("brush size")
	md, more := size.Render(2000)
	assert.False(t, more)
	assert.Equal(t, "Use the slider.\n  • Small\n  • Large\n", md)

	layers, _ := m.Lookup("layers")
	md, _ = layers.Render(2000)
	assert.Equal(t, "Layers stack paint.\n**Undo** `ctrl`+`z`\nUndoes.\n", md)

	intro := m.Sections[0]
	md, more = intro.Render(5)
	assert.True(t, more)
	assert.Equal(t, "Welcome to Paint.\n*More documentation omitted*", md)
}

func TestTable(t *testing.T) {
	var infos []element.Info
	header := wrap(t, element.TableRow, wrap(t, element.TableHeader, text(t, element.RichText, "Key"))...)
	row := wrap(t, element.TableRow,
		append(wrap(t, element.TableCell, text(t, element.RichText, "B")),
			wrap(t, element.TableCell, text(t, element.RichText, "Brush"))...)...)
	infos = append(infos, heading(1, "Keys"))
	infos = append(infos, wrap(t, element.Table, append(header, row...)...)...)

	doc := document.New()
	doc.Add(infos, true)
	m, err := Build("Paint", doc)
	require.NoError(t, err)

	require.Len(t, m.Sections[0].Content, 1)
	assert.Equal(t, "**Key**\nB | Brush", m.Sections[0].Content[0].Markdown())
	assert.Equal(t, []string{"Keys"}, func() []string {
		var out []string
		for _, s := range m.Search("brush") {
			out = append(out, s.Heading)
		}
		return out
	}())
}
