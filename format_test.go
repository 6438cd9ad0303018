package main

import (
	"testing"

	"github.com/DiscordGophers/dr-manual/document"
	"github.com/DiscordGophers/dr-manual/element"
	"github.com/DiscordGophers/dr-manual/manual"
	"github.com/stretchr/testify/assert"
)

func TestImportStats(t *testing.T) {
	infos := []element.Info{
		element.Meta{Element: element.UnorderedList, Kind: element.Open},
		element.Leaf{Element: element.ListItem, State: element.RichTextState{}},
		element.Leaf{Element: element.ListItem, State: element.RichTextState{}},
		element.Meta{Element: element.UnorderedList, Kind: element.Close},
		element.Leaf{Element: element.Code, State: element.CodeState{}},
	}
	doc := document.New()
	doc.Add(infos, true)

	res := &manual.Result{Document: doc, Infos: infos, Warnings: []string{"x"}}
	assert.Equal(t, "5 items (1 Code, 2 ListItem, 1 UnorderedList), 1 warning", importStats(res))

	res = &manual.Result{Document: document.New()}
	assert.Equal(t, "0 items (no elements), 0 warnings", importStats(res))
}

func TestWarningList(t *testing.T) {
	cases := []struct {
		name     string
		warnings []string
		limit    int
		want     string
		more     bool
	}{
		{
			name: "none",
			want: "*No warnings*",
		},
		{
			name:     "fits",
			warnings: []string{"a", "b"},
			limit:    100,
			want:     "• a\n• b\n",
		},
		{
			name:     "truncated",
			warnings: []string{"first", "second", "third"},
			limit:    12,
			want:     "• first\n*2 more warnings omitted*",
			more:     true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, more := warningList(c.warnings, c.limit)
			assert.Equal(t, c.want, got)
			assert.Equal(t, c.more, more)
		})
	}
}
