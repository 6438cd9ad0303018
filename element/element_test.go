package element

import (
	"testing"

	"github.com/DiscordGophers/dr-manual/richtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanced(t *testing.T) {
	heading := Leaf{Heading, HeadingState{Level: 1, Value: "x"}}

	cases := []struct {
		name  string
		items []Info
		ok    bool
	}{
		{"empty", nil, true},
		{"leaves", []Info{heading, heading}, true},
		{"nested", []Info{
			Meta{Table, Open}, Meta{TableRow, Open}, Meta{TableCell, Open},
			heading,
			Meta{TableCell, Close}, Meta{TableRow, Close}, Meta{Table, Close},
		}, true},
		{"crossed", []Info{
			Meta{Table, Open}, Meta{TableRow, Open}, Meta{Table, Close}, Meta{TableRow, Close},
		}, false},
		{"left open", []Info{Meta{UnorderedList, Open}, heading}, false},
		{"stray close", []Info{heading, Meta{OrderedList, Close}}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Balanced(c.items)
			if c.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrUnbalanced)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	items, err := Wrap(InstructionList, []Info{Leaf{ListItem, RichTextState{richtext.Empty()}}})
	require.NoError(t, err)
	assert.Equal(t, []Info{
		Meta{InstructionList, Open},
		Leaf{ListItem, RichTextState{richtext.Empty()}},
		Meta{InstructionList, Close},
	}, items)

	_, err = Wrap(Heading, nil)
	assert.ErrorIs(t, err, ErrNotMeta)
}

func TestNewLeaf(t *testing.T) {
	_, err := NewLeaf(ListItem, RichTextState{})
	assert.NoError(t, err)

	_, err = NewLeaf(Code, HeadingState{})
	assert.ErrorIs(t, err, ErrStateMismatch)

	_, err = NewLeaf(Table, HeadingState{})
	assert.ErrorIs(t, err, ErrNotLeaf)

	assert.False(t, Accepts(Heading, nil))
}

func TestTypes(t *testing.T) {
	meta := 0
	for _, typ := range Types {
		assert.True(t, typ.Valid())
		if typ.IsMeta() {
			meta++
			continue
		}
		s, err := Default(typ)
		require.NoError(t, err, typ)
		assert.True(t, Accepts(typ, s), typ)
	}
	assert.Equal(t, 7, meta)
	assert.False(t, Type("Paragraph").Valid())
}

func TestDefaultKeyboardShortcut(t *testing.T) {
	s, err := Default(KeyboardShortcut)
	require.NoError(t, err)
	assert.Equal(t, [][]Key{{"none"}, {"none"}}, s.(KeyboardShortcutState).Shortcuts)

	_, err = Default(TableRow)
	assert.ErrorIs(t, err, ErrNotLeaf)
}

func TestDecodeState(t *testing.T) {
	s, err := DecodeState(KeyboardShortcut, []byte(`{
		"title": "Undo",
		"content": {"blocks": [], "entityMap": {}},
		"shortcuts": [["ctrl", "z"], ["cmd", "z"]],
		"type": "multi-shortcut"
	}`))
	require.NoError(t, err)
	assert.Equal(t, KeyboardShortcutState{
		Title:     "Undo",
		Content:   richtext.Raw{Blocks: []richtext.Block{}, EntityMap: map[int]richtext.Entity{}},
		Shortcuts: [][]Key{{"ctrl", "z"}, {"cmd", "z"}},
		Type:      MultiShortcut,
	}, s)

	s, err = DecodeState(SingleImage, []byte(`{"source":"a.png","className":"side-image-small"}`))
	require.NoError(t, err)
	assert.Equal(t, SingleImageState{Source: "a.png", ClassName: SideImageSmall}, s)

	_, err = DecodeState(Table, []byte(`{}`))
	assert.Error(t, err)

	_, err = DecodeState(Code, []byte(`{"value": 3}`))
	assert.Error(t, err)
}

func TestImageClasses(t *testing.T) {
	assert.True(t, SidebarIcon.ValidSingle())
	assert.False(t, SidebarIcon.ValidSideBySide())
	assert.True(t, SideBySideImageSmall.ValidSideBySide())
	assert.False(t, ImageClass("sidebyside-image-medium").ValidSideBySide())
}
