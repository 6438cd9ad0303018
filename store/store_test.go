package store

import (
	"path/filepath"
	"testing"

	"github.com/DiscordGophers/dr-manual/document"
	"github.com/DiscordGophers/dr-manual/element"
	"github.com/DiscordGophers/dr-manual/richtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "manuals.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testDocument(t *testing.T) *document.Document {
	t.Helper()
	raw, err := richtext.FromHTML(`<p>Press <b>save</b> <a href="https://example.com">often</a>.</p>`)
	require.NoError(t, err)

	list, err := element.Wrap(element.OrderedList, []element.Info{
		element.Leaf{Element: element.ListItem, State: element.RichTextState{Value: raw}},
	})
	require.NoError(t, err)

	doc := &document.Document{
		Items: map[int]*document.Item{
			1: {ID: 1, Type: element.Heading, State: element.HeadingState{Level: 1, Value: "Paint"}},
			2: {ID: 2, Type: element.Heading, State: element.HeadingState{Level: 2, Value: "Version 2"}},
			3: {ID: 3, Type: element.Heading, State: element.HeadingState{Level: 1, Value: "Introduction"}},
		},
		Ordering:   []document.Ref{{ItemID: 3, ElementType: element.Heading}},
		NextItemID: 4,
	}
	doc.Add(list, true)
	doc.Add([]element.Info{element.Leaf{
		Element: element.Code,
		State:   element.CodeState{Language: "go", Value: "x := 1"},
	}}, false)
	require.NoError(t, doc.Validate())
	return doc
}

func TestSaveLoad(t *testing.T) {
	s := setupTestStore(t)
	doc := testDocument(t)

	require.NoError(t, s.Save("paint", doc))

	loaded, err := s.Load("paint")
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
	assert.Len(t, loaded.Ordering, 5)
	assert.Len(t, loaded.Items, 7)
}

func TestSaveReplaces(t *testing.T) {
	s := setupTestStore(t)
	doc := testDocument(t)
	require.NoError(t, s.Save("paint", doc))

	require.NoError(t, doc.Remove(4))
	require.NoError(t, s.Save("paint", doc))

	loaded, err := s.Load("paint")
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
	assert.Len(t, loaded.Ordering, 2)

	var count int64
	require.NoError(t, s.DB.Model(&Item{}).Count(&count).Error)
	assert.EqualValues(t, 4, count)
}

func TestListDelete(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Save("sculpt", document.New()))
	require.NoError(t, s.Save("paint", testDocument(t)))

	names, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"paint", "sculpt"}, names)

	require.NoError(t, s.Delete("paint"))
	assert.ErrorIs(t, s.Delete("paint"), ErrNotFound)

	_, err = s.Load("paint")
	assert.ErrorIs(t, err, ErrNotFound)

	empty, err := s.Load("sculpt")
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Empty(t, empty.Ordering)
	assert.Equal(t, 1, empty.NextItemID)
}
