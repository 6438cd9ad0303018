package document

import (
	"encoding/json"
	"testing"

	"github.com/DiscordGophers/dr-manual/element"
	"github.com/DiscordGophers/dr-manual/richtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heading(value string) element.Info {
	return element.Leaf{Element: element.Heading, State: element.HeadingState{Level: 2, Value: value}}
}

func listItem(t *testing.T, text string) element.Info {
	raw, err := richtext.FromText(text)
	require.NoError(t, err)
	return element.Leaf{Element: element.ListItem, State: element.RichTextState{Value: raw}}
}

// sample builds: Heading, UL(open), ListItem, ListItem, UL(close), Heading.
func sample(t *testing.T) *Document {
	list, err := element.Wrap(element.UnorderedList, []element.Info{listItem(t, "one"), listItem(t, "two")})
	require.NoError(t, err)

	d := New()
	d.Add([]element.Info{heading("Start")}, true)
	d.Add(list, true)
	d.Add([]element.Info{heading("End")}, true)
	require.NoError(t, d.Validate())
	return d
}

func ids(d *Document) []int {
	var out []int
	for _, ref := range d.Ordering {
		out = append(out, ref.ItemID)
	}
	return out
}

func TestAdd(t *testing.T) {
	d := sample(t)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids(d))
	assert.Equal(t, 7, d.NextItemID)
	assert.Equal(t, element.Open, d.Items[2].Meta)
	assert.Equal(t, element.Close, d.Items[5].Meta)
	assert.Nil(t, d.Items[2].State)
	for _, it := range d.Items {
		assert.False(t, it.Editing)
	}

	added := d.Add([]element.Info{heading("More")}, false)
	assert.Equal(t, []int{7}, added)
	assert.True(t, d.Items[7].Editing)
}

func TestAddSkipsTakenIDs(t *testing.T) {
	d := &Document{Items: map[int]*Item{9: {ID: 9, Type: element.Heading, State: element.HeadingState{}}}}
	added := d.Add([]element.Info{heading("x")}, true)
	assert.Equal(t, []int{10}, added)
	assert.Equal(t, 11, d.NextItemID)
}

func TestInsertAt(t *testing.T) {
	d := sample(t)

	added, err := d.InsertAt(1, []element.Info{heading("Inserted")})
	require.NoError(t, err)
	assert.Equal(t, []int{7}, added)
	assert.Equal(t, []int{1, 7, 2, 3, 4, 5, 6}, ids(d))
	assert.True(t, d.Items[7].Editing)

	_, err = d.InsertAt(100, []element.Info{heading("x")})
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = d.InsertAt(0, []element.Info{element.Meta{Element: element.Table, Kind: element.Open}})
	assert.ErrorIs(t, err, ErrUnbalanced)
	assert.NoError(t, d.Validate())
}

func TestRemove(t *testing.T) {
	t.Run("leaf", func(t *testing.T) {
		d := sample(t)
		require.NoError(t, d.Remove(3))
		assert.Equal(t, []int{1, 2, 4, 5, 6}, ids(d))
		assert.NotContains(t, d.Items, 3)
		assert.NoError(t, d.Validate())
	})

	for _, id := range []int{2, 5} {
		d := sample(t)
		require.NoError(t, d.Remove(id))
		assert.Equal(t, []int{1, 6}, ids(d))
		assert.Len(t, d.Items, 2)
		assert.NoError(t, d.Validate())
	}

	t.Run("unplaced", func(t *testing.T) {
		d := sample(t)
		d.Items[7] = &Item{ID: 7, Type: element.Heading, State: element.HeadingState{}}
		d.NextItemID = 8
		require.NoError(t, d.Remove(7))
		assert.NotContains(t, d.Items, 7)
		assert.Len(t, d.Ordering, 6)
	})

	t.Run("missing", func(t *testing.T) {
		assert.ErrorIs(t, sample(t).Remove(42), ErrNotFound)
	})
}

func TestMove(t *testing.T) {
	d := sample(t)
	require.NoError(t, d.Move(5, 0))
	assert.Equal(t, []int{2, 3, 4, 5, 1, 6}, ids(d))

	require.NoError(t, d.Move(6, 0))
	assert.Equal(t, []int{6, 2, 3, 4, 5, 1}, ids(d))

	require.NoError(t, d.Move(2, 2))
	assert.Equal(t, []int{6, 1, 2, 3, 4, 5}, ids(d))
	assert.NoError(t, d.Validate())

	assert.ErrorIs(t, d.Move(2, 3), ErrOutOfRange)
	assert.ErrorIs(t, d.Move(42, 0), ErrNotFound)
}

func TestUpdate(t *testing.T) {
	d := sample(t)
	require.NoError(t, d.Update(1, element.HeadingState{Level: 3, Value: "Begin"}))
	assert.Equal(t, element.HeadingState{Level: 3, Value: "Begin"}, d.Items[1].State)

	assert.ErrorIs(t, d.Update(1, element.CodeState{}), element.ErrStateMismatch)
	assert.ErrorIs(t, d.Update(2, element.HeadingState{}), element.ErrNotLeaf)
	assert.ErrorIs(t, d.Update(42, element.HeadingState{}), ErrNotFound)

	require.NoError(t, d.SetEditing(3, true))
	assert.True(t, d.Items[3].Editing)
}

func TestValidate(t *testing.T) {
	d := sample(t)
	d.Ordering = append(d.Ordering, Ref{ItemID: 42, ElementType: element.Heading})
	assert.ErrorIs(t, d.Validate(), ErrNotFound)

	d = sample(t)
	d.Ordering[0].ElementType = element.Code
	assert.Error(t, d.Validate())

	d = sample(t)
	d.Ordering = d.Ordering[:4]
	assert.ErrorIs(t, d.Validate(), ErrUnbalanced)

	d = sample(t)
	d.NextItemID = 3
	assert.Error(t, d.Validate())
}

func TestTree(t *testing.T) {
	d := sample(t)
	nodes, err := d.Tree()
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	assert.True(t, nodes[0].Leaf())
	assert.False(t, nodes[1].Leaf())
	assert.Equal(t, element.UnorderedList, nodes[1].Item.Type)
	require.Len(t, nodes[1].Children, 2)
	assert.Equal(t, 3, nodes[1].Children[0].Item.ID)

	var visited []int
	Walk(nodes, func(n *Node, depth int) bool {
		visited = append(visited, n.Item.ID*10+depth)
		return n.Item.ID != 3
	})
	assert.Equal(t, []int{10, 20, 31}, visited)

	d.Ordering = d.Ordering[:3]
	_, err = d.Tree()
	assert.ErrorIs(t, err, ErrUnbalanced)
}

func TestJSON(t *testing.T) {
	d := sample(t)
	d.Items[1].Editing = true

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "elementOrdering")
	assert.JSONEq(t, `{"itemId":2,"editing":false,"elementType":"UnorderedList","metaItemType":"open"}`, string(mustMarshal(t, d.Items[2])))

	var decoded Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *d, decoded)
}

func TestItemUnmarshalErrors(t *testing.T) {
	cases := []string{
		`{"itemId":1,"elementType":"Paragraph","elementState":{}}`,
		`{"itemId":1,"elementType":"Table"}`,
		`{"itemId":1,"elementType":"Heading","metaItemType":"open"}`,
		`{"itemId":1,"elementType":"Heading","elementState":{"level":"one"}}`,
	}
	for _, c := range cases {
		var it Item
		assert.Error(t, json.Unmarshal([]byte(c), &it), c)
	}
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}
