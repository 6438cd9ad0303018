// Package document holds the editable state of a manual: items keyed by id
// and the flat ordering that places them in the page.
package document

import (
	"github.com/DiscordGophers/dr-manual/element"
	"github.com/pkg/errors"
)

var (
	ErrNotFound   = errors.New("item not found")
	ErrOutOfRange = errors.New("position out of range")
	ErrUnbalanced = element.ErrUnbalanced
)

// Ref places an item in the document order.
type Ref struct {
	ItemID      int          `json:"itemId"`
	ElementType element.Type `json:"elementType"`
}

// Item is one stored element. Container brackets have a Meta kind and no
// State; content items have a State and no Meta kind.
type Item struct {
	ID      int
	Editing bool
	Type    element.Type
	Meta    element.MetaKind
	State   element.State
}

// Info converts the item back into an element sequence entry.
func (it *Item) Info() element.Info {
	if it.Meta != "" {
		return element.Meta{Element: it.Type, Kind: it.Meta}
	}
	return element.Leaf{Element: it.Type, State: it.State}
}

func newItem(id int, info element.Info, editing bool) *Item {
	it := &Item{ID: id, Editing: editing, Type: info.ElementType()}
	switch v := info.(type) {
	case element.Meta:
		it.Meta = v.Kind
	case element.Leaf:
		it.State = v.State
	}
	return it
}

// Document is the editable manual. Items not referenced by Ordering, such as
// the cover page title and subtitle, are still part of the document.
type Document struct {
	Items      map[int]*Item
	Ordering   []Ref
	NextItemID int
}

// New returns an empty document.
func New() *Document {
	return &Document{
		Items:      map[int]*Item{},
		Ordering:   []Ref{},
		NextItemID: 1,
	}
}

// Add appends infos to the end of the document, preserving their order, and
// returns the ids assigned to them. Imported items start out of edit mode;
// items added interactively start in it.
func (d *Document) Add(infos []element.Info, isImport bool) []int {
	ids, refs := d.create(infos, !isImport)
	d.Ordering = append(d.Ordering, refs...)
	return ids
}

// InsertAt places infos at position pos of the ordering.
func (d *Document) InsertAt(pos int, infos []element.Info) ([]int, error) {
	if pos < 0 || pos > len(d.Ordering) {
		return nil, errors.Wrapf(ErrOutOfRange, "insert at %d of %d", pos, len(d.Ordering))
	}
	if err := element.Balanced(infos); err != nil {
		return nil, err
	}

	ids, refs := d.create(infos, true)
	ordering := make([]Ref, 0, len(d.Ordering)+len(refs))
	ordering = append(ordering, d.Ordering[:pos]...)
	ordering = append(ordering, refs...)
	d.Ordering = append(ordering, d.Ordering[pos:]...)
	return ids, nil
}

func (d *Document) create(infos []element.Info, editing bool) ([]int, []Ref) {
	if d.Items == nil {
		d.Items = map[int]*Item{}
	}
	for id := range d.Items {
		if id >= d.NextItemID {
			d.NextItemID = id + 1
		}
	}

	ids := make([]int, len(infos))
	refs := make([]Ref, len(infos))
	for i, info := range infos {
		id := d.NextItemID
		d.NextItemID++

		d.Items[id] = newItem(id, info, editing)
		ids[i] = id
		refs[i] = Ref{ItemID: id, ElementType: info.ElementType()}
	}
	return ids, refs
}

// Item returns the item with the given id.
func (d *Document) Item(id int) (*Item, error) {
	it, ok := d.Items[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "item %d", id)
	}
	return it, nil
}

// Index returns the position of id in the ordering, or -1.
func (d *Document) Index(id int) int {
	for i, ref := range d.Ordering {
		if ref.ItemID == id {
			return i
		}
	}
	return -1
}

// Update replaces the payload of a content item.
func (d *Document) Update(id int, state element.State) error {
	it, err := d.Item(id)
	if err != nil {
		return err
	}
	if it.Meta != "" {
		return errors.Wrapf(element.ErrNotLeaf, "item %d is a %s bracket", id, it.Type)
	}
	if !element.Accepts(it.Type, state) {
		return errors.Wrapf(element.ErrStateMismatch, "%T for %s item %d", state, it.Type, id)
	}
	it.State = state
	return nil
}

// SetEditing toggles the edit mode of an item.
func (d *Document) SetEditing(id int, editing bool) error {
	it, err := d.Item(id)
	if err != nil {
		return err
	}
	it.Editing = editing
	return nil
}

// Remove deletes an item. Removing either bracket of a container removes the
// whole container with everything inside it.
func (d *Document) Remove(id int) error {
	if _, err := d.Item(id); err != nil {
		return err
	}

	pos := d.Index(id)
	if pos < 0 {
		delete(d.Items, id)
		return nil
	}

	start, end, err := d.span(pos)
	if err != nil {
		return err
	}
	for _, ref := range d.Ordering[start:end] {
		delete(d.Items, ref.ItemID)
	}
	d.Ordering = append(d.Ordering[:start:start], d.Ordering[end:]...)
	return nil
}

// Move relocates an item, or a whole container, so that it starts at
// position to of the ordering as it is once the moved span is taken out.
func (d *Document) Move(id, to int) error {
	pos := d.Index(id)
	if pos < 0 {
		return errors.Wrapf(ErrNotFound, "item %d is not placed", id)
	}
	start, end, err := d.span(pos)
	if err != nil {
		return err
	}

	moved := append([]Ref(nil), d.Ordering[start:end]...)
	rest := append(d.Ordering[:start:start], d.Ordering[end:]...)
	if to < 0 || to > len(rest) {
		return errors.Wrapf(ErrOutOfRange, "move to %d of %d", to, len(rest))
	}

	ordering := make([]Ref, 0, len(d.Ordering))
	ordering = append(ordering, rest[:to]...)
	ordering = append(ordering, moved...)
	d.Ordering = append(ordering, rest[to:]...)
	return nil
}

// span returns the ordering range covered by the item at pos: the item alone,
// or the container from its open to its close bracket.
func (d *Document) span(pos int) (int, int, error) {
	it, err := d.Item(d.Ordering[pos].ItemID)
	if err != nil {
		return 0, 0, err
	}

	switch it.Meta {
	case element.Open:
		depth := 0
		for i := pos; i < len(d.Ordering); i++ {
			switch d.metaAt(i) {
			case element.Open:
				depth++
			case element.Close:
				depth--
			}
			if depth == 0 {
				return pos, i + 1, nil
			}
		}
	case element.Close:
		depth := 0
		for i := pos; i >= 0; i-- {
			switch d.metaAt(i) {
			case element.Close:
				depth++
			case element.Open:
				depth--
			}
			if depth == 0 {
				return i, pos + 1, nil
			}
		}
	default:
		return pos, pos + 1, nil
	}
	return 0, 0, errors.Wrapf(ErrUnbalanced, "item %d", it.ID)
}

func (d *Document) metaAt(pos int) element.MetaKind {
	if it, ok := d.Items[d.Ordering[pos].ItemID]; ok {
		return it.Meta
	}
	return ""
}

// Infos returns the ordered element sequence.
func (d *Document) Infos() []element.Info {
	infos := make([]element.Info, 0, len(d.Ordering))
	for _, ref := range d.Ordering {
		if it, ok := d.Items[ref.ItemID]; ok {
			infos = append(infos, it.Info())
		}
	}
	return infos
}

// Validate checks that every ordered id exists with a matching type, that
// NextItemID is above every id and that container brackets nest.
func (d *Document) Validate() error {
	for id, it := range d.Items {
		if id >= d.NextItemID {
			return errors.Errorf("item %d is not below next id %d", id, d.NextItemID)
		}
		if it.ID != id {
			return errors.Errorf("item stored under %d has id %d", id, it.ID)
		}
	}

	seen := map[int]bool{}
	for i, ref := range d.Ordering {
		it, ok := d.Items[ref.ItemID]
		if !ok {
			return errors.Wrapf(ErrNotFound, "ordering[%d] references item %d", i, ref.ItemID)
		}
		if it.Type != ref.ElementType {
			return errors.Errorf("ordering[%d] says %s, item %d is %s", i, ref.ElementType, ref.ItemID, it.Type)
		}
		if seen[ref.ItemID] {
			return errors.Errorf("item %d placed twice", ref.ItemID)
		}
		seen[ref.ItemID] = true
	}

	return element.Balanced(d.Infos())
}
