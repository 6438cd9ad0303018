package document

import (
	"encoding/json"

	"github.com/DiscordGophers/dr-manual/element"
	"github.com/pkg/errors"
)

type itemJSON struct {
	ItemID       int              `json:"itemId"`
	Editing      bool             `json:"editing"`
	ElementType  element.Type     `json:"elementType"`
	MetaItemType element.MetaKind `json:"metaItemType,omitempty"`
	ElementState json.RawMessage  `json:"elementState,omitempty"`
}

func (it Item) MarshalJSON() ([]byte, error) {
	v := itemJSON{
		ItemID:       it.ID,
		Editing:      it.Editing,
		ElementType:  it.Type,
		MetaItemType: it.Meta,
	}
	if it.Meta == "" {
		state, err := json.Marshal(it.State)
		if err != nil {
			return nil, errors.Wrapf(err, "could not encode item %d", it.ID)
		}
		v.ElementState = state
	}
	return json.Marshal(v)
}

func (it *Item) UnmarshalJSON(data []byte) error {
	var v itemJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if !v.ElementType.Valid() {
		return errors.Errorf("item %d: unknown element type %q", v.ItemID, v.ElementType)
	}

	*it = Item{ID: v.ItemID, Editing: v.Editing, Type: v.ElementType, Meta: v.MetaItemType}
	if v.ElementType.IsMeta() {
		if v.MetaItemType != element.Open && v.MetaItemType != element.Close {
			return errors.Errorf("item %d: %s needs an open or close marker", v.ItemID, v.ElementType)
		}
		return nil
	}
	if v.MetaItemType != "" {
		return errors.Wrapf(element.ErrNotMeta, "item %d: %s", v.ItemID, v.ElementType)
	}

	state, err := element.DecodeState(v.ElementType, v.ElementState)
	if err != nil {
		return errors.Wrapf(err, "item %d", v.ItemID)
	}
	it.State = state
	return nil
}

type documentJSON struct {
	Items           map[int]*Item `json:"items"`
	ElementOrdering []Ref         `json:"elementOrdering"`
	NextItemID      int           `json:"nextItemId"`
}

func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(documentJSON{
		Items:           d.Items,
		ElementOrdering: d.Ordering,
		NextItemID:      d.NextItemID,
	})
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var v documentJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Items == nil {
		v.Items = map[int]*Item{}
	}
	if v.ElementOrdering == nil {
		v.ElementOrdering = []Ref{}
	}
	*d = Document{Items: v.Items, Ordering: v.ElementOrdering, NextItemID: v.NextItemID}
	return nil
}
