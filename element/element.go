// Package element describes the typed items that make up a manual document.
//
// A document is a flat, ordered list of items. Leaf items carry a payload;
// container items (lists, tables, rows and cells) are represented by a matched
// pair of open and close meta items around their children.
package element

import (
	"github.com/pkg/errors"
)

// Type is the kind of an element.
type Type string

const (
	Heading          Type = "Heading"
	RichText         Type = "RichText"
	SingleImage      Type = "SingleImage"
	SideBySideImage  Type = "SideBySideImage"
	Code             Type = "Code"
	RawHTML          Type = "RawHtml"
	SidebarNote      Type = "SidebarNote"
	Toolbox          Type = "Toolbox"
	KeyboardShortcut Type = "KeyboardShortcut"
	ListItem         Type = "ListItem"
	UnorderedList    Type = "UnorderedList"
	OrderedList      Type = "OrderedList"
	InstructionList  Type = "InstructionList"
	Table            Type = "Table"
	TableRow         Type = "TableRow"
	TableHeader      Type = "TableHeader"
	TableCell        Type = "TableCell"
)

// Types lists every element type, leaves first.
var Types = []Type{
	Heading, RichText, SingleImage, SideBySideImage, Code, RawHTML,
	SidebarNote, Toolbox, KeyboardShortcut, ListItem,
	UnorderedList, OrderedList, InstructionList,
	Table, TableRow, TableHeader, TableCell,
}

// IsMeta reports whether t is a container type, stored as open/close brackets.
func (t Type) IsMeta() bool {
	switch t {
	case UnorderedList, OrderedList, InstructionList, Table, TableRow, TableHeader, TableCell:
		return true
	}
	return false
}

// Valid reports whether t is one of the known element types.
func (t Type) Valid() bool {
	for _, typ := range Types {
		if typ == t {
			return true
		}
	}
	return false
}

// MetaKind marks a meta item as the start or the end of a container.
type MetaKind string

const (
	Open  MetaKind = "open"
	Close MetaKind = "close"
)

// Info is one item of an element sequence. It is either a Meta or a Leaf.
type Info interface {
	ElementType() Type
	info()
}

// Meta is one bracket of a container element.
type Meta struct {
	Element Type
	Kind    MetaKind
}

func (m Meta) ElementType() Type { return m.Element }
func (Meta) info() {}

// Leaf is a content element with its payload.
type Leaf struct {
	Element Type
	State   State
}

func (l Leaf) ElementType() Type { return l.Element }
func (Leaf) info() {}

var (
	ErrNotMeta       = errors.New("element type is not a container")
	ErrNotLeaf       = errors.New("element type is a container")
	ErrStateMismatch = errors.New("state does not belong to element type")
)

// Bracket returns the open and close items of a container type.
func Bracket(t Type) (open, close Meta, err error) {
	if !t.IsMeta() {
		return Meta{}, Meta{}, errors.Wrapf(ErrNotMeta, "%s", t)
	}
	return Meta{t, Open}, Meta{t, Close}, nil
}

// NewLeaf pairs a payload with its element type, rejecting payloads that
// cannot be attached to t.
func NewLeaf(t Type, s State) (Leaf, error) {
	if t.IsMeta() {
		return Leaf{}, errors.Wrapf(ErrNotLeaf, "%s", t)
	}
	if !Accepts(t, s) {
		return Leaf{}, errors.Wrapf(ErrStateMismatch, "%T for %s", s, t)
	}
	return Leaf{t, s}, nil
}

// Accepts reports whether s is a valid payload for element type t.
func Accepts(t Type, s State) bool {
	if s == nil {
		return false
	}
	for _, k := range s.Kinds() {
		if k == t {
			return true
		}
	}
	return false
}

// Wrap surrounds items with the brackets of the container type t.
func Wrap(t Type, items []Info) ([]Info, error) {
	open, close, err := Bracket(t)
	if err != nil {
		return nil, err
	}
	out := make([]Info, 0, len(items)+2)
	out = append(out, open)
	out = append(out, items...)
	return append(out, close), nil
}

// ErrUnbalanced is returned for sequences whose brackets do not nest.
var ErrUnbalanced = errors.New("unbalanced container brackets")

// Balanced checks that every open bracket in items is closed by a bracket
// of the same type, with all nested containers closed in between.
func Balanced(items []Info) error {
	var stack []Type
	for i, item := range items {
		m, ok := item.(Meta)
		if !ok {
			continue
		}
		switch m.Kind {
		case Open:
			stack = append(stack, m.Element)
		case Close:
			if len(stack) == 0 || stack[len(stack)-1] != m.Element {
				return errors.Wrapf(ErrUnbalanced, "unexpected close of %s at %d", m.Element, i)
			}
			stack = stack[:len(stack)-1]
		default:
			return errors.Errorf("unknown meta kind %q at %d", m.Kind, i)
		}
	}
	if len(stack) > 0 {
		return errors.Wrapf(ErrUnbalanced, "%s left open", stack[len(stack)-1])
	}
	return nil
}
