package element

import (
	"encoding/json"

	"github.com/DiscordGophers/dr-manual/richtext"
	"github.com/pkg/errors"
)

// State is the payload of a leaf element.
type State interface {
	// Kinds lists the element types the payload can be attached to.
	Kinds() []Type
}

type HeadingState struct {
	Level int    `json:"level"`
	Value string `json:"value"`
}

// RichTextState is shared by paragraphs and list items.
type RichTextState struct {
	Value richtext.Raw `json:"value"`
}

// ImageClass is the layout class of an image element.
type ImageClass string

const (
	CenteredImageTiny   ImageClass = "centered-image-tiny"
	CenteredImageSmall  ImageClass = "centered-image-small"
	CenteredImageMedium ImageClass = "centered-image-medium"
	CenteredImageLarge  ImageClass = "centered-image-large"
	FullWidthImage      ImageClass = "full-width-image"
	SideImageSmall      ImageClass = "side-image-small"
	SideImageMedium     ImageClass = "side-image-medium"
	SideImageLarge      ImageClass = "side-image-large"
	SidebarIcon         ImageClass = "sidebar-icon"

	SideBySideImageSmall ImageClass = "sidebyside-image-small"
	SideBySideImageLarge ImageClass = "sidebyside-image-large"
)

var (
	singleImageClasses = []ImageClass{
		CenteredImageTiny, CenteredImageSmall, CenteredImageMedium, CenteredImageLarge,
		FullWidthImage, SideImageSmall, SideImageMedium, SideImageLarge, SidebarIcon,
	}
	sideBySideImageClasses = []ImageClass{SideBySideImageSmall, SideBySideImageLarge}
)

// ValidSingle reports whether c is one of the single image layouts.
func (c ImageClass) ValidSingle() bool { return hasClass(singleImageClasses, c) }

// ValidSideBySide reports whether c is one of the side-by-side sizes.
func (c ImageClass) ValidSideBySide() bool { return hasClass(sideBySideImageClasses, c) }

func hasClass(classes []ImageClass, c ImageClass) bool {
	for _, class := range classes {
		if class == c {
			return true
		}
	}
	return false
}

type SingleImageState struct {
	Source    string     `json:"source"`
	Caption   string     `json:"caption,omitempty"`
	Border    bool       `json:"border,omitempty"`
	ClassName ImageClass `json:"className"`
}

type SideBySideImageState struct {
	LeftSource  string     `json:"leftSource"`
	RightSource string     `json:"rightSource"`
	Caption     string     `json:"caption,omitempty"`
	Border      bool       `json:"border,omitempty"`
	ClassName   ImageClass `json:"className"`
}

type CodeState struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// RawHTMLState is opaque markup passed through untouched.
type RawHTMLState struct {
	Value string `json:"value"`
}

type SidebarNoteState struct {
	Title     string       `json:"title"`
	Content   richtext.Raw `json:"content"`
	ImgSource string       `json:"imgSource"`
}

type ToolboxItem struct {
	ImgSrc      string `json:"imgSrc"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ToolboxState struct {
	Value []ToolboxItem `json:"value"`
}

// Key identifies a keyboard key icon, such as "ctrl" for icon-ctrl.svg.
type Key string

// ShortcutType tells how many key sequences a keyboard shortcut shows.
type ShortcutType string

const (
	NoShortcut    ShortcutType = "no-shortcut"
	Shortcut      ShortcutType = "shortcut"
	MultiShortcut ShortcutType = "multi-shortcut"
)

type KeyboardShortcutState struct {
	Title     string       `json:"title"`
	Content   richtext.Raw `json:"content"`
	Shortcuts [][]Key      `json:"shortcuts"`
	Type      ShortcutType `json:"type"`
}

func (HeadingState) Kinds() []Type          { return []Type{Heading} }
func (RichTextState) Kinds() []Type         { return []Type{RichText, ListItem} }
func (SingleImageState) Kinds() []Type      { return []Type{SingleImage} }
func (SideBySideImageState) Kinds() []Type  { return []Type{SideBySideImage} }
func (CodeState) Kinds() []Type             { return []Type{Code} }
func (RawHTMLState) Kinds() []Type          { return []Type{RawHTML} }
func (SidebarNoteState) Kinds() []Type      { return []Type{SidebarNote} }
func (ToolboxState) Kinds() []Type          { return []Type{Toolbox} }
func (KeyboardShortcutState) Kinds() []Type { return []Type{KeyboardShortcut} }

// Default returns the payload a freshly inserted element of type t starts with.
func Default(t Type) (State, error) {
	switch t {
	case Heading:
		return HeadingState{Level: 1}, nil
	case RichText, ListItem:
		return RichTextState{Value: richtext.Empty()}, nil
	case SingleImage:
		return SingleImageState{ClassName: FullWidthImage}, nil
	case SideBySideImage:
		return SideBySideImageState{ClassName: SideBySideImageLarge}, nil
	case Code:
		return CodeState{}, nil
	case RawHTML:
		return RawHTMLState{}, nil
	case SidebarNote:
		return SidebarNoteState{Content: richtext.Empty()}, nil
	case Toolbox:
		return ToolboxState{Value: []ToolboxItem{}}, nil
	case KeyboardShortcut:
		return KeyboardShortcutState{
			Content:   richtext.Empty(),
			Shortcuts: [][]Key{{"none"}, {"none"}},
			Type:      NoShortcut,
		}, nil
	}
	if t.IsMeta() {
		return nil, errors.Wrapf(ErrNotLeaf, "%s", t)
	}
	return nil, errors.Errorf("unknown element type %q", t)
}

// DecodeState decodes the JSON payload of a leaf of type t.
func DecodeState(t Type, data []byte) (State, error) {
	var s State
	switch t {
	case Heading:
		s = &HeadingState{}
	case RichText, ListItem:
		s = &RichTextState{}
	case SingleImage:
		s = &SingleImageState{}
	case SideBySideImage:
		s = &SideBySideImageState{}
	case Code:
		s = &CodeState{}
	case RawHTML:
		s = &RawHTMLState{}
	case SidebarNote:
		s = &SidebarNoteState{}
	case Toolbox:
		s = &ToolboxState{}
	case KeyboardShortcut:
		s = &KeyboardShortcutState{}
	default:
		return nil, errors.Errorf("no state for element type %q", t)
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, errors.Wrapf(err, "could not decode %s state", t)
	}
	return deref(s), nil
}

func deref(s State) State {
	switch v := s.(type) {
	case *HeadingState:
		return *v
	case *RichTextState:
		return *v
	case *SingleImageState:
		return *v
	case *SideBySideImageState:
		return *v
	case *CodeState:
		return *v
	case *RawHTMLState:
		return *v
	case *SidebarNoteState:
		return *v
	case *ToolboxState:
		return *v
	case *KeyboardShortcutState:
		return *v
	}
	return s
}
