// Package richtext converts between HTML fragments and a portable structured
// representation of formatted text: blocks of text with inline style ranges
// and link entities.
package richtext

import "fmt"

type BlockType string

const (
	Unstyled          BlockType = "unstyled"
	HeaderOne         BlockType = "header-one"
	HeaderTwo         BlockType = "header-two"
	HeaderThree       BlockType = "header-three"
	HeaderFour        BlockType = "header-four"
	HeaderFive        BlockType = "header-five"
	HeaderSix         BlockType = "header-six"
	UnorderedListItem BlockType = "unordered-list-item"
	OrderedListItem   BlockType = "ordered-list-item"
	Blockquote        BlockType = "blockquote"
	CodeBlock         BlockType = "code-block"
)

var headers = []BlockType{HeaderOne, HeaderTwo, HeaderThree, HeaderFour, HeaderFive, HeaderSix}

type Style string

const (
	Bold          Style = "BOLD"
	Italic        Style = "ITALIC"
	Underline     Style = "UNDERLINE"
	Code          Style = "CODE"
	Strikethrough Style = "STRIKETHROUGH"
)

// styles is the fixed order in which ranges are listed and tags are nested.
var styles = []Style{Bold, Italic, Underline, Code, Strikethrough}

const (
	LinkEntity = "LINK"
	Mutable    = "MUTABLE"
)

// InlineStyleRange applies a style to Length runes starting at Offset.
type InlineStyleRange struct {
	Offset int   `json:"offset"`
	Length int   `json:"length"`
	Style  Style `json:"style"`
}

// EntityRange attaches the entity Key of the entity map to a span of runes.
type EntityRange struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
	Key    int `json:"key"`
}

type Block struct {
	Key               string             `json:"key"`
	Text              string             `json:"text"`
	Type              BlockType          `json:"type"`
	Depth             int                `json:"depth"`
	InlineStyleRanges []InlineStyleRange `json:"inlineStyleRanges"`
	EntityRanges      []EntityRange      `json:"entityRanges"`
	Data              map[string]string  `json:"data"`
}

type Entity struct {
	Type       string            `json:"type"`
	Mutability string            `json:"mutability"`
	Data       map[string]string `json:"data"`
}

// Raw is a complete rich text document.
type Raw struct {
	Blocks    []Block        `json:"blocks"`
	EntityMap map[int]Entity `json:"entityMap"`
}

// Empty returns a document holding a single empty paragraph.
func Empty() Raw {
	return Raw{
		Blocks:    []Block{newBlock(0, Unstyled, "")},
		EntityMap: map[int]Entity{},
	}
}

func newBlock(i int, typ BlockType, text string) Block {
	return Block{
		Key:               blockKey(i),
		Text:              text,
		Type:              typ,
		InlineStyleRanges: []InlineStyleRange{},
		EntityRanges:      []EntityRange{},
		Data:              map[string]string{},
	}
}

func blockKey(i int) string {
	return fmt.Sprintf("b%04x", i)
}

// styleSet is a bit set over styles.
type styleSet uint8

func (s styleSet) has(i int) bool { return s&(1<<i) != 0 }

func styleBit(style Style) styleSet {
	for i, s := range styles {
		if s == style {
			return 1 << i
		}
	}
	return 0
}

// char is the formatting of a single rune.
type char struct {
	styles styleSet
	entity int
}

// chars expands the ranges of b into per-rune formatting.
func chars(b Block) []char {
	n := len([]rune(b.Text))
	out := make([]char, n)
	for i := range out {
		out[i].entity = -1
	}
	for _, r := range b.InlineStyleRanges {
		bit := styleBit(r.Style)
		for i := r.Offset; i < r.Offset+r.Length && i < n; i++ {
			if i >= 0 {
				out[i].styles |= bit
			}
		}
	}
	for _, r := range b.EntityRanges {
		for i := r.Offset; i < r.Offset+r.Length && i < n; i++ {
			if i >= 0 {
				out[i].entity = r.Key
			}
		}
	}
	return out
}

// ranges folds per-rune formatting back into style and entity ranges.
func ranges(cs []char) ([]InlineStyleRange, []EntityRange) {
	styleRanges := []InlineStyleRange{}
	for bit, style := range styles {
		start := -1
		for i := 0; i <= len(cs); i++ {
			on := i < len(cs) && cs[i].styles.has(bit)
			switch {
			case on && start < 0:
				start = i
			case !on && start >= 0:
				styleRanges = append(styleRanges, InlineStyleRange{start, i - start, style})
				start = -1
			}
		}
	}

	entityRanges := []EntityRange{}
	start := 0
	for i := 1; i <= len(cs); i++ {
		if i < len(cs) && cs[i].entity == cs[start].entity {
			continue
		}
		if cs[start].entity >= 0 {
			entityRanges = append(entityRanges, EntityRange{start, i - start, cs[start].entity})
		}
		start = i
	}
	return styleRanges, entityRanges
}
