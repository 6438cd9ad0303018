package richtext

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var bodyContext = &html.Node{
	Type:     html.ElementNode,
	Data:     "body",
	DataAtom: atom.Body,
}

// FromHTML parses an HTML fragment into a rich text document.
func FromHTML(fragment string) (Raw, error) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), bodyContext)
	if err != nil {
		return Raw{}, errors.Wrap(err, "could not parse fragment")
	}

	p := parser{entities: map[int]Entity{}}
	for _, n := range nodes {
		p.walk(n, inline{})
	}
	p.flush()
	p.compact()

	return Raw{Blocks: p.blocks, EntityMap: p.entities}, nil
}

// FromText converts plain text, treating it as literal characters.
func FromText(text string) (Raw, error) {
	return FromHTML(html.EscapeString(text))
}

type link struct {
	key  int
	data map[string]string
}

// inline is the formatting inherited from enclosing elements.
type inline struct {
	styles styleSet
	link   *link
}

type pending struct {
	typ      BlockType
	explicit bool
	text     []rune
	chars    []char
}

type parser struct {
	blocks   []Block
	entities map[int]Entity
	cur      *pending
	lists    []BlockType
	pre      int
}

func (p *parser) walk(n *html.Node, in inline) {
	switch n.Type {
	case html.TextNode:
		p.text(n.Data, in)
	case html.ElementNode:
		p.element(n, in)
	case html.DocumentNode:
		p.children(n, in)
	}
}

func (p *parser) children(n *html.Node, in inline) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c, in)
	}
}

func (p *parser) element(n *html.Node, in inline) {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Img, atom.Head, atom.Title:
		return
	case atom.Br:
		p.appendRune('\n', in)
	case atom.Ul, atom.Ol:
		typ := UnorderedListItem
		if n.DataAtom == atom.Ol {
			typ = OrderedListItem
		}
		p.lists = append(p.lists, typ)
		p.children(n, in)
		p.lists = p.lists[:len(p.lists)-1]
	case atom.Li:
		typ := UnorderedListItem
		if len(p.lists) > 0 {
			typ = p.lists[len(p.lists)-1]
		}
		p.block(n, typ, in)
	case atom.P, atom.Div, atom.Section, atom.Article, atom.Figure, atom.Figcaption, atom.Address:
		p.block(n, Unstyled, in)
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		p.block(n, headers[n.Data[1]-'1'], in)
	case atom.Blockquote:
		p.block(n, Blockquote, in)
	case atom.Pre:
		p.pre++
		p.block(n, CodeBlock, in)
		p.pre--
	case atom.B, atom.Strong:
		in.styles |= styleBit(Bold)
		p.children(n, in)
	case atom.I, atom.Em:
		in.styles |= styleBit(Italic)
		p.children(n, in)
	case atom.U:
		in.styles |= styleBit(Underline)
		p.children(n, in)
	case atom.Code, atom.Kbd:
		in.styles |= styleBit(Code)
		p.children(n, in)
	case atom.S, atom.Strike, atom.Del:
		in.styles |= styleBit(Strikethrough)
		p.children(n, in)
	case atom.A:
		if href, ok := attr(n, "href"); ok {
			data := map[string]string{"url": href}
			if title, ok := attr(n, "title"); ok {
				data["title"] = title
			}
			in.link = &link{key: -1, data: data}
		}
		p.children(n, in)
	default:
		p.children(n, in)
	}
}

// block starts a new block for n. An empty enclosing block is reused, so
// <li><p>text</p></li> yields a single list item.
func (p *parser) block(n *html.Node, typ BlockType, in inline) {
	if p.cur != nil && len(p.cur.text) == 0 {
		if !p.cur.explicit || p.cur.typ == Unstyled {
			p.cur.typ = typ
		}
		p.cur.explicit = true
	} else {
		p.flush()
		p.cur = &pending{typ: typ, explicit: true}
	}
	p.children(n, in)
	p.flush()
}

func (p *parser) text(s string, in inline) {
	if p.pre > 0 {
		for _, r := range s {
			p.appendRune(r, in)
		}
		return
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			p.appendRune(r, in)
			continue
		}
		if p.cur == nil || len(p.cur.text) == 0 {
			continue
		}
		if last := p.cur.text[len(p.cur.text)-1]; last == ' ' || last == '\n' {
			continue
		}
		p.appendRune(' ', in)
	}
}

func (p *parser) appendRune(r rune, in inline) {
	if p.cur == nil {
		p.cur = &pending{typ: Unstyled}
	}
	c := char{styles: in.styles, entity: -1}
	if in.link != nil {
		if in.link.key < 0 {
			in.link.key = len(p.entities)
			p.entities[in.link.key] = Entity{
				Type:       LinkEntity,
				Mutability: Mutable,
				Data:       in.link.data,
			}
		}
		c.entity = in.link.key
	}
	p.cur.text = append(p.cur.text, r)
	p.cur.chars = append(p.cur.chars, c)
}

func (p *parser) flush() {
	b := p.cur
	p.cur = nil
	if b == nil {
		return
	}
	if b.typ != CodeBlock {
		for len(b.text) > 0 && b.text[len(b.text)-1] == ' ' {
			b.text = b.text[:len(b.text)-1]
			b.chars = b.chars[:len(b.chars)-1]
		}
	}
	if !b.explicit && len(b.text) == 0 {
		return
	}

	block := newBlock(len(p.blocks), b.typ, string(b.text))
	block.InlineStyleRanges, block.EntityRanges = ranges(b.chars)
	p.blocks = append(p.blocks, block)
}

// compact drops entities that lost all their text to whitespace trimming and
// renumbers the rest in order of appearance.
func (p *parser) compact() {
	if p.blocks == nil {
		p.blocks = []Block{}
	}
	keys := map[int]int{}
	entities := map[int]Entity{}
	for i := range p.blocks {
		for j, r := range p.blocks[i].EntityRanges {
			key, ok := keys[r.Key]
			if !ok {
				key = len(keys)
				keys[r.Key] = key
				entities[key] = p.entities[r.Key]
			}
			p.blocks[i].EntityRanges[j].Key = key
		}
	}
	p.entities = entities
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
