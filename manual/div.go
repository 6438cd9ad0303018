package manual

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/DiscordGophers/dr-manual/element"
	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// div picks the extractor for a div from its classes. The first matching
// rule wins.
func (e *extractor) div(s *goquery.Selection) ([]element.Info, error) {
	classes := s.AttrOr("class", "")

	var info element.Info
	var err error
	switch {
	case strings.Contains(classes, "image") || strings.Contains(classes, "sidebar-icon"):
		info, err = e.image(s)
	case s.HasClass("sidebar-note"):
		info, err = e.sidebarNote(s)
	case s.HasClass("toolbox"):
		info, err = e.toolbox(s)
	case s.HasClass("keyboard-shortcut"):
		info, err = e.keyboardShortcut(s)
	default:
		info, err = e.rawHTML(s, "unsupported div classes %q, imported as raw HTML", classes)
	}
	if err != nil {
		return nil, err
	}
	return []element.Info{info}, nil
}

func (e *extractor) img(s *goquery.Selection) ([]element.Info, error) {
	info, err := e.image(s)
	if err != nil {
		return nil, err
	}
	return []element.Info{info}, nil
}

// imageClass returns the first class naming an image layout.
func imageClass(s *goquery.Selection) (string, bool) {
	for _, class := range strings.Fields(s.AttrOr("class", "")) {
		if strings.Contains(class, "image") || class == string(element.SidebarIcon) {
			return class, true
		}
	}
	return "", false
}

// image converts an image div or a bare img into a single or side-by-side
// image.
func (e *extractor) image(s *goquery.Selection) (element.Info, error) {
	isImg := s.Is("img")

	class, ok := imageClass(s)
	if !ok {
		if !isImg {
			return nil, errors.Wrapf(ErrNoImageClass, "class %q", s.AttrOr("class", ""))
		}
		e.warn("image %q has no layout class, using %s", s.AttrOr("src", ""), element.FullWidthImage)
		class = string(element.FullWidthImage)
	}

	_, border := s.Attr("border")
	border = border || s.HasClass("border")
	caption := text(s.Find("p").First())

	if strings.Contains(class, "sidebyside") {
		images := s.Find("img")
		if images.Length() < 2 {
			return nil, errors.Wrapf(ErrMissingStructure, "side-by-side image %q has %d images", class, images.Length())
		}
		if !element.ImageClass(class).ValidSideBySide() {
			e.warn("unknown side-by-side image class %q", class)
		}
		return element.Leaf{
			Element: element.SideBySideImage,
			State: element.SideBySideImageState{
				LeftSource:  e.imagePath(images.Eq(0)),
				RightSource: e.imagePath(images.Eq(1)),
				Caption:     caption,
				Border:      border,
				ClassName:   element.ImageClass(class),
			},
		}, nil
	}

	img := s
	if !isImg {
		img = s.Find("img").First()
	}
	if img.Length() == 0 {
		return nil, errors.Wrapf(ErrMissingStructure, "image %q has no img", class)
	}
	if !element.ImageClass(class).ValidSingle() {
		e.warn("unknown image class %q", class)
	}
	return element.Leaf{
		Element: element.SingleImage,
		State: element.SingleImageState{
			Source:    e.imagePath(img),
			Caption:   caption,
			Border:    border,
			ClassName: element.ImageClass(class),
		},
	}, nil
}

func (e *extractor) imagePath(img *goquery.Selection) string {
	return NormalizeImagePath(img.AttrOr("src", ""), e.folders)
}

// resolve makes src absolute against the importer's base URL.
func (e *extractor) resolve(src string) string {
	if e.base == nil {
		return src
	}
	u, err := url.Parse(src)
	if err != nil {
		return src
	}
	return e.base.ResolveReference(u).String()
}

// sidebarNote requires a paragraph in the note.
func (e *extractor) sidebarNote(s *goquery.Selection) (element.Info, error) {
	p := s.Find("p").First()
	if p.Length() == 0 {
		return nil, errors.Wrap(ErrMissingStructure, "sidebar note without a paragraph")
	}
	content, err := e.richText(p)
	if err != nil {
		return nil, err
	}

	var imgSource string
	if img := s.Find("img").First(); img.Length() > 0 {
		imgSource = e.resolve(img.AttrOr("src", ""))
	}

	return element.Leaf{
		Element: element.SidebarNote,
		State: element.SidebarNoteState{
			Title:     text(s.Find("h2").First()),
			Content:   content,
			ImgSource: imgSource,
		},
	}, nil
}

// toolbox converts a list of tools, each an icon and a paragraph starting
// with the tool's name in bold.
func (e *extractor) toolbox(s *goquery.Selection) (element.Info, error) {
	items := []element.ToolboxItem{}
	for _, chunk := range toolboxChunks(s) {
		p := find(chunk, atom.P)
		if p == nil {
			e.warn("toolbox entry without a paragraph skipped")
			continue
		}

		var item element.ToolboxItem
		if img := find(chunk, atom.Img); img != nil {
			item.ImgSrc = NormalizeImagePath(attr(img, "src"), e.folders)
		}
		item.Name, item.Description = toolDescription(p)
		items = append(items, item)
	}

	return element.Leaf{
		Element: element.Toolbox,
		State:   element.ToolboxState{Value: items},
	}, nil
}

// toolboxChunks splits the toolbox into entries. Every div child is an entry;
// other children are gathered until a paragraph closes the entry.
func toolboxChunks(s *goquery.Selection) [][]*html.Node {
	var chunks [][]*html.Node
	var current []*html.Node

	s.Children().Each(func(_ int, c *goquery.Selection) {
		n := c.Get(0)
		if n.DataAtom == atom.Div {
			current = nil
			chunks = append(chunks, childNodes(n))
			return
		}

		current = append(current, n)
		if n.DataAtom == atom.P {
			chunks = append(chunks, current)
			current = nil
		}
	})
	return chunks
}

// toolDescription splits a paragraph into the bold name and the rest of its
// text, leaving the paragraph untouched.
func toolDescription(p *html.Node) (name, description string) {
	b := find(childNodes(p), atom.B)
	if b != nil {
		name = collapse(textOf(b, nil))
	}
	return name, collapse(textOf(p, b))
}

var keyIcon = regexp.MustCompile(`(?i)icon-([a-z0-9]+)\.svg`)

// keyboardShortcut requires a paragraph. Keys are icon images; h3 labels
// split them into alternative shortcuts.
func (e *extractor) keyboardShortcut(s *goquery.Selection) (element.Info, error) {
	p := s.Find("p").First()
	if p.Length() == 0 {
		return nil, errors.Wrap(ErrMissingStructure, "keyboard shortcut without a paragraph")
	}
	content, err := e.richText(p)
	if err != nil {
		return nil, err
	}

	state := element.KeyboardShortcutState{
		Title:   text(s.Find("h2").First()),
		Content: content,
	}

	labels := s.Find("h3")
	switch labels.Length() {
	case 0, 1:
		var keys []element.Key
		s.Find("img").Each(func(_ int, img *goquery.Selection) {
			keys = e.appendKey(keys, img.Get(0))
		})
		if keys == nil {
			keys = []element.Key{}
		}
		state.Shortcuts = [][]element.Key{keys}
		state.Type = element.NoShortcut
		if len(keys) > 0 {
			state.Type = element.Shortcut
		}

	default:
		var stop *html.Node
		if labels.Length() > 2 {
			e.warn("keyboard shortcut %q has %d labels, only the first 2 are imported", state.Title, labels.Length())
			stop = labels.Get(2)
		}
		state.Shortcuts = [][]element.Key{
			e.keysBetween(labels.Get(0), labels.Get(1)),
			e.keysBetween(labels.Get(1), stop),
		}
		state.Type = element.MultiShortcut
	}

	return element.Leaf{Element: element.KeyboardShortcut, State: state}, nil
}

// keysBetween collects the keys of the siblings following label, up to stop.
func (e *extractor) keysBetween(label, stop *html.Node) []element.Key {
	keys := []element.Key{}
	for n := label.NextSibling; n != nil && n != stop; n = n.NextSibling {
		if n.Type != html.ElementNode {
			continue
		}
		if n.DataAtom == atom.Img {
			keys = e.appendKey(keys, n)
			continue
		}
		selection(n).Find("img").Each(func(_ int, img *goquery.Selection) {
			keys = e.appendKey(keys, img.Get(0))
		})
	}
	return keys
}

func (e *extractor) appendKey(keys []element.Key, img *html.Node) []element.Key {
	src := attr(img, "src")
	match := keyIcon.FindStringSubmatch(src)
	if match == nil {
		e.warn("image %q in keyboard shortcut is not a key icon, skipped", src)
		return keys
	}
	return append(keys, element.Key(match[1]))
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func childNodes(n *html.Node) []*html.Node {
	var nodes []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		nodes = append(nodes, c)
	}
	return nodes
}

// find returns the first element with tag a among roots and their
// descendants, in document order.
func find(roots []*html.Node, a atom.Atom) *html.Node {
	for _, n := range roots {
		if n.Type == html.ElementNode && n.DataAtom == a {
			return n
		}
		if found := find(childNodes(n), a); found != nil {
			return found
		}
	}
	return nil
}

// textOf concatenates the text below n, leaving out the subtree of skip.
func textOf(n, skip *html.Node) string {
	if n == skip {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textOf(c, skip))
	}
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
