package manual

import (
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"

	"github.com/DiscordGophers/dr-manual/element"
	"github.com/DiscordGophers/dr-manual/richtext"
	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// extractor holds the state of a single import.
type extractor struct {
	doc     *goquery.Document
	folders []string
	base    *url.URL
	log     *log.Logger

	language *string
	warnings []string
}

type handler func(e *extractor, s *goquery.Selection) ([]element.Info, error)

// handlers maps every supported tag to its conversion. Tags missing from the
// table are kept as raw HTML.
var handlers map[atom.Atom]handler

func init() {
	handlers = map[atom.Atom]handler{
		atom.H1:    (*extractor).heading,
		atom.H2:    (*extractor).heading,
		atom.H3:    (*extractor).heading,
		atom.H4:    (*extractor).heading,
		atom.H5:    (*extractor).heading,
		atom.H6:    (*extractor).heading,
		atom.Ul:    container(element.UnorderedList),
		atom.Ol:    (*extractor).orderedList,
		atom.Li:    (*extractor).listItem,
		atom.P:     (*extractor).paragraph,
		atom.Pre:   (*extractor).code,
		atom.Div:   (*extractor).div,
		atom.Img:   (*extractor).img,
		atom.Br:    skip,
		atom.Table: container(element.Table),
		atom.Tbody: (*extractor).transparent,
		atom.Tr:    container(element.TableRow),
		atom.Th:    container(element.TableHeader),
		atom.Td:    container(element.TableCell),
	}
}

func (e *extractor) warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	e.warnings = append(e.warnings, msg)
	e.log.Println("import:", msg)
}

// children converts the child nodes of n. For the document body, everything
// up to and including the introduction marker is front matter and skipped.
func (e *extractor) children(n *html.Node, body bool) ([]element.Info, error) {
	var items []element.Info
	started := !body

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !started {
			if strings.TrimSpace(nodeText(c)) == introMarker {
				started = true
			}
			continue
		}

		switch c.Type {
		case html.ElementNode:
			infos, err := e.element(c)
			if err != nil {
				return nil, err
			}
			items = append(items, infos...)

		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			raw, err := richtext.FromText(c.Data)
			if err != nil {
				return nil, errors.Wrap(err, "could not convert text")
			}
			items = append(items, element.Leaf{
				Element: element.RichText,
				State:   element.RichTextState{Value: raw},
			})
		}
	}

	if !started {
		e.warn("no %q marker found, nothing was imported", introMarker)
	}
	return items, nil
}

func (e *extractor) element(n *html.Node) ([]element.Info, error) {
	s := selection(n)
	h, ok := handlers[n.DataAtom]
	if !ok {
		info, err := e.rawHTML(s, "unsupported tag <%s>, imported as raw HTML", n.Data)
		if err != nil {
			return nil, err
		}
		return []element.Info{info}, nil
	}
	return h(e, s)
}

func container(t element.Type) handler {
	return func(e *extractor, s *goquery.Selection) ([]element.Info, error) {
		children, err := e.children(s.Get(0), false)
		if err != nil {
			return nil, err
		}
		return element.Wrap(t, children)
	}
}

func skip(*extractor, *goquery.Selection) ([]element.Info, error) {
	return nil, nil
}

func (e *extractor) transparent(s *goquery.Selection) ([]element.Info, error) {
	return e.children(s.Get(0), false)
}

func (e *extractor) orderedList(s *goquery.Selection) ([]element.Info, error) {
	t := element.OrderedList
	if s.HasClass("instruction-list") {
		t = element.InstructionList
	}
	return container(t)(e, s)
}

// listItem converts the content of an li. Its paragraphs become list items;
// anything else, such as nested lists, is kept as is.
func (e *extractor) listItem(s *goquery.Selection) ([]element.Info, error) {
	items, err := e.children(s.Get(0), false)
	if err != nil {
		return nil, err
	}
	for i, item := range items {
		if leaf, ok := item.(element.Leaf); ok && leaf.Element == element.RichText {
			items[i] = element.Leaf{Element: element.ListItem, State: leaf.State}
		}
	}
	return items, nil
}

// heading keeps only the text of h1 to h6.
func (e *extractor) heading(s *goquery.Selection) ([]element.Info, error) {
	level := int(s.Get(0).Data[1] - '0')
	return []element.Info{element.Leaf{
		Element: element.Heading,
		State:   element.HeadingState{Level: level, Value: text(s)},
	}}, nil
}

func (e *extractor) paragraph(s *goquery.Selection) ([]element.Info, error) {
	raw, err := e.richText(s)
	if err != nil {
		return nil, err
	}
	return []element.Info{element.Leaf{
		Element: element.RichText,
		State:   element.RichTextState{Value: raw},
	}}, nil
}

func (e *extractor) richText(s *goquery.Selection) (richtext.Raw, error) {
	markup, err := goquery.OuterHtml(s)
	if err != nil {
		return richtext.Raw{}, errors.Wrap(err, "could not render paragraph")
	}
	return richtext.FromHTML(markup)
}

func (e *extractor) rawHTML(s *goquery.Selection, format string, args ...interface{}) (element.Info, error) {
	markup, err := goquery.OuterHtml(s)
	if err != nil {
		return nil, errors.Wrap(err, "could not render raw HTML")
	}
	e.warn(format, args...)
	return element.Leaf{
		Element: element.RawHTML,
		State:   element.RawHTMLState{Value: markup},
	}, nil
}

var highlightScript = regexp.MustCompile(`([A-Za-z-]+)-highlight\.js`)

// code converts a pre block. The language comes from the highlighter script
// the manual loads, e.g. <script src="js/go-highlight.js">.
func (e *extractor) code(s *goquery.Selection) ([]element.Info, error) {
	inner := s.Children().First()
	if inner.Length() == 0 {
		inner = s
	}
	markup, err := inner.Html()
	if err != nil {
		return nil, errors.Wrap(err, "could not render code")
	}

	return []element.Info{element.Leaf{
		Element: element.Code,
		State: element.CodeState{
			Language: e.codeLanguage(),
			Value:    html.UnescapeString(markup),
		},
	}}, nil
}

func (e *extractor) codeLanguage() string {
	if e.language != nil {
		return *e.language
	}

	var language string
	e.doc.Find("head script[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		match := highlightScript.FindStringSubmatch(s.AttrOr("src", ""))
		if match == nil {
			return true
		}
		language = match[1]
		return false
	})
	e.language = &language
	return language
}

func selection(n *html.Node) *goquery.Selection {
	return goquery.NewDocumentFromNode(n).Selection
}

// text is the visible text of s with whitespace collapsed.
func text(s *goquery.Selection) string {
	return collapse(s.Text())
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	return selection(n).Text()
}
