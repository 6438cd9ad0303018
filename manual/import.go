// Package manual imports legacy static HTML manuals into editable documents.
//
// The legacy format has no schema: CSS classes, icon file names and the
// position of an "Introduction" marker stand in for structure. The importer
// walks the body, classifies every node by tag and class, and produces a flat
// sequence of elements in which containers are bracketed by open and close
// items. Unrecognized markup is kept as raw HTML and reported as a warning.
package manual

import (
	"io"
	"log"
	"net/url"
	"strings"

	"github.com/DiscordGophers/dr-manual/document"
	"github.com/DiscordGophers/dr-manual/element"
	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

const introMarker = "Introduction"

var (
	// ErrNoImageClass means a div was classified as an image but carries no
	// image layout class.
	ErrNoImageClass = errors.New("image element without an image class")
	// ErrMissingStructure means markup lacks a part the legacy format always
	// has, such as the paragraph of a sidebar note.
	ErrMissingStructure = errors.New("missing expected structure")
)

// DefaultLegacyFolders are the image folders of the old manual layout.
var DefaultLegacyFolders = []string{"images/", "keyboard-icons/"}

// Importer converts legacy manuals. The zero value is usable and logs to the
// standard logger.
type Importer struct {
	// LegacyFolders are path prefixes stripped from image sources.
	LegacyFolders []string
	// Base resolves sidebar note image sources. Nil keeps them as written.
	Base *url.URL
	Log  *log.Logger
}

// New returns an importer for the default legacy layout.
func New(logger *log.Logger) *Importer {
	return &Importer{
		LegacyFolders: DefaultLegacyFolders,
		Log:           logger,
	}
}

// Result is a finished import.
type Result struct {
	Document *document.Document
	// Infos is the imported element sequence, without the front matter.
	Infos    []element.Info
	Warnings []string
}

// Import converts a complete legacy manual. Any error aborts the whole
// import; degraded elements are reported in Result.Warnings instead.
func (im *Importer) Import(src string) (*Result, error) {
	return im.ImportReader(strings.NewReader(src))
}

// ImportReader is Import for a manual read from r.
func (im *Importer) ImportReader(r io.Reader) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse manual")
	}

	title := doc.Find("#coverpage-title h1").First()
	if title.Length() == 0 {
		return nil, errors.Wrap(ErrMissingStructure, "no #coverpage-title h1")
	}
	subtitle := doc.Find("#coverpage-title h2").First()
	if subtitle.Length() == 0 {
		return nil, errors.Wrap(ErrMissingStructure, "no #coverpage-title h2")
	}

	e := im.extractor(doc)
	infos, err := e.children(doc.Find("body").Get(0), true)
	if err != nil {
		return nil, err
	}

	manual := &document.Document{
		Items: map[int]*document.Item{
			1: heading(1, 1, text(title)),
			2: heading(2, 2, text(subtitle)),
			3: heading(3, 1, introMarker),
		},
		Ordering:   []document.Ref{{ItemID: 3, ElementType: element.Heading}},
		NextItemID: 4,
	}
	manual.Add(infos, true)

	return &Result{Document: manual, Infos: infos, Warnings: e.warnings}, nil
}

// Elements converts an HTML fragment into elements. Unlike Import, no
// front matter is expected and every top level node is converted.
func (im *Importer) Elements(fragment string) ([]element.Info, []string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not parse fragment")
	}

	e := im.extractor(doc)
	infos, err := e.children(doc.Find("body").Get(0), false)
	if err != nil {
		return nil, nil, err
	}
	return infos, e.warnings, nil
}

func (im *Importer) extractor(doc *goquery.Document) *extractor {
	folders := im.LegacyFolders
	if folders == nil {
		folders = DefaultLegacyFolders
	}
	logger := im.Log
	if logger == nil {
		logger = log.Default()
	}
	return &extractor{
		doc:     doc,
		folders: folders,
		base:    im.Base,
		log:     logger,
	}
}

func heading(id, level int, value string) *document.Item {
	return &document.Item{
		ID:    id,
		Type:  element.Heading,
		State: element.HeadingState{Level: level, Value: value},
	}
}

// NormalizeImagePath maps an image under one of the legacy folders to its
// lower-cased bare name. Other paths are returned unchanged.
func NormalizeImagePath(path string, folders []string) string {
	for _, folder := range folders {
		if strings.HasPrefix(path, folder) {
			return strings.ToLower(path[len(folder):])
		}
	}
	return path
}
