package metainfo

import (
	"bytes"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/metarel/pkg/domain/model"
)

const (
	tagReleases = "releases"
	tagRelease  = "release"
	tagURL      = "url"

	attrVersion = "version"
	attrDate    = "date"

	indentSpace = "  "

	xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

	// releases sits directly under the document root
	releasesLevel = 1
)

// Document is a metainfo XML document. Nodes other than the releases entries are kept as read.
type Document struct {
	doc *etree.Document
}

// Parse reads a metainfo document from r
func Parse(r io.Reader) (*Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, goerr.Wrap(err, "failed to parse metainfo XML")
	}
	if doc.Root() == nil {
		return nil, goerr.New("metainfo XML has no root element")
	}

	return &Document{doc: doc}, nil
}

// ParseBytes reads a metainfo document from data
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

func (d *Document) releases() (*etree.Element, error) {
	releases := d.doc.Root().SelectElement(tagReleases)
	if releases == nil {
		return nil, goerr.Wrap(model.ErrReleasesNotFound, "metainfo has no releases",
			goerr.V("root", d.doc.Root().Tag))
	}
	return releases, nil
}

// PrependRelease inserts rel before every existing release and re-indents the releases element
func (d *Document) PrependRelease(rel *model.Release) error {
	releases, err := d.releases()
	if err != nil {
		return err
	}

	elem := etree.NewElement(tagRelease)
	elem.CreateAttr(attrVersion, rel.Version)
	elem.CreateAttr(attrDate, rel.Date)
	elem.CreateElement(tagURL).SetText(rel.URL)

	if children := releases.ChildElements(); len(children) > 0 {
		releases.InsertChildAt(children[0].Index(), elem)
	} else {
		releases.AddChild(elem)
	}

	indent(releases, releasesLevel)
	return nil
}

// Releases returns release entries in document order. A missing releases element yields no entries.
func (d *Document) Releases() []model.Release {
	releases, err := d.releases()
	if err != nil {
		return nil
	}

	var result []model.Release
	for _, elem := range releases.SelectElements(tagRelease) {
		rel := model.Release{
			Version: elem.SelectAttrValue(attrVersion, ""),
			Date:    elem.SelectAttrValue(attrDate, ""),
		}
		if url := elem.SelectElement(tagURL); url != nil {
			rel.URL = url.Text()
		}
		result = append(result, rel)
	}

	return result
}

// WriteTo writes the document to w, preceded by an XML declaration if the source had none.
// The document itself is not modified.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var written int64
	if !hasDeclaration(d.doc) {
		n, err := io.WriteString(w, xmlDeclaration+"\n")
		written += int64(n)
		if err != nil {
			return written, goerr.Wrap(err, "failed to write XML declaration")
		}
	}

	n, err := d.doc.WriteTo(w)
	written += n
	if err != nil {
		return written, goerr.Wrap(err, "failed to write metainfo XML")
	}
	return written, nil
}

func hasDeclaration(doc *etree.Document) bool {
	for _, token := range doc.Child {
		if pi, ok := token.(*etree.ProcInst); ok && pi.Target == "xml" {
			return true
		}
	}
	return false
}

// indent rewrites whitespace-only text and tails below elem so that children sit one level
// deeper than elem. Text holding anything but whitespace is left as is.
func indent(elem *etree.Element, level int) {
	children := elem.ChildElements()
	if len(children) == 0 {
		return
	}

	childIndent := "\n" + strings.Repeat(indentSpace, level+1)
	if isBlank(elem.Text()) {
		elem.SetText(childIndent)
	}

	for _, child := range children {
		indent(child, level+1)
		if isBlank(child.Tail()) {
			child.SetTail(childIndent)
		}
	}

	// dedent after the last child
	last := children[len(children)-1]
	if isBlank(last.Tail()) {
		last.SetTail("\n" + strings.Repeat(indentSpace, level))
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
