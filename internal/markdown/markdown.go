// Package markdown compiles an article source into its metadata map and a
// structural tree of content blocks.
//
// Compile is pure: the same source bytes always produce the same result, and
// there is no process-wide module or parse cache.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	xhtml "golang.org/x/net/html"

	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
)

// Document is the compiled form of one article source.
type Document struct {
	// Meta holds the parsed frontmatter fields. It is nil when the source
	// declares no frontmatter block at all; callers use that distinction to
	// choose between explicit metadata and structural fallback.
	Meta map[string]any

	// Root is the structural tree of the Markdown body.
	Root gmast.Node

	// Body is the Markdown source with frontmatter removed.
	Body []byte
}

// Compile splits frontmatter from source, parses the metadata fields, and
// parses the remaining body into a block tree.
func Compile(source []byte) (*Document, error) {
	fm, body, had, err := frontmatter.Split(source)
	if err != nil {
		return nil, err
	}

	var meta map[string]any
	if had {
		meta, err = frontmatter.ParseYAML(fm)
		if err != nil {
			return nil, err
		}
	}

	root := goldmark.New().Parser().Parse(text.NewReader(body))
	return &Document{Meta: meta, Root: root, Body: body}, nil
}

// FirstHeadingText returns the plain text of the first child of the first
// top-level heading at the given level. ok is false when no such heading
// exists or it has no children.
func (d *Document) FirstHeadingText(level int) (string, bool) {
	for n := d.Root.FirstChild(); n != nil; n = n.NextSibling() {
		h, isHeading := n.(*gmast.Heading)
		if !isHeading || h.Level != level {
			continue
		}
		return d.firstChildText(h)
	}
	return "", false
}

// FirstParagraphText returns the plain text of the first child of the first
// top-level paragraph block.
func (d *Document) FirstParagraphText() (string, bool) {
	for n := d.Root.FirstChild(); n != nil; n = n.NextSibling() {
		if p, isPara := n.(*gmast.Paragraph); isPara {
			return d.firstChildText(p)
		}
	}
	return "", false
}

// RenderHTML renders the full body tree to HTML (used for feed content).
func (d *Document) RenderHTML() ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Renderer().Render(&buf, d.Body, d.Root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// firstChildText extracts the plain-text value of a block's first inline
// child. Non-text inline nodes (emphasis, code, raw HTML) are rendered to
// HTML and stripped back to text so their visible content survives.
func (d *Document) firstChildText(block gmast.Node) (string, bool) {
	child := block.FirstChild()
	if child == nil {
		return "", false
	}

	if t, isText := child.(*gmast.Text); isText {
		return string(t.Segment.Value(d.Body)), true
	}

	var buf bytes.Buffer
	if err := goldmark.New().Renderer().Render(&buf, d.Body, child); err != nil {
		return "", false
	}
	return PlainText(buf.Bytes()), true
}

// PlainText strips markup from an HTML fragment and returns the concatenated
// text content.
func PlainText(fragment []byte) string {
	doc, err := xhtml.Parse(bytes.NewReader(fragment))
	if err != nil {
		// html.Parse is error-tolerant; a hard failure means the fragment is
		// unusable as text.
		return ""
	}

	var sb strings.Builder
	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.TrimSpace(sb.String())
}
