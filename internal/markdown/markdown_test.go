package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompile_NoFrontmatter_MetaIsNil(t *testing.T) {
	doc, err := Compile([]byte("# Hello\n\nFirst paragraph.\n"))
	require.NoError(t, err)
	require.Nil(t, doc.Meta)
	require.NotNil(t, doc.Root)
}

func TestCompile_Frontmatter_MetaPopulated(t *testing.T) {
	source := []byte("---\ntitle: Explicit\ndate: 2020-06-01\n---\n# Hello\n")

	doc, err := Compile(source)
	require.NoError(t, err)
	require.NotNil(t, doc.Meta)
	require.Equal(t, "Explicit", doc.Meta["title"])
}

func TestCompile_EmptyFrontmatterBlock_MetaIsEmptyMap(t *testing.T) {
	doc, err := Compile([]byte("---\n---\n# Hello\n"))
	require.NoError(t, err)
	require.NotNil(t, doc.Meta)
	require.Empty(t, doc.Meta)
}

func TestCompile_UnterminatedFrontmatter_Fails(t *testing.T) {
	_, err := Compile([]byte("---\ntitle: broken\n# Hello\n"))
	require.Error(t, err)
}

func TestCompile_InvalidYAML_Fails(t *testing.T) {
	_, err := Compile([]byte("---\ntitle: [unclosed\n---\nbody\n"))
	require.Error(t, err)
}

func TestFirstHeadingText_ReturnsFirstDepthOneHeading(t *testing.T) {
	doc, err := Compile([]byte("Some intro paragraph.\n\n# The Title\n\n## Subsection\n"))
	require.NoError(t, err)

	title, ok := doc.FirstHeadingText(1)
	require.True(t, ok)
	require.Equal(t, "The Title", title)
}

func TestFirstHeadingText_SkipsDeeperHeadings(t *testing.T) {
	doc, err := Compile([]byte("## Not This\n\n# This One\n"))
	require.NoError(t, err)

	title, ok := doc.FirstHeadingText(1)
	require.True(t, ok)
	require.Equal(t, "This One", title)
}

func TestFirstHeadingText_NoHeading_NotOK(t *testing.T) {
	doc, err := Compile([]byte("Just a paragraph.\n"))
	require.NoError(t, err)

	_, ok := doc.FirstHeadingText(1)
	require.False(t, ok)
}

func TestFirstParagraphText_ReturnsFirstParagraph(t *testing.T) {
	doc, err := Compile([]byte("# Title\n\nOpening words of the post.\n\nSecond paragraph.\n"))
	require.NoError(t, err)

	desc, ok := doc.FirstParagraphText()
	require.True(t, ok)
	require.Equal(t, "Opening words of the post.", desc)
}

func TestFirstParagraphText_NoParagraph_NotOK(t *testing.T) {
	doc, err := Compile([]byte("# Only A Title\n"))
	require.NoError(t, err)

	_, ok := doc.FirstParagraphText()
	require.False(t, ok)
}

func TestRenderHTML_RendersBody(t *testing.T) {
	doc, err := Compile([]byte("# Title\n\nSome *emphasis* here.\n"))
	require.NoError(t, err)

	html, err := doc.RenderHTML()
	require.NoError(t, err)
	require.Contains(t, string(html), "<h1>Title</h1>")
	require.Contains(t, string(html), "<em>emphasis</em>")
}

func TestPlainText_StripsMarkup(t *testing.T) {
	require.Equal(t, "hello world", PlainText([]byte("<p>hello <em>world</em></p>")))
	require.Equal(t, "plain", PlainText([]byte("plain")))
}
