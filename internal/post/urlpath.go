package post

import (
	"regexp"
	"strings"
)

var extensionSuffix = regexp.MustCompile(`\.mdx?$`)

// URLPath derives the published page path from a source file path.
//
// The transform is pure: only the first backslash is converted to a forward
// slash (a single, non-global replacement, kept for output parity with the
// previous generator), the published-pages root prefix is stripped, and a
// trailing .md/.mdx extension is removed.
//
// URLPath("pages/posts/a/b.mdx", "pages") == "/posts/a/b".
func URLPath(filePath, stripPrefix string) string {
	p := strings.Replace(filePath, `\`, "/", 1)
	if stripPrefix != "" {
		p = strings.TrimPrefix(p, stripPrefix)
	}
	return extensionSuffix.ReplaceAllString(p, "")
}
