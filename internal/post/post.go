// Package post derives normalized post records from compiled article
// documents.
package post

import "time"

// Post is the normalized metadata for one published article. It is
// constructed once per document during a scan pass and never mutated.
type Post struct {
	// FilePath is the source document's location, set at extraction time.
	FilePath string `json:"filePath"`
	// URLPath is the published page path derived from FilePath.
	URLPath string `json:"urlPath"`
	Title   string `json:"title"`
	// Date is the publish date. Posts dated after the build's reference time
	// are excluded from published output.
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	// Tags are slugified frontmatter tags; empty when the article declares
	// none.
	Tags []string `json:"tags,omitempty"`
}
