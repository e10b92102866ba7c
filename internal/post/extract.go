package post

import (
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/markdown"
)

// Options control date and URL derivation during extraction.
type Options struct {
	// Now is the build's reference time used when no explicit date can be
	// resolved. Zero means time.Now().
	Now time.Time
	// StripPrefix is the published-pages root prefix removed from URL paths.
	StripPrefix string
	// FallbackDate, when set, resolves a date for documents without an
	// explicit frontmatter date (e.g. from git history). A false second
	// return falls through to Now.
	FallbackDate func(path string) (time.Time, bool)
}

// Supported frontmatter date layouts, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Extract derives a Post from a compiled document.
//
// Title resolves from explicit metadata, then from the first top-level
// heading at depth 1. Description resolves from explicit metadata, then from
// the first paragraph block. A document with neither source for either field
// is a fatal metadata error; there is no silent fallback.
func Extract(path string, doc *markdown.Document, opts Options) (Post, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	title, ok := metaString(doc.Meta, "title")
	if !ok {
		title, ok = doc.FirstHeadingText(1)
	}
	if !ok {
		return Post{}, errors.MetadataMissing(path, "title")
	}

	description, ok := metaString(doc.Meta, "description")
	if !ok {
		description, ok = doc.FirstParagraphText()
	}
	if !ok {
		return Post{}, errors.MetadataMissing(path, "description")
	}

	date, err := resolveDate(path, doc, opts, now)
	if err != nil {
		return Post{}, err
	}

	p := Post{
		FilePath:    path,
		URLPath:     URLPath(path, opts.StripPrefix),
		Title:       title,
		Date:        date,
		Description: description,
		Tags:        metaTags(doc.Meta),
	}

	slog.Debug("Extracted post record",
		logfields.Path(p.FilePath),
		logfields.URLPath(p.URLPath),
		slog.String("title", p.Title),
		slog.Time("date", p.Date))
	return p, nil
}

// resolveDate applies the date resolution order: explicit frontmatter date,
// then the fallback resolver, then the build's reference time. An explicit
// date that fails to parse is a fatal metadata error rather than a silently
// invalid timestamp.
func resolveDate(path string, doc *markdown.Document, opts Options, now time.Time) (time.Time, error) {
	if raw, ok := metaString(doc.Meta, "date"); ok {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
		}
		return time.Time{}, errors.MetadataMissing(path, "date").
			WithContext("value", raw)
	}

	if opts.FallbackDate != nil {
		if t, ok := opts.FallbackDate(path); ok {
			return t, nil
		}
	}
	return now, nil
}

// metaString reads a frontmatter field as a non-empty string. YAML scalars
// that parsed to non-string types (dates, numbers) are stringified.
func metaString(meta map[string]any, key string) (string, bool) {
	if meta == nil {
		return "", false
	}
	v, ok := meta[key]
	if !ok || v == nil {
		return "", false
	}
	if t, isTime := v.(time.Time); isTime {
		return t.Format(time.RFC3339), true
	}
	s := fmt.Sprint(v)
	if s == "" {
		return "", false
	}
	return s, true
}

// metaTags reads and slugifies the optional frontmatter tags list.
func metaTags(meta map[string]any) []string {
	if meta == nil {
		return nil
	}
	raw, ok := meta["tags"].([]any)
	if !ok || len(raw) == 0 {
		return nil
	}

	tags := make([]string, 0, len(raw))
	for _, v := range raw {
		if slug := Slug(fmt.Sprint(v)); slug != "" {
			tags = append(tags, slug)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}
