// Package feed assembles the two published artifacts from a set of post
// records: the generated listing module and the RSS feed.
package feed

import (
	"log/slog"
	"sort"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// Published filters records to those with a date at or before now and orders
// them descending by date. The sort is stable: equal-date records keep their
// scan order. The input slice is not modified.
func Published(posts []post.Post, now time.Time) []post.Post {
	kept := make([]post.Post, 0, len(posts))
	for _, p := range posts {
		// Inclusive boundary: a post dated exactly at now is published.
		if !p.Date.After(now) {
			kept = append(kept, p)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Date.After(kept[j].Date)
	})
	return kept
}

// Assemble produces the serialized listing and feed artifacts for the
// published subset of posts. A serialization failure of any record fails the
// whole assembly; there is no per-record skip.
func Assemble(posts []post.Post, now time.Time, site config.SiteConfig) (listing []byte, rss []byte, err error) {
	published := Published(posts, now)
	slog.Info("Assembling artifacts",
		logfields.Posts(len(published)),
		logfields.Excluded(len(posts)-len(published)))

	listing, err = renderListing(published)
	if err != nil {
		return nil, nil, err
	}

	rss, err = renderRSS(published, site)
	if err != nil {
		return nil, nil, err
	}
	return listing, rss, nil
}
