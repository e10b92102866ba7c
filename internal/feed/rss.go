package feed

import (
	"encoding/xml"
	"strings"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category,omitempty"`
}

// renderRSS serializes the ordered records as an RSS 2.0 document. Channel
// metadata comes from site configuration, never from the records.
func renderRSS(posts []post.Post, site config.SiteConfig) ([]byte, error) {
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		link := itemLink(site.URL, p.URLPath)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        link,
			Description: p.Description,
			PubDate:     p.Date.Format(time.RFC1123Z),
			GUID:        link,
			Categories:  p.Tags,
		})
	}

	doc := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       site.Title,
			Link:        site.URL,
			Description: site.Description,
			Items:       items,
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.SerializeFailed("feed", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

func itemLink(baseURL, urlPath string) string {
	base := strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(urlPath, "/") {
		return base + "/" + urlPath
	}
	return base + urlPath
}
