package feed

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

var testSite = config.SiteConfig{
	Title:       "Example Blog",
	URL:         "https://blog.example.com",
	Description: "Posts about things",
}

func TestRenderRSS_ChannelFromSiteConfig(t *testing.T) {
	rss, err := renderRSS(nil, testSite)
	require.NoError(t, err)

	text := string(rss)
	require.True(t, strings.HasPrefix(text, xml.Header))
	require.Contains(t, text, `<rss version="2.0">`)
	require.Contains(t, text, "<title>Example Blog</title>")
	require.Contains(t, text, "<link>https://blog.example.com</link>")
	require.Contains(t, text, "<description>Posts about things</description>")
}

func TestRenderRSS_Items(t *testing.T) {
	posts := []post.Post{
		{
			URLPath:     "/posts/hello",
			Title:       "Hello",
			Date:        time.Date(2020, 6, 1, 9, 0, 0, 0, time.UTC),
			Description: "First post.",
			Tags:        []string{"go"},
		},
	}

	rss, err := renderRSS(posts, testSite)
	require.NoError(t, err)

	text := string(rss)
	require.Contains(t, text, "<title>Hello</title>")
	require.Contains(t, text, "<link>https://blog.example.com/posts/hello</link>")
	require.Contains(t, text, "<guid>https://blog.example.com/posts/hello</guid>")
	require.Contains(t, text, "<pubDate>Mon, 01 Jun 2020 09:00:00 +0000</pubDate>")
	require.Contains(t, text, "<description>First post.</description>")
	require.Contains(t, text, "<category>go</category>")
}

func TestRenderRSS_ParsesBackAsXML(t *testing.T) {
	posts := []post.Post{
		{URLPath: "/posts/a", Title: "A", Date: time.Now(), Description: "d"},
		{URLPath: "/posts/b", Title: "B", Date: time.Now(), Description: "d"},
	}

	rss, err := renderRSS(posts, testSite)
	require.NoError(t, err)

	var parsed rssXML
	require.NoError(t, xml.Unmarshal(rss, &parsed))
	require.Equal(t, "2.0", parsed.Version)
	require.Len(t, parsed.Channel.Items, 2)
}

func TestItemLink_JoinsBaseAndPath(t *testing.T) {
	require.Equal(t, "https://b.example/posts/a", itemLink("https://b.example", "/posts/a"))
	require.Equal(t, "https://b.example/posts/a", itemLink("https://b.example/", "/posts/a"))
	require.Equal(t, "https://b.example/posts/a", itemLink("https://b.example", "posts/a"))
}
