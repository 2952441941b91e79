package gemlog

import (
	"time"

	"github.com/gorilla/feeds"

	"github.com/mk270/gemfeed2atom/pkg/feed"
)

// feedFileName is where the generated document is expected to be published
const feedFileName = "atom.xml"

// Links returns the feed-level self and alternate links, in that order
func Links(baseURL string) []feeds.AtomLink {
	return []feeds.AtomLink{
		feed.SelfLink(baseURL + feedFileName),
		feed.AlternateLink(baseURL),
	}
}

// BuildFeed assembles the Atom feed for the posts in dir.
// Errors from scanning the directory are returned unchanged.
func BuildFeed(baseURL, dir, title string) (*feed.AtomFeed, error) {
	return buildFeedAt(baseURL, dir, title, time.Now())
}

func buildFeedAt(baseURL, dir, title string, now time.Time) (*feed.AtomFeed, error) {
	entries, err := SelectEntries(dir, MaxEntries, baseURL)
	if err != nil {
		return nil, err
	}

	return &feed.AtomFeed{
		Xmlns:     feed.AtomNamespace,
		ID:        baseURL,
		Title:     title,
		Updated:   feed.FormatTime(now),
		Links:     Links(baseURL),
		Generator: feed.DefaultGenerator(),
		Entries:   entries,
	}, nil
}
