// Package feed models Atom 1.0 documents and renders them as XML.
package feed

import (
	"encoding/xml"
	"time"

	"github.com/gorilla/feeds"
)

// AtomNamespace is the XML namespace of Atom 1.0 documents
const AtomNamespace = "http://www.w3.org/2005/Atom"

// Identity reported in the <generator> element
const (
	GeneratorURI     = "https://github.com/mk270/gemfeed2atom"
	GeneratorVersion = "1.0.0"
	GeneratorName    = "gemfeed2atom"
)

// Link relations used at feed level
const (
	RelSelf      = "self"
	RelAlternate = "alternate"
)

// Generator identifies the tool that produced a feed
type Generator struct {
	URI     string `xml:"uri,attr"`
	Version string `xml:"version,attr"`
	Name    string `xml:",chardata"`
}

// AtomEntry is a single <entry> of a feed.
// ID and Link.Href always carry the same URL.
type AtomEntry struct {
	XMLName xml.Name       `xml:"entry"`
	ID      string         `xml:"id"`
	Title   string         `xml:"title"`
	Updated string         `xml:"updated"`
	Link    feeds.AtomLink `xml:"link"`
}

// AtomFeed is the top-level <feed> element
type AtomFeed struct {
	XMLName   xml.Name         `xml:"feed"`
	Xmlns     string           `xml:"xmlns,attr"`
	ID        string           `xml:"id"`
	Title     string           `xml:"title"`
	Updated   string           `xml:"updated"`
	Links     []feeds.AtomLink `xml:"link"`
	Generator Generator        `xml:"generator"`
	Entries   []*AtomEntry     `xml:"entry"`
}

// Metadata contains metadata about a generated feed
type Metadata struct {
	Title      string
	ItemCount  int
	Updated    time.Time
	OldestItem time.Time
	NewestItem time.Time
}

// DefaultGenerator returns the generator identity of this build
func DefaultGenerator() Generator {
	return Generator{
		URI:     GeneratorURI,
		Version: GeneratorVersion,
		Name:    GeneratorName,
	}
}

// SelfLink points at the feed document itself
func SelfLink(href string) feeds.AtomLink {
	return feeds.AtomLink{Href: href, Rel: RelSelf}
}

// AlternateLink points at the human-readable page the feed summarizes
func AlternateLink(href string) feeds.AtomLink {
	return feeds.AtomLink{Href: href, Rel: RelAlternate}
}

// EntryLink is the bare link of an entry; it carries no rel attribute.
func EntryLink(href string) feeds.AtomLink {
	return feeds.AtomLink{Href: href}
}

// NewEntry builds an entry whose id and link share the same URL
func NewEntry(id, title string, updated time.Time) *AtomEntry {
	return &AtomEntry{
		ID:      id,
		Title:   title,
		Updated: FormatTime(updated),
		Link:    EntryLink(id),
	}
}

// FormatTime formats t as an RFC 3339 UTC timestamp for Atom feeds.
// Sub-second precision is kept so posts written within the same second
// stay distinguishable.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
