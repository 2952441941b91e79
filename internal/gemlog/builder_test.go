package gemlog

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/mk270/gemfeed2atom/pkg/feed"
)

func TestLinks(t *testing.T) {
	links := Links(testBaseURL)

	if len(links) != 2 {
		t.Fatalf("Links() returned %d links, want 2", len(links))
	}
	if links[0].Href != testBaseURL+"atom.xml" || links[0].Rel != "self" {
		t.Errorf("first link = %+v, want self link to atom.xml", links[0])
	}
	if links[1].Href != testBaseURL || links[1].Rel != "alternate" {
		t.Errorf("second link = %+v, want alternate link to base URL", links[1])
	}
}

func TestBuildFeed(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "2024-01-01.gmi", "# Hello World\n", 0o644, baseTime)
	writePost(t, dir, "index.gmi", "# Home\n", 0o644, baseTime.Add(time.Hour))

	now := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	f, err := buildFeedAt(testBaseURL, dir, "My Gemlog", now)
	if err != nil {
		t.Fatalf("buildFeedAt() error = %v", err)
	}

	if f.Xmlns != feed.AtomNamespace {
		t.Errorf("Xmlns = %q, want %q", f.Xmlns, feed.AtomNamespace)
	}
	if f.ID != testBaseURL {
		t.Errorf("ID = %q, want %q", f.ID, testBaseURL)
	}
	if f.Title != "My Gemlog" {
		t.Errorf("Title = %q, want %q", f.Title, "My Gemlog")
	}
	if f.Updated != "2024-03-01T08:30:00Z" {
		t.Errorf("Updated = %q, want %q", f.Updated, "2024-03-01T08:30:00Z")
	}
	if f.Generator != feed.DefaultGenerator() {
		t.Errorf("Generator = %+v, want %+v", f.Generator, feed.DefaultGenerator())
	}
	if len(f.Links) != 2 || f.Links[0].Rel != "self" || f.Links[1].Rel != "alternate" {
		t.Errorf("Links = %+v", f.Links)
	}
	if len(f.Entries) != 1 || f.Entries[0].Title != "Hello World" {
		t.Errorf("Entries = %+v, want the single non-index post", f.Entries)
	}
}

func TestBuildFeed_UsesCurrentTime(t *testing.T) {
	before := time.Now().UTC().Truncate(time.Second)
	f, err := BuildFeed(testBaseURL, t.TempDir(), "Empty")
	if err != nil {
		t.Fatalf("BuildFeed() error = %v", err)
	}
	after := time.Now().UTC()

	updated, err := time.Parse(time.RFC3339, f.Updated)
	if err != nil {
		t.Fatalf("Updated %q is not RFC 3339: %v", f.Updated, err)
	}
	if updated.Before(before) || updated.After(after) {
		t.Errorf("Updated = %v, want between %v and %v", updated, before, after)
	}
	if len(f.Entries) != 0 {
		t.Errorf("Entries = %v, want none", f.Entries)
	}
}

func TestBuildFeed_MissingDirectory(t *testing.T) {
	f, err := BuildFeed(testBaseURL, filepath.Join(t.TempDir(), "missing"), "Missing")
	if err == nil {
		t.Fatal("BuildFeed() expected error for missing directory")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("BuildFeed() error = %v, want fs.ErrNotExist", err)
	}

	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		t.Errorf("BuildFeed() error %T should be the unwrapped *fs.PathError", err)
	}
	if f != nil {
		t.Errorf("BuildFeed() returned feed %v alongside error", f)
	}
}

func TestBuildFeed_ParsesAsAtom(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "first.gmi", "# First & foremost\n", 0o644, baseTime)
	writePost(t, dir, "second.gemini", "text only\n", 0o644, baseTime.Add(time.Hour))

	f, err := BuildFeed(testBaseURL, dir, "Parsed <Gemlog>")
	if err != nil {
		t.Fatalf("BuildFeed() error = %v", err)
	}
	rendered, err := feed.Render(f)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	parsed, err := gofeed.NewParser().ParseString(rendered)
	if err != nil {
		t.Fatalf("gofeed could not parse rendered feed: %v", err)
	}

	if parsed.FeedType != "atom" {
		t.Errorf("FeedType = %q, want atom", parsed.FeedType)
	}
	if parsed.Title != "Parsed <Gemlog>" {
		t.Errorf("Title = %q", parsed.Title)
	}
	if parsed.FeedLink != testBaseURL+"atom.xml" {
		t.Errorf("FeedLink = %q, want self link", parsed.FeedLink)
	}
	if parsed.Link != testBaseURL {
		t.Errorf("Link = %q, want alternate link", parsed.Link)
	}
	if !strings.Contains(parsed.Generator, feed.GeneratorName) {
		t.Errorf("Generator = %q", parsed.Generator)
	}

	if len(parsed.Items) != 2 {
		t.Fatalf("parsed %d items, want 2", len(parsed.Items))
	}
	if parsed.Items[0].Title != "First & foremost" {
		t.Errorf("item 0 title = %q", parsed.Items[0].Title)
	}
	if parsed.Items[0].GUID != testBaseURL+"first.gmi" || parsed.Items[0].Link != testBaseURL+"first.gmi" {
		t.Errorf("item 0 guid = %q, link = %q", parsed.Items[0].GUID, parsed.Items[0].Link)
	}
	if parsed.Items[1].Title != DefaultTitle {
		t.Errorf("item 1 title = %q, want %q", parsed.Items[1].Title, DefaultTitle)
	}
	if parsed.Items[1].UpdatedParsed == nil || !parsed.Items[1].UpdatedParsed.Equal(baseTime.Add(time.Hour)) {
		t.Errorf("item 1 updated = %v", parsed.Items[1].UpdatedParsed)
	}
}
