// Package gemlog turns a directory of gemtext posts into an Atom feed.
package gemlog

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mk270/gemfeed2atom/internal/heading"
	"github.com/mk270/gemfeed2atom/pkg/feed"
	"github.com/mk270/gemfeed2atom/pkg/filesystem"
)

// MaxEntries caps the number of entries in a feed
const MaxEntries = 10

// DefaultTitle is used for posts without a heading line
const DefaultTitle = "No title found"

// indexPrefix marks the directory's own landing page
const indexPrefix = "index."

// postExtensions are the file name suffixes of gemtext posts
var postExtensions = []string{".gmi", ".gemini"}

// candidate is a post that passed the metadata checks but has not been opened yet
type candidate struct {
	path     string
	name     string
	modified time.Time
}

// IsPostName reports whether name carries a gemtext extension
func IsPostName(name string) bool {
	for _, ext := range postExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// IsIndexName reports whether name is reserved for the index page
func IsIndexName(name string) bool {
	return strings.HasPrefix(name, indexPrefix)
}

// EntryID joins the base URL and a file name by plain concatenation.
// TODO: resolve with url.JoinPath once existing feed ids can change.
func EntryID(baseURL, name string) string {
	return baseURL + name
}

// SelectEntries returns feed entries for the maxCount most recently modified
// posts in dir, oldest first. A negative maxCount selects nothing. Errors listing dir or reading an entry's
// metadata are returned as-is; every other problem with a single file
// excludes it or falls back to DefaultTitle.
func SelectEntries(dir string, maxCount int, baseURL string) ([]*feed.AtomEntry, error) {
	candidates, err := scanCandidates(dir)
	if err != nil {
		return nil, err
	}

	// ReadDir yields names in sorted order, so equal mtimes stay name-ordered
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return a.modified.Compare(b.modified)
	})

	maxCount = max(maxCount, 0)
	eligible := len(candidates)
	if len(candidates) > maxCount {
		candidates = candidates[len(candidates)-maxCount:]
	}

	entries := make([]*feed.AtomEntry, 0, len(candidates))
	for _, c := range candidates {
		title := heading.ExtractFirstHeading(c.path, DefaultTitle)
		entries = append(entries, feed.NewEntry(EntryID(baseURL, c.name), title, c.modified))
	}

	slog.Debug("Selected feed entries", "dir", dir, "eligible", eligible, "entries", len(entries))
	return entries, nil
}

// scanCandidates applies the cheap metadata checks without opening any file
func scanCandidates(dir string) ([]candidate, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var candidates []candidate
	for _, de := range dirEntries {
		info, err := de.Info()
		if err != nil {
			return nil, err
		}

		name := de.Name()
		if reason := skipReason(name, info.Mode()); reason != "" {
			slog.Debug("Skipping file", "file", name, "reason", reason)
			continue
		}

		candidates = append(candidates, candidate{
			path:     filepath.Join(dir, name),
			name:     name,
			modified: info.ModTime(),
		})
	}

	return candidates, nil
}

// skipReason explains why a directory entry is not a post, or returns ""
func skipReason(name string, mode os.FileMode) string {
	switch {
	case !filesystem.IsWorldReadable(mode):
		return "not world readable"
	case !filesystem.IsRegular(mode):
		return "not a regular file"
	case !utf8.ValidString(name):
		return "name is not valid UTF-8"
	case !IsPostName(name):
		return "not a gemtext file"
	case IsIndexName(name):
		return "index page"
	}
	return ""
}
