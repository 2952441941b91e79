// Package preview provides interactive feed entry preview functionality using Bubble Tea TUI.
package preview

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/mk270/gemfeed2atom/pkg/feed"
	"github.com/mk270/gemfeed2atom/pkg/urlutils"
)

const separator = "═══════════════════════════════════════════════════════════════════════\n"

// maxTitleLength keeps list lines within a 120 column terminal
const maxTitleLength = 70

// xmlWrapWidth is the column at which FormatXMLEntry wraps long lines
const xmlWrapWidth = 80

// truncateTitle shortens title to at most maxTitleLength runes
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleLength {
		return title
	}
	return string(runes[:maxTitleLength-3]) + "..."
}

// FormatCompactListItem formats a single feed entry in compact list format
// Example: " 1. 2025-10-21T13:33:58Z  Post Title"
func FormatCompactListItem(index int, entry *feed.AtomEntry) string {
	return fmt.Sprintf("%2d. %s  %s", index+1, entry.Updated, truncateTitle(entry.Title))
}

// linkHref returns the href of the first link with the given rel
func linkHref(f *feed.AtomFeed, rel string) string {
	for _, l := range f.Links {
		if l.Rel == rel {
			return l.Href
		}
	}
	return ""
}

// FormatFeedHeader summarizes the feed-level elements of f along with the
// span of entry timestamps.
func FormatFeedHeader(f *feed.AtomFeed) string {
	var b strings.Builder

	md := feed.GetMetadata(f)
	fmt.Fprintf(&b, "%s (%d entries)\n", f.Title, md.ItemCount)
	fmt.Fprintf(&b, "ID:        %s\n", f.ID)
	fmt.Fprintf(&b, "Self:      %s\n", linkHref(f, feed.RelSelf))
	fmt.Fprintf(&b, "Alternate: %s\n", linkHref(f, feed.RelAlternate))
	fmt.Fprintf(&b, "Generator: %s %s <%s>\n", f.Generator.Name, f.Generator.Version, f.Generator.URI)
	if md.ItemCount > 0 {
		fmt.Fprintf(&b, "Entries:   %s to %s\n", feed.FormatTime(md.OldestItem), feed.FormatTime(md.NewestItem))
	}

	return b.String()
}

// BaseURLWarning describes what is wrong with a feed's base URL, or returns
// "" when entry ids will be well formed.
func BaseURLWarning(baseURL string) string {
	if urlutils.HasTrailingSlash(baseURL) {
		return ""
	}
	return fmt.Sprintf("base URL %q has no trailing slash, entry ids run into the file name", baseURL)
}

// entryFileName recovers the post file name from an entry id
func entryFileName(baseURL string, entry *feed.AtomEntry) string {
	name, found := strings.CutPrefix(entry.ID, baseURL)
	if !found || baseURL == "" {
		return "(id outside base URL)"
	}
	return name
}

// FormatDetailedItem formats a single feed entry with all metadata
func FormatDetailedItem(baseURL string, entry *feed.AtomEntry) string {
	return formatDetailedItemAt(baseURL, entry, time.Now())
}

func formatDetailedItemAt(baseURL string, entry *feed.AtomEntry, now time.Time) string {
	var b strings.Builder

	b.WriteString(separator)
	fmt.Fprintf(&b, "Title: %s\n", entry.Title)
	fmt.Fprintf(&b, "File: %s\n", entryFileName(baseURL, entry))
	fmt.Fprintf(&b, "ID: %s\n", entry.ID)
	if entry.Link.Href == entry.ID {
		b.WriteString("Link: same as ID\n")
	} else {
		fmt.Fprintf(&b, "Link: %s (differs from ID)\n", entry.Link.Href)
	}
	fmt.Fprintf(&b, "Updated: %s\n", entry.Updated)

	if updated, err := time.Parse(time.RFC3339, entry.Updated); err == nil {
		fmt.Fprintf(&b, "Modified: %s\n", formatTimeAgo(updated, now))
	}

	b.WriteString(separator)

	return b.String()
}

// FormatXMLEntry renders a single entry as it appears inside the feed
func FormatXMLEntry(entry *feed.AtomEntry) string {
	data, err := xml.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error rendering entry: %s", err)
	}

	return wrapXMLContent(string(data), xmlWrapWidth)
}

// wrapXMLContent breaks lines longer than width runes. A break goes after
// the last space or '>' among the final 20 runes of the window, or at width
// when there is none. Lines are only ever split between runes.
func wrapXMLContent(content string, width int) string {
	var result strings.Builder

	for _, line := range strings.Split(content, "\n") {
		remaining := []rune(line)
		for len(remaining) > width {
			breakPoint := width
			for i := width - 1; i >= max(width-20, 1); i-- {
				if remaining[i] == ' ' || remaining[i] == '>' {
					breakPoint = i + 1
					break
				}
			}
			result.WriteString(string(remaining[:breakPoint]))
			result.WriteString("\n")
			remaining = remaining[breakPoint:]
		}
		if len(remaining) > 0 || line == "" {
			result.WriteString(string(remaining))
			result.WriteString("\n")
		}
	}

	return result.String()
}

// formatTimeAgo formats t relative to now as a human-readable "X ago" string
func formatTimeAgo(t, now time.Time) string {
	duration := now.Sub(t)

	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		mins := int(duration.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case duration < 24*time.Hour:
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case duration < 7*24*time.Hour:
		days := int(duration.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("2006-01-02")
	}
}
