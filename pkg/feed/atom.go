package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mk270/gemfeed2atom/pkg/filesystem"
)

// Render serializes the feed as an indented XML document
func Render(f *AtomFeed) (string, error) {
	if f == nil {
		return "", fmt.Errorf("feed is nil")
	}

	xmlData, err := xml.MarshalIndent(f, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal atom feed: %w", err)
	}

	return xml.Header + string(xmlData) + "\n", nil
}

// Write renders the whole document before writing it, so a failed render
// leaves w untouched.
func Write(w io.Writer, f *AtomFeed) error {
	content, err := Render(f)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, content); err != nil {
		return fmt.Errorf("failed to write atom feed: %w", err)
	}
	return nil
}

// SaveToFile saves the feed to a file, creating parent directories as needed
func SaveToFile(f *AtomFeed, outputPath string) error {
	content, err := Render(f)
	if err != nil {
		return err
	}

	if err := filesystem.EnsureDirectoryExists(outputPath); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(content); err != nil {
		return fmt.Errorf("failed to write atom feed: %w", err)
	}

	slog.Info("Feed saved successfully", "path", outputPath, "entries", len(f.Entries))
	return nil
}

// GetMetadata returns metadata about the generated feed.
// Timestamps that fail to parse are left zero.
func GetMetadata(f *AtomFeed) *Metadata {
	if f == nil {
		return nil
	}

	metadata := &Metadata{
		Title:     f.Title,
		ItemCount: len(f.Entries),
	}
	metadata.Updated, _ = time.Parse(time.RFC3339, f.Updated)

	for _, entry := range f.Entries {
		updated, err := time.Parse(time.RFC3339, entry.Updated)
		if err != nil {
			continue
		}
		if metadata.OldestItem.IsZero() || updated.Before(metadata.OldestItem) {
			metadata.OldestItem = updated
		}
		if updated.After(metadata.NewestItem) {
			metadata.NewestItem = updated
		}
	}

	return metadata
}
