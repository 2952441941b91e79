// Package heading pulls document titles out of gemtext files.
package heading

import (
	"bufio"
	"os"
	"strings"
	"unicode/utf8"
)

// marker starts a gemtext heading line
const marker = '#'

// ExtractFirstHeading returns the text of the first heading line in the file
// at path, with the leading markers and surrounding whitespace removed.
// It returns fallback if the file cannot be read or contains no heading.
func ExtractFirstHeading(path, fallback string) string {
	file, err := os.Open(path)
	if err != nil {
		return fallback
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if title, ok := parseHeading(line); ok {
				return title
			}
		}
		// io.EOF and read failures alike end the search
		if err != nil {
			return fallback
		}
	}
}

// parseHeading reports whether line is a heading and returns its text.
// Lines that are not valid UTF-8 never match.
func parseHeading(line string) (string, bool) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	if !utf8.ValidString(line) {
		return "", false
	}
	if len(line) == 0 || line[0] != marker {
		return "", false
	}

	return strings.TrimSpace(strings.TrimLeft(line, string(marker))), true
}
