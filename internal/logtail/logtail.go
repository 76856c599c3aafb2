package logtail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

const chunkSize = 8 * 1024

// Read returns at most maxLines from the end of the file at path, oldest
// first. A missing file yields nil, nil.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}

	// Walk backwards until the buffer holds maxLines complete lines (one more
	// newline than lines, unless the start of the file is reached).
	offset := info.Size()
	var buf []byte
	for offset > 0 && bytes.Count(buf, []byte{'\n'}) <= maxLines {
		n := int64(chunkSize)
		if offset < n {
			n = offset
		}
		offset -= n
		chunk := make([]byte, n)
		if _, err := file.ReadAt(chunk, offset); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read log: %w", err)
		}
		buf = append(chunk, buf...)
	}

	text := strings.TrimRight(string(buf), "\n")
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	if offset > 0 {
		// First line is a fragment.
		lines = lines[1:]
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines, nil
}

var (
	textLevel = regexp.MustCompile(`\blevel=([A-Za-z]+)`)
	jsonLevel = regexp.MustCompile(`"level"\s*:\s*"([A-Za-z]+)"`)
)

// Level extracts the slog level from a text or JSON log line, upper-cased.
// Unknown lines return "".
func Level(line string) string {
	if m := textLevel.FindStringSubmatch(line); m != nil {
		return strings.ToUpper(m[1])
	}
	if m := jsonLevel.FindStringSubmatch(line); m != nil {
		return strings.ToUpper(m[1])
	}
	return ""
}
