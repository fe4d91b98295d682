// Package logtail reads the most recent lines of sentiboard's log file.
package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines lines from the end of the file at path that
// contain filter (case-insensitive). An empty filter matches every line and a
// non-positive maxLines returns every match. A missing file yields no lines.
func Read(path string, maxLines int, filter string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	needle := strings.ToLower(strings.TrimSpace(filter))
	var ring []string
	if maxLines > 0 {
		ring = make([]string, 0, maxLines)
	}
	start := 0

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if needle != "" && !strings.Contains(strings.ToLower(line), needle) {
			continue
		}
		if maxLines <= 0 || len(ring) < maxLines {
			ring = append(ring, line)
			continue
		}
		ring[start] = line
		start = (start + 1) % maxLines
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if start == 0 {
		return ring, nil
	}
	lines := make([]string, 0, len(ring))
	lines = append(lines, ring[start:]...)
	lines = append(lines, ring[:start]...)
	return lines, nil
}
