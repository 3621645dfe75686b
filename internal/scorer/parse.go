package scorer

import (
	"fmt"
	"strconv"
	"strings"
)

// parseScore converts a model reply into an intent score. The reply should
// be a bare integer but models wrap numbers in prose, punctuation, or code
// fences; the first integer found wins and is clamped to [0,100]. This is
// the only place raw model output is inspected.
func parseScore(reply string) (int, error) {
	cleaned := strings.TrimSpace(reply)
	if cleaned == "" {
		return 0, fmt.Errorf("empty reply")
	}

	start := -1
	for i, r := range cleaned {
		if r >= '0' && r <= '9' {
			start = i
			break
		}
	}
	if start == -1 {
		return 0, fmt.Errorf("no digits in reply %q", truncateForError(cleaned))
	}

	end := start
	for end < len(cleaned) && cleaned[end] >= '0' && cleaned[end] <= '9' {
		end++
	}

	n, err := strconv.Atoi(cleaned[start:end])
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", cleaned[start:end], err)
	}

	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return n, nil
}

func truncateForError(s string) string {
	if len(s) > 80 {
		return s[:80] + "..."
	}
	return s
}
