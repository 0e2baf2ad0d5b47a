package formatter

import (
	"strings"
	"unicode/utf8"
)

const whitespace = " \t\n\r\v\f"

// SplitText cuts text into chunks of at most limit bytes. Each cut happens at
// the last newline inside the limit; only a chunk without any newline in range
// is cut hard, on a rune boundary. Leading whitespace of every following chunk
// is dropped.
// Example: SplitText("aa\nbb\ncc", 6) -> ["aa\nbb", "cc"]
func SplitText(text string, limit int) []string {
	if limit <= 0 {
		return []string{text}
	}

	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndexByte(text[:limit], '\n')
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
		}
		chunks = append(chunks, text[:cut])
		text = strings.TrimLeft(text[cut:], whitespace)
	}
	return append(chunks, text)
}

// Truncate shortens s to at most n bytes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	cut := n - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
