package telegram

import (
	"strings"
	"unicode/utf8"
)

// maxMessageLength is the sendMessage text limit, counted in runes.
const maxMessageLength = 4096

// splitMessage cuts text into parts of at most limit runes, preferring to
// break after a newline. A single line longer than limit is cut on a rune
// boundary that is not inside an HTML entity or tag.
func splitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = maxMessageLength
	}

	var parts []string
	for utf8.RuneCountInString(text) > limit {
		end := byteOffsetOfRune(text, limit)
		if nl := strings.LastIndexByte(text[:end], '\n'); nl > 0 {
			end = nl + 1
		} else {
			end = markupSafeCut(text[:end])
		}
		parts = append(parts, text[:end])
		text = text[end:]
	}
	if text != "" || len(parts) == 0 {
		parts = append(parts, text)
	}
	return parts
}

func byteOffsetOfRune(s string, n int) int {
	count := 0
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}

// markupSafeCut moves the end of head back before an unterminated entity
// ("&amp;" cut after "&am") or tag. It returns len(head) when the cut is
// already clean or when backing off would leave an empty part.
func markupSafeCut(head string) int {
	end := len(head)
	if amp := strings.LastIndexByte(head, '&'); amp > 0 && strings.IndexByte(head[amp:], ';') < 0 {
		end = amp
	}
	if lt := strings.LastIndexByte(head[:end], '<'); lt > 0 && strings.IndexByte(head[lt:end], '>') < 0 {
		end = lt
	}
	return end
}
