package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		limit     int
		wantParts int
	}{
		{"short", "hello", 10, 1},
		{"empty", "", 10, 1},
		{"exact limit", strings.Repeat("a", 10), 10, 1},
		{"breaks at newline", "aaaa\nbbbb\ncccc", 10, 2},
		{"hard cut without newline", strings.Repeat("a", 25), 10, 3},
		{"multibyte counted as runes", strings.Repeat("日", 20), 10, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := splitMessage(tt.text, tt.limit)
			assert.Len(t, parts, tt.wantParts)
			assert.Equal(t, tt.text, strings.Join(parts, ""))
			for _, p := range parts {
				assert.LessOrEqual(t, utf8.RuneCountInString(p), tt.limit)
				assert.True(t, utf8.ValidString(p))
			}
		})
	}
}

func TestSplitMessage_DoesNotCutMarkup(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
	}{
		{"escaped ampersands", EscapeHTML(strings.Repeat("a&b", 1500)), maxMessageLength},
		{"entity straddles the limit", "abcdefg&amp;h", 10},
		{"tag straddles the limit", "abcdefg<b>bold</b>", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := splitMessage(tt.text, tt.limit)
			require.Greater(t, len(parts), 1)
			assert.Equal(t, tt.text, strings.Join(parts, ""))
			for _, p := range parts {
				assert.LessOrEqual(t, utf8.RuneCountInString(p), tt.limit)
				assert.False(t, hasOpenEntity(p), "part ends inside an entity: %q", tail(p))
				assert.Equal(t, strings.Count(p, "<"), strings.Count(p, ">"), "part cuts a tag: %q", tail(p))
				assert.False(t, strings.HasPrefix(p, "amp;"))
			}
		})
	}
}

func hasOpenEntity(s string) bool {
	amp := strings.LastIndexByte(s, '&')
	return amp >= 0 && !strings.Contains(s[amp:], ";")
}

func tail(s string) string {
	if len(s) > 12 {
		return s[len(s)-12:]
	}
	return s
}
