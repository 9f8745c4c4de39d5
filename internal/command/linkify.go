package command

import (
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`(http|https|ftp|ftps)://[a-zA-Z0-9\-.]+\.[a-zA-Z]{2,3}(/\S*)?`)

// Linkify wraps every URL-looking token in an anchor that opens in a new
// viewing context. Applied to message bodies before storage.
func Linkify(text string) string {
	return urlPattern.ReplaceAllString(text, `<a href="${0}" target="_blank">${0}</a>`)
}

// KeyMarker is the literal in-band substring that flips a broadcast into
// encryption mode.
const KeyMarker = "key"

// SplitKeyMarker splits text at the first occurrence of the literal "key"
// substring into (message, keyName), both trimmed. This is a deliberately
// crude in-band convention carried over from the legacy protocol: any
// ordinary occurrence of the word "key" anywhere in a broadcast triggers
// encryption mode. Isolated here so the cipher can be swapped without
// touching the command grammar.
func SplitKeyMarker(text string) (msg, keyName string, ok bool) {
	idx := strings.Index(text, KeyMarker)
	if idx < 0 {
		return text, "", false
	}
	msg = strings.TrimSpace(text[:idx])
	keyName = strings.TrimSpace(text[idx+len(KeyMarker):])
	return msg, keyName, true
}
