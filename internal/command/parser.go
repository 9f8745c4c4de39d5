package command

import (
	"regexp"
	"strings"

	enigma_errors "github.com/enigma-chat/enigma/pkg/errors"
)

// Verb is a recognized slash-command name.
type Verb string

const (
	VerbUsername Verb = "/username"
	VerbMsg      Verb = "/msg"
	VerbImg      Verb = "/img"
	VerbLive     Verb = "/live"
	VerbShare    Verb = "/share"
	VerbCall     Verb = "/call"
)

// BroadcastTarget routes /msg to the public channel instead of a private send.
const BroadcastTarget = "all"

// Request is one parsed command line. Only the fields relevant to the verb
// are populated.
type Request struct {
	Verb        Verb
	Handle      string // /username
	Target      string // /msg, /img, /live, /share
	Text        string // /msg body, tokens re-joined with single spaces
	KeyMaterial string // /share
	Room        string // /call
	Accept      bool   // /call
}

// Partial mitigation against reflected markup, not a sanitizer.
var scriptTagPattern = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)

// StripScriptTags removes <script>...</script> substrings from raw input.
func StripScriptTags(raw string) string {
	return scriptTagPattern.ReplaceAllString(raw, "")
}

// Interpret parses a single line of user input into a Request. It owns no
// state and performs no side effects: unknown verbs yield ErrUnrecognized,
// recognized verbs with missing arguments yield ErrMalformed.
func Interpret(raw string) (Request, error) {
	raw = StripScriptTags(raw)
	parts := strings.Fields(strings.TrimSpace(raw))
	if len(parts) == 0 {
		return Request{}, enigma_errors.ErrUnrecognized
	}

	switch Verb(strings.ToLower(parts[0])) {
	case VerbUsername:
		if len(parts) != 2 {
			return Request{}, enigma_errors.ErrMalformed
		}
		return Request{Verb: VerbUsername, Handle: parts[1]}, nil

	case VerbMsg:
		if len(parts) < 3 {
			return Request{}, enigma_errors.ErrMalformed
		}
		return Request{
			Verb:   VerbMsg,
			Target: parts[1],
			Text:   strings.Join(parts[2:], " "),
		}, nil

	case VerbImg:
		if len(parts) < 2 {
			return Request{}, enigma_errors.ErrMalformed
		}
		return Request{Verb: VerbImg, Target: parts[1]}, nil

	case VerbLive:
		if len(parts) < 2 {
			return Request{}, enigma_errors.ErrMalformed
		}
		return Request{Verb: VerbLive, Target: parts[1]}, nil

	case VerbShare:
		if len(parts) < 3 {
			return Request{}, enigma_errors.ErrMalformed
		}
		return Request{Verb: VerbShare, KeyMaterial: parts[1], Target: parts[2]}, nil

	case VerbCall:
		// /call accept <room> | /call reject <room>
		if len(parts) < 3 {
			return Request{}, enigma_errors.ErrMalformed
		}
		switch strings.ToLower(parts[1]) {
		case "accept":
			return Request{Verb: VerbCall, Room: parts[2], Accept: true}, nil
		case "reject":
			return Request{Verb: VerbCall, Room: parts[2], Accept: false}, nil
		}
		return Request{}, enigma_errors.ErrMalformed

	default:
		return Request{}, enigma_errors.ErrUnrecognized
	}
}
