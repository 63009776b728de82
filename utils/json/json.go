// Package json wraps encoding/json with the cleanup needed for JSON embedded
// in model output: fenced blocks, leading prose, trailing commentary.
package json

import (
	stdjson "encoding/json"
	"strings"

	"github.com/tidwall/match"
	"github.com/tidwall/pretty"
)

func Marshal(v any) ([]byte, error) {
	return stdjson.Marshal(v)
}

func Unmarshal(data []byte, v any) error {
	return stdjson.Unmarshal(data, v)
}

// TrimFence strips a markdown code fence (with optional language tag) from
// around a model response.
func TrimFence(s string) string {
	t := strings.TrimSpace(s)
	if !match.Match(t, "```*```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	// drop the language tag line, e.g. ```json
	if i := strings.IndexByte(t, '\n'); i >= 0 {
		first := strings.TrimSpace(t[:i])
		if first != "" && !strings.HasPrefix(first, "{") && !strings.HasPrefix(first, "[") {
			t = t[i+1:]
		}
	}
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}

// Extract returns the first complete JSON object or array embedded in s.
// Models wrap JSON in prose often enough that unmarshal callers should not
// assume the payload starts at byte zero.
func Extract(s string) string {
	s = TrimFence(s)
	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return ""
	}
	open := s[start]
	closer := byte(']')
	if open == '{' {
		closer = '}'
	}
	depth := 0
	inString := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// UnmarshalClean extracts and normalizes the JSON payload inside raw model
// output before unmarshaling it.
func UnmarshalClean(raw string, v any) error {
	payload := Extract(raw)
	if payload == "" {
		payload = TrimFence(raw)
	}
	return stdjson.Unmarshal(pretty.Ugly([]byte(payload)), v)
}
