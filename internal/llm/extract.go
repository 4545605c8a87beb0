package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON pulls the first JSON object or array out of free text. Models
// routinely wrap structured replies in prose or markdown fences even when
// asked not to; the endpoint contract is that callers tolerate this and fail
// only when no valid shape is present.
func ExtractJSON(raw json.RawMessage) (json.RawMessage, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, fmt.Errorf("empty reply")
	}

	// Fast path: the reply already is valid JSON.
	if json.Valid([]byte(text)) {
		return json.RawMessage(text), nil
	}

	// Strip a markdown code fence if the whole reply is one.
	if fenced, ok := stripFence(text); ok && json.Valid([]byte(fenced)) {
		return json.RawMessage(fenced), nil
	}

	// Scan for the first balanced object or array.
	if candidate := firstBalanced(text); candidate != "" && json.Valid([]byte(candidate)) {
		return json.RawMessage(candidate), nil
	}

	return nil, fmt.Errorf("no JSON value found in reply")
}

// stripFence removes a surrounding ``` or ```json fence.
func stripFence(text string) (string, bool) {
	if !strings.HasPrefix(text, "```") {
		return "", false
	}
	body := strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		// Drop the language tag line.
		body = body[i+1:]
	}
	end := strings.LastIndex(body, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(body[:end]), true
}

// firstBalanced returns the first brace- or bracket-balanced substring,
// respecting JSON string literals.
func firstBalanced(text string) string {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return ""
	}

	open := text[start]
	var close byte = '}'
	if open == '[' {
		close = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
