package videosearch

import "strings"

// MaxQueryLen is the search query length cap. YouTube tolerates longer
// strings but relevance degrades sharply past this point.
const MaxQueryLen = 120

// fallbackQuery is used when quiz metadata yields nothing searchable.
const fallbackQuery = "education"

// BuildQuery assembles a bounded search string from quiz metadata.
//
// Title, tags, and description are concatenated in that order, stripped of
// noise characters, and whitespace-collapsed. When the result overflows the
// cap it is rebuilt from title+tags only, with as much of the description as
// still fits. Naively slicing the full string can cut mid-token and leave
// trailing punctuation that hurts search relevance; rebuilding from the
// higher-priority fields keeps the most discriminative terms intact.
func BuildQuery(title string, tags []string, description string) string {
	full := sanitize(join(title, strings.Join(tags, " "), description))
	if full != "" && len(full) <= MaxQueryLen {
		return full
	}

	if len(full) > MaxQueryLen {
		head := sanitize(join(title, strings.Join(tags, " ")))
		if len(head) > MaxQueryLen {
			head = strings.TrimSpace(head[:MaxQueryLen])
		}

		budget := MaxQueryLen - len(head) - 1
		if budget > 0 && description != "" {
			desc := sanitize(description)
			if len(desc) > budget {
				desc = desc[:budget]
			}
			head = sanitize(join(head, desc))
			if len(head) > MaxQueryLen {
				head = strings.TrimSpace(head[:MaxQueryLen])
			}
		}
		if head != "" {
			return head
		}
	}

	if t := sanitize(title); t != "" {
		return t
	}
	return fallbackQuery
}

func join(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// sanitize strips characters outside [A-Za-z0-9 _-] and collapses runs of
// whitespace into single spaces.
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := true // trims leading whitespace
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
			lastSpace = false
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		default:
			// Everything else is stripped.
		}
	}

	return strings.TrimSpace(b.String())
}
