package analysis

import "encoding/json"

// ExtractJSON finds the first balanced {...} span in s and decodes it into a
// map. Generative responses often wrap the JSON object in prose or markdown
// fences; everything outside the span is ignored. Returns false when no
// parseable object is present.
func ExtractJSON(s string) (map[string]any, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

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
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				var m map[string]any
				if err := json.Unmarshal([]byte(s[start:i+1]), &m); err == nil {
					return m, true
				}
				// Malformed span; keep scanning for a later candidate.
				start = -1
			}
		}
	}

	return nil, false
}
