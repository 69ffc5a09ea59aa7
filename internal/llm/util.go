package llm

import "strings"

// CleanJSONBlock strips markdown code fences from LLM output so the remainder
// can be fed directly to a JSON decoder.
func CleanJSONBlock(text string) string {
	cleaned := strings.TrimSpace(text)

	if strings.HasPrefix(cleaned, "```") {
		if idx := strings.Index(cleaned, "\n"); idx != -1 {
			cleaned = cleaned[idx+1:]
		} else {
			cleaned = strings.TrimPrefix(cleaned, "```json")
			cleaned = strings.TrimPrefix(cleaned, "```")
		}
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")

	return strings.TrimSpace(cleaned)
}

// ExtractJSONObject finds the first balanced top-level JSON object embedded in
// free-form text. Returns "" when no object is present. Brace counting ignores
// braces inside string literals.
func ExtractJSONObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}
	return ""
}
