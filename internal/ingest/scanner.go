package ingest

// findJSONCandidates scans s for complete top-level JSON objects and returns
// them in order of appearance. Brace depth is tracked outside of strings, with
// escape handling inside them, so fences and prose around the object are
// skipped without touching its contents. Iterating bytes is safe for the ASCII
// delimiters involved: UTF-8 never embeds them in multi-byte sequences.
func findJSONCandidates(s string) []string {
	var candidates []string
	depth := 0
	start := -1
	inString := false
	escape := false

	for i := 0; i < len(s); i++ {
		b := s[i]

		if escape {
			escape = false
			continue
		}
		if inString {
			switch b {
			case '\\':
				escape = true
			case '"':
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start != -1 {
				candidates = append(candidates, s[start:i+1])
				start = -1
			}
		}
	}
	return candidates
}
