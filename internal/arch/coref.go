package arch

import "strings"

// Match scores, highest to lowest. A tie at the best score means the
// mention is ambiguous and stays unresolved.
const (
	scoreExact     = 3
	scoreSuffix    = 2
	scoreSubstring = 1
)

// Resolve maps a textual mention onto one of the known entity names.
// Exact matches outrank suffix matches ("gateway" against "Payment
// Gateway"), which outrank plain substring matches. The boolean is
// false when nothing matches or the best score is shared by two
// candidates.
func Resolve(mention string, known []string) (string, bool) {
	mention = strings.ToLower(strings.TrimSpace(mention))
	if mention == "" {
		return "", false
	}

	best := ""
	bestScore := 0
	tied := false
	for _, name := range known {
		low := strings.ToLower(name)
		score := 0
		switch {
		case low == mention:
			score = scoreExact
		case strings.HasSuffix(low, " "+mention) || strings.HasSuffix(mention, " "+low):
			score = scoreSuffix
		case strings.Contains(low, mention) || strings.Contains(mention, low):
			score = scoreSubstring
		}
		if score == 0 {
			continue
		}
		switch {
		case score > bestScore:
			best, bestScore, tied = name, score, false
		case score == bestScore:
			tied = true
		}
	}
	if bestScore == 0 || tied {
		return "", false
	}
	return best, true
}
