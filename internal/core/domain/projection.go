package domain

import "strings"

// titleHints are attribute names that commonly carry a requirement's heading.
var titleHints = []string{"title", "name", "heading", "summary", "object heading"}

// textHints are attribute names that commonly carry the requirement body.
var textHints = []string{"object text", "text", "description", "content"}

const maxTitleLength = 80

// BestTitle returns a display label for a requirement. It is a read-only
// projection over Attributes and is never stored on the Requirement.
//
// Candidates are attributes whose name contains a title hint; the shortest
// non-empty one wins. Without one, the first text-like attribute is
// truncated. Falls back to the ID.
func BestTitle(r Requirement) string {
	best := ""
	for _, name := range r.AttributeNames() {
		lower := strings.ToLower(name)
		if !containsAny(lower, titleHints) {
			continue
		}
		text := strings.TrimSpace(r.Attributes[name].Text)
		if text == "" {
			continue
		}
		if best == "" || len(text) < len(best) {
			best = text
		}
	}
	if best != "" {
		return truncate(best, maxTitleLength)
	}

	for _, name := range r.AttributeNames() {
		if !containsAny(strings.ToLower(name), textHints) {
			continue
		}
		if text := strings.TrimSpace(r.Attributes[name].Text); text != "" {
			return truncate(text, maxTitleLength)
		}
	}
	return r.ID
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
