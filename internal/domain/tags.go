package domain

import "strings"

// DefaultNoiseTerms are tags that name the source ecosystem itself and say
// nothing about what the code does.
var DefaultNoiseTerms = []string{"go", "golang"}

// ParseTags splits a comma separated summarizer reply into tags.
// Tags equal to a noise term, ignoring case, are dropped. Duplicates and
// casing are kept as returned.
func ParseTags(reply string, noise []string) []string {
	tags := []string{}
	for _, raw := range strings.Split(reply, ",") {
		tag := strings.TrimSpace(raw)
		if tag == "" || isNoise(tag, noise) {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

func isNoise(tag string, noise []string) bool {
	for _, term := range noise {
		if strings.EqualFold(tag, term) {
			return true
		}
	}
	return false
}
