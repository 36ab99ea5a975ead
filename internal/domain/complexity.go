package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// DefaultComplexityScore is used when a reply carries no usable score.
const DefaultComplexityScore = 3

// Complexity is a 1..5 rating of how hard a piece of code is to follow
type Complexity struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

var complexityLabels = map[int]string{
	1: "Very low",
	2: "Low",
	3: "Medium",
	4: "High",
	5: "Very high",
}

// ComplexityFromScore builds a Complexity, falling back to the default score
// for values outside 1..5.
func ComplexityFromScore(score int) Complexity {
	label, ok := complexityLabels[score]
	if !ok {
		score = DefaultComplexityScore
		label = complexityLabels[score]
	}
	return Complexity{Score: score, Label: label}
}

// ParseComplexity reads the leading integer of a summarizer reply.
// An empty reply yields false; a reply without a leading number yields the default score.
func ParseComplexity(reply string) (Complexity, bool) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return Complexity{}, false
	}
	return ComplexityFromScore(leadingInt(reply)), true
}

func (c Complexity) String() string {
	return fmt.Sprintf("%d (%s)", c.Score, c.Label)
}

// leadingInt parses an optionally signed run of digits at the start of s.
// It returns 0 when s does not start with a number.
func leadingInt(s string) int {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && unicode.IsDigit(rune(s[end])) {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
