package services

import (
	"strings"

	"github.com/yhkwon/taskpilot/internal/llm"
	"github.com/yhkwon/taskpilot/internal/models"
)

// NormalizeName canonicalizes a human name for matching: mention markers,
// hyphens, dots and whitespace are stripped and the rest lower-cased, so
// "Kim Chul-soo", "kim chul soo" and "KIM-CHUL-SOO" share one key.
func NormalizeName(raw string) string {
	var builder strings.Builder
	for _, character := range raw {
		switch character {
		case '@', '-', '.', '{', '}':
			continue
		}
		if character == ' ' || character == '\t' || character == '\n' {
			continue
		}
		builder.WriteRune(character)
	}
	return strings.ToLower(builder.String())
}

// ResolveAssignee matches a free-text name against the user directory. An
// exact normalized match wins; inputs of at least two characters fall back to
// bidirectional substring containment. No match returns nil, which callers
// treat as "proceed unassigned" rather than a failure. When several
// candidates contain the input, the first in directory order wins.
func ResolveAssignee(rawName string, directory []models.User) *models.User {
	target := NormalizeName(llm.DecodeMention(rawName))
	if target == "" {
		return nil
	}

	for index := range directory {
		if NormalizeName(directory[index].Name) == target {
			return &directory[index]
		}
	}

	if len([]rune(target)) < 2 {
		return nil
	}

	for index := range directory {
		candidate := NormalizeName(directory[index].Name)
		if strings.Contains(candidate, target) || strings.Contains(target, candidate) {
			return &directory[index]
		}
	}

	return nil
}
