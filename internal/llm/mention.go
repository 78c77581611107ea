package llm

import "regexp"

// The mention marker is the text protocol used to disambiguate a person's
// name from surrounding prose, both in prompt instructions sent to the model
// and in the assigneeName it echoes back: @{Kim Chul-soo}.

var mentionPattern = regexp.MustCompile(`@\{(.+)\}`)

// EncodeMention wraps a name in the marker form.
func EncodeMention(name string) string {
	return "@{" + name + "}"
}

// DecodeMention extracts the name from a marker-wrapped string. Text without
// a marker is returned unchanged.
func DecodeMention(text string) string {
	matches := mentionPattern.FindStringSubmatch(text)
	if len(matches) == 2 {
		return matches[1]
	}
	return text
}
