package verifier

import "strings"

// Verifier decides whether a program's output matches the expected answer.
type Verifier interface {
	CompareOutput(expected, actual string) bool
}

type DefaultVerifier struct{}

func NewDefaultVerifier() Verifier {
	return &DefaultVerifier{}
}

// CompareOutput ignores leading and trailing whitespace of the whole text and
// of every line. Line count and line contents must otherwise match exactly.
func (dv *DefaultVerifier) CompareOutput(expected, actual string) bool {
	expectedLines := normalizedLines(expected)
	actualLines := normalizedLines(actual)

	if len(expectedLines) != len(actualLines) {
		return false
	}
	for i := range expectedLines {
		if expectedLines[i] != actualLines[i] {
			return false
		}
	}
	return true
}

func normalizedLines(text string) []string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}
