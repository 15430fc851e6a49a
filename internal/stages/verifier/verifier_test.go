package verifier_test

import (
	"testing"

	. "github.com/cp-helper/judge/internal/stages/verifier"
)

func TestCompareOutput(t *testing.T) {
	cases := []struct {
		name     string
		expected string
		actual   string
		want     bool
	}{
		{"identical", "1 2 3\n", "1 2 3\n", true},
		{"missing trailing newline", "1 2 3\n", "1 2 3", true},
		{"trailing space on line", "1 2\n3", "1 2\n3 ", true},
		{"leading blank lines", "42", "\n\n  42\n", true},
		{"crlf line endings", "a\nb\n", "a\r\nb\r\n", true},
		{"different line split", "1 2\n3", "1\n2 3", false},
		{"case sensitive", "YES", "yes", false},
		{"extra line", "1\n2", "1\n2\n3", false},
		{"inner spacing matters", "1 2", "1  2", false},
		{"both empty", "", "  \n", true},
		{"empty vs output", "", "0", false},
	}

	v := NewDefaultVerifier()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := v.CompareOutput(c.expected, c.actual); got != c.want {
				t.Fatalf("CompareOutput(%q, %q) = %v, want %v", c.expected, c.actual, got, c.want)
			}
		})
	}
}

func TestCompareOutput_Symmetric(t *testing.T) {
	v := NewDefaultVerifier()
	pairs := [][2]string{
		{"1 2 3\n", "1 2 3"},
		{"a\nb", "a\n b \n"},
		{"x", "y"},
	}
	for _, p := range pairs {
		if v.CompareOutput(p[0], p[1]) != v.CompareOutput(p[1], p[0]) {
			t.Fatalf("comparison of %q and %q is not symmetric", p[0], p[1])
		}
	}
}
