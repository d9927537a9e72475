package testkit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertLinesInOrder checks that every line of want appears in got, in the
// given order. Surrounding whitespace is ignored so tests do not depend on
// gofmt alignment.
func AssertLinesInOrder(t testing.TB, got string, want ...string) bool {
	t.Helper()

	lines := strings.Split(got, "\n")
	pos := 0
	for _, w := range want {
		w = normalizeSpace(w)
		found := false
		for pos < len(lines) {
			l := normalizeSpace(lines[pos])
			pos++
			if l == w {
				found = true
				break
			}
		}
		if !assert.True(t, found, "line %q not found in order\n--- output ---\n%s", w, got) {
			return false
		}
	}
	return true
}

// AssertNoLine checks that no line of got contains substr.
func AssertNoLine(t testing.TB, got, substr string) bool {
	t.Helper()
	for _, l := range strings.Split(got, "\n") {
		if strings.Contains(l, substr) {
			return assert.Fail(t, "unexpected line", "%q contains %q\n--- output ---\n%s", l, substr, got)
		}
	}
	return true
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
