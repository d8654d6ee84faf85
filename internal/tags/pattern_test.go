package tags

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapePattern(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"plain line untouched", "pub fn main() void {", "pub fn main() void {"},
		{"forward slash", `const sep = "/";`, `const sep = "\/";`},
		{"backslash", `const esc = '\\';`, `const esc = '\\\\';`},
		{"mixed", `// path: a/b\c`, `\/\/ path: a\/b\\c`},
		{"empty", "", ""},
		{"only specials", `/\`, `\/\\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapePattern(tt.line))
		})
	}
}

// unescape removes one backslash before each '/' or '\'.
func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '/' || s[i+1] == '\\') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func TestEscapePatternRoundTrip(t *testing.T) {
	lines := []string{
		"pub fn main() void {}",
		`const path = "a/b/c";`,
		`const win = "C:\\Users";`,
		`// odd: \/ already escaped in source`,
		"",
	}
	for _, line := range lines {
		escaped := EscapePattern(line)
		assert.Equal(t, line, unescape(escaped), "line %q", line)

		// No unescaped delimiter may survive.
		for i := 0; i < len(escaped); i++ {
			if escaped[i] == '/' {
				assert.True(t, i > 0 && escaped[i-1] == '\\', "unescaped / in %q", escaped)
			}
		}
	}
}
