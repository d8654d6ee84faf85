package tags

import "strings"

// EscapePattern makes a raw source line safe to embed inside the
// slash-delimited search pattern of a tag line: every '/' and '\' gets a
// preceding backslash, everything else passes through. Output is at most
// twice the input length.
func EscapePattern(line string) string {
	if !strings.ContainsAny(line, `/\`) {
		return line
	}
	var b strings.Builder
	b.Grow(len(line) * 2)
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '/' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}
