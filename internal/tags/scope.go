package tags

// Scope names the container enclosing a declaration. The zero value means
// "no enclosing container"; Label and Path are always set (or empty)
// together.
type Scope struct {
	Label string // container keyword that introduced the scope
	Path  string // dotted container names, innermost last
}

// IsZero reports whether no enclosing container exists.
func (s Scope) IsZero() bool {
	return s.Path == ""
}

// Child returns the scope seen by the direct members of a container named
// name and introduced by keyword. The receiver is unchanged; sibling
// subtrees never observe a child scope.
func (s Scope) Child(keyword, name string) Scope {
	path := name
	if s.Path != "" {
		path = s.Path + "." + name
	}
	return Scope{Label: keyword, Path: path}
}
