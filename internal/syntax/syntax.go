// Package syntax defines the lowered declaration tree the tag generator
// consumes. The node set is a closed sum type: the parser maps everything
// it does not recognize to nothing, so downstream code never needs
// defensive shape checks.
package syntax

import "bytes"

// NodeKind discriminates the declaration shapes the generator knows about.
type NodeKind uint8

const (
	// KindFunction is a fn declaration, top level or container member.
	KindFunction NodeKind = iota
	// KindVarDecl is a const/var declaration, with an optional initializer.
	KindVarDecl
	// KindContainer is a struct/union/enum/... body used as an initializer.
	KindContainer
	// KindErrorSet is an error{...} set used as an initializer.
	KindErrorSet
	// KindField is a container member: either a typed field or a bare
	// enumerant.
	KindField
	// KindExpr is any other initializer expression. It carries no
	// structure; it exists so a variable's initializer is always
	// representable.
	KindExpr
)

// Node is one declaration (or initializer) in the lowered tree.
type Node struct {
	Kind      NodeKind
	Name      string  // identifier text; empty when the declaration is anonymous
	NameStart uint    // byte offset of the name token in Tree.Source
	Keyword   string  // container keyword ("struct", "union", "enum", ...); KindContainer only
	Init      *Node   // initializer; KindVarDecl only
	HasType   bool    // KindField: true for typed members, false for bare enumerants
	Members   []*Node // KindContainer: member declarations in lexical order
}

// Tree is the lowered parse result for one file.
type Tree struct {
	Path   string
	Source []byte
	Decls  []*Node // top-level declarations in lexical order
}

// LineAt returns the source line containing the byte at off, without its
// terminator. Offset 0 is always a valid anchor; offsets past the end clamp
// to the final line.
func (t *Tree) LineAt(off uint) string {
	src := t.Source
	if int(off) > len(src) {
		off = uint(len(src))
	}
	start := 0
	if i := bytes.LastIndexByte(src[:off], '\n'); i >= 0 {
		start = i + 1
	}
	end := len(src)
	if i := bytes.IndexByte(src[off:], '\n'); i >= 0 {
		end = int(off) + i
	}
	return string(bytes.TrimSuffix(src[start:end], []byte{'\r'}))
}
