// Package parser lowers tree-sitter syntax trees for Zig source into the
// closed declaration tree consumed by the tag generator. It is the only
// package aware of tree-sitter; any parser able to produce a syntax.Tree
// can substitute for it.
package parser

import (
	"fmt"
	"strings"

	tree_sitter_zig "github.com/tree-sitter-grammars/tree-sitter-zig/bindings/go"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	zerrors "github.com/standardbeagle/ztags/internal/errors"
	"github.com/standardbeagle/ztags/internal/syntax"
)

// ZigParser wraps a tree-sitter parser configured with the Zig grammar.
// Not safe for concurrent use.
type ZigParser struct {
	parser *tree_sitter.Parser
}

func NewZigParser() (*ZigParser, error) {
	parser := tree_sitter.NewParser()
	language := tree_sitter.NewLanguage(tree_sitter_zig.Language())
	if err := parser.SetLanguage(language); err != nil {
		parser.Close()
		return nil, fmt.Errorf("load zig grammar: %w", err)
	}
	return &ZigParser{parser: parser}, nil
}

// Close releases the underlying tree-sitter parser.
func (p *ZigParser) Close() {
	p.parser.Close()
}

// Parse lowers the syntax tree for one file. The tree-sitter C library can
// mutate input buffers via CGO, so content is copied before parsing; the
// copy stays alive as the Source of the returned tree.
func (p *ZigParser) Parse(path string, content []byte) (tree *syntax.Tree, err error) {
	defer func() {
		if r := recover(); r != nil {
			tree, err = nil, zerrors.NewParseError(path, fmt.Errorf("tree-sitter panic: %v", r))
		}
	}()

	buffer := make([]byte, len(content))
	copy(buffer, content)

	cst := p.parser.Parse(buffer, nil)
	if cst == nil {
		return nil, zerrors.NewParseError(path, fmt.Errorf("tree-sitter returned no tree"))
	}
	defer cst.Close()

	tree = &syntax.Tree{Path: path, Source: buffer}
	root := cst.RootNode()
	for i := uint(0); i < root.ChildCount(); i++ {
		if decl := lowerDecl(root.Child(i), buffer); decl != nil {
			tree.Decls = append(tree.Decls, decl)
		}
	}
	return tree, nil
}

// lowerDecl converts one CST declaration into the closed sum type. Node
// kinds outside the supported set lower to nil and are never visited again.
func lowerDecl(node *tree_sitter.Node, src []byte) *syntax.Node {
	switch node.Kind() {
	case "function_declaration":
		name, start := identifierOf(node, src)
		return &syntax.Node{Kind: syntax.KindFunction, Name: name, NameStart: start}

	case "variable_declaration":
		name, start := identifierOf(node, src)
		return &syntax.Node{
			Kind:      syntax.KindVarDecl,
			Name:      name,
			NameStart: start,
			Init:      lowerInit(initializerOf(node), src),
		}

	case "container_field":
		name, start := identifierOf(node, src)
		return &syntax.Node{
			Kind:      syntax.KindField,
			Name:      name,
			NameStart: start,
			HasType:   hasTypeAnnotation(node),
		}

	default:
		return nil
	}
}

// lowerInit lowers a declaration initializer. Only container bodies and
// error sets keep structure; every other expression reduces to a plain
// marker so the classifier falls through to the variable kind.
func lowerInit(node *tree_sitter.Node, src []byte) *syntax.Node {
	if node == nil {
		return nil
	}
	switch kind := node.Kind(); kind {
	case "struct_declaration", "union_declaration", "enum_declaration", "opaque_declaration":
		container := &syntax.Node{
			Kind:    syntax.KindContainer,
			Keyword: strings.TrimSuffix(kind, "_declaration"),
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			if member := lowerDecl(node.Child(i), src); member != nil {
				container.Members = append(container.Members, member)
			}
		}
		return container

	case "error_set_declaration":
		return &syntax.Node{Kind: syntax.KindErrorSet}

	default:
		return &syntax.Node{Kind: syntax.KindExpr}
	}
}

// identifierOf returns the text and byte offset of the first identifier
// token of a declaration, or ("", 0) for anonymous declarations.
func identifierOf(node *tree_sitter.Node, src []byte) (string, uint) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "identifier" {
			return string(src[child.StartByte():child.EndByte()]), child.StartByte()
		}
	}
	return "", 0
}

// initializerOf returns the expression node following the '=' token of a
// variable declaration, if any.
func initializerOf(node *tree_sitter.Node) *tree_sitter.Node {
	seenEquals := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if seenEquals && child.Kind() != ";" {
			return child
		}
		if child.Kind() == "=" {
			seenEquals = true
		}
	}
	return nil
}

// hasTypeAnnotation reports whether a container field carries a type
// expression; bare enumerants do not.
func hasTypeAnnotation(node *tree_sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if node.Child(i).Kind() == ":" {
			return true
		}
	}
	return false
}
