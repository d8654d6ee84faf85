// Package tags turns lowered syntax trees into extended-format tag lines.
package tags

import (
	"github.com/rs/zerolog/log"

	"github.com/standardbeagle/ztags/internal/syntax"
)

// Generator walks lowered syntax trees and emits one tag per indexable
// declaration. Traversal is a plain sequential recursive descent; output
// order equals visit order, so repeated runs over the same input are
// byte-identical.
type Generator struct {
	emitter *Emitter
}

func NewGenerator(emitter *Emitter) *Generator {
	return &Generator{emitter: emitter}
}

// File emits tags for every top-level declaration of tree.
func (g *Generator) File(tree *syntax.Tree) error {
	log.Debug().Str("path", tree.Path).Int("decls", len(tree.Decls)).Msg("generating tags")
	for _, decl := range tree.Decls {
		if err := g.visit(tree, decl, Scope{}); err != nil {
			return err
		}
	}
	return nil
}

// visit emits the tags for one declaration subtree. Members of a recognized
// container see the child scope and are written before the container's own
// line; the container's own tag keeps the pre-recursion scope, so it stays
// scoped to its parent.
func (g *Generator) visit(tree *syntax.Tree, node *syntax.Node, scope Scope) error {
	kind, ok := Classify(node)
	if !ok {
		return nil
	}

	if node.Kind == syntax.KindVarDecl && node.Init != nil && node.Init.Kind == syntax.KindContainer {
		child := scope.Child(node.Init.Keyword, node.Name)
		for _, member := range node.Init.Members {
			if err := g.visit(tree, member, child); err != nil {
				return err
			}
		}
	}

	if node.Name == "" {
		return nil
	}

	return g.emitter.Emit(Record{
		Name:    node.Name,
		Path:    tree.Path,
		Pattern: EscapePattern(tree.LineAt(node.NameStart)),
		Kind:    kind,
		Scope:   scope,
	})
}
