package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/ztags/internal/syntax"
)

func TestClassify(t *testing.T) {
	container := func(keyword string) *syntax.Node {
		return &syntax.Node{Kind: syntax.KindContainer, Keyword: keyword}
	}

	tests := []struct {
		name     string
		node     *syntax.Node
		wantKind Kind
		wantOK   bool
	}{
		{"function", &syntax.Node{Kind: syntax.KindFunction}, KindFunction, true},
		{"struct variable", &syntax.Node{Kind: syntax.KindVarDecl, Init: container("struct")}, KindStruct, true},
		{"union variable", &syntax.Node{Kind: syntax.KindVarDecl, Init: container("union")}, KindUnion, true},
		{"enum variable", &syntax.Node{Kind: syntax.KindVarDecl, Init: container("enum")}, KindEnum, true},
		{"opaque variable unrecognized", &syntax.Node{Kind: syntax.KindVarDecl, Init: container("opaque")}, 0, false},
		{"error set variable", &syntax.Node{Kind: syntax.KindVarDecl, Init: &syntax.Node{Kind: syntax.KindErrorSet}}, KindErrorSet, true},
		{"plain variable", &syntax.Node{Kind: syntax.KindVarDecl, Init: &syntax.Node{Kind: syntax.KindExpr}}, KindVariable, true},
		{"uninitialized variable", &syntax.Node{Kind: syntax.KindVarDecl}, KindVariable, true},
		{"typed member", &syntax.Node{Kind: syntax.KindField, HasType: true}, KindMember, true},
		{"bare enumerant", &syntax.Node{Kind: syntax.KindField}, KindEnumMember, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := Classify(tt.node)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantKind, kind)
			}
		})
	}
}

func TestScopeChild(t *testing.T) {
	root := Scope{}
	assert.True(t, root.IsZero())

	outer := root.Child("struct", "Outer")
	assert.False(t, outer.IsZero())
	assert.Equal(t, "struct", outer.Label)
	assert.Equal(t, "Outer", outer.Path)

	inner := outer.Child("union", "Inner")
	assert.Equal(t, "union", inner.Label)
	assert.Equal(t, "Outer.Inner", inner.Path)
}
