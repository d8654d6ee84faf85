package tags

import (
	"io"
	"strings"

	zerrors "github.com/standardbeagle/ztags/internal/errors"
)

// Record is one tag line before serialization. Name and Pattern are never
// empty for an emitted record; Pattern is already escaped.
type Record struct {
	Name    string
	Path    string
	Pattern string
	Kind    Kind
	Scope   Scope
}

// Emitter serializes records to a single sink. The sink is shared by every
// emission of a run; a write failure is unrecoverable and aborts the run.
type Emitter struct {
	w io.Writer
}

func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Emit writes one extended-format tag line:
//
//	name<TAB>path<TAB>/^pattern$/;"<TAB>kind[<TAB>label:path]
func (e *Emitter) Emit(rec Record) error {
	var b strings.Builder
	b.Grow(len(rec.Name) + len(rec.Path) + len(rec.Pattern) + 16)
	b.WriteString(rec.Name)
	b.WriteByte('\t')
	b.WriteString(rec.Path)
	b.WriteString("\t/^")
	b.WriteString(rec.Pattern)
	b.WriteString("$/;\"\t")
	b.WriteByte(byte(rec.Kind))
	if !rec.Scope.IsZero() {
		b.WriteByte('\t')
		b.WriteString(rec.Scope.Label)
		b.WriteByte(':')
		b.WriteString(rec.Scope.Path)
	}
	b.WriteByte('\n')

	if _, err := io.WriteString(e.w, b.String()); err != nil {
		return zerrors.NewWriteError(rec.Name, err)
	}
	return nil
}
