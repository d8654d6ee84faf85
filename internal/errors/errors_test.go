package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileError(t *testing.T) {
	err := NewFileError("read", "src/main.zig", fs.ErrNotExist)

	assert.Equal(t, "cannot read src/main.zig: file does not exist", err.Error())
	assert.True(t, stderrors.Is(err, fs.ErrNotExist))

	var fe *FileError
	require.True(t, stderrors.As(error(err), &fe))
	assert.Equal(t, "read", fe.Operation)
	assert.Equal(t, "src/main.zig", fe.Path)
}

func TestParseError(t *testing.T) {
	underlying := stderrors.New("tree-sitter returned no tree")
	err := NewParseError("broken.zig", underlying)

	assert.Equal(t, "parse broken.zig: tree-sitter returned no tree", err.Error())
	assert.True(t, stderrors.Is(err, underlying))
}

func TestWriteError(t *testing.T) {
	underlying := stderrors.New("disk full")
	err := NewWriteError("main", underlying)

	assert.Equal(t, "write tag for main: disk full", err.Error())
	assert.True(t, stderrors.Is(err, underlying))

	var we *WriteError
	require.True(t, stderrors.As(error(err), &we))
	assert.Equal(t, "main", we.Tag)
}
