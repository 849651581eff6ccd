package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipelineError_Error(t *testing.T) {
	e := New(CodeInvalidInput, "input folder does not exist")
	assert.Equal(t, "INVALID_INPUT: input folder does not exist", e.Error())

	wrapped := Wrap(CodeMacroFailed, "running UpdateTotals", stderrors.New("RPC server unavailable"))
	assert.Equal(t, "MACRO_FAILED: running UpdateTotals: RPC server unavailable", wrapped.Error())
}

func TestPipelineError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	wrapped := Wrap(CodeWriteFailed, "saving workbook", cause)

	assert.ErrorIs(t, wrapped, cause)
}

func TestPipelineError_IsByCode(t *testing.T) {
	err := Newf(CodeNoValidFiles, "folder %q contained no loadable files", "exports")
	assert.ErrorIs(t, err, ErrNoValidFiles)
	assert.NotErrorIs(t, err, ErrMacroFailed)

	// Codes still match through fmt wrapping.
	outer := fmt.Errorf("pipeline: %w", err)
	assert.ErrorIs(t, outer, ErrNoValidFiles)
}
