package mcperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorStringAndUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(SaveFailed, cause)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "SAVE_FAILED")
	require.Contains(t, err.Error(), "disk full")
}

func TestCodeOf(t *testing.T) {
	require.Equal(t, SheetNotFound, CodeOf(New(SheetNotFound, "")))
	require.Equal(t, LastSheetViolation, CodeOf(fmt.Errorf("outer: %w", New(LastSheetViolation, ""))))
	// Unknown errors fall back to VALIDATION.
	require.Equal(t, Validation, CodeOf(errors.New("anything")))
}

func TestResultCarriesCodeAndGuidance(t *testing.T) {
	res := Result(New(OutOfWorkspace, "path /tmp/x.xlsx"))
	require.True(t, res.IsError)

	res = Result(errors.New("plain"))
	require.True(t, res.IsError)
}

func TestNewfFormats(t *testing.T) {
	err := Newf(WorkbookNotFound, "workbook not found: %s", "/a/b.xlsx")
	require.Contains(t, err.Error(), "/a/b.xlsx")
}
