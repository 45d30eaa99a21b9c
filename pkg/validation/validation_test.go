package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type pathInput struct {
	FilePath string `validate:"required,xlsx_path"`
}

type rangeInput struct {
	CellRange string `validate:"required,a1addr"`
}

type sheetInput struct {
	SheetName string `validate:"required,sheetname"`
}

type fillInput struct {
	FillHex string `validate:"omitempty,fillhex"`
}

func TestXlsxPathTag(t *testing.T) {
	require.Empty(t, ValidateStruct(pathInput{FilePath: "data/book.xlsx"}))
	require.Empty(t, ValidateStruct(pathInput{FilePath: "BOOK.XLSM"}))

	msg := ValidateStruct(pathInput{FilePath: "notes.txt"})
	require.Contains(t, msg, "VALIDATION")

	msg = ValidateStruct(pathInput{FilePath: ""})
	require.True(t, strings.HasPrefix(msg, "VALIDATION"))
}

func TestA1AddrTag(t *testing.T) {
	for _, ok := range []string{"A1", "B2", "A1:C10", "AA10:AB20"} {
		require.Empty(t, ValidateStruct(rangeInput{CellRange: ok}), ok)
	}
	for _, bad := range []string{"1A", "A1:B2:C3", "A", "A1:", ""} {
		require.NotEmpty(t, ValidateStruct(rangeInput{CellRange: bad}), bad)
	}
}

func TestSheetNameTag(t *testing.T) {
	require.Empty(t, ValidateStruct(sheetInput{SheetName: "Q1 Report"}))
	require.NotEmpty(t, ValidateStruct(sheetInput{SheetName: strings.Repeat("x", 32)}))

	msg := ValidateStruct(sheetInput{SheetName: "a:b"})
	require.Contains(t, msg, "INVALID_SHEET_NAME")
}

func TestFillHexTag(t *testing.T) {
	require.Empty(t, ValidateStruct(fillInput{FillHex: ""}))
	require.Empty(t, ValidateStruct(fillInput{FillHex: "#EAF2FF"}))
	require.Empty(t, ValidateStruct(fillInput{FillHex: "eaf2ff"}))

	msg := ValidateStruct(fillInput{FillHex: "bad"})
	require.Contains(t, msg, "INVALID_COLOR")
}
