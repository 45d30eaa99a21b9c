// Package sheets validates sheet names and resolves sheet tabs inside an
// open workbook, enforcing the at-least-one-sheet invariant.
package sheets

import (
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/sheetsmith/sheetsmith/pkg/mcperr"
)

// forbidden are the characters Excel rejects in sheet names.
const forbidden = `[]:*?/\`

// ValidateName checks the 1-31 character bound and the forbidden character
// set. Names are case-sensitive and compared exactly elsewhere.
func ValidateName(name string) error {
	if n := utf8.RuneCountInString(name); n < 1 || n > 31 {
		return mcperr.New(mcperr.InvalidSheetName, "sheet name must be 1-31 characters")
	}
	if strings.ContainsAny(name, forbidden) {
		return mcperr.New(mcperr.InvalidSheetName, `sheet name contains invalid characters: []:*?/\`)
	}
	return nil
}

// Exists reports whether the workbook has a sheet with the exact name.
func Exists(f *excelize.File, name string) bool {
	for _, s := range f.GetSheetList() {
		if s == name {
			return true
		}
	}
	return false
}

// Ensure validates the name and returns it once the sheet is present,
// appending a new empty sheet when createIfMissing is set. Existing sheet
// order is preserved; excelize appends new sheets at the end.
func Ensure(f *excelize.File, name string, createIfMissing bool) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if Exists(f, name) {
		return nil
	}
	if !createIfMissing {
		return mcperr.Newf(mcperr.SheetNotFound, "sheet not found: %s", name)
	}
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	return nil
}

// Rename renames oldName to newName in place, preserving position and content.
func Rename(f *excelize.File, oldName, newName string) error {
	if err := ValidateName(newName); err != nil {
		return err
	}
	if !Exists(f, oldName) {
		return mcperr.Newf(mcperr.SheetNotFound, "sheet not found: %s", oldName)
	}
	if Exists(f, newName) {
		return mcperr.Newf(mcperr.SheetNameCollision, "sheet already exists: %s", newName)
	}
	return f.SetSheetName(oldName, newName)
}

// Delete removes the named sheet. Deleting the last remaining sheet is
// refused: a workbook always retains at least one sheet.
func Delete(f *excelize.File, name string) error {
	if !Exists(f, name) {
		return mcperr.Newf(mcperr.SheetNotFound, "sheet not found: %s", name)
	}
	if len(f.GetSheetList()) == 1 {
		return mcperr.New(mcperr.LastSheetViolation, "cannot delete the only sheet in workbook")
	}
	return f.DeleteSheet(name)
}
