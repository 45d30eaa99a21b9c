package ops

import (
	"github.com/xuri/excelize/v2"

	"github.com/sheetsmith/sheetsmith/pkg/mcperr"
)

func checkIndex(idx, amount int) error {
	if idx < 1 || amount < 1 {
		return mcperr.New(mcperr.InvalidIndex, "idx and amount must be >= 1")
	}
	return nil
}

// InsertRows inserts amount rows before the 1-based idx. Rows below shift
// down; excelize renumbers formulas and formatting in the shifted region.
func InsertRows(f *excelize.File, sheet string, idx, amount int) error {
	if err := checkIndex(idx, amount); err != nil {
		return err
	}
	return f.InsertRows(sheet, idx, amount)
}

// DeleteRows removes amount contiguous rows starting at the 1-based idx.
func DeleteRows(f *excelize.File, sheet string, idx, amount int) error {
	if err := checkIndex(idx, amount); err != nil {
		return err
	}
	// excelize removes one row per call; repeating at the same index walks
	// the block as rows below shift up.
	for i := 0; i < amount; i++ {
		if err := f.RemoveRow(sheet, idx); err != nil {
			return err
		}
	}
	return nil
}

// InsertColumns inserts amount columns before the 1-based idx.
func InsertColumns(f *excelize.File, sheet string, idx, amount int) error {
	if err := checkIndex(idx, amount); err != nil {
		return err
	}
	col, err := excelize.ColumnNumberToName(idx)
	if err != nil {
		return mcperr.Wrap(mcperr.InvalidIndex, err)
	}
	return f.InsertCols(sheet, col, amount)
}

// DeleteColumns removes amount contiguous columns starting at the 1-based idx.
func DeleteColumns(f *excelize.File, sheet string, idx, amount int) error {
	if err := checkIndex(idx, amount); err != nil {
		return err
	}
	col, err := excelize.ColumnNumberToName(idx)
	if err != nil {
		return mcperr.Wrap(mcperr.InvalidIndex, err)
	}
	for i := 0; i < amount; i++ {
		if err := f.RemoveCol(sheet, col); err != nil {
			return err
		}
	}
	return nil
}
