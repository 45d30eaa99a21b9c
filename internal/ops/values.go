package ops

import (
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/sheetsmith/sheetsmith/pkg/mcperr"
)

// ReadRange returns the values inside the bounds in row-major order, one
// slice per source row. Empty cells come back as nil so callers can tell a
// blank apart from an empty string.
func ReadRange(f *excelize.File, sheet string, b Bounds, maxCells int) ([][]any, error) {
	if err := checkBudget(b, maxCells); err != nil {
		return nil, err
	}
	values := make([][]any, 0, b.MaxRow-b.MinRow+1)
	for row := b.MinRow; row <= b.MaxRow; row++ {
		line := make([]any, 0, b.MaxCol-b.MinCol+1)
		for col := b.MinCol; col <= b.MaxCol; col++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return nil, err
			}
			v, err := decodeCell(f, sheet, cell)
			if err != nil {
				return nil, err
			}
			line = append(line, v)
		}
		values = append(values, line)
	}
	return values, nil
}

// WriteCell sets exactly one cell, preserving the scalar type as given.
func WriteCell(f *excelize.File, sheet, cell string, value any) error {
	if _, _, err := excelize.CellNameToCoordinates(cell); err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

// WriteRange writes a 2-D slice row-major starting at the anchor cell and
// returns the count of cells written, including explicitly-present empties.
func WriteRange(f *excelize.File, sheet, startCell string, values [][]any, maxCells int) (int, error) {
	startCol, startRow, err := excelize.CellNameToCoordinates(startCell)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, row := range values {
		total += len(row)
	}
	if maxCells > 0 && total > maxCells {
		return 0, mcperr.Newf(mcperr.LimitExceeded, "payload covers %d cells, limit is %d", total, maxCells)
	}

	written := 0
	for rIdx, row := range values {
		for cIdx, v := range row {
			cell, err := excelize.CoordinatesToCellName(startCol+cIdx, startRow+rIdx)
			if err != nil {
				return written, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return written, err
			}
			written++
		}
	}
	return written, nil
}

// ClearRange blanks every cell value inside the bounds, leaving formatting
// untouched, and returns how many cells held a value beforehand. A second
// call over the same range therefore reports zero.
func ClearRange(f *excelize.File, sheet string, b Bounds, maxCells int) (int, error) {
	if err := checkBudget(b, maxCells); err != nil {
		return 0, err
	}
	cleared := 0
	for row := b.MinRow; row <= b.MaxRow; row++ {
		for col := b.MinCol; col <= b.MaxCol; col++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return cleared, err
			}
			raw, err := f.GetCellValue(sheet, cell)
			if err != nil {
				return cleared, err
			}
			if raw == "" {
				continue
			}
			if err := f.SetCellValue(sheet, cell, nil); err != nil {
				return cleared, err
			}
			cleared++
		}
	}
	return cleared, nil
}

// decodeCell maps a stored cell onto the scalar that was written: bool for
// boolean cells, float64 for numerics, string for text, nil for blanks.
func decodeCell(f *excelize.File, sheet, cell string) (any, error) {
	raw, err := f.GetCellValue(sheet, cell)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	ct, err := f.GetCellType(sheet, cell)
	if err != nil {
		return nil, err
	}
	switch ct {
	case excelize.CellTypeBool:
		return raw == "TRUE" || raw == "1", nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		// Numeric cells usually carry no explicit type attribute.
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n, nil
		}
		return raw, nil
	default:
		return raw, nil
	}
}
