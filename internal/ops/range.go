// Package ops implements the stateless cell and range operations that tools
// compose with the workspace resolver and workbook accessor.
package ops

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheetsmith/sheetsmith/pkg/mcperr"
)

// Bounds is a normalized rectangular range, 1-based and inclusive.
type Bounds struct {
	MinCol, MinRow int
	MaxCol, MaxRow int
}

// Cells returns the number of cells covered by the bounds.
func (b Bounds) Cells() int {
	return (b.MaxCol - b.MinCol + 1) * (b.MaxRow - b.MinRow + 1)
}

// ParseRange parses a single cell ("B2") or corner:corner range ("A1:C10")
// into normalized bounds. Reversed corners are reordered.
func ParseRange(cellRange string) (Bounds, error) {
	parts := strings.Split(strings.TrimSpace(cellRange), ":")
	if len(parts) != 1 && len(parts) != 2 {
		return Bounds{}, mcperr.Newf(mcperr.InvalidRange, "invalid cell range: %s", cellRange)
	}
	c1, r1, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return Bounds{}, mcperr.Newf(mcperr.InvalidRange, "invalid cell range: %s", cellRange)
	}
	c2, r2 := c1, r1
	if len(parts) == 2 {
		c2, r2, err = excelize.CellNameToCoordinates(parts[1])
		if err != nil {
			return Bounds{}, mcperr.Newf(mcperr.InvalidRange, "invalid cell range: %s", cellRange)
		}
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	return Bounds{MinCol: c1, MinRow: r1, MaxCol: c2, MaxRow: r2}, nil
}

// checkBudget rejects ranges larger than the per-operation cell cap.
func checkBudget(b Bounds, maxCells int) error {
	if maxCells > 0 && b.Cells() > maxCells {
		return mcperr.Newf(mcperr.LimitExceeded, "range covers %d cells, limit is %d", b.Cells(), maxCells)
	}
	return nil
}
