package ops

import (
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheetsmith/sheetsmith/pkg/mcperr"
)

// FormatPatch is a partial set of visual attributes. Nil fields keep the
// attribute a cell already has; set fields replace only that attribute.
type FormatPatch struct {
	Bold         *bool
	WrapText     *bool
	Horizontal   *string
	Vertical     *string
	NumberFormat *string
	FillHex      *string
}

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// NormalizeFillHex strips an optional leading '#' and upper-cases the six
// hex digits, failing on anything else.
func NormalizeFillHex(fill string) (string, error) {
	color := strings.TrimPrefix(strings.TrimSpace(fill), "#")
	if !hexColor.MatchString(color) {
		return "", mcperr.Newf(mcperr.InvalidColor, "fill_hex must be 6 hex characters, got %q", fill)
	}
	return strings.ToUpper(color), nil
}

// FormatRange merges the patch into every cell of the bounds, one style at a
// time so attributes outside the patch survive. Returns the count of cells
// touched, which is every cell in the range.
func FormatRange(f *excelize.File, sheet string, b Bounds, patch FormatPatch, maxCells int) (int, error) {
	if err := checkBudget(b, maxCells); err != nil {
		return 0, err
	}

	fill := ""
	if patch.FillHex != nil {
		normalized, err := NormalizeFillHex(*patch.FillHex)
		if err != nil {
			return 0, err
		}
		fill = normalized
	}

	updated := 0
	for row := b.MinRow; row <= b.MaxRow; row++ {
		for col := b.MinCol; col <= b.MaxCol; col++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return updated, err
			}
			if err := patchCell(f, sheet, cell, patch, fill); err != nil {
				return updated, err
			}
			updated++
		}
	}
	return updated, nil
}

// patchCell reads the cell's current style, applies the patch over it, and
// assigns the merged style back to the single cell.
func patchCell(f *excelize.File, sheet, cell string, patch FormatPatch, fill string) error {
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return err
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		return err
	}
	if style == nil {
		style = &excelize.Style{}
	}

	if patch.Bold != nil {
		if style.Font == nil {
			style.Font = &excelize.Font{}
		}
		style.Font.Bold = *patch.Bold
	}
	if patch.WrapText != nil || patch.Horizontal != nil || patch.Vertical != nil {
		if style.Alignment == nil {
			style.Alignment = &excelize.Alignment{}
		}
		if patch.WrapText != nil {
			style.Alignment.WrapText = *patch.WrapText
		}
		if patch.Horizontal != nil {
			style.Alignment.Horizontal = *patch.Horizontal
		}
		if patch.Vertical != nil {
			style.Alignment.Vertical = *patch.Vertical
		}
	}
	if patch.NumberFormat != nil {
		nf := *patch.NumberFormat
		style.CustomNumFmt = &nf
	}
	if patch.FillHex != nil {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}}
	}

	merged, err := f.NewStyle(style)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, merged)
}
