package ops

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sheetsmith/sheetsmith/pkg/mcperr"
)

func TestParseRange(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  Bounds
		ok    bool
	}{
		{"single cell", "B2", Bounds{2, 2, 2, 2}, true},
		{"rectangle", "A1:C10", Bounds{1, 1, 3, 10}, true},
		{"reversed corners", "C10:A1", Bounds{1, 1, 3, 10}, true},
		{"whitespace", "  A1:B2  ", Bounds{1, 1, 2, 2}, true},
		{"garbage", "nope", Bounds{}, false},
		{"three corners", "A1:B2:C3", Bounds{}, false},
		{"missing row", "A:B", Bounds{}, false},
		{"empty", "", Bounds{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRange(tc.input)
			if !tc.ok {
				require.Error(t, err)
				require.Equal(t, mcperr.InvalidRange, mcperr.CodeOf(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestBoundsCells(t *testing.T) {
	b := Bounds{MinCol: 1, MinRow: 1, MaxCol: 3, MaxRow: 4}
	require.Equal(t, 12, b.Cells())
}

func TestCheckBudget(t *testing.T) {
	b := Bounds{MinCol: 1, MinRow: 1, MaxCol: 10, MaxRow: 10}
	require.NoError(t, checkBudget(b, 100))
	require.NoError(t, checkBudget(b, 0)) // zero disables the cap

	err := checkBudget(b, 99)
	require.Error(t, err)
	require.Equal(t, mcperr.LimitExceeded, mcperr.CodeOf(err))
}
