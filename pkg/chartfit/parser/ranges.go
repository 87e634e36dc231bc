package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidRange indicates a malformed range reference.
var ErrInvalidRange = errors.New("invalid range reference")

// RangeRef is a rectangular cell range on one sheet. Coordinates are
// 1-based and inclusive.
type RangeRef struct {
	Sheet  string
	C1, R1 int
	C2, R2 int
}

// ParseRangeReference parses a reference like 'Sheet 1'!$A$2:$A$14 or
// Sheet1!B2. A leading '=' is ignored.
func ParseRangeReference(ref string) (RangeRef, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "=")

	idx := strings.LastIndex(ref, "!")
	if idx <= 0 {
		return RangeRef{}, fmt.Errorf("%w: %q has no sheet", ErrInvalidRange, ref)
	}
	sheet := ref[:idx]
	if strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") && len(sheet) >= 2 {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}

	// Remove $ signs and split by :
	parts := strings.Split(strings.ReplaceAll(ref[idx+1:], "$", ""), ":")
	if len(parts) > 2 {
		return RangeRef{}, fmt.Errorf("%w: %q", ErrInvalidRange, ref)
	}
	c1, r1, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return RangeRef{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	c2, r2 := c1, r1
	if len(parts) == 2 {
		c2, r2, err = excelize.CellNameToCoordinates(parts[1])
		if err != nil {
			return RangeRef{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
	}

	return RangeRef{
		Sheet: sheet,
		C1:    min(c1, c2),
		R1:    min(r1, r2),
		C2:    max(c1, c2),
		R2:    max(r1, r2),
	}, nil
}

// Cells returns the cell names of the range in row-major order.
func (r RangeRef) Cells() []string {
	cells := make([]string, 0, (r.R2-r.R1+1)*(r.C2-r.C1+1))
	for row := r.R1; row <= r.R2; row++ {
		for col := r.C1; col <= r.C2; col++ {
			name, err := excelize.CoordinatesToCellName(col, row)
			if err == nil {
				cells = append(cells, name)
			}
		}
	}
	return cells
}

// ReadRangeValues returns the formatted values of every cell in ref.
func ReadRangeValues(f *excelize.File, ref string) ([]string, error) {
	rr, err := ParseRangeReference(ref)
	if err != nil {
		return nil, err
	}
	cells := rr.Cells()
	values := make([]string, 0, len(cells))
	for _, cell := range cells {
		v, err := f.GetCellValue(rr.Sheet, cell)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
