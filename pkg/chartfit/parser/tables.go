package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// TableDetectionParams holds parameters for data region detection.
type TableDetectionParams struct {
	DensityMin       float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		MinNonemptyCells: 2,
	}
}

// Region is the bounding box of non-empty cells, 0-based and inclusive.
type Region struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// String returns the region in Excel range notation, e.g. "A1:D10".
func (r Region) String() string {
	startCell, _ := excelize.CoordinatesToCellName(r.MinCol+1, r.MinRow+1)
	endCell, _ := excelize.CoordinatesToCellName(r.MaxCol+1, r.MaxRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// DetectDataRegion finds the table-like region of rows. It reports false
// when the region is too sparse or too small to be a table.
func DetectDataRegion(rows [][]string, params TableDetectionParams) (Region, bool) {
	region, ok := findDataBounds(rows)
	if !ok {
		return Region{}, false
	}

	totalCells := (region.MaxRow - region.MinRow + 1) * (region.MaxCol - region.MinCol + 1)
	nonEmptyCells := countNonEmptyCells(rows, region)
	if nonEmptyCells < params.MinNonemptyCells {
		return Region{}, false
	}

	density := float64(nonEmptyCells) / float64(totalCells)
	if density < params.DensityMin {
		return Region{}, false
	}
	return region, true
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (Region, bool) {
	r := Region{MinRow: -1, MaxRow: -1, MinCol: -1, MaxCol: -1}

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if r.MinRow < 0 || rowIdx < r.MinRow {
				r.MinRow = rowIdx
			}
			if rowIdx > r.MaxRow {
				r.MaxRow = rowIdx
			}
			if r.MinCol < 0 || colIdx < r.MinCol {
				r.MinCol = colIdx
			}
			if colIdx > r.MaxCol {
				r.MaxCol = colIdx
			}
		}
	}

	return r, r.MinRow >= 0
}

// countNonEmptyCells counts non-empty cells within the region.
func countNonEmptyCells(rows [][]string, r Region) int {
	count := 0
	for rowIdx := r.MinRow; rowIdx <= r.MaxRow && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		for colIdx := r.MinCol; colIdx <= r.MaxCol && colIdx < len(row); colIdx++ {
			if row[colIdx] != "" {
				count++
			}
		}
	}
	return count
}
