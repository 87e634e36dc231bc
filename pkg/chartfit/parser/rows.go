package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/chartfit-go/pkg/chartfit/models"
	"github.com/xuri/excelize/v2"
)

// ExtractRows reads the data region of a sheet as a dataset. The first row
// of the region is the header; blank header cells take the column letter.
// Blank data cells become nil and fully blank rows are skipped.
func ExtractRows(f *excelize.File, sheetName string, params TableDetectionParams) (*models.Dataset, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	ds := &models.Dataset{
		Sheet:   sheetName,
		Columns: []string{},
		Rows:    []models.DataPoint{},
	}
	region, ok := DetectDataRegion(rows, params)
	if !ok {
		return ds, nil
	}
	ds.Range = region.String()
	ds.Columns = headerColumns(rows[region.MinRow], region)

	for rowIdx := region.MinRow + 1; rowIdx <= region.MaxRow; rowIdx++ {
		row := rows[rowIdx]
		point := make(models.DataPoint, len(ds.Columns))
		hasData := false
		for i, name := range ds.Columns {
			colIdx := region.MinCol + i
			if colIdx >= len(row) || row[colIdx] == "" {
				point[name] = nil
				continue
			}
			point[name] = parseValue(row[colIdx])
			hasData = true
		}
		if hasData {
			ds.Rows = append(ds.Rows, point)
		}
	}

	return ds, nil
}

// headerColumns names the columns of region from its header row. Repeated
// names get a numeric suffix.
func headerColumns(header []string, region Region) []string {
	seen := make(map[string]int)
	columns := make([]string, 0, region.MaxCol-region.MinCol+1)
	for colIdx := region.MinCol; colIdx <= region.MaxCol; colIdx++ {
		var name string
		if colIdx < len(header) {
			name = strings.TrimSpace(header[colIdx])
		}
		if name == "" {
			name, _ = excelize.ColumnNumberToName(colIdx + 1)
		}
		seen[name]++
		if n := seen[name]; n > 1 {
			name += "_" + strconv.Itoa(n)
		}
		columns = append(columns, name)
	}
	return columns
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for finite decimals, or the original
// string. Text such as "NaN" or "Infinity" stays a string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	// Return as string
	return s
}
