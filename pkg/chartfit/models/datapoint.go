// Package models defines data structures for chart reduction and label layout.
package models

// DataPoint is one result row keyed by column name.
// Values are string, float64, int64, nil or time.Time.
type DataPoint map[string]interface{}

// Dataset is an ordered set of rows read from a single sheet.
type Dataset struct {
	// Sheet is the sheet the rows were read from.
	Sheet string `json:"sheet,omitempty"`
	// Range is the cell range the rows were read from, e.g. "A1:B14".
	Range string `json:"range,omitempty"`
	// Columns lists column names in header order.
	Columns []string `json:"columns"`
	// Rows contains the data rows in source order.
	Rows []DataPoint `json:"rows"`
}
