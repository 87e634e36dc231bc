package models

import "time"

// SampleResult is the outcome of downsampling one sheet.
type SampleResult struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Strategy is the sampling strategy used.
	Strategy string `json:"strategy"`
	// SourceRows is the row count before sampling.
	SourceRows int `json:"source_rows"`
	// TargetPoints is the requested point budget.
	TargetPoints int `json:"target_points"`
	// Dataset holds the reduced rows.
	Dataset Dataset `json:"dataset"`
}

// AnomalyResult lists anomalous rows of one numeric column.
type AnomalyResult struct {
	BookName  string  `json:"book_name"`
	Sheet     string  `json:"sheet"`
	Field     string  `json:"field"`
	Threshold float64 `json:"threshold"`
	// Indices are zero-based data row indices.
	Indices []int `json:"indices"`
	// Rows are the anomalous rows in source order.
	Rows []DataPoint `json:"rows"`
}

// ChartLayout is the label layout of one pie chart.
type ChartLayout struct {
	Chart      PieChart   `json:"chart"`
	Center     Point      `json:"center"`
	Radius     float64    `json:"radius"`
	UsedShrink bool       `json:"used_shrink"`
	Adjusted   bool       `json:"adjusted"`
	RenderedAt time.Time  `json:"rendered_at"`
	Labels     []OutLabel `json:"labels"`
}

// LayoutResult is the label layout of every pie chart in a workbook.
type LayoutResult struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Charts maps sheet name to the layouts of its charts.
	Charts map[string][]ChartLayout `json:"charts"`
}
