package models

// ChartSeries represents series metadata for a chart.
type ChartSeries struct {
	// Name is the series display name.
	Name string `json:"name"`
	// NameRange is the range reference for the series name.
	NameRange string `json:"name_range,omitempty"`
	// CategoryRange is the range reference for slice categories.
	CategoryRange string `json:"category_range,omitempty"`
	// ValueRange is the range reference for slice values.
	ValueRange string `json:"value_range,omitempty"`
}

// PieChart represents a pie-family chart embedded in a workbook.
type PieChart struct {
	// Name is the drawing object name.
	Name string `json:"name"`
	// Sheet is the sheet that hosts the chart.
	Sheet string `json:"sheet"`
	// ChartType is Pie, 3DPie or Doughnut.
	ChartType string `json:"chart_type"`
	// Title is the chart title.
	Title string `json:"title,omitempty"`
	// HoleSize is the doughnut hole size in percent (0 for pies).
	HoleSize int `json:"hole_size,omitempty"`
	// Series is the list of series included in the chart.
	Series []ChartSeries `json:"series"`
	// L is the left offset in pixels.
	L int `json:"l"`
	// T is the top offset in pixels.
	T int `json:"t"`
	// W is the chart width in pixels.
	W int `json:"w"`
	// H is the chart height in pixels.
	H int `json:"h"`
}

// Area returns the drawable area of the chart in its own pixel space.
func (c PieChart) Area() ChartArea {
	return ChartArea{Left: 0, Top: 0, Right: float64(c.W), Bottom: float64(c.H)}
}
