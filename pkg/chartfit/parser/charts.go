package parser

import (
	"archive/zip"
	"encoding/xml"
	"sort"
	"strconv"
	"strings"

	"github.com/ukaji3/chartfit-go/pkg/chartfit/models"
)

// PieChartTypes maps OOXML pie-family chart element tags to chart type names.
// Pie-of-pie charts draw a second plot and are not included.
var PieChartTypes = map[string]string{
	"pieChart":      "Pie",
	"pie3DChart":    "3DPie",
	"doughnutChart": "Doughnut",
}

// DefaultChartWidth and DefaultChartHeight are used when a drawing anchor
// carries no usable extent.
const (
	DefaultChartWidth  = 480
	DefaultChartHeight = 260
)

// cellMarker is an xdr:from or xdr:to anchor marker.
type cellMarker struct {
	col, colOff, row, rowOff int64
}

func (m *cellMarker) set(field, value string) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return
	}
	switch field {
	case "col":
		m.col = v
	case "colOff":
		m.colOff = v
	case "row":
		m.row = v
	case "rowOff":
		m.rowOff = v
	}
}

func (m cellMarker) pixels() (x, y int) {
	x = int(m.col)*DefaultColumnPixels + EMUToPixels(m.colOff)
	y = int(m.row)*DefaultRowPixels + EMUToPixels(m.rowOff)
	return x, y
}

// anchorPosition holds a graphic frame found in a drawing part.
type anchorPosition struct {
	name   string
	rID    string
	left   int
	top    int
	width  int
	height int
}

// ExtractPieCharts returns the pie, 3D pie and doughnut charts of every
// sheet, keyed by sheet name. Charts of other types are ignored.
func ExtractPieCharts(xlsxPath string) (map[string][]models.PieChart, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	result := make(map[string][]models.PieChart)
	for sheetName, sheetPath := range sheetParts(&r.Reader) {
		charts := sheetPieCharts(&r.Reader, sheetPath)
		if len(charts) == 0 {
			continue
		}
		for i := range charts {
			charts[i].Sheet = sheetName
		}
		sort.Slice(charts, func(i, j int) bool {
			return charts[i].Name < charts[j].Name
		})
		result[sheetName] = charts
	}
	return result, nil
}

func sheetPieCharts(r *zip.Reader, sheetPath string) []models.PieChart {
	drawingPath := sheetDrawing(r, sheetPath)
	if drawingPath == "" {
		return nil
	}
	drawingXML, err := readZipFile(r, drawingPath)
	if err != nil || drawingXML == nil {
		return nil
	}
	relsXML, err := readZipFile(r, relsPathFor(drawingPath, "xl/drawings"))
	if err != nil || relsXML == nil {
		return nil
	}
	targets := relationships(relsXML, "chart")

	var charts []models.PieChart
	for _, pos := range parseDrawingAnchors(drawingXML) {
		target, ok := targets[pos.rID]
		if !ok {
			continue
		}
		chartXML, err := readZipFile(r, resolveRelativePath(target, "xl/charts"))
		if err != nil || chartXML == nil {
			continue
		}
		chart := parseChartXML(chartXML)
		if chart == nil {
			continue
		}
		chart.Name = pos.name
		chart.L, chart.T = pos.left, pos.top
		chart.W, chart.H = pos.width, pos.height
		charts = append(charts, *chart)
	}
	return charts
}

// parseDrawingAnchors returns every anchored graphic frame that references
// a chart.
func parseDrawingAnchors(data []byte) []anchorPosition {
	var result []anchorPosition
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "twoCellAnchor", "oneCellAnchor", "absoluteAnchor":
			if pos := parseAnchor(decoder, se); pos.rID != "" {
				result = append(result, pos)
			}
		}
	}
	return result
}

// parseAnchor reads one anchor element. The frame extent comes from the
// graphic frame transform when present, then from an explicit anchor
// extent, then from the from/to cell markers at default cell sizes.
func parseAnchor(decoder *xml.Decoder, start xml.StartElement) anchorPosition {
	var pos anchorPosition
	var from, to cellMarker
	var marker *cellMarker
	var hasTo, hasPos bool
	var xfrmX, xfrmY, xfrmW, xfrmH, extW, extH, posX, posY int

	stack := []string{start.Name.Local}
	for len(stack) > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			parent := stack[len(stack)-1]
			switch t.Name.Local {
			case "from":
				marker = &from
			case "to":
				marker = &to
				hasTo = true
			case "col", "colOff", "row", "rowOff":
				if marker != nil {
					txt, _ := readElementText(decoder)
					marker.set(t.Name.Local, txt)
					continue
				}
			case "cNvPr":
				pos.name = attr(t, "name")
			case "chart":
				pos.rID = attr(t, "id")
			case "pos":
				x, _ := attrInt(t, "x")
				y, _ := attrInt(t, "y")
				posX, posY, hasPos = EMUToPixels(x), EMUToPixels(y), true
			case "off":
				if parent == "xfrm" {
					x, _ := attrInt(t, "x")
					y, _ := attrInt(t, "y")
					xfrmX, xfrmY = EMUToPixels(x), EMUToPixels(y)
				}
			case "ext":
				cx, _ := attrInt(t, "cx")
				cy, _ := attrInt(t, "cy")
				if cx <= 0 || cy <= 0 {
					break
				}
				if parent == "xfrm" {
					xfrmW, xfrmH = EMUToPixels(cx), EMUToPixels(cy)
				} else {
					extW, extH = EMUToPixels(cx), EMUToPixels(cy)
				}
			}
			stack = append(stack, t.Name.Local)
		case xml.EndElement:
			if t.Name.Local == "from" || t.Name.Local == "to" {
				marker = nil
			}
			stack = stack[:len(stack)-1]
		}
	}

	switch {
	case hasPos:
		pos.left, pos.top = posX, posY
	case xfrmX > 0 || xfrmY > 0:
		pos.left, pos.top = xfrmX, xfrmY
	default:
		pos.left, pos.top = from.pixels()
	}

	switch {
	case xfrmW > 0 && xfrmH > 0:
		pos.width, pos.height = xfrmW, xfrmH
	case extW > 0 && extH > 0:
		pos.width, pos.height = extW, extH
	case hasTo:
		x1, y1 := from.pixels()
		x2, y2 := to.pixels()
		pos.width, pos.height = x2-x1, y2-y1
	}
	if pos.width <= 0 || pos.height <= 0 {
		pos.width, pos.height = DefaultChartWidth, DefaultChartHeight
	}
	return pos
}

// parseChartXML parses a chart part. It returns nil unless the plot area
// holds a pie-family chart.
func parseChartXML(data []byte) *models.PieChart {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	var chart models.PieChart
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if ct, ok := PieChartTypes[se.Name.Local]; ok && chart.ChartType == "" {
			chart.ChartType = ct
			chart.Series, chart.HoleSize = parsePieSeries(decoder)
			continue
		}
		if se.Name.Local == "title" && chart.Title == "" {
			chart.Title = parseChartTitle(decoder)
		}
	}

	if chart.ChartType == "" {
		return nil
	}
	return &chart
}

// parseChartTitle parses chart title element.
func parseChartTitle(decoder *xml.Decoder) string {
	var parts []string
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" {
				if txt, err := readElementText(decoder); err == nil {
					parts = append(parts, txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return strings.TrimSpace(strings.Join(parts, ""))
}

// parsePieSeries parses the series and hole size of a pie-family element.
func parsePieSeries(decoder *xml.Decoder) (series []models.ChartSeries, holeSize int) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "ser":
				series = append(series, parseSingleSeries(decoder))
				depth--
			case "holeSize":
				if v, ok := attrInt(t, "val"); ok {
					holeSize = int(v)
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	return
}

// parseSingleSeries parses a single series element.
func parseSingleSeries(decoder *xml.Decoder) models.ChartSeries {
	var s models.ChartSeries
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "tx":
				s.Name, s.NameRange = parseSeriesName(decoder)
				depth--
			case "cat":
				s.CategoryRange = parseFormula(decoder)
				depth--
			case "val":
				s.ValueRange = parseFormula(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return s
}

// parseSeriesName parses series name from tx element.
func parseSeriesName(decoder *xml.Decoder) (name, nameRange string) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "f":
				if txt, err := readElementText(decoder); err == nil {
					nameRange = strings.TrimSpace(txt)
				}
				depth--
			case "v":
				if txt, err := readElementText(decoder); err == nil {
					name = strings.TrimSpace(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return
}

// parseFormula returns the first range formula inside a cat or val element.
func parseFormula(decoder *xml.Decoder) string {
	var formula string
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "f" {
				if txt, err := readElementText(decoder); err == nil && formula == "" {
					formula = strings.TrimSpace(txt)
				}
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}

	return formula
}
