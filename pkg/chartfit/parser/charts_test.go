package parser

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExtractPieCharts(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	for i, row := range [][]interface{}{
		{"Region", "Sales"},
		{"North", 40},
		{"South", 35},
		{"East", 25},
	} {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	series := []excelize.ChartSeries{{
		Name:       "Sheet1!$B$1",
		Categories: "Sheet1!$A$2:$A$4",
		Values:     "Sheet1!$B$2:$B$4",
	}}
	if err := f.AddChart(sheet, "D2", &excelize.Chart{Type: excelize.Pie, Series: series}); err != nil {
		t.Fatalf("AddChart pie failed: %v", err)
	}
	if err := f.AddChart(sheet, "D20", &excelize.Chart{Type: excelize.Line, Series: series}); err != nil {
		t.Fatalf("AddChart line failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "charts.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	charts, err := ExtractPieCharts(path)
	if err != nil {
		t.Fatalf("ExtractPieCharts failed: %v", err)
	}
	if len(charts[sheet]) != 1 {
		t.Fatalf("Expected 1 pie chart on %s, got %d", sheet, len(charts[sheet]))
	}

	c := charts[sheet][0]
	if c.ChartType != "Pie" {
		t.Errorf("Expected chart type Pie, got %q", c.ChartType)
	}
	if c.Sheet != sheet {
		t.Errorf("Expected sheet %q, got %q", sheet, c.Sheet)
	}
	if c.W <= 0 || c.H <= 0 {
		t.Errorf("Expected a positive chart size, got %dx%d", c.W, c.H)
	}
	if len(c.Series) != 1 {
		t.Fatalf("Expected 1 series, got %d", len(c.Series))
	}
	if c.Series[0].CategoryRange != "Sheet1!$A$2:$A$4" {
		t.Errorf("Unexpected category range %q", c.Series[0].CategoryRange)
	}
	if c.Series[0].ValueRange != "Sheet1!$B$2:$B$4" {
		t.Errorf("Unexpected value range %q", c.Series[0].ValueRange)
	}
}

func TestParseChartXML(t *testing.T) {
	doughnut := []byte(`<c:chartSpace xmlns:c="c" xmlns:a="a"><c:chart>
<c:title><c:tx><c:rich><a:p><a:r><a:t>Share</a:t></a:r><a:r><a:t> by region</a:t></a:r></a:p></c:rich></c:tx></c:title>
<c:plotArea><c:doughnutChart>
<c:ser><c:tx><c:strRef><c:f>Data!$B$1</c:f></c:strRef></c:tx>
<c:cat><c:strRef><c:f>Data!$A$2:$A$5</c:f><c:strCache><c:ptCount val="4"/></c:strCache></c:strRef></c:cat>
<c:val><c:numRef><c:f>Data!$B$2:$B$5</c:f></c:numRef></c:val></c:ser>
<c:holeSize val="60"/>
</c:doughnutChart></c:plotArea></c:chart></c:chartSpace>`)

	c := parseChartXML(doughnut)
	if c == nil {
		t.Fatal("Expected a doughnut chart")
	}
	if c.ChartType != "Doughnut" || c.HoleSize != 60 || c.Title != "Share by region" {
		t.Errorf("Unexpected chart %+v", c)
	}
	if len(c.Series) != 1 || c.Series[0].NameRange != "Data!$B$1" ||
		c.Series[0].CategoryRange != "Data!$A$2:$A$5" || c.Series[0].ValueRange != "Data!$B$2:$B$5" {
		t.Errorf("Unexpected series %+v", c.Series)
	}

	line := []byte(`<c:chartSpace xmlns:c="c"><c:chart><c:plotArea><c:lineChart><c:ser/></c:lineChart></c:plotArea></c:chart></c:chartSpace>`)
	if parseChartXML(line) != nil {
		t.Error("Expected nil for a line chart")
	}

	ofPie := []byte(`<c:chartSpace xmlns:c="c"><c:chart><c:plotArea><c:ofPieChart><c:ser/></c:ofPieChart></c:plotArea></c:chart></c:chartSpace>`)
	if parseChartXML(ofPie) != nil {
		t.Error("Expected nil for a pie-of-pie chart")
	}
}

func TestParseDrawingAnchors(t *testing.T) {
	drawing := []byte(`<xdr:wsDr xmlns:xdr="x" xmlns:a="a" xmlns:c="c" xmlns:r="r">
<xdr:twoCellAnchor>
<xdr:from><xdr:col>3</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>1</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:from>
<xdr:to><xdr:col>10</xdr:col><xdr:colOff>952500</xdr:colOff><xdr:row>14</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:to>
<xdr:graphicFrame><xdr:nvGraphicFramePr><xdr:cNvPr id="2" name="Chart 1"/></xdr:nvGraphicFramePr>
<xdr:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/></xdr:xfrm>
<a:graphic><a:graphicData><c:chart r:id="rId1"/></a:graphicData></a:graphic></xdr:graphicFrame>
</xdr:twoCellAnchor>
<xdr:oneCellAnchor>
<xdr:from><xdr:col>0</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>0</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:from>
<xdr:ext cx="4572000" cy="2743200"/>
<xdr:sp><xdr:nvSpPr><xdr:cNvPr id="3" name="Shape"/></xdr:nvSpPr></xdr:sp>
</xdr:oneCellAnchor>
</xdr:wsDr>`)

	anchors := parseDrawingAnchors(drawing)
	if len(anchors) != 1 {
		t.Fatalf("Expected 1 chart anchor, got %d", len(anchors))
	}
	a := anchors[0]
	if a.name != "Chart 1" || a.rID != "rId1" {
		t.Errorf("Unexpected anchor %+v", a)
	}
	if a.left != 3*DefaultColumnPixels || a.top != DefaultRowPixels {
		t.Errorf("Unexpected offset %d,%d", a.left, a.top)
	}
	if a.width != 7*DefaultColumnPixels+100 || a.height != 13*DefaultRowPixels {
		t.Errorf("Unexpected size %dx%d", a.width, a.height)
	}
}

func TestResolveRelativePath(t *testing.T) {
	tests := []struct {
		target   string
		baseDir  string
		expected string
	}{
		{"../charts/chart1.xml", "xl/drawings", "xl/charts/chart1.xml"},
		{"/drawing1.xml", "xl/drawings", "xl/drawings/drawing1.xml"},
		{"drawing1.xml", "xl/drawings", "xl/drawings/drawing1.xml"},
	}

	for _, tt := range tests {
		result := resolveRelativePath(tt.target, tt.baseDir)
		if result != tt.expected {
			t.Errorf("resolveRelativePath(%q, %q) = %q, expected %q",
				tt.target, tt.baseDir, result, tt.expected)
		}
	}
}

func TestRelsPathFor(t *testing.T) {
	if got := relsPathFor("xl/worksheets/sheet1.xml", "xl/worksheets"); got != "xl/worksheets/_rels/sheet1.xml.rels" {
		t.Errorf("Unexpected rels path %q", got)
	}
	if got := relsPathFor("xl/drawings/drawing2.xml", "xl/drawings"); got != "xl/drawings/_rels/drawing2.xml.rels" {
		t.Errorf("Unexpected rels path %q", got)
	}
}
