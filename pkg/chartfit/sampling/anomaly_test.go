package sampling

import (
	"reflect"
	"testing"
	"time"

	"github.com/ukaji3/chartfit-go/pkg/chartfit/models"
)

func rowsOf(field string, values ...interface{}) []models.DataPoint {
	rows := make([]models.DataPoint, len(values))
	for i, v := range values {
		rows[i] = models.DataPoint{field: v}
	}
	return rows
}

func TestDetectAnomalies(t *testing.T) {
	tests := []struct {
		name      string
		data      []models.DataPoint
		threshold float64
		expected  []int
	}{
		{"clear outlier", rowsOf("v", 1, 2, 3, 100), 1, []int{3}},
		{"outlier within two sigma", rowsOf("v", 1, 2, 3, 100), 2, []int{}},
		{"default threshold", rowsOf("v", 10, 10, 10, 10, 10, 10, 10, 10, 10, 100), 0, []int{9}},
		{"empty", rowsOf("v"), 2, []int{}},
		{"all non numeric", rowsOf("v", "a", nil, ""), 2, []int{}},
		{"constant column", rowsOf("v", 5, 5, 5, 5), 1, []int{}},
		{"single value", rowsOf("v", 42), 1, []int{}},
		{
			"skipped values keep source indices",
			rowsOf("v", "x", 10, nil, 10, 10, 10, 10, 10, 10, 10, 10, "100"),
			2,
			[]int{11},
		},
	}

	for _, tt := range tests {
		result := DetectAnomalies(tt.data, "v", tt.threshold)
		if !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("%s: DetectAnomalies = %v, expected %v", tt.name, result, tt.expected)
		}
	}
}

func TestDetectAnomaliesMissingField(t *testing.T) {
	data := []models.DataPoint{{"a": 1}, {"a": 2}, {"b": 1000}}
	result := DetectAnomalies(data, "b", 1)
	if len(result) != 0 {
		t.Errorf("Expected no anomalies for a single-value column, got %v", result)
	}
}

func TestToNumber(t *testing.T) {
	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		input    interface{}
		expected float64
		ok       bool
	}{
		{int64(7), 7, true},
		{3.5, 3.5, true},
		{" 12.5 ", 12.5, true},
		{"-4", -4, true},
		{true, 1, true},
		{false, 0, true},
		{ts, float64(ts.UnixMilli()), true},
		{"", 0, false},
		{"abc", 0, false},
		{nil, 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{time.Time{}, 0, false},
		{[]int{1}, 0, false},
	}

	for _, tt := range tests {
		v, ok := ToNumber(tt.input)
		if ok != tt.ok || v != tt.expected {
			t.Errorf("ToNumber(%v) = (%v, %v), expected (%v, %v)", tt.input, v, ok, tt.expected, tt.ok)
		}
	}
}
