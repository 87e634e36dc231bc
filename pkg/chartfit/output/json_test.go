package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ukaji3/chartfit-go/pkg/chartfit/models"
)

func TestToJSON(t *testing.T) {
	res := models.AnomalyResult{BookName: "b.xlsx", Field: "Count", Indices: []int{3}}

	compact, err := ToJSON(res, false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if strings.Contains(string(compact), "\n") {
		t.Errorf("Expected compact output, got %s", compact)
	}
	if !strings.Contains(string(compact), `"indices":[3]`) {
		t.Errorf("Expected indices in output, got %s", compact)
	}

	pretty, err := ToJSON(res, true)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if !strings.Contains(string(pretty), "\n  \"book_name\": \"b.xlsx\"") {
		t.Errorf("Expected indented output, got %s", pretty)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")
	if err := WriteFile(path, map[string]int{"a": 1}, false); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("Unexpected content %s", data)
	}
}
