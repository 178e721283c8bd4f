package dataset

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "resumes.csv", "Id,Resume,Role\n"+
		"1,\"Python, Django & SQL!\",Python Developer\n"+
		"2,React and CSS,Web Developer\n"+
		"3,no label here,\n"+
		"4,Kotlin\n")

	samples, err := Load(Source{Path: path, TextColumn: "Resume", RoleColumn: "Role"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []Sample{
		{Text: "python django  sql", Role: "Python Developer"},
		{Text: "react and css", Role: "Web Developer"},
	}
	if !reflect.DeepEqual(samples, expected) {
		t.Fatalf("expected %+v, got %+v", expected, samples)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "jd.csv", "Description,Role\nsomething,Java Developer\n")
	_, err := Load(Source{Path: path, TextColumn: "JobDescription", RoleColumn: "Role"})
	if err == nil || !strings.Contains(err.Error(), "JobDescription") {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestLoadUnsupported(t *testing.T) {
	t.Parallel()

	if _, err := Load(Source{Path: "data.parquet", TextColumn: "a", RoleColumn: "b"}); err == nil {
		t.Fatalf("expected unsupported format error")
	}
	if _, err := Load(Source{Path: "data.csv"}); err == nil {
		t.Fatalf("expected error for missing column names")
	}
}

func TestLoadXLSX(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	rows := [][]any{
		{"JobDescription", "Role"},
		{"Spring Boot and Hibernate", "Java Developer"},
		{"Kotlin, Firebase", "Android Developer"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "jd.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = f.Close()

	samples, err := Load(Source{Path: path, TextColumn: "JobDescription", RoleColumn: "Role"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []Sample{
		{Text: "spring boot and hibernate", Role: "Java Developer"},
		{Text: "kotlin firebase", Role: "Android Developer"},
	}
	if !reflect.DeepEqual(samples, expected) {
		t.Fatalf("expected %+v, got %+v", expected, samples)
	}
}

func TestSplit(t *testing.T) {
	t.Parallel()

	var samples []Sample
	for _, role := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"} {
		samples = append(samples, Sample{Text: role, Role: role})
	}

	train, test, err := Split(samples, 0.2, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(test) != 3 || len(train) != 8 {
		t.Fatalf("expected 8/3 split, got %d/%d", len(train), len(test))
	}

	train2, test2, err := Split(samples, 0.2, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(train, train2) || !reflect.DeepEqual(test, test2) {
		t.Fatalf("split must be deterministic for the same seed")
	}

	seen := make(map[string]int)
	for _, s := range Concat(train, test) {
		seen[s.Role]++
	}
	if len(seen) != len(samples) {
		t.Fatalf("split lost or duplicated samples: %v", seen)
	}
	if samples[0].Role != "a" {
		t.Fatalf("input must not be reordered")
	}
}

func TestSplitErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		n        int
		testSize float64
	}{
		{name: "zero test size", n: 10, testSize: 0},
		{name: "full test size", n: 10, testSize: 1},
		{name: "single sample", n: 1, testSize: 0.2},
		{name: "empty", n: 0, testSize: 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			samples := make([]Sample, tt.n)
			if _, _, err := Split(samples, tt.testSize, 1); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
