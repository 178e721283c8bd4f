package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/xuri/excelize/v2"

	"github.com/spigell/skillgap/internal/preprocess"
)

// Sample is one labelled training row. Text is already normalized.
type Sample struct {
	Text string `mapstructure:"text"`
	Role string `mapstructure:"role"`
}

// Source describes a training table and the columns to read from it.
type Source struct {
	Path       string `mapstructure:"path"`
	TextColumn string `mapstructure:"text-column"`
	RoleColumn string `mapstructure:"role-column"`
}

// Load reads a CSV or XLSX table. Rows with an empty role are skipped.
func Load(src Source) ([]Sample, error) {
	if src.TextColumn == "" || src.RoleColumn == "" {
		return nil, fmt.Errorf("%s: text and role columns must be set", src.Path)
	}

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(src.Path)) {
	case ".xlsx":
		rows, err = readXLSX(src.Path)
	case ".csv", "":
		rows, err = readCSV(src.Path)
	default:
		return nil, fmt.Errorf("%s: unsupported dataset format", src.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", src.Path, err)
	}

	samples, err := decodeRows(rows, src.TextColumn, src.RoleColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Path, err)
	}

	return samples, nil
}

// Concat joins several tables in order.
func Concat(tables ...[]Sample) []Sample {
	var out []Sample
	for _, t := range tables {
		out = append(out, t...)
	}
	return out
}

// Texts returns the text column.
func Texts(samples []Sample) []string {
	out := make([]string, len(samples))
	for i, s := range samples {
		out[i] = s.Text
	}
	return out
}

// Roles returns the role column.
func Roles(samples []Sample) []string {
	out := make([]string, len(samples))
	for i, s := range samples {
		out[i] = s.Role
	}
	return out
}

// Split shuffles samples with the given seed and holds out ceil(testSize*n) rows for testing.
// The input slice is not modified.
func Split(samples []Sample, testSize float64, seed uint64) (train, test []Sample, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("test size must be in (0, 1), got %v", testSize)
	}

	n := len(samples)
	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest < 1 || n-nTest < 1 {
		return nil, nil, fmt.Errorf("cannot split %d samples with test size %v", n, testSize)
	}

	shuffled := append([]Sample(nil), samples...)
	r := rand.New(rand.NewPCG(seed, seed))
	r.Shuffle(n, func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	return shuffled[nTest:], shuffled[:nTest], nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	return f.GetRows(sheets[0])
}

func decodeRows(rows [][]string, textColumn, roleColumn string) ([]Sample, error) {
	if len(rows) == 0 {
		return nil, errors.New("dataset is empty")
	}

	header := rows[0]
	textIdx, roleIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case textColumn:
			textIdx = i
		case roleColumn:
			roleIdx = i
		}
	}
	if textIdx < 0 {
		return nil, fmt.Errorf("missing column %q", textColumn)
	}
	if roleIdx < 0 {
		return nil, fmt.Errorf("missing column %q", roleColumn)
	}

	samples := make([]Sample, 0, len(rows)-1)
	for i, row := range rows[1:] {
		raw := map[string]string{
			"text": cell(row, textIdx),
			"role": strings.TrimSpace(cell(row, roleIdx)),
		}

		var s Sample
		if err := mapstructure.Decode(raw, &s); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if s.Role == "" {
			continue
		}
		s.Text = preprocess.Normalize(s.Text)
		samples = append(samples, s)
	}

	return samples, nil
}

// cell tolerates short rows, which both CSV and XLSX readers produce for trailing blanks.
func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
