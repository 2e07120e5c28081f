package dataset

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/couchcryptid/climate-normals-api/internal/domain"
)

// frame is a dataset read into string columns, keyed by trimmed header name.
type frame struct {
	names []string
	cols  map[string][]string
	rows  int
}

// readFrame reads a delimited file, or the first sheet of an .xlsx workbook,
// with a header row. All cells are kept as strings; typing is up to the caller.
func readFrame(path string) (*frame, error) {
	var df dataframe.DataFrame
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		records, err := readWorkbook(path)
		if err != nil {
			return nil, err
		}
		df = dataframe.LoadRecords(records, loadOptions()...)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %w", domain.ErrLoadFailure, path, err)
		}
		defer f.Close()
		df = dataframe.ReadCSV(f, loadOptions()...)
	}
	if df.Err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrLoadFailure, path, df.Err)
	}

	fr := &frame{cols: make(map[string][]string), rows: df.Nrow()}
	for _, raw := range df.Names() {
		name := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
		fr.names = append(fr.names, name)
		fr.cols[name] = df.Col(raw).Records()
	}
	return fr, nil
}

func loadOptions() []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	}
}

// readWorkbook returns the first sheet as rows padded to the header width.
func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrLoadFailure, path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s has no sheets", domain.ErrLoadFailure, path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %w", domain.ErrLoadFailure, sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", domain.ErrLoadFailure, sheets[0])
	}

	width := len(rows[0])
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) > width {
			row = row[:width]
		}
		for len(row) < width {
			row = append(row, "")
		}
		out = append(out, row)
	}
	return out, nil
}

// column returns the named column or a load failure naming the file.
func (f *frame) column(path, name string) ([]string, error) {
	col, ok := f.cols[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s: missing column %q", domain.ErrLoadFailure, path, name)
	}
	return col, nil
}

// parseCell parses a numeric cell. Blank and NA cells become NaN.
func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "NA", "NaN", "nan":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// normalizeKey trims whitespace and applies Unicode NFC so that visually
// identical names index the same way.
func normalizeKey(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
