// Package xlsx is the row source: it locates the header row in a
// schedule export and produces one CourseRow per data row.
package xlsx

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"coursecal/internal/cell"
	"coursecal/internal/config"
	"coursecal/internal/meeting"
	"coursecal/internal/models"
)

// ReadRows opens the first worksheet of an XLSX export and reads every
// row after the header row into a CourseRow. Rows missing any of course,
// meeting pattern, start date or end date are skipped. Missing required
// headers abort the whole import with an error naming them.
func ReadRows(path string, cfg *config.Config, logger *slog.Logger) ([]models.CourseRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no worksheet found in %s", path)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	headerRow, headers := locateHeader(rows, cfg)
	logger.Debug("Detected header row", "row", headerRow, "headers", headers)

	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		colIndex[h] = i + 1 // 1-based for excelize cell refs
	}

	need := []string{
		cfg.Columns.Course,
		cfg.Columns.Section,
		cfg.Columns.MeetingPattern,
		cfg.Columns.StartDate,
		cfg.Columns.EndDate,
	}
	var missing []string
	for _, name := range need {
		if _, ok := colIndex[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing expected headers: %s", strings.Join(missing, ", "))
	}

	var out []models.CourseRow
	for rowNum := headerRow + 1; rowNum <= len(rows); rowNum++ {
		get := func(header string) any {
			return cellValue(f, sheet, colIndex[header], rowNum)
		}

		course := strings.TrimSpace(cell.ToString(get(cfg.Columns.Course)))
		section := meeting.ParseSection(cell.ToString(get(cfg.Columns.Section)), course)
		pattern := strings.TrimSpace(cell.ToString(get(cfg.Columns.MeetingPattern)))
		startDate := cell.CoerceDate(get(cfg.Columns.StartDate))
		endDate := cell.CoerceDate(get(cfg.Columns.EndDate))

		if course == "" || pattern == "" || startDate == "" || endDate == "" {
			continue
		}
		out = append(out, models.CourseRow{
			Course:         course,
			Section:        section,
			MeetingPattern: pattern,
			StartDate:      startDate,
			EndDate:        endDate,
		})
	}

	logger.Info("Parsed schedule rows", "file", path, "rows", len(out))
	return out, nil
}

// locateHeader tries the configured header row first, then scans the
// first HeaderScanLimit rows for one containing both the course and
// meeting-pattern headers. If neither works the configured row is kept;
// the required-header check then fails with the full missing list.
func locateHeader(rows [][]string, cfg *config.Config) (int, []string) {
	headerAt := func(r int) []string {
		if r < 1 || r > len(rows) {
			return nil
		}
		hs := make([]string, len(rows[r-1]))
		for i, h := range rows[r-1] {
			hs[i] = strings.TrimSpace(h)
		}
		return hs
	}
	hasRequired := func(hs []string) bool {
		var course, pattern bool
		for _, h := range hs {
			switch h {
			case cfg.Columns.Course:
				course = true
			case cfg.Columns.MeetingPattern:
				pattern = true
			}
		}
		return course && pattern
	}

	headers := headerAt(cfg.HeaderRow)
	if hasRequired(headers) {
		return cfg.HeaderRow, headers
	}

	limit := cfg.HeaderScanLimit
	if limit > len(rows) {
		limit = len(rows)
	}
	for r := 1; r <= limit; r++ {
		if hs := headerAt(r); hasRequired(hs) {
			return r, hs
		}
	}
	return cfg.HeaderRow, headers
}

// cellValue extracts one cell as a typed value: float64 for numeric and
// date cells (so date serials survive), rich-text runs when present, and
// the raw string otherwise.
func cellValue(f *excelize.File, sheet string, col, row int) any {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	raw, err := f.GetCellValue(sheet, ref, excelize.Options{RawCellValue: true})
	if err != nil {
		return ""
	}

	ct, err := f.GetCellType(sheet, ref)
	if err != nil {
		return raw
	}
	switch ct {
	// Numeric cells often carry no explicit type attribute, so unset
	// cells are tried as numbers too.
	case excelize.CellTypeNumber, excelize.CellTypeDate, excelize.CellTypeUnset:
		if fv, err := strconv.ParseFloat(raw, 64); err == nil {
			return fv
		}
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		if runs, err := f.GetCellRichText(sheet, ref); err == nil && len(runs) > 0 {
			out := make([]cell.RichTextRun, len(runs))
			for i, r := range runs {
				out[i] = cell.RichTextRun{Text: r.Text}
			}
			return out
		}
	}
	return raw
}
