package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// maxSheetNameLen is the hard limit Excel imposes on sheet names.
const maxSheetNameLen = 31

// Service writes spreadsheet exports to a local directory and returns the
// file path of the produced artifact.
type Service struct {
	dir string
}

// NewService creates an export service rooted at dir. The directory is
// created on first use.
func NewService(dir string) *Service {
	return &Service{dir: dir}
}

// Export writes a single-sheet xlsx workbook. Headers become the first row;
// each row slice must match the header length.
func (s *Service) Export(sheetName string, headers []string, rows [][]interface{}) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(sheetName)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", fmt.Errorf("set sheet name: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return "", err
		}
	}

	for i, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return "", err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return "", err
			}
		}
	}

	name := fmt.Sprintf("%s-%s.xlsx", time.Now().UTC().Format("20060102-150405"), uuid.New().String()[:8])
	path := filepath.Join(s.dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

// SheetName sanitizes a sheet title to Excel's constraints: the characters
// : \ / ? * [ ] are not allowed and the length is capped at 31 runes.
func SheetName(raw string) string {
	out := make([]rune, 0, len(raw))
	for _, r := range raw {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			out = append(out, '-')
		default:
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return "Sheet1"
	}
	if len(out) > maxSheetNameLen {
		out = out[:maxSheetNameLen]
	}
	return string(out)
}
