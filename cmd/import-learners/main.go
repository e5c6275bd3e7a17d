package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/lumela/schoolsync-backend/internal/config"
	"github.com/lumela/schoolsync-backend/internal/database"
	"github.com/lumela/schoolsync-backend/internal/logger"
	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/repository"
	"github.com/lumela/schoolsync-backend/internal/service"
	"github.com/xuri/excelize/v2"
)

// Expected column layout of the import workbook, one learner per row:
//
//	A first_name | B last_name | C id_number | D grade_name | E class_name |
//	F learner emails (; separated) |
//	G parent first_name | H parent last_name | I parent id_number |
//	J parent contact numbers (; separated) | K parent emails (; separated)
//
// A second parent may follow in columns L-P with the same shape.
const headerRows = 1

func main() {
	var sheet string
	flag.StringVar(&sheet, "sheet", "", "Worksheet name (defaults to the first sheet)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: import-learners [flags] <workbook.xlsx>")
		flag.PrintDefaults()
		return
	}
	path := flag.Arg(0)

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	importRepo := repository.NewImportRepository(pool)
	importService := service.NewLearnerImportService(importRepo, log)

	rows, err := readWorkbook(path, sheet)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to read workbook")
	}
	if len(rows) == 0 {
		fmt.Println("Workbook contains no learner rows")
		return
	}

	summary, err := importService.ImportLearnersAndParents(ctx, rows)
	if err != nil {
		if errors.Is(err, service.ErrImportAborted) {
			fmt.Println("Import aborted, nothing was written:")
			for _, e := range summary.Errors {
				fmt.Println("  - " + e)
			}
			return
		}
		log.Fatal().Err(err).Msg("Import failed")
	}

	fmt.Printf("Imported %d learners, linked %d parents, skipped %d existing\n",
		summary.Created, summary.Linked, summary.Skipped)
}

// readWorkbook converts worksheet rows into import rows. Blank rows are
// skipped; a row needs at least first name, last name and id-number.
func readWorkbook(path, sheet string) ([]model.LearnerImportRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	var rows []model.LearnerImportRow
	for i, cells := range raw {
		if i < headerRows {
			continue
		}
		if isBlank(cells) {
			continue
		}

		row := model.LearnerImportRow{
			FirstName: cell(cells, 0),
			LastName:  cell(cells, 1),
			IDNumber:  cell(cells, 2),
			GradeName: cell(cells, 3),
			ClassName: cell(cells, 4),
			Emails:    splitList(cell(cells, 5)),
		}

		// Up to two parents, five columns each.
		for _, base := range []int{6, 11} {
			parent := model.ParentImportRow{
				FirstName:      cell(cells, base),
				LastName:       cell(cells, base+1),
				IDNumber:       cell(cells, base+2),
				ContactNumbers: splitList(cell(cells, base+3)),
				Emails:         splitList(cell(cells, base+4)),
			}
			if parent.IDNumber != "" {
				row.Parents = append(row.Parents, parent)
			}
		}

		rows = append(rows, row)
	}
	return rows, nil
}

func cell(cells []string, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
