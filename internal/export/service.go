package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/esgpipe/esgpipe/internal/common"
	"github.com/esgpipe/esgpipe/internal/store"
)

// Service is a tiny façade over the table store that renders a cached
// metric table as an XLSX workbook.
type Service struct {
	tables *store.TableStore
	logger *slog.Logger
}

func NewService(tables *store.TableStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{tables: tables, logger: logger}
}

var headers = []string{"Metric Name", "Value", "Unit", "Year", "Category", "Source"}

// ExportTableXLSX returns an XLSX workbook (as bytes) for one document's
// persisted metric table, row order preserved.
func (s *Service) ExportTableXLSX(document string) ([]byte, error) {
	start := time.Now()

	table, ok, err := s.tables.Load(document)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.NewAppError("EXPORT_ERROR",
			fmt.Sprintf("no extracted table for %q", document), common.ErrNotFound)
	}

	f := excelize.NewFile()
	const sheet = "Metrics"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, rec := range table.Records {
		for colIdx, v := range rec.Row() {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 40) // metric name
	_ = f.SetColWidth(sheet, "B", "B", 16) // value
	_ = f.SetColWidth(sheet, "C", "D", 12) // unit, year
	_ = f.SetColWidth(sheet, "E", "E", 16) // category
	_ = f.SetColWidth(sheet, "F", "F", 48) // source

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"document", document,
		"rows", len(table.Records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
