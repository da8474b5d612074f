// Package export produces XLSX workbooks from batch extraction results.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/idocr/idocr/internal/llm"
)

// Entry is one processed document in a batch run.
type Entry struct {
	SourcePath    string
	Fields        llm.IdentityFields
	ExecutionTime float64 // seconds
	Err           error   // non-nil when the pipeline failed for this file
}

// Service renders batch entries into an XLSX workbook.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

const sheet = "Documents"

// ExportXLSX returns an XLSX workbook (as bytes) listing one row per entry.
// Failed entries keep their row with the error message in the last column.
func (s *Service) ExportXLSX(entries []Entry) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"File",
		"Name",
		"Date of Birth",
		"Phone",
		"Document Number",
		"Address",
		"Document Type",
		"Language",
		"Gender",
		"Execution Time (s)",
		"Error",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, e := range entries {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, e.SourcePath)
		write(2, deref(e.Fields.Name))
		write(3, deref(e.Fields.DOB))
		write(4, deref(e.Fields.Phone))
		write(5, deref(e.Fields.DocumentNumber))
		write(6, deref(e.Fields.Address))
		write(7, deref(e.Fields.DocumentType))
		write(8, deref(e.Fields.Language))
		write(9, deref(e.Fields.Gender))
		write(10, fmt.Sprintf("%.3f", e.ExecutionTime))
		if e.Err != nil {
			write(11, e.Err.Error())
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"entries", len(entries),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
