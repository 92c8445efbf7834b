package application

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
)

var csvHeader = []string{"Date", "Type", "Description", "Category", "Amount"}

// ExportFormat validates the requested download format; empty means CSV.
func ExportFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", domain.ExportFormatCSV:
		return domain.ExportFormatCSV, nil
	case domain.ExportFormatJSON:
		return domain.ExportFormatJSON, nil
	default:
		return "", financeErrors.ErrUnsupportedExportFormat
	}
}

func ExportFilename(format string, now time.Time) string {
	return fmt.Sprintf("financial-report-%s.%s", now.UTC().Format("2006-01-02"), format)
}

// WriteCSV writes expense rows followed by income rows.
func WriteCSV(w io.Writer, export *domain.Export) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("could not write csv header: %w", err)
	}

	rows := make([]domain.ReportTransaction, 0, len(export.Expenses)+len(export.Income))
	rows = append(rows, export.Expenses...)
	rows = append(rows, export.Income...)
	for _, row := range rows {
		record := []string{
			row.Date.UTC().Format("2006-01-02"),
			row.Type,
			row.Description,
			row.Category,
			strconv.FormatFloat(row.Amount, 'f', 2, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("could not write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
