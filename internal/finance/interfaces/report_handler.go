package interfaces

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/finance/application"
	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
	"github.com/sebuszqo/FinanceTracker/internal/log"
)

type AnalyticsServiceInterface interface {
	Overview(ctx context.Context, userID, period string) (*domain.Overview, error)
}

type ReportServiceInterface interface {
	Window(startDate, endDate string) (domain.DateRange, error)
	Report(ctx context.Context, userID string, window domain.DateRange) (*domain.Report, error)
	Export(ctx context.Context, userID string, window domain.DateRange) (*domain.Export, error)
}

type ReportHandler struct {
	responders
	analytics AnalyticsServiceInterface
	reports   ReportServiceInterface
	now       func() time.Time
}

func NewReportHandler(analytics AnalyticsServiceInterface, reports ReportServiceInterface, respondJSON RespondJSONFunc, respondError RespondErrorFunc) *ReportHandler {
	return &ReportHandler{
		responders: responders{respondJSON: respondJSON, respondError: respondError},
		analytics:  analytics,
		reports:    reports,
		now:        time.Now,
	}
}

func (h *ReportHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	overview, err := h.analytics.Overview(r.Context(), userID, queryValue(r, "period"))
	if err != nil {
		h.fail(w, r, err, log.OpRead, "Failed to compute analytics")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":              "success",
		"period":              overview.Period,
		"monthlyTrends":       overview.MonthlyTrends,
		"savingsRate":         overview.SavingsRate,
		"expenseDistribution": overview.ExpenseDistribution,
		"totalIncome":         overview.TotalIncome,
		"totalExpenses":       overview.TotalExpenses,
		"netSavings":          overview.NetSavings,
	})
}

func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	window, err := h.reports.Window(queryValue(r, "startDate"), queryValue(r, "endDate"))
	if err != nil {
		h.fail(w, r, err, log.OpRead, "Failed to generate report")
		return
	}

	report, err := h.reports.Report(r.Context(), userID, window)
	if err != nil {
		h.fail(w, r, err, log.OpRead, "Failed to generate report")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":               "success",
		"summary":              report.Summary,
		"monthlyBreakdown":     report.MonthlyBreakdown,
		"topExpenseCategories": report.TopExpenseCategories,
		"totalTransactions":    report.TotalTransactions,
		"dateRange":            report.DateRange,
		"transactions":         report.Transactions,
	})
}

func (h *ReportHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	format, err := application.ExportFormat(queryValue(r, "format"))
	if err != nil {
		h.fail(w, r, err, log.OpExport, "Failed to export report")
		return
	}
	window, err := h.reports.Window(queryValue(r, "startDate"), queryValue(r, "endDate"))
	if err != nil {
		h.fail(w, r, err, log.OpExport, "Failed to export report")
		return
	}

	export, err := h.reports.Export(r.Context(), userID, window)
	if err != nil {
		h.fail(w, r, err, log.OpExport, "Failed to export report")
		return
	}

	if format == domain.ExportFormatJSON {
		h.respondJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "success",
			"expenses": export.Expenses,
			"income":   export.Income,
			"summary":  export.Summary,
		})
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", application.ExportFilename(format, h.now())))
	w.WriteHeader(http.StatusOK)
	if err := application.WriteCSV(w, export); err != nil {
		log.FromContext(r.Context()).Error().Err(err).Str(log.FieldOperation, log.OpExport).Msg("Failed to write csv export")
	}
}
