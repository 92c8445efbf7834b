package interfaces

import "net/http"

type Handlers struct {
	Categories *CategoryHandler
	Expenses   *ExpenseHandler
	Income     *IncomeHandler
	Budgets    *BudgetHandler
	Goals      *GoalHandler
	Reports    *ReportHandler
}

// RegisterRoutes mounts every finance route on mux behind protect.
func RegisterRoutes(mux *http.ServeMux, protect func(http.Handler) http.Handler, h Handlers, respondError RespondErrorFunc) {
	withID := func(resource string, handler http.HandlerFunc) http.Handler {
		return protect(ValidatePathIDMiddleware(resource, respondError)(handler))
	}

	mux.Handle("GET /api/categories", protect(http.HandlerFunc(h.Categories.GetCategories)))
	mux.Handle("POST /api/categories", protect(http.HandlerFunc(h.Categories.CreateCategory)))
	mux.Handle("GET /api/categories/{id}", withID("Category", h.Categories.GetCategory))
	mux.Handle("PUT /api/categories/{id}", withID("Category", h.Categories.UpdateCategory))
	mux.Handle("DELETE /api/categories/{id}", withID("Category", h.Categories.DeleteCategory))

	mux.Handle("GET /api/expenses", protect(http.HandlerFunc(h.Expenses.GetExpenses)))
	mux.Handle("POST /api/expenses", protect(http.HandlerFunc(h.Expenses.CreateExpense)))
	mux.Handle("GET /api/expenses/{id}", withID("Expense", h.Expenses.GetExpense))
	mux.Handle("PUT /api/expenses/{id}", withID("Expense", h.Expenses.UpdateExpense))
	mux.Handle("DELETE /api/expenses/{id}", withID("Expense", h.Expenses.DeleteExpense))

	mux.Handle("GET /api/income", protect(http.HandlerFunc(h.Income.GetIncome)))
	mux.Handle("POST /api/income", protect(http.HandlerFunc(h.Income.CreateIncome)))
	mux.Handle("GET /api/income/{id}", withID("Income", h.Income.GetIncomeByID))
	mux.Handle("PUT /api/income/{id}", withID("Income", h.Income.UpdateIncome))
	mux.Handle("DELETE /api/income/{id}", withID("Income", h.Income.DeleteIncome))

	mux.Handle("GET /api/budgets", protect(http.HandlerFunc(h.Budgets.GetBudgets)))
	mux.Handle("POST /api/budgets", protect(http.HandlerFunc(h.Budgets.CreateBudget)))
	mux.Handle("GET /api/budgets/{id}", withID("Budget", h.Budgets.GetBudget))
	mux.Handle("PUT /api/budgets/{id}", withID("Budget", h.Budgets.UpdateBudget))
	mux.Handle("DELETE /api/budgets/{id}", withID("Budget", h.Budgets.DeleteBudget))
	mux.Handle("GET /api/budgets/{id}/progress", withID("Budget", h.Budgets.GetBudgetProgress))

	mux.Handle("GET /api/goals", protect(http.HandlerFunc(h.Goals.GetGoals)))
	mux.Handle("POST /api/goals", protect(http.HandlerFunc(h.Goals.CreateGoal)))
	mux.Handle("GET /api/goals/{id}", withID("Goal", h.Goals.GetGoal))
	mux.Handle("PUT /api/goals/{id}", withID("Goal", h.Goals.UpdateGoal))
	mux.Handle("DELETE /api/goals/{id}", withID("Goal", h.Goals.DeleteGoal))
	mux.Handle("POST /api/goals/{id}/fund", withID("Goal", h.Goals.FundGoal))

	mux.Handle("GET /api/analytics/overview", protect(http.HandlerFunc(h.Reports.GetOverview)))
	mux.Handle("GET /api/reports", protect(http.HandlerFunc(h.Reports.GetReport)))
	mux.Handle("GET /api/reports/export", protect(http.HandlerFunc(h.Reports.ExportReport)))
}
