package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldOperation  = "operation"
	FieldUserID     = "user_id"
	FieldResource   = "resource"
	FieldResourceID = "resource_id"
	FieldDriver     = "driver"
	FieldPeriod     = "period"
	FieldFormat     = "format"
)

// Components
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentAuth      = "auth"
	ComponentUser      = "user"
	ComponentFinance   = "finance"
	ComponentAnalytics = "analytics"
	ComponentReports   = "reports"
	ComponentStorage   = "storage"
)

// Operations
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpFund     = "fund"
	OpExport   = "export"
	OpLogin    = "login"
	OpRegister = "register"
	OpMigrate  = "migrate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
