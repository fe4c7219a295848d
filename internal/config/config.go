package config

const (
	DefaultTimeZone = "Asia/Taipei"
	DateFormat      = "2006-01-02"

	// Every project gets a fixed 36-month budget axis, generated once at creation
	MatrixMonths = 36

	// Schedule-balance tolerance: one currency unit, absorbs tax-split rounding.
	// Do not widen ad hoc; it bounds how far Real totals may drift from document totals.
	ScheduleTolerance = "1.00"

	// Sales orders always post into the product revenue subject
	RevenueSubjectCode = "2.1"

	// Reconciliation Retry Sweep Constants
	DefaultRetrySchedule = "*/5 * * * *" // Replay failed scopes every five minutes
	RetryBatchSize       = 50

	PlanUploadBatchSize = 200
)
