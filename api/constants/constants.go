package constants

// Common error messages
const (
	ErrInvalidJSON          = "invalid json or missing fields"
	ErrInvalidRequestBody   = "Invalid request body"
	ErrMethodNotAllowed     = "Method Not Allowed"
	ErrDB                   = "DB error"
	ErrFailedToQuery        = "Failed to query"
	ErrUnsupportedFileType  = "unsupported file type, expected .csv, .xls or .xlsx"
	ErrFailedToParseUpload  = "Failed to parse multipart form"
	ErrUploadNeedsDataRows  = "upload must have a header row and at least one data row"
	ErrProjectCodeRequired  = "project_code is required"
	ErrPartnerIDRequired    = "partner_id is required"
	ErrDocumentNotFound     = "document not found"
	ErrPartnerNotFound      = "partner not found"
	ErrProjectNotFound      = "project not found"
	ErrScheduleOutOfBalance = "installment schedule does not match the order total"
	ErrCreditLimitExceeded  = "order total exceeds the partner credit limit"
	ErrUnknownSubject       = "unknown cost subject code"
)

// Content Types
const (
	ContentTypeJSON   = "application/json"
	HeaderContentType = "Content-Type"
)

// Date formats
const (
	DateFormat    = "2006-01-02"
	DateFormatAlt = "02-01-2006"
)

// Upload keys
const (
	KeyProjectCode = "project_code"
	KeyBatchID     = "batch_id"
)
