package logging

// Field names shared by every log line of the ledger.
const (
	FieldStore         = "store"
	FieldPath          = "path"
	FieldTransactionID = "transaction_id"
	FieldTemplateID    = "template_id"
	FieldCategoryID    = "category_id"
	FieldCategory      = "category"
	FieldLoanID        = "loan_id"
	FieldPaymentID     = "payment_id"
	FieldRevenueStream = "revenue_stream"
	FieldAmount        = "amount"
	FieldBalance       = "balance"
	FieldOperation     = "operation"
	FieldStatus        = "status"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
	FieldCount         = "count"
	FieldFormat        = "format"
	FieldMethod        = "method"
	FieldRoute         = "route"
	FieldRequestID     = "request_id"
	FieldInputFile     = "input_file"
	FieldOutputFile    = "output_file"
)
