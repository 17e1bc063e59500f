package advisor

// Code is the error code for advisor.
type Code int

// Application error codes for advisor.
const (
	Ok Code = 0

	// 201 ~ 299 statement error.
	StatementMissingDraftFilter Code = 201
)

// SAPNoteDraftFilter is the SAP Note that introduced draft billing documents.
const SAPNoteDraftFilter = 2768887
