package errors

// ErrorCode identifies the kind of failure.
// Codes are strings so they read well in logs.
type ErrorCode string

const (
	// Workspace errors.

	// CodeWorkspaceUnavailable indicates the workspace directory could not be created or used.
	CodeWorkspaceUnavailable ErrorCode = "WORKSPACE_UNAVAILABLE"

	// Record file errors.

	// CodeRecordWrite indicates a record file could not be created or written.
	CodeRecordWrite ErrorCode = "RECORD_WRITE_FAILED"

	// CodeRecordRead indicates a record file could not be read or described.
	CodeRecordRead ErrorCode = "RECORD_READ_FAILED"

	// CodeInputUnavailable indicates the input source ran dry or failed.
	CodeInputUnavailable ErrorCode = "INPUT_UNAVAILABLE"

	// Archive errors.

	// CodeBackupFailed indicates the backup copy could not be made.
	CodeBackupFailed ErrorCode = "BACKUP_FAILED"

	// CodeArchiveFailed indicates the archive directory could not be prepared or populated.
	CodeArchiveFailed ErrorCode = "ARCHIVE_FAILED"

	// Curation errors.

	// CodeDeleteFailed indicates a file deletion failed for a reason other than absence.
	CodeDeleteFailed ErrorCode = "DELETE_FAILED"

	// CodeNotFound indicates a named file does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeListingFailed indicates a directory listing could not be produced.
	CodeListingFailed ErrorCode = "LISTING_FAILED"

	// Report errors.

	// CodeRosterUnavailable indicates the roster file could not be opened.
	CodeRosterUnavailable ErrorCode = "ROSTER_UNAVAILABLE"

	// CodeRosterMalformed indicates the roster document is not valid JSON.
	CodeRosterMalformed ErrorCode = "ROSTER_MALFORMED"

	// CodeRecordInvalid indicates a single roster record cannot be averaged.
	CodeRecordInvalid ErrorCode = "RECORD_INVALID"

	// CodeReportWrite indicates the CSV report could not be written.
	CodeReportWrite ErrorCode = "REPORT_WRITE_FAILED"

	// Audit errors.

	// CodeAuditWrite indicates an audit log entry could not be appended.
	CodeAuditWrite ErrorCode = "AUDIT_WRITE_FAILED"

	// Validation errors.

	// CodeInvalidInput indicates a caller supplied an unusable argument.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates the configuration is unusable.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// CUE errors.

	// CodeCUEBuildFailed indicates CUE compilation or evaluation failed.
	CodeCUEBuildFailed ErrorCode = "CUE_BUILD_FAILED"

	// CodeCUEValidationFailed indicates a value did not satisfy its schema.
	CodeCUEValidationFailed ErrorCode = "CUE_VALIDATION_FAILED"

	// CodeCUEDecodeFailed indicates CUE to Go decoding failed.
	CodeCUEDecodeFailed ErrorCode = "CUE_DECODE_FAILED"

	// CodeCUEEncodeFailed indicates CUE to YAML/JSON encoding failed.
	CodeCUEEncodeFailed ErrorCode = "CUE_ENCODE_FAILED"

	// System errors.

	// CodeCancelled indicates the run was interrupted before it finished.
	CodeCancelled ErrorCode = "CANCELLED"

	// CodeInternal indicates an internal error occurred.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown indicates an unclassified error.
	CodeUnknown ErrorCode = "UNKNOWN"
)
