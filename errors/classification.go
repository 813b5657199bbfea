package errors

// ErrorClassification indicates how far a failure may propagate.
type ErrorClassification string

const (
	// ClassificationFatal terminates the process with a non-zero status.
	ClassificationFatal ErrorClassification = "FATAL"

	// ClassificationStageAbort aborts the current stage only.
	ClassificationStageAbort ErrorClassification = "STAGE_ABORT"

	// ClassificationRecordSkip drops a single record from a batch.
	ClassificationRecordSkip ErrorClassification = "RECORD_SKIP"

	// ClassificationInformational marks an observable event that is not a failure.
	ClassificationInformational ErrorClassification = "INFORMATIONAL"

	// ClassificationCritical marks a compromised audit trail.
	ClassificationCritical ErrorClassification = "CRITICAL"
)

// IsFatal returns true if the classification requires process termination.
func (c ErrorClassification) IsFatal() bool {
	return c == ClassificationFatal
}

// defaultClassifications maps error codes to their default classification.
var defaultClassifications = map[ErrorCode]ErrorClassification{
	CodeWorkspaceUnavailable: ClassificationFatal,
	CodeRosterUnavailable:    ClassificationFatal,
	CodeRosterMalformed:      ClassificationFatal,
	CodeInvalidConfig:        ClassificationFatal,
	CodeCancelled:            ClassificationFatal,

	CodeRecordWrite:      ClassificationStageAbort,
	CodeRecordRead:       ClassificationStageAbort,
	CodeInputUnavailable: ClassificationStageAbort,
	CodeBackupFailed:     ClassificationStageAbort,
	CodeArchiveFailed:    ClassificationStageAbort,
	CodeDeleteFailed:     ClassificationStageAbort,
	CodeListingFailed:    ClassificationStageAbort,
	CodeReportWrite:      ClassificationStageAbort,
	CodeInvalidInput:     ClassificationStageAbort,

	CodeRecordInvalid:       ClassificationRecordSkip,
	CodeCUEValidationFailed: ClassificationRecordSkip,
	CodeCUEDecodeFailed:     ClassificationRecordSkip,

	CodeNotFound: ClassificationInformational,

	CodeAuditWrite: ClassificationCritical,

	CodeCUEBuildFailed:  ClassificationStageAbort,
	CodeCUEEncodeFailed: ClassificationStageAbort,
	CodeInternal:        ClassificationStageAbort,
	CodeUnknown:         ClassificationStageAbort,
}

// getDefaultClassification returns the default classification for an error code.
// Unknown codes abort their stage and nothing more.
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationStageAbort
}
