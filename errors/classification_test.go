package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorClassification_IsFatal(t *testing.T) {
	tests := []struct {
		name           string
		classification ErrorClassification
		want           bool
	}{
		{name: "fatal", classification: ClassificationFatal, want: true},
		{name: "stage abort", classification: ClassificationStageAbort, want: false},
		{name: "record skip", classification: ClassificationRecordSkip, want: false},
		{name: "informational", classification: ClassificationInformational, want: false},
		{name: "critical", classification: ClassificationCritical, want: false},
		{name: "unknown", classification: ErrorClassification("OTHER"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.classification.IsFatal())
		})
	}
}

func TestGetDefaultClassification(t *testing.T) {
	tests := []struct {
		name string
		code ErrorCode
		want ErrorClassification
	}{
		{name: "workspace is fatal", code: CodeWorkspaceUnavailable, want: ClassificationFatal},
		{name: "roster missing is fatal", code: CodeRosterUnavailable, want: ClassificationFatal},
		{name: "roster malformed is fatal", code: CodeRosterMalformed, want: ClassificationFatal},
		{name: "record write aborts stage", code: CodeRecordWrite, want: ClassificationStageAbort},
		{name: "backup aborts stage", code: CodeBackupFailed, want: ClassificationStageAbort},
		{name: "archive aborts stage", code: CodeArchiveFailed, want: ClassificationStageAbort},
		{name: "report write aborts stage", code: CodeReportWrite, want: ClassificationStageAbort},
		{name: "invalid record is skipped", code: CodeRecordInvalid, want: ClassificationRecordSkip},
		{name: "not found is informational", code: CodeNotFound, want: ClassificationInformational},
		{name: "cancellation is fatal", code: CodeCancelled, want: ClassificationFatal},
		{name: "audit write is critical", code: CodeAuditWrite, want: ClassificationCritical},
		{name: "unmapped code aborts stage", code: ErrorCode("SOMETHING_ELSE"), want: ClassificationStageAbort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, getDefaultClassification(tt.code))
		})
	}
}

func TestDefaultClassifications_CoverAllCodes(t *testing.T) {
	codes := []ErrorCode{
		CodeWorkspaceUnavailable, CodeRecordWrite, CodeRecordRead, CodeInputUnavailable,
		CodeBackupFailed, CodeArchiveFailed, CodeDeleteFailed, CodeNotFound, CodeListingFailed,
		CodeRosterUnavailable, CodeRosterMalformed, CodeRecordInvalid, CodeReportWrite,
		CodeAuditWrite, CodeInvalidInput, CodeInvalidConfig, CodeCUEBuildFailed,
		CodeCUEValidationFailed, CodeCUEDecodeFailed, CodeCUEEncodeFailed, CodeCancelled,
		CodeInternal, CodeUnknown,
	}

	for _, code := range codes {
		_, ok := defaultClassifications[code]
		require.True(t, ok, "code %s has no default classification", code)
	}
}
