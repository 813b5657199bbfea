// Package errors provides the structured error taxonomy shared by every stage
// of the student workspace.
//
// It extends Go's standard error handling with error codes, a severity
// classification and context metadata, while staying compatible with the
// standard library (errors.Is, errors.As, errors.Unwrap).
//
// # Classification
//
// Every error carries one of five classifications, which tell the caller how
// far the failure is allowed to travel:
//
//   - ClassificationFatal: the process cannot continue (workspace cannot be
//     created, roster missing or not valid JSON). Only the CLI acts on it, by
//     printing a diagnostic and exiting non-zero.
//   - ClassificationStageAbort: the current stage stops and returns no result.
//     Later independent stages still run.
//   - ClassificationRecordSkip: a single roster record is dropped with a
//     warning; the batch continues.
//   - ClassificationInformational: an observable event that is not a failure,
//     such as deleting a file that does not exist.
//   - ClassificationCritical: the audit trail itself could not be written.
//
// Each ErrorCode has a default classification. Wrapping a PlatformError keeps
// the inner classification; WithClassification overrides it.
//
// # Quick Start
//
//	err := errors.New(errors.CodeNotFound, "file not found")
//
//	if err := fsys.WriteFile(name, data, 0o644); err != nil {
//	    return errors.WrapWithContext(err, errors.CodeRecordWrite, "failed to write record file",
//	        map[string]interface{}{"path": name})
//	}
//
//	if errors.IsFatal(err) {
//	    os.Exit(errors.ExitCode(err))
//	}
package errors
