package ingestors

import (
	"fmt"

	"bench-analytics/internal/shared/svcerrors"
)

// IngestionService errors
const (
	codeValidationFailed      = "ING_1000"
	codeBatchAlreadyProcessed = "ING_1001"

	codeInternalRawBatchStoreFailed       = "ING_9000"
	codeInternalResultBatchProducerFailed = "ING_9001"
)

// errValidationFailed returns an error for validation failures.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errBatchAlreadyProcessed returns an error when a result batch has already been processed.
func errBatchAlreadyProcessed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeBatchAlreadyProcessed, "result batch already processed", cause)
}

// errInternalRawBatchStoreFailed returns an error when the raw batch archive fails.
func errInternalRawBatchStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalRawBatchStoreFailed, fmt.Errorf("rawBatchStoreFailed: %w", cause))
}

// errInternalResultBatchProducerFailed returns an error when publishing to the persistence pipeline fails.
func errInternalResultBatchProducerFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalResultBatchProducerFailed, fmt.Errorf("resultBatchProducerFailed: %w", cause))
}
