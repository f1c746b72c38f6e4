package aggregators

import (
	"fmt"

	"bench-analytics/internal/shared/svcerrors"
)

const (
	codeCompareValidationFailed   = "AGG_1000"
	codeInternalResultStoreFailed = "AGG_9000"
)

// errCompareValidationFailed returns an error for invalid comparison requests.
func errCompareValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeCompareValidationFailed, msg, cause)
}

// errInternalResultStoreFailed returns an error when a result store read fails.
func errInternalResultStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalResultStoreFailed, fmt.Errorf("resultStoreFailed: %w", cause))
}
