package http

import (
	"fmt"

	"bench-analytics/internal/shared/svcerrors"
)

const (
	codeInvalidWindow = "API_1000"
	codeMissingParam  = "API_1001"
)

func errInvalidWindow(value string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidWindow, fmt.Sprintf("invalid window: %q", value), cause)
}

func errMissingParam(name string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeMissingParam, fmt.Sprintf("missing required query parameter: %q", name), nil)
}
