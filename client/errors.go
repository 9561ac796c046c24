package client

import (
	"net/http"

	apperrors "github.com/kbukum/promptserve/errors"
)

// Sentinels for errors.Is. Errors returned by Client carry the same codes
// with request-specific details.
var (
	// ErrTransport covers connection failures, timeouts and non-2xx statuses.
	ErrTransport = apperrors.New(apperrors.ErrCodeExternalService, "request to the serving front failed", http.StatusBadGateway)

	// ErrMalformedResponse covers 2xx bodies that are not a JSON object.
	ErrMalformedResponse = apperrors.New(apperrors.ErrCodeMalformedResponse, "unexpected response format from the serving front", http.StatusBadGateway)
)
