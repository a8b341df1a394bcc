package gemini

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"

	"github.com/gsocbuddy/gsoc-buddy/internal/ai"
	"google.golang.org/genai"
)

// classify maps a genai SDK failure to a *ai.ProviderError so callers can
// branch on the kind without inspecting provider internals.
func classify(err error) *ai.ProviderError {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &ai.ProviderError{
			Kind:    kindForStatus(apiErr.Code),
			Message: apiErr.Message,
			Err:     err,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &ai.ProviderError{Kind: ai.KindTimeout, Message: err.Error(), Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		kind := ai.KindNetwork
		if netErr.Timeout() {
			kind = ai.KindTimeout
		}
		return &ai.ProviderError{Kind: kind, Message: err.Error(), Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &ai.ProviderError{Kind: ai.KindNetwork, Message: err.Error(), Err: err}
	}

	return &ai.ProviderError{Kind: ai.KindGenericAPI, Message: err.Error(), Err: err}
}

func kindForStatus(code int) ai.ErrorKind {
	switch code {
	case http.StatusBadRequest:
		return ai.KindInvalidRequest
	case http.StatusUnauthorized, http.StatusForbidden:
		return ai.KindPermissionDenied
	case http.StatusNotFound:
		return ai.KindModelNotFound
	case http.StatusTooManyRequests:
		return ai.KindQuotaExceeded
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return ai.KindTimeout
	default:
		return ai.KindGenericAPI
	}
}
