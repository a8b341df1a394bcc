package ai

import "fmt"

// ErrorKind identifies a class of provider failure. Callers branch on the
// kind instead of string-matching provider messages.
type ErrorKind string

const (
	KindInvalidRequest   ErrorKind = "invalid_request"
	KindPermissionDenied ErrorKind = "permission_denied"
	KindQuotaExceeded    ErrorKind = "quota_exceeded"
	KindModelNotFound    ErrorKind = "model_not_found"
	KindGenericAPI       ErrorKind = "generic_api_error"
	KindNetwork          ErrorKind = "network_error"
	KindTimeout          ErrorKind = "timeout"
)

// ProviderError is a classified failure reported by an AI provider.
type ProviderError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
