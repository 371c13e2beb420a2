package errors

// Generic notices shown when the server does not provide a message of its own
const (
	MsgFetchFailed    = "Failed to fetch sweets"
	MsgPurchaseFailed = "Purchase failed."
	MsgDeleteFailed   = "Delete failed"
	MsgRestockFailed  = "Restock failed"
)

// UIError is an error surfaced to the user. Code classifies how the error is
// rendered: load failures become a persistent inline banner, mutation and
// validation failures become a blocking notice on the next page render.
type UIError struct {
	Code    string `json:"error"`   // "LoadFailed", "MutationFailed", "ValidationFailed"
	Message string `json:"message"` // User-facing notice text
	Details string `json:"details"` // Underlying cause, for logs only

	cause error
}

// Error implements the error interface
func (e *UIError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause so callers can classify the failure
func (e *UIError) Unwrap() error {
	return e.cause
}

// IsLoadFailure reports whether the error should render as a persistent banner
func (e *UIError) IsLoadFailure() bool {
	return e.Code == "LoadFailed"
}

// NewUIError creates a new UIError
func NewUIError(code, message, details string) *UIError {
	return &UIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewLoadFailure wraps a snapshot-fetch failure. The notice text is always the
// fixed generic message; the cause only goes to the logs.
func NewLoadFailure(err error) *UIError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	uiErr := NewUIError("LoadFailed", MsgFetchFailed, details)
	uiErr.cause = err
	return uiErr
}

// NewMutationFailure wraps a failed create/update/delete/purchase/restock.
// The server-provided message wins when present, otherwise the per-action
// generic fallback is used.
func NewMutationFailure(fallback, serverMessage string, err error) *UIError {
	message := fallback
	if serverMessage != "" {
		message = serverMessage
	}
	details := ""
	if err != nil {
		details = err.Error()
	}
	uiErr := NewUIError("MutationFailed", message, details)
	uiErr.cause = err
	return uiErr
}

// NewValidationFailure wraps a client-side rejection. No request was sent.
func NewValidationFailure(message string) *UIError {
	return NewUIError("ValidationFailed", message, "")
}
