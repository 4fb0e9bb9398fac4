package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrUnparsable indicates the model replied with output that could not be
// decoded as JSON after code-fence stripping.
var ErrUnparsable = errors.New("ai response is not valid JSON")

// CapabilityError wraps a failed capability call. The whole pipeline
// invocation fails and nothing is persisted; individual missing fields of a
// successfully parsed response are handled by the normalizer instead.
type CapabilityError struct {
	Err error
}

func (e *CapabilityError) Error() string {
	return "ai analysis failed: " + e.Err.Error()
}

func (e *CapabilityError) Unwrap() error { return e.Err }

// IsCapability reports whether err is (or wraps) a CapabilityError.
func IsCapability(err error) bool {
	var c *CapabilityError
	return errors.As(err, &c)
}
