package analyses

import (
	"errors"
	"fmt"
)

// ErrNoText means the PDF parsed but carried no extractable text. The
// request fails before any network call.
var ErrNoText = errors.New("no extractable text in pdf")

// MalformedResponseError means the model replied but no JSON object could be
// recovered from its output. Raw preserves the original text for diagnostics.
// Never retried, never partially recovered.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// SchemaViolationError means the model's output parsed as JSON but a
// required field is missing. Distinguished from MalformedResponseError so
// callers can tell "unusable text" from "usable JSON, wrong shape".
type SchemaViolationError struct {
	Missing string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("model response missing field: %s", e.Missing)
}
