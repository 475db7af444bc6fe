package copywriter

import "errors"

// Error kinds surfaced by a run. Callers match with errors.Is; the HTTP
// shell maps them to status codes. Policy violations (content rules) and
// schema violations (malformed model output) are deliberately distinct.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrUnknownPrefix   = errors.New("unknown image prefix")
	ErrMissingImages   = errors.New("missing images for template")
	ErrExhausted       = errors.New("no images available in any bucket")
	ErrPolicyViolation = errors.New("policy violation")
	ErrSchemaViolation = errors.New("schema violation")
	ErrProvider        = errors.New("provider error")
)
