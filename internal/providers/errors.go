// internal/providers/errors.go
package providers

import "errors"

// ErrNoChoices marks a completion response that contained no choices. It is a
// malformed-response condition, distinct from transport failures.
var ErrNoChoices = errors.New("completion response contained no choices")
