package policy

import "errors"

// ErrConfigVersionTooNew is returned when a policy file declares a
// version newer than this binary supports.
var ErrConfigVersionTooNew = errors.New("policy: file version is newer than supported version")
