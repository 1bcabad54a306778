package registry

import "errors"

// ErrNoActiveProject indicates a mutation that needs an active project
// was attempted while none is set.
var ErrNoActiveProject = errors.New("no active project")
