package runner

import "errors"

// ErrMaxStepsReached indicates a turn hit the step limit while the model was
// still calling tools.
var ErrMaxStepsReached = errors.New("runner: maximum steps reached")
