package nn

import "errors"

// Configuration errors returned by constructors. Callers match them with
// errors.Is; the returned errors carry the offending values.
var (
	ErrInvalidConfig      = errors.New("nn: invalid configuration")
	ErrInvalidDropoutRate = errors.New("nn: dropout rate must be between 0 and 1")
	ErrHeadsNotDivisible  = errors.New("nn: hidden size must be divisible by number of heads")
)
