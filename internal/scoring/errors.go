package scoring

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every failure raised by the core wraps exactly one
// of these so callers can classify with errors.Is and map to a response.
var (
	ErrInvalidBall  = errors.New("invalid ball")
	ErrMatchClosed  = errors.New("match closed")
	ErrInningsState = errors.New("invalid innings state")
	ErrRoster       = errors.New("player not in roster")
	ErrAggregation  = errors.New("invalid aggregation input")
)

func invalidBallf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidBall}, args...)...)
}

func inningsStatef(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInningsState}, args...)...)
}

func rosterf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrRoster}, args...)...)
}
