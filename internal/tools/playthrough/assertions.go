package playthrough

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// AssertionMode selects how failed expectations are handled.
type AssertionMode int

const (
	// AssertionStrict fails the playthrough on the first unmet expectation.
	AssertionStrict AssertionMode = iota
	// AssertionLogOnly logs unmet expectations and keeps going.
	AssertionLogOnly
)

// ErrAssertion marks an unmet expectation.
var ErrAssertion = errors.New("assertion failed")

// Assertions applies the assertion mode to expectation failures.
type Assertions struct {
	Mode   AssertionMode
	Logger *zap.Logger
}

// Failf always returns an error; it is for failures no mode can skip.
func (a Assertions) Failf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Assertf returns an ErrAssertion error in strict mode and logs it otherwise.
func (a Assertions) Assertf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if a.Mode == AssertionLogOnly {
		if a.Logger != nil {
			a.Logger.Warn("expectation not met", zap.String("detail", msg))
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrAssertion, msg)
}
