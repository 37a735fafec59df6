package transport

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools/hci/cmd"
	"github.com/rigado/hcitools/hci/h4"
)

var (
	// ErrOpen is wrapped by port open failures. It is the same value as
	// h4.ErrOpen.
	ErrOpen = h4.ErrOpen

	// ErrCommandTimeout is matched by *TimeoutError.
	ErrCommandTimeout = errors.New("transport: command timed out")

	// ErrClosed is returned by calls on a closed transport.
	ErrClosed = errors.New("transport: closed")
)

// TimeoutError reports a command that got no response after every
// attempt.
type TimeoutError struct {
	Opcode   cmd.Opcode
	Attempts int
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("transport: no response to %v after %d attempt(s) of %v", e.Opcode, e.Attempts, e.Timeout)
}

func (e *TimeoutError) Is(target error) bool { return target == ErrCommandTimeout }
