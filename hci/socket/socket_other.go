//go:build !linux

package socket

import (
	"time"

	"github.com/pkg/errors"
)

// Socket is unavailable off linux.
type Socket struct{}

func Open(id int, wait time.Duration) (*Socket, error) {
	return nil, errors.New("hci user channel sockets are only supported on linux")
}

func (s *Socket) Read(p []byte) (int, error)  { return 0, errors.New("unsupported") }
func (s *Socket) Write(p []byte) (int, error) { return 0, errors.New("unsupported") }
func (s *Socket) Flush() error                { return nil }
func (s *Socket) Close() error                { return nil }
