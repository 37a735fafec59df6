package transport

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools"
	"github.com/rigado/hcitools/hci/packet"
)

// An Option is a configuration function, which configures the transport.
type Option func(*Transport) error

// OptTimeout sets how long each attempt waits for a response.
func OptTimeout(d time.Duration) Option {
	return func(t *Transport) error {
		if d <= 0 {
			return errors.Errorf("timeout must be positive, got %v", d)
		}
		t.timeout = d
		return nil
	}
}

// OptRetries sets how many times a command is rewritten after a timeout.
func OptRetries(n int) Option {
	return func(t *Transport) error {
		if n < 0 {
			return errors.Errorf("retries must not be negative, got %d", n)
		}
		t.retries = n
		return nil
	}
}

// OptConfig applies the transport section of the configuration.
func OptConfig(c hcitools.TransportConfig) Option {
	return func(t *Transport) error {
		if err := OptTimeout(c.Timeout)(t); err != nil {
			return err
		}
		if err := OptRetries(c.Retries)(t); err != nil {
			return err
		}
		if c.IDTag != "" {
			t.tag = c.IDTag
		}
		return nil
	}
}

// OptIDTag sets the connection tag used in frame logs.
func OptIDTag(tag string) Option {
	return func(t *Transport) error {
		t.tag = tag
		return nil
	}
}

// OptAsyncHandler receives every ACL frame, indicator included. Without a
// handler ACL frames are dropped.
func OptAsyncHandler(fn func(frame []byte)) Option {
	return func(t *Transport) error {
		t.onACL = fn
		return nil
	}
}

// OptEventHandler receives events that do not answer a command. Without a
// handler they are dropped.
func OptEventHandler(fn func(*packet.EventPacket)) Option {
	return func(t *Transport) error {
		t.onEvent = fn
		return nil
	}
}

// OptLogger replaces the transport logger.
func OptLogger(l hcitools.Logger) Option {
	return func(t *Transport) error {
		t.log = l
		return nil
	}
}
