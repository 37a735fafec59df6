package h4

import (
	"net"
	"time"

	"github.com/pkg/errors"
)

// connWithTimeout is an H4 bridge over TCP. An expired read deadline is
// reported as an empty read, matching a serial read timeout.
type connWithTimeout struct {
	c            net.Conn
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func openTCP(addr string, cfg PortConfig) (Port, error) {
	to := cfg.ReadTimeout
	if to <= 0 {
		to = time.Second
	}

	c, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return nil, err
	}
	return &connWithTimeout{c: c, readTimeout: to, writeTimeout: cfg.WriteTimeout}, nil
}

func (cwt *connWithTimeout) Read(b []byte) (int, error) {
	// with deadline
	cwt.c.SetReadDeadline(time.Now().Add(cwt.readTimeout))
	n, err := cwt.c.Read(b)
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return n, nil
	}
	return n, err
}

func (cwt *connWithTimeout) Write(b []byte) (int, error) {
	if cwt.writeTimeout > 0 {
		cwt.c.SetWriteDeadline(time.Now().Add(cwt.writeTimeout))
	}
	n, err := cwt.c.Write(b)
	return n, errors.Wrap(err, "can't write h4 socket")
}

func (cwt *connWithTimeout) Flush() error { return nil }

func (cwt *connWithTimeout) Close() error {
	return cwt.c.Close()
}
