package sniffer

import (
	"io"

	"github.com/rigado/hcitools"
	"github.com/rigado/hcitools/decode"
	"github.com/rigado/hcitools/hci/packet"
)

// An Option is a configuration function, which configures the sniffer.
type Option func(*Sniffer) error

// OptMode sets the recorded directions.
func OptMode(m Mode) Option {
	return func(s *Sniffer) error {
		s.mode = m
		return nil
	}
}

// OptSink adds a record sink. Without sinks records go to stdout as text.
func OptSink(sink decode.Sink) Option {
	return func(s *Sniffer) error {
		s.sinks = append(s.sinks, sink)
		return nil
	}
}

// OptRepository sets the schemas frames are decoded with.
func OptRepository(repo packet.Repository) Option {
	return func(s *Sniffer) error {
		s.repo = repo
		return nil
	}
}

// OptCloser registers c to be closed after the endpoints on Close.
func OptCloser(c io.Closer) Option {
	return func(s *Sniffer) error {
		s.closers = append(s.closers, c)
		return nil
	}
}

// OptLogger sets the logger used by the forwarders and the decoder.
func OptLogger(l hcitools.Logger) Option {
	return func(s *Sniffer) error {
		s.log = l
		return nil
	}
}
