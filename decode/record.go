package decode

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools/hci/packet"
)

// ErrBadHex means a text line is not a hex encoded frame.
var ErrBadHex = errors.New("decode: not a hex frame")

// Direction is the side a frame was sent from.
type Direction int

const (
	Unknown Direction = iota
	HostToController
	ControllerToHost
)

// String returns the marker printed above a decoded frame, or "" when the
// direction is not known.
func (d Direction) String() string {
	switch d {
	case HostToController:
		return "[Host-->Controller]"
	case ControllerToHost:
		return "[Controller-->Host]"
	}
	return ""
}

// Tag is the short form used in JSON records.
func (d Direction) Tag() string {
	switch d {
	case HostToController:
		return "h2c"
	case ControllerToHost:
		return "c2h"
	}
	return ""
}

// Record is one frame and the outcome of decoding it. Err is set instead
// of Decoded when the frame could not be decoded.
type Record struct {
	Index     int
	Time      time.Time
	Direction Direction
	Frame     []byte
	Decoded   *packet.Decoded
	Err       error
}

// Text renders the record: the direction marker, the decoded packet and a
// blank separator line.
func (r Record) Text() string {
	var sb strings.Builder
	if m := r.Direction.String(); m != "" {
		sb.WriteString(m)
		sb.WriteByte('\n')
	}
	switch {
	case r.Err != nil:
		fmt.Fprintf(&sb, "--Invalid packet: %v--\n", r.Err)
		if len(r.Frame) > 0 {
			fmt.Fprintf(&sb, "Frame=0x%X\n", r.Frame)
		}
	case r.Decoded != nil:
		sb.WriteString(r.Decoded.String())
	}
	sb.WriteByte('\n')
	return sb.String()
}

// ParseHex decodes a hex frame. Whitespace and an optional 0x prefix are
// ignored.
func ParseHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, errors.Wrap(ErrBadHex, "empty")
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(ErrBadHex, "%v", err)
	}
	return b, nil
}
