package cmd

import (
	"encoding/binary"
	"math/bits"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools/hci"
)

var (
	// ErrTooLong means the parameters do not fit the length field.
	ErrTooLong = errors.New("cmd: parameters too long")
	// ErrNotCommand means a frame does not carry a command indicator.
	ErrNotCommand = errors.New("cmd: not a command frame")
)

// Encoder is anything that can be serialized as an HCI command.
type Encoder interface {
	OpCode() int
	Len() int
	Marshal([]byte) error
}

// extended marks encoders framed with the 0x09 indicator and a two byte
// length.
type extended interface {
	extended()
}

// Encode returns the H4 frame for e, indicator byte included.
func Encode(e Encoder) ([]byte, error) {
	n := e.Len()
	op := uint16(e.OpCode())

	var b []byte
	if _, ok := e.(extended); ok {
		if n > 0xffff {
			return nil, errors.Wrapf(ErrTooLong, "%d bytes", n)
		}
		b = make([]byte, 5+n)
		b[0] = byte(hci.PktTypeExtended)
		binary.LittleEndian.PutUint16(b[1:], op)
		binary.LittleEndian.PutUint16(b[3:], uint16(n))
	} else {
		if n > 0xff {
			return nil, errors.Wrapf(ErrTooLong, "%d bytes", n)
		}
		b = make([]byte, 4+n)
		b[0] = byte(hci.PktTypeCommand)
		binary.LittleEndian.PutUint16(b[1:], op)
		b[3] = byte(n)
	}

	if err := e.Marshal(b[len(b)-n:]); err != nil {
		return nil, errors.Wrapf(err, "marshal %v", Opcode(op))
	}
	return b, nil
}

// Command is an opcode plus integer parameters. Each parameter is
// written little endian in the fewest bytes that hold it; negative
// values use two's complement.
type Command struct {
	OGF    OGF
	OCF    OCF
	Params []int64
}

// New builds a Command from an opcode.
func New(op Opcode, params ...int64) Command {
	return Command{OGF: op.OGF(), OCF: op.OCF(), Params: params}
}

func (c Command) Opcode() Opcode { return NewOpcode(c.OGF, c.OCF) }
func (c Command) OpCode() int    { return int(c.Opcode()) }

func (c Command) Len() int {
	n := 0
	for _, p := range c.Params {
		n += width(p)
	}
	return n
}

func (c Command) Marshal(b []byte) error {
	if len(b) < c.Len() {
		return errors.Errorf("cmd: buffer of %d bytes, need %d", len(b), c.Len())
	}
	for _, p := range c.Params {
		w := width(p)
		v := uint64(p)
		for i := 0; i < w; i++ {
			b[i] = byte(v >> (8 * i))
		}
		b = b[w:]
	}
	return nil
}

// Encode returns the command frame.
func (c Command) Encode() ([]byte, error) { return Encode(c) }

func (c Command) String() string { return c.Opcode().String() }

// width is the minimal byte count of v.
func width(v int64) int {
	var n int
	if v >= 0 {
		n = (bits.Len64(uint64(v)) + 7) / 8
	} else {
		n = bits.Len64(uint64(^v))/8 + 1
	}
	if n == 0 {
		return 1
	}
	return n
}

// ExtendedCommand is a Command framed with the extended indicator.
type ExtendedCommand struct {
	Command
}

func (ExtendedCommand) extended() {}

// Encode returns the extended command frame.
func (c ExtendedCommand) Encode() ([]byte, error) { return Encode(c) }

// Raw is a command whose parameter bytes are already serialized.
type Raw struct {
	Op      Opcode
	Payload []byte
}

func (r Raw) OpCode() int { return int(r.Op) }
func (r Raw) Len() int    { return len(r.Payload) }

func (r Raw) Marshal(b []byte) error {
	if copy(b, r.Payload) != len(r.Payload) {
		return errors.Errorf("cmd: buffer of %d bytes, need %d", len(b), len(r.Payload))
	}
	return nil
}

// ExtendedRaw is a Raw command framed with the extended indicator.
type ExtendedRaw struct {
	Raw
}

func (ExtendedRaw) extended() {}

// DecodeHeader reads the opcode and parameter length of a command frame.
func DecodeHeader(frame []byte) (Opcode, int, error) {
	if len(frame) < 1 {
		return 0, 0, ErrNotCommand
	}
	switch hci.PacketType(frame[0]) {
	case hci.PktTypeCommand:
		if len(frame) < 4 {
			return 0, 0, errors.Wrap(ErrNotCommand, "short header")
		}
		return Opcode(binary.LittleEndian.Uint16(frame[1:])), int(frame[3]), nil
	case hci.PktTypeExtended:
		if len(frame) < 5 {
			return 0, 0, errors.Wrap(ErrNotCommand, "short header")
		}
		return Opcode(binary.LittleEndian.Uint16(frame[1:])), int(binary.LittleEndian.Uint16(frame[3:])), nil
	}
	return 0, 0, errors.Wrapf(ErrNotCommand, "indicator 0x%02x", frame[0])
}
