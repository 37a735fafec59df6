package evt

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools/hci"
	"github.com/rigado/hcitools/hci/cmd"
)

// ErrInvalid means a frame is not a well formed event.
var ErrInvalid = errors.New("evt: invalid event packet")

// Split checks an event frame and returns its code and parameter block.
func Split(frame []byte) (Code, []byte, error) {
	if len(frame) < 3 || hci.PacketType(frame[0]) != hci.PktTypeEvent {
		return 0, nil, errors.Wrapf(ErrInvalid, "% X", frame)
	}
	code, plen := Code(frame[1]), int(frame[2])
	if plen != len(frame[3:]) {
		return code, nil, errors.Wrapf(ErrInvalid, "length %d, have %d: % X", plen, len(frame[3:]), frame)
	}
	return code, frame[3:], nil
}

// CommandComplete is the parameter block of a Command Complete event.
type CommandComplete []byte

func (e CommandComplete) NumHCICommandPacketsWErr() (uint8, error) {
	return getByte(e, 0, 0)
}

func (e CommandComplete) CommandOpcodeWErr() (cmd.Opcode, error) {
	v, err := getUint16LE(e, 1, 0xffff)
	return cmd.Opcode(v), err
}

func (e CommandComplete) ReturnParametersWErr() ([]byte, error) {
	if len(e) == 3 {
		return []byte{}, nil
	}
	return getBytes(e, 3, -1)
}

func (e CommandComplete) NumHCICommandPackets() uint8 {
	v, _ := e.NumHCICommandPacketsWErr()
	return v
}

func (e CommandComplete) CommandOpcode() cmd.Opcode {
	v, _ := e.CommandOpcodeWErr()
	return v
}

func (e CommandComplete) ReturnParameters() []byte {
	v, _ := e.ReturnParametersWErr()
	return v
}

// Status is the first return parameter, which most commands define as
// their status. It reports false when there are no return parameters.
func (e CommandComplete) Status() (uint8, bool) {
	v, err := getByte(e, 3, 0xff)
	return v, err == nil
}

// CommandStatus is the parameter block of a Command Status event.
type CommandStatus []byte

func (e CommandStatus) Valid() bool { return len(e) == 4 }

func (e CommandStatus) StatusWErr() (uint8, error) {
	return getByte(e, 0, 0xff)
}

func (e CommandStatus) NumHCICommandPacketsWErr() (uint8, error) {
	return getByte(e, 1, 0)
}

func (e CommandStatus) CommandOpcodeWErr() (cmd.Opcode, error) {
	v, err := getUint16LE(e, 2, 0xffff)
	return cmd.Opcode(v), err
}

func (e CommandStatus) Status() uint8 {
	v, _ := e.StatusWErr()
	return v
}

func (e CommandStatus) NumHCICommandPackets() uint8 {
	v, _ := e.NumHCICommandPacketsWErr()
	return v
}

func (e CommandStatus) CommandOpcode() cmd.Opcode {
	v, _ := e.CommandOpcodeWErr()
	return v
}

// Opcode returns the opcode a Command Complete or Command Status event
// answers.
func Opcode(code Code, params []byte) (cmd.Opcode, error) {
	switch code {
	case CommandCompleteCode:
		return CommandComplete(params).CommandOpcodeWErr()
	case CommandStatusCode:
		return CommandStatus(params).CommandOpcodeWErr()
	}
	return 0, fmt.Errorf("event %v does not answer a command", code)
}

// LEMeta is the parameter block of an LE Meta event.
type LEMeta []byte

func (e LEMeta) SubeventCodeWErr() (SubCode, error) {
	v, err := getByte(e, 0, 0xff)
	return SubCode(v), err
}

func (e LEMeta) SubeventCode() SubCode {
	v, _ := e.SubeventCodeWErr()
	return v
}

//get or default
func getByte(b []byte, i int, def byte) (byte, error) {
	bb, err := getBytes(b, i, 1)
	if err != nil {
		return def, err
	}
	return bb[0], nil
}

//get or default
func getUint16LE(b []byte, i int, def uint16) (uint16, error) {
	bb, err := getBytes(b, i, 2)
	if err != nil {
		return def, err
	}
	return binary.LittleEndian.Uint16(bb), nil
}

func getBytes(bytes []byte, start int, count int) ([]byte, error) {
	if bytes == nil || start >= len(bytes) {
		return nil, fmt.Errorf("index error")
	}

	if count < 0 {
		return bytes[start:], nil
	}

	end := start + count
	//end is non-inclusive
	if end > len(bytes) {
		return nil, fmt.Errorf("index error")
	}

	return bytes[start:end], nil
}
