package packet

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools/hci"
	"github.com/rigado/hcitools/hci/cmd"
	"github.com/rigado/hcitools/hci/param"
)

// CommandPacket is a framed HCI command. Params aliases the frame.
type CommandPacket struct {
	Opcode   cmd.Opcode
	Extended bool
	Params   []byte
}

// CommandFromBytes wraps a command or extended command frame.
func CommandFromBytes(frame []byte) (*CommandPacket, error) {
	op, n, err := cmd.DecodeHeader(frame)
	if err != nil {
		return nil, err
	}
	p := &CommandPacket{Opcode: op, Extended: hci.PacketType(frame[0]) == hci.PktTypeExtended}
	hl := 4
	if p.Extended {
		hl = 5
	}
	if n != len(frame)-hl {
		return nil, errors.Wrapf(ErrInvalid, "%v: length %d, have %d", op, n, len(frame)-hl)
	}
	p.Params = frame[hl:]
	return p, nil
}

// Encode frames the command again.
func (p *CommandPacket) Encode() ([]byte, error) {
	r := cmd.Raw{Op: p.Opcode, Payload: p.Params}
	if p.Extended {
		return cmd.Encode(cmd.ExtendedRaw{Raw: r})
	}
	return cmd.Encode(r)
}

// Parse renders the command with the parameter layout of its opcode.
func (p *CommandPacket) Parse(repo Repository) (*Decoded, error) {
	d := &Decoded{Type: hci.PktTypeCommand}
	if p.Extended {
		d.Type = hci.PktTypeExtended
	}
	d.add("PacketType", d.Type.String())
	d.add("Command", p.Opcode.String())
	d.add("Length", strconv.Itoa(len(p.Params)))

	res, err := param.Decode(p.Params, repo.Command(p.Opcode))
	if err != nil {
		return nil, errors.Wrapf(err, "%v", p.Opcode)
	}
	d.Params = res
	return d, nil
}
