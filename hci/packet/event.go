package packet

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools/hci"
	"github.com/rigado/hcitools/hci/cmd"
	"github.com/rigado/hcitools/hci/evt"
	"github.com/rigado/hcitools/hci/param"
)

// EventPacket is a framed HCI event. Params aliases the frame.
type EventPacket struct {
	Code   evt.Code
	Params []byte
}

// EventFromBytes wraps an event frame.
func EventFromBytes(frame []byte) (*EventPacket, error) {
	code, params, err := evt.Split(frame)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalid, "%v", err)
	}
	return &EventPacket{Code: code, Params: params}, nil
}

// Frame re-encodes the event as an H4 frame.
func (p *EventPacket) Frame() []byte {
	b := make([]byte, 3, 3+len(p.Params))
	b[0] = byte(hci.PktTypeEvent)
	b[1] = byte(p.Code)
	b[2] = byte(len(p.Params))
	return append(b, p.Params...)
}

// CommandOpcode returns the opcode a Command Complete or Command Status
// event answers.
func (p *EventPacket) CommandOpcode() (cmd.Opcode, bool) {
	op, err := evt.Opcode(p.Code, p.Params)
	return op, err == nil
}

// Status returns the status of a command response: the Command Status
// status, or the first return parameter of Command Complete.
func (p *EventPacket) Status() (uint8, bool) {
	switch p.Code {
	case evt.CommandCompleteCode:
		return evt.CommandComplete(p.Params).Status()
	case evt.CommandStatusCode:
		s, err := evt.CommandStatus(p.Params).StatusWErr()
		return s, err == nil
	}
	return 0, false
}

// Parse renders the event. Command Complete return parameters are laid
// out by the answered opcode and LE Meta parameters by the sub-event.
func (p *EventPacket) Parse(repo Repository) (*Decoded, error) {
	d := &Decoded{Type: hci.PktTypeEvent}
	d.add("PacketType", d.Type.String())
	d.add("EventCode", p.Code.String())
	d.add("Length", strconv.Itoa(len(p.Params)))

	schema, rest := repo.Event(p.Code), p.Params
	switch p.Code {
	case evt.CommandCompleteCode:
		cc := evt.CommandComplete(p.Params)
		op, err := cc.CommandOpcodeWErr()
		if err != nil {
			return nil, short("Command_Opcode", 0, 3, len(p.Params))
		}
		d.add("NumHciCommand", strconv.Itoa(int(cc.NumHCICommandPackets())))
		d.add("Command", op.String())
		schema, rest = repo.CommandComplete(op), cc.ReturnParameters()

	case evt.LEMetaCode:
		sub, err := evt.LEMeta(p.Params).SubeventCodeWErr()
		if err != nil {
			return nil, short("Subevent_Code", 0, 1, 0)
		}
		d.add("SubEventCode", sub.String())
		schema, rest = repo.LEMeta(sub), p.Params[1:]
	}

	res, err := param.Decode(rest, schema)
	if err != nil {
		return nil, errors.Wrapf(err, "%v", p.Code)
	}
	d.Params = res
	return d, nil
}
