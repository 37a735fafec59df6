// Package packet wraps framed HCI packets and renders them through the
// parameter decoder.
package packet

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools/hci"
	"github.com/rigado/hcitools/hci/att"
	"github.com/rigado/hcitools/hci/cmd"
	"github.com/rigado/hcitools/hci/evt"
	"github.com/rigado/hcitools/hci/l2cap"
	"github.com/rigado/hcitools/hci/param"
)

// ErrInvalid means a frame's header does not agree with its contents.
var ErrInvalid = errors.New("packet: invalid frame")

// Repository resolves parameter layouts. A nil param.Schema means the
// packet kind has no known parameters.
type Repository interface {
	Command(op cmd.Opcode) param.Schema
	Event(c evt.Code) param.Schema
	LEMeta(c evt.SubCode) param.Schema
	CommandComplete(op cmd.Opcode) param.Schema
	Signaling(c l2cap.SignalingCode) param.Schema
	ATT(op att.Opcode) param.Schema
}

// Line is one rendered header field.
type Line struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Decoded is the rendering of one packet: its header lines, then the
// decoded parameter block. Params is nil for packets that carry no
// parameter block, e.g. an empty ACL fragment. ATT holds the nested
// decode of an ACL frame on the attribute channel.
type Decoded struct {
	Type   hci.PacketType `json:"-"`
	Header []Line         `json:"header"`
	Params *param.Result  `json:"-"`
	ATT    *Decoded       `json:"att,omitempty"`
}

func (d *Decoded) add(k, v string) { d.Header = append(d.Header, Line{Key: k, Value: v}) }

// String renders the text record.
func (d *Decoded) String() string {
	var sb strings.Builder
	d.write(&sb)
	return sb.String()
}

func (d *Decoded) write(sb *strings.Builder) {
	for _, l := range d.Header {
		sb.WriteString(l.Key)
		sb.WriteByte('=')
		sb.WriteString(l.Value)
		sb.WriteByte('\n')
	}
	if d.Params != nil {
		sb.WriteString(d.Params.Text())
	}
	if d.ATT != nil {
		d.ATT.write(sb)
	}
}

// Decode dispatches frame on its indicator byte and parses it.
func Decode(frame []byte, repo Repository) (*Decoded, error) {
	if len(frame) == 0 {
		return nil, errors.Wrap(ErrInvalid, "empty frame")
	}
	switch t := hci.PacketType(frame[0]); t {
	case hci.PktTypeCommand, hci.PktTypeExtended:
		p, err := CommandFromBytes(frame)
		if err != nil {
			return nil, err
		}
		return p.Parse(repo)
	case hci.PktTypeEvent:
		p, err := EventFromBytes(frame)
		if err != nil {
			return nil, err
		}
		return p.Parse(repo)
	case hci.PktTypeACLData:
		p, err := AclFromBytes(frame)
		if err != nil {
			return nil, err
		}
		return p.Parse(repo)
	default:
		return nil, errors.Wrapf(ErrInvalid, "unknown indicator 0x%02x", uint8(t))
	}
}

func short(label string, at, want, have int) error {
	return &param.MalformedError{Label: label, Offset: at, Want: want, Have: have}
}
