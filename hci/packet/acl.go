package packet

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools/hci"
	"github.com/rigado/hcitools/hci/l2cap"
	"github.com/rigado/hcitools/hci/param"
)

// AclPacket is a framed ACL data packet. Data holds the bytes after the
// L2CAP channel id and aliases the frame.
type AclPacket struct {
	l2cap.Header
	Data []byte
}

// AclFromBytes wraps an ACL frame.
func AclFromBytes(frame []byte) (*AclPacket, error) {
	if len(frame) < 1 || hci.PacketType(frame[0]) != hci.PktTypeACLData {
		return nil, errors.Wrapf(ErrInvalid, "not an acl frame: % X", frame)
	}
	b := frame[1:]
	if len(b) < 4 {
		return nil, short("ACL_Header", 0, 4, len(b))
	}
	if n := int(b[2]) | int(b[3])<<8; n != len(b)-4 {
		return nil, errors.Wrapf(ErrInvalid, "acl length %d, have %d", n, len(b)-4)
	}
	h, data, err := l2cap.Split(b)
	if err != nil {
		return nil, short("L2CAP_Header", 4, 4, len(b)-4)
	}
	return &AclPacket{Header: h, Data: data}, nil
}

// Parse renders the ACL and L2CAP headers. Signaling channels are decoded
// by signaling code and the attribute channel as a nested ATT PDU. Other
// channels print their data raw.
func (p *AclPacket) Parse(repo Repository) (*Decoded, error) {
	d := &Decoded{Type: hci.PktTypeACLData}
	d.add("PacketType", d.Type.String())
	d.add("ConnectionHandle", strconv.Itoa(int(p.Handle)))
	d.add("PacketLength", strconv.Itoa(p.PacketLength))
	if p.PacketLength == 0 {
		return d, nil
	}
	d.add("PayloadLength", strconv.Itoa(p.PayloadLength))
	d.add("ChannelId", strconv.Itoa(int(p.CID)))

	switch {
	case l2cap.IsSignaling(p.CID):
		sig, rest, err := l2cap.SplitSignal(p.Data)
		if err != nil {
			return nil, short("Signaling_Header", 8, 4, len(p.Data))
		}
		d.add("SignalingCode", sig.Code.String())
		d.add("PacketId", strconv.Itoa(int(sig.ID)))
		d.add("DataLength", strconv.Itoa(int(sig.Length)))
		res, err := param.Decode(rest, repo.Signaling(sig.Code))
		if err != nil {
			return nil, errors.Wrapf(err, "%v", sig.Code)
		}
		d.Params = res

	case p.CID == l2cap.CIDLEAtt:
		a, err := AttFromBytes(p.Data)
		if err != nil {
			return nil, err
		}
		if d.ATT, err = a.Parse(repo); err != nil {
			return nil, err
		}

	default:
		d.add("PacketData", param.Bytes(p.Data).String())
	}
	return d, nil
}
