package l2cap

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// L2CAP Channel Identifier namespace [Vol 3, Part A, 2.1].
const (
	CIDSignal   uint16 = 0x01 // ACL-U L2CAP Signaling channel [Vol 3, Part A, 4].
	CIDLEAtt    uint16 = 0x04 // Attribute Protocol [Vol 3, Part F].
	CIDLESignal uint16 = 0x05 // Low Energy L2CAP Signaling channel [Vol 3, Part A, 4].
	CIDSMP      uint16 = 0x06 // SecurityManager Protocol [Vol 3, Part H].
)

// IsSignaling reports whether cid carries signaling commands.
func IsSignaling(cid uint16) bool { return cid == CIDSignal || cid == CIDLESignal }

// ErrShort means the ACL data is too short to hold the header being read.
var ErrShort = errors.New("l2cap: short packet")

// Packet implements HCI ACL Data Packet [Vol 2, Part E, 5.4.2], without
// the H4 tag. Handle is bits 0-11 of the first field, the broadcast flag
// bits 12-13 and the packet boundary flag bits 14-15.
type Packet []byte

func (a Packet) Handle() uint16 { return binary.LittleEndian.Uint16(a[0:2]) & 0x0fff }
func (a Packet) BCF() int       { return (int(a[1]) >> 4) & 0x3 }
func (a Packet) PBF() int       { return (int(a[1]) >> 6) & 0x3 }
func (a Packet) Dlen() int      { return int(binary.LittleEndian.Uint16(a[2:4])) }
func (a Packet) Data() []byte   { return a[4:] }

// Pdu is a basic L2CAP frame: length, channel id, information payload.
type Pdu []byte

func (p Pdu) Dlen() int       { return int(binary.LittleEndian.Uint16(p[0:2])) }
func (p Pdu) CID() uint16     { return binary.LittleEndian.Uint16(p[2:4]) }
func (p Pdu) Payload() []byte { return p[4:] }

// Header is the decoded ACL and L2CAP header of one ACL frame.
type Header struct {
	Handle        uint16
	BCFlag        int
	PBFlag        int
	PacketLength  int
	PayloadLength int
	CID           uint16
}

// Split reads the ACL header of b (without the H4 tag) and, when the
// packet carries data, the basic L2CAP header. It returns the bytes after
// the channel id. A zero length packet returns only the ACL fields.
func Split(b []byte) (Header, []byte, error) {
	if len(b) < 4 {
		return Header{}, nil, errors.Wrapf(ErrShort, "acl header: % X", b)
	}
	a := Packet(b)
	h := Header{Handle: a.Handle(), BCFlag: a.BCF(), PBFlag: a.PBF(), PacketLength: a.Dlen()}
	if h.PacketLength == 0 {
		return h, nil, nil
	}

	p := Pdu(a.Data())
	if len(p) < 4 {
		return h, nil, errors.Wrapf(ErrShort, "l2cap header: % X", b)
	}
	h.PayloadLength = p.Dlen()
	h.CID = p.CID()
	return h, p.Payload(), nil
}

// SignalingCode identifies an L2CAP signaling command [Vol 3, Part A, 4].
type SignalingCode uint8

const (
	CommandReject                     SignalingCode = 0x01
	ConnectionRequest                 SignalingCode = 0x02
	ConnectionResponse                SignalingCode = 0x03
	ConfigurationRequest              SignalingCode = 0x04
	ConfigurationResponse             SignalingCode = 0x05
	DisconnectionRequest              SignalingCode = 0x06
	DisconnectionResponse             SignalingCode = 0x07
	EchoRequest                       SignalingCode = 0x08
	EchoResponse                      SignalingCode = 0x09
	InformationRequest                SignalingCode = 0x0A
	InformationResponse               SignalingCode = 0x0B
	ConnectionParameterUpdateRequest  SignalingCode = 0x12
	ConnectionParameterUpdateResponse SignalingCode = 0x13
	LECreditBasedConnectionRequest    SignalingCode = 0x14
	LECreditBasedConnectionResponse   SignalingCode = 0x15
	FlowControlCreditIndication       SignalingCode = 0x16
	CreditBasedConnectionRequest      SignalingCode = 0x17
	CreditBasedConnectionResponse     SignalingCode = 0x18
	CreditBasedReconfigureRequest     SignalingCode = 0x19
	CreditBasedReconfigureResponse    SignalingCode = 0x1A
)

var signalingNames = map[SignalingCode]string{
	CommandReject:                     "L2CAP_COMMAND_REJECT_RSP",
	ConnectionRequest:                 "L2CAP_CONNECTION_REQ",
	ConnectionResponse:                "L2CAP_CONNECTION_RSP",
	ConfigurationRequest:              "L2CAP_CONFIGURATION_REQ",
	ConfigurationResponse:             "L2CAP_CONFIGURATION_RSP",
	DisconnectionRequest:              "L2CAP_DISCONNECTION_REQ",
	DisconnectionResponse:             "L2CAP_DISCONNECTION_RSP",
	EchoRequest:                       "L2CAP_ECHO_REQ",
	EchoResponse:                      "L2CAP_ECHO_RSP",
	InformationRequest:                "L2CAP_INFORMATION_REQ",
	InformationResponse:               "L2CAP_INFORMATION_RSP",
	ConnectionParameterUpdateRequest:  "L2CAP_CONNECTION_PARAMETER_UPDATE_REQ",
	ConnectionParameterUpdateResponse: "L2CAP_CONNECTION_PARAMETER_UPDATE_RSP",
	LECreditBasedConnectionRequest:    "L2CAP_LE_CREDIT_BASED_CONNECTION_REQ",
	LECreditBasedConnectionResponse:   "L2CAP_LE_CREDIT_BASED_CONNECTION_RSP",
	FlowControlCreditIndication:       "L2CAP_FLOW_CONTROL_CREDIT_IND",
	CreditBasedConnectionRequest:      "L2CAP_CREDIT_BASED_CONNECTION_REQ",
	CreditBasedConnectionResponse:     "L2CAP_CREDIT_BASED_CONNECTION_RSP",
	CreditBasedReconfigureRequest:     "L2CAP_CREDIT_BASED_RECONFIGURE_REQ",
	CreditBasedReconfigureResponse:    "L2CAP_CREDIT_BASED_RECONFIGURE_RSP",
}

func (c SignalingCode) String() string {
	if n, ok := signalingNames[c]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN (0x%02X)", uint8(c))
}

// Signal is the header of one signaling command [Vol 3, Part A, 4].
type Signal struct {
	Code   SignalingCode
	ID     uint8
	Length uint16
}

// SplitSignal reads a signaling command header from the L2CAP payload and
// returns the command data that follows it.
func SplitSignal(b []byte) (Signal, []byte, error) {
	if len(b) < 4 {
		return Signal{}, nil, errors.Wrapf(ErrShort, "signaling header: % X", b)
	}
	s := Signal{
		Code:   SignalingCode(b[0]),
		ID:     b[1],
		Length: binary.LittleEndian.Uint16(b[2:4]),
	}
	return s, b[4:], nil
}
