package att

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools/hci/param"
)

// Opcode is the first octet of an ATT PDU [Vol 3, Part F, 3.3.1]. Bits
// 0-5 are the method, bit 6 the command flag and bit 7 the
// authentication signature flag.
type Opcode uint8

const (
	ErrorResponse                   Opcode = 0x01
	ExchangeMTURequest              Opcode = 0x02
	ExchangeMTUResponse             Opcode = 0x03
	FindInformationRequest          Opcode = 0x04
	FindInformationResponse         Opcode = 0x05
	FindByTypeValueRequest          Opcode = 0x06
	FindByTypeValueResponse         Opcode = 0x07
	ReadByTypeRequest               Opcode = 0x08
	ReadByTypeResponse              Opcode = 0x09
	ReadRequest                     Opcode = 0x0a
	ReadResponse                    Opcode = 0x0b
	ReadBlobRequest                 Opcode = 0x0c
	ReadBlobResponse                Opcode = 0x0d
	ReadMultipleRequest             Opcode = 0x0e
	ReadMultipleResponse            Opcode = 0x0f
	ReadByGroupTypeRequest          Opcode = 0x10
	ReadByGroupTypeResponse         Opcode = 0x11
	WriteRequest                    Opcode = 0x12
	WriteResponse                   Opcode = 0x13
	PrepareWriteRequest             Opcode = 0x16
	PrepareWriteResponse            Opcode = 0x17
	ExecuteWriteRequest             Opcode = 0x18
	ExecuteWriteResponse            Opcode = 0x19
	HandleValueNotification         Opcode = 0x1b
	HandleValueIndication           Opcode = 0x1d
	HandleValueConfirmation         Opcode = 0x1e
	ReadMultipleVariableRequest     Opcode = 0x20
	ReadMultipleVariableResponse    Opcode = 0x21
	MultipleHandleValueNotification Opcode = 0x23
	WriteCommand                    Opcode = 0x52
	SignedWriteCommand              Opcode = 0xd2
)

const (
	methodMask    = 0x3f
	commandFlag   = 0x40
	signatureFlag = 0x80

	// SignatureLen is the size of the authentication signature that
	// trails a signed PDU.
	SignatureLen = 12
)

var opcodeNames = map[Opcode]string{
	ErrorResponse:                   "ATT_ERROR_RSP",
	ExchangeMTURequest:              "ATT_EXCHANGE_MTU_REQ",
	ExchangeMTUResponse:             "ATT_EXCHANGE_MTU_RSP",
	FindInformationRequest:          "ATT_FIND_INFORMATION_REQ",
	FindInformationResponse:         "ATT_FIND_INFORMATION_RSP",
	FindByTypeValueRequest:          "ATT_FIND_BY_TYPE_VALUE_REQ",
	FindByTypeValueResponse:         "ATT_FIND_BY_TYPE_VALUE_RSP",
	ReadByTypeRequest:               "ATT_READ_BY_TYPE_REQ",
	ReadByTypeResponse:              "ATT_READ_BY_TYPE_RSP",
	ReadRequest:                     "ATT_READ_REQ",
	ReadResponse:                    "ATT_READ_RSP",
	ReadBlobRequest:                 "ATT_READ_BLOB_REQ",
	ReadBlobResponse:                "ATT_READ_BLOB_RSP",
	ReadMultipleRequest:             "ATT_READ_MULTIPLE_REQ",
	ReadMultipleResponse:            "ATT_READ_MULTIPLE_RSP",
	ReadByGroupTypeRequest:          "ATT_READ_BY_GROUP_TYPE_REQ",
	ReadByGroupTypeResponse:         "ATT_READ_BY_GROUP_TYPE_RSP",
	WriteRequest:                    "ATT_WRITE_REQ",
	WriteResponse:                   "ATT_WRITE_RSP",
	PrepareWriteRequest:             "ATT_PREPARE_WRITE_REQ",
	PrepareWriteResponse:            "ATT_PREPARE_WRITE_RSP",
	ExecuteWriteRequest:             "ATT_EXECUTE_WRITE_REQ",
	ExecuteWriteResponse:            "ATT_EXECUTE_WRITE_RSP",
	HandleValueNotification:         "ATT_HANDLE_VALUE_NTF",
	HandleValueIndication:           "ATT_HANDLE_VALUE_IND",
	HandleValueConfirmation:         "ATT_HANDLE_VALUE_CFM",
	ReadMultipleVariableRequest:     "ATT_READ_MULTIPLE_VARIABLE_REQ",
	ReadMultipleVariableResponse:    "ATT_READ_MULTIPLE_VARIABLE_RSP",
	MultipleHandleValueNotification: "ATT_MULTIPLE_HANDLE_VALUE_NTF",
	WriteCommand:                    "ATT_WRITE_CMD",
	SignedWriteCommand:              "ATT_SIGNED_WRITE_CMD",
}

// Method returns the opcode without its flag bits.
func (o Opcode) Method() Opcode { return o & methodMask }

// Command reports whether the command flag is set.
func (o Opcode) Command() bool { return o&commandFlag != 0 }

// Signed reports whether the PDU carries an authentication signature.
func (o Opcode) Signed() bool { return o&signatureFlag != 0 }

// Known reports whether o, or its method, is a defined opcode.
func (o Opcode) Known() bool {
	_, ok := opcodeNames[o.Lookup()]
	return ok
}

// Lookup returns o when it is a defined opcode including its flags, e.g.
// ATT_WRITE_CMD, and the bare method otherwise.
func (o Opcode) Lookup() Opcode {
	if _, ok := opcodeNames[o]; ok {
		return o
	}
	return o.Method()
}

func (o Opcode) String() string {
	if n, ok := opcodeNames[o.Lookup()]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN (0x%02X)", uint8(o))
}

// ErrShort means a PDU is too short for its opcode and signature.
var ErrShort = errors.New("att: short pdu")

// PDU is a split ATT PDU. Signature is nil unless the opcode is signed.
type PDU struct {
	Opcode    Opcode
	Params    []byte
	Signature []byte
}

// Split separates the opcode, parameters and trailing signature of b.
func Split(b []byte) (PDU, error) {
	if len(b) < 1 {
		return PDU{}, errors.Wrap(ErrShort, "no opcode")
	}
	p := PDU{Opcode: Opcode(b[0]), Params: b[1:]}
	if p.Opcode.Signed() {
		if len(p.Params) < SignatureLen {
			return p, errors.Wrapf(ErrShort, "%v: %d bytes, signature needs %d", p.Opcode, len(p.Params), SignatureLen)
		}
		n := len(p.Params) - SignatureLen
		p.Params, p.Signature = p.Params[:n], p.Params[n:]
	}
	return p, nil
}

// ErrorCodes names ATT error codes [Vol 3, Part F, 3.4.1.1]. Codes in the
// application and common profile ranges fall back to the range name.
var ErrorCodes = &param.EnumTable{
	Names: map[uint64]string{
		0x01: "INVALID_HANDLE",
		0x02: "READ_NOT_PERMITTED",
		0x03: "WRITE_NOT_PERMITTED",
		0x04: "INVALID_PDU",
		0x05: "INSUFFICIENT_AUTHENTICATION",
		0x06: "REQUEST_NOT_SUPPORTED",
		0x07: "INVALID_OFFSET",
		0x08: "INSUFFICIENT_AUTHORIZATION",
		0x09: "PREPARE_QUEUE_FULL",
		0x0A: "ATTRIBUTE_NOT_FOUND",
		0x0B: "ATTRIBUTE_NOT_LONG",
		0x0C: "ENCRYPTION_KEY_TOO_SHORT",
		0x0D: "INVALID_ATTRIBUTE_VALUE_LENGTH",
		0x0E: "UNLIKELY_ERROR",
		0x0F: "INSUFFICIENT_ENCRYPTION",
		0x10: "UNSUPPORTED_GROUP_TYPE",
		0x11: "INSUFFICIENT_RESOURCES",
		0x12: "DATABASE_OUT_OF_SYNC",
		0x13: "VALUE_NOT_ALLOWED",
	},
	Ranges: []param.EnumRange{
		{Lo: 0x80, Hi: 0x9F, Name: "APPLICATION_ERROR"},
		{Lo: 0xE0, Hi: 0xFF, Name: "COMMON_PROFILE_AND_SERVICE_ERROR"},
	},
}

// ErrorCode is the Error_Code parameter of ATT_ERROR_RSP.
type ErrorCode uint8

func (e ErrorCode) String() string {
	n, _ := ErrorCodes.Name(uint64(e))
	return n
}
