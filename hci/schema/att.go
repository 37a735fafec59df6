package schema

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
	"github.com/rigado/hcitools/hci/att"
	"github.com/rigado/hcitools/hci/param"
)

// Handle is an attribute handle.
type Handle uint16

func (h Handle) Uint64() (uint64, bool) { return uint64(h), true }
func (h Handle) String() string         { return fmt.Sprintf("0x%04X", uint16(h)) }

// UUID16 is a 16-bit Bluetooth UUID.
type UUID16 uint16

func (u UUID16) String() string { return fmt.Sprintf("0x%04X", uint16(u)) }

var infoFormat = &param.EnumTable{Names: map[uint64]string{
	0x01: "UUID_2B",
	0x02: "UUID_16B",
}}

func short(kind string, at, want int, b []byte) error {
	return &param.MalformedError{Label: kind, Offset: at, Want: want, Have: len(b) - at}
}

// leUUID reads a 128-bit UUID sent least significant octet first.
func leUUID(b []byte) uuid.UUID {
	var u uuid.UUID
	for i := range u {
		u[i] = b[len(b)-1-i]
	}
	return u
}

// Decode kinds of ATT composite parameters.
var (
	AttError = param.EnumKind("att_error_code", att.ErrorCodes)

	// AttInfo is the Information Data of ATT_FIND_INFORMATION_RSP: a
	// format octet, then handle and UUID pairs.
	AttInfo = param.NewKind("att_info", false, func(b []byte) (param.Value, error) {
		if len(b) < 1 {
			return nil, short("att_info", 0, 1, b)
		}
		format, _ := param.EnumKind("format", infoFormat).Decode(b[:1])
		size := 16
		if b[0] == 0x01 {
			size = 2
		}

		v := param.Struct{{Label: "Format", Value: format}}
		for i, at := 0, 1; at < len(b); i, at = i+1, at+2+size {
			if len(b)-at < 2+size {
				return nil, short("att_info", at, 2+size, b)
			}
			h := Handle(binary.LittleEndian.Uint16(b[at:]))
			var u param.Value = UUID16(binary.LittleEndian.Uint16(b[at+2:]))
			if size == 16 {
				u = leUUID(b[at+2 : at+18])
			}
			v = append(v,
				param.Entry{Label: fmt.Sprintf("Handle[%d]", i), Value: h},
				param.Entry{Label: fmt.Sprintf("UUID[%d]", i), Value: u})
		}
		return v, nil
	})

	// AttData is one Attribute Data element of ATT_READ_BY_TYPE_RSP.
	AttData = param.NewKind("att_data", false, func(b []byte) (param.Value, error) {
		if len(b) < 2 {
			return nil, short("att_data", 0, 2, b)
		}
		val, _ := param.BEHexKind.Decode(b[2:])
		return param.Struct{
			{Label: "AttributeHandle", Value: Handle(binary.LittleEndian.Uint16(b))},
			{Label: "AttributeValue", Value: val},
		}, nil
	})

	// AttGroupData is one Attribute Data element of
	// ATT_READ_BY_GROUP_TYPE_RSP.
	AttGroupData = param.NewKind("att_group_data", false, func(b []byte) (param.Value, error) {
		if len(b) < 4 {
			return nil, short("att_group_data", 0, 4, b)
		}
		val, _ := param.BEHexKind.Decode(b[4:])
		return param.Struct{
			{Label: "AttributeHandle", Value: Handle(binary.LittleEndian.Uint16(b))},
			{Label: "EndGroupHandle", Value: Handle(binary.LittleEndian.Uint16(b[2:]))},
			{Label: "AttributeValue", Value: val},
		}, nil
	})
)

var (
	hex = param.HexKind
	dec = param.UintKind
)

var attTable = map[att.Opcode]param.Schema{
	att.ErrorResponse: {
		param.F("Request_Opcode_In_Error", 1, hex),
		param.F("Attribute_Handle_In_Error", 2, hex),
		param.F("Error_Code", 1, AttError),
	},
	att.ExchangeMTURequest:  {param.F("Client_Rx_MTU", 2, dec)},
	att.ExchangeMTUResponse: {param.F("Server_Rx_MTU", 2, dec)},
	att.FindInformationRequest: {
		param.F("Starting_Handle", 2, hex),
		param.F("Ending_Handle", 2, hex),
	},
	att.FindInformationResponse: {param.Rest("Info", AttInfo)},
	att.FindByTypeValueRequest: {
		param.F("Starting_Handle", 2, hex),
		param.F("Ending_Handle", 2, hex),
		param.F("Attribute_Type", 2, hex),
		param.Rest("Attribute_Value", hex),
	},
	att.FindByTypeValueResponse: {
		param.Repeat{Count: param.CountFit(), Fields: []param.Node{
			param.F("Found_Attribute_Handle[{}]", 2, hex),
			param.F("Group_End_Handle[{}]", 2, hex),
		}},
	},
	att.ReadByTypeRequest: {
		param.F("Starting_Handle", 2, hex),
		param.F("Ending_Handle", 2, hex),
		param.Rest("Attribute_Type", hex),
	},
	att.ReadByTypeResponse: {
		param.F("Length", 1, dec),
		param.Repeat{Count: param.CountRemaining(), Fields: []param.Node{
			param.Field{Label: "Attribute_Data[{}]", Len: param.Ref(0), Kind: AttData},
		}},
	},
	att.ReadRequest:  {param.F("Attribute_Handle", 2, hex)},
	att.ReadResponse: {param.Rest("Attribute_Value", hex)},
	att.ReadBlobRequest: {
		param.F("Attribute_Handle", 2, hex),
		param.F("Value_Offset", 2, dec),
	},
	att.ReadBlobResponse: {param.Rest("Part_Attribute_Value", hex)},
	att.ReadMultipleRequest: {
		param.Repeat{Count: param.CountFit(), Fields: []param.Node{
			param.F("Handle[{}]", 2, hex),
		}},
	},
	att.ReadMultipleResponse: {param.Rest("Set_Of_Values", param.BEHexKind)},
	att.ReadByGroupTypeRequest: {
		param.F("Starting_Handle", 2, hex),
		param.F("Ending_Handle", 2, hex),
		param.Rest("Attribute_Group_Type", hex),
	},
	att.ReadByGroupTypeResponse: {
		param.F("Length", 1, dec),
		param.Repeat{Count: param.CountRemaining(), Fields: []param.Node{
			param.Field{Label: "Attribute_Data[{}]", Len: param.Ref(0), Kind: AttGroupData},
		}},
	},
	att.ReadMultipleVariableRequest: {
		param.Repeat{Count: param.CountFit(), Fields: []param.Node{
			param.F("Handle[{}]", 2, hex),
		}},
	},
	att.ReadMultipleVariableResponse: {
		param.Repeat{Count: param.CountFit(), Fields: []param.Node{
			param.F("Length[{}]", 2, dec),
			param.Field{Label: "Attribute_Value[{}]", Len: param.Ref(-1), Kind: hex},
		}},
	},
	att.WriteRequest: {
		param.F("Attribute_Handle", 2, hex),
		param.Rest("Attribute_Value", hex),
	},
	att.WriteCommand: {
		param.F("Attribute_Handle", 2, hex),
		param.Rest("Attribute_Value", hex),
	},
	// the signature is split off with the opcode flags
	att.SignedWriteCommand: {
		param.F("Attribute_Handle", 2, hex),
		param.Rest("Attribute_Value", hex),
	},
	att.PrepareWriteRequest: {
		param.F("Attribute_Handle", 2, hex),
		param.F("Value_Offset", 2, dec),
		param.Rest("Part_Attribute_Value", hex),
	},
	att.PrepareWriteResponse: {
		param.F("Attribute_Handle", 2, hex),
		param.F("Value_Offset", 2, dec),
		param.Rest("Part_Attribute_Value", hex),
	},
	att.ExecuteWriteRequest: {param.F("Execute", 1, param.BoolKind)},
	att.HandleValueNotification: {
		param.F("Attribute_Handle", 2, hex),
		param.Rest("Attribute_Value", hex),
	},
	att.HandleValueIndication: {
		param.F("Attribute_Handle", 2, hex),
		param.Rest("Attribute_Value", hex),
	},
	att.MultipleHandleValueNotification: {
		param.Repeat{Count: param.CountFit(), Fields: []param.Node{
			param.F("Attribute_Handle[{}]", 2, hex),
			param.F("Length[{}]", 2, dec),
			param.Field{Label: "Attribute_Value[{}]", Len: param.Ref(-1), Kind: hex},
		}},
	},
}
