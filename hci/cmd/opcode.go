package cmd

import "fmt"

// OGF is the opcode group field, the upper 6 bits of an opcode.
type OGF uint8

// Opcode groups [Vol 4, Part E, 5.4.1].
const (
	OGFNop           OGF = 0x00
	OGFLinkControl   OGF = 0x01
	OGFLinkPolicy    OGF = 0x02
	OGFController    OGF = 0x03
	OGFInformational OGF = 0x04
	OGFStatus        OGF = 0x05
	OGFTesting       OGF = 0x06
	OGFLEController  OGF = 0x08
	OGFVendor        OGF = 0x3F
)

var ogfNames = map[OGF]string{
	OGFNop:           "NOP",
	OGFLinkControl:   "LINK_CONTROL",
	OGFLinkPolicy:    "LINK_POLICY",
	OGFController:    "CONTROLLER",
	OGFInformational: "INFORMATIONAL",
	OGFStatus:        "STATUS",
	OGFTesting:       "TESTING",
	OGFLEController:  "LE_CONTROLLER",
	OGFVendor:        "VENDOR_SPEC",
}

func (g OGF) String() string {
	if n, ok := ogfNames[g]; ok {
		return n
	}
	return fmt.Sprintf("[OGF=%02X]", uint8(g))
}

// OCF is the opcode command field, the lower 10 bits of an opcode.
type OCF uint16

// Opcode is the 16 bit command opcode, (OGF << 10) | OCF.
type Opcode uint16

// NewOpcode packs ogf and ocf.
func NewOpcode(ogf OGF, ocf OCF) Opcode {
	return Opcode(uint16(ogf&0x3f)<<10 | uint16(ocf&0x3ff))
}

func (o Opcode) OGF() OGF { return OGF(o >> 10) }
func (o Opcode) OCF() OCF { return OCF(o & 0x3ff) }

// Name returns the command name within its group, if known.
func (o Opcode) Name() (string, bool) {
	n, ok := ocfNames[o.OGF()][o.OCF()]
	return n, ok
}

// String renders GROUP.COMMAND, or GROUP.[OCF=xx] for unnamed commands.
func (o Opcode) String() string {
	if n, ok := o.Name(); ok {
		return o.OGF().String() + "." + n
	}
	return fmt.Sprintf("%s.[OCF=%02X]", o.OGF(), uint16(o.OCF()))
}

// Lookup finds the opcode of a command by group and name.
func Lookup(ogf OGF, name string) (Opcode, bool) {
	for ocf, n := range ocfNames[ogf] {
		if n == name {
			return NewOpcode(ogf, ocf), true
		}
	}
	return 0, false
}

// Parse resolves "GROUP.COMMAND" to an opcode.
func Parse(s string) (Opcode, bool) {
	for g, gn := range ogfNames {
		if len(s) > len(gn)+1 && s[:len(gn)] == gn && s[len(gn)] == '.' {
			if op, ok := Lookup(g, s[len(gn)+1:]); ok {
				return op, true
			}
		}
	}
	return 0, false
}
