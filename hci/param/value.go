package param

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"net"
	"strconv"
	"strings"
)

// Value is one decoded parameter.
type Value interface {
	String() string
}

// Numeric values can feed a length or count reference.
type Numeric interface {
	Value
	// Uint64 returns ok=false when the value does not fit.
	Uint64() (v uint64, ok bool)
}

// Uint is an unsigned little endian integer of any width.
type Uint struct {
	le []byte
}

func NewUint(le []byte) Uint { return Uint{le: le} }

func (v Uint) Uint64() (uint64, bool) {
	var n uint64
	for i := len(v.le) - 1; i >= 0; i-- {
		if i >= 8 && v.le[i] != 0 {
			return 0, false
		}
		if i < 8 {
			n = n<<8 | uint64(v.le[i])
		}
	}
	return n, true
}

// Big returns the value as a big.Int.
func (v Uint) Big() *big.Int {
	be := make([]byte, len(v.le))
	for i, b := range v.le {
		be[len(be)-1-i] = b
	}
	return new(big.Int).SetBytes(be)
}

func (v Uint) String() string {
	if n, ok := v.Uint64(); ok {
		return strconv.FormatUint(n, 10)
	}
	return v.Big().String()
}

// Hex is a Uint printed in hexadecimal.
type Hex struct {
	Uint
}

func (v Hex) String() string {
	if n, ok := v.Uint64(); ok {
		return fmt.Sprintf("0x%X", n)
	}
	return "0x" + strings.ToUpper(v.Big().Text(16))
}

// Int is a signed little endian integer up to 8 bytes.
type Int struct {
	V int64
}

func (v Int) Uint64() (uint64, bool) {
	if v.V < 0 {
		return 0, false
	}
	return uint64(v.V), true
}

func (v Int) String() string { return strconv.FormatInt(v.V, 10) }

// BigEndian is an unsigned big endian integer, decimal or hex.
type BigEndian struct {
	be  []byte
	hex bool
}

func (v BigEndian) String() string {
	n := new(big.Int).SetBytes(v.be)
	if v.hex {
		return "0x" + strings.ToUpper(n.Text(16))
	}
	return n.String()
}

// Bytes is an opaque byte string printed in wire order.
type Bytes []byte

func (v Bytes) String() string {
	if len(v) == 0 {
		return "0x0"
	}
	return "0x" + strings.ToUpper(hex.EncodeToString(v))
}

// Text is a fixed width, NUL padded string field.
type Text string

func (v Text) String() string { return strconv.Quote(string(v)) }

type Bool bool

func (v Bool) Uint64() (uint64, bool) {
	if v {
		return 1, true
	}
	return 0, true
}

func (v Bool) String() string {
	if v {
		return "True"
	}
	return "False"
}

// Address is a BD_ADDR, stored in display order (most significant first).
type Address net.HardwareAddr

func (v Address) String() string {
	return strings.ToUpper(net.HardwareAddr(v).String())
}

// Scaled is an integer count of fixed size units, e.g. 0.625 ms slots.
type Scaled struct {
	Raw  uint64
	Unit float64
	Sfx  string
}

func (v Scaled) Uint64() (uint64, bool) { return v.Raw, true }

// Float returns Raw * Unit.
func (v Scaled) Float() float64 { return float64(v.Raw) * v.Unit }

func (v Scaled) String() string {
	return strconv.FormatFloat(v.Float(), 'f', -1, 64) + " " + v.Sfx
}

// Entry is a labelled decoded value.
type Entry struct {
	Label string
	Value Value
}

// Struct is a composite value made of named members.
type Struct []Entry

// String puts each member on its own line, indented one level deeper
// than a top level parameter.
func (v Struct) String() string {
	var sb strings.Builder
	for _, e := range v {
		sb.WriteString("\n        ")
		sb.WriteString(e.Label)
		sb.WriteByte('=')
		sb.WriteString(e.Value.String())
	}
	return sb.String()
}
