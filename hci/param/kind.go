package param

import "bytes"

// Kind turns the raw bytes of one field into a Value.
type Kind struct {
	Name string
	// Numeric kinds produce values implementing Numeric.
	Numeric bool
	fn      func(b []byte) (Value, error)
}

// NewKind builds a Kind from a decode function.
func NewKind(name string, numeric bool, fn func(b []byte) (Value, error)) Kind {
	return Kind{Name: name, Numeric: numeric, fn: fn}
}

// Decode interprets b. A zero Kind yields Bytes.
func (k Kind) Decode(b []byte) (Value, error) {
	if k.fn == nil {
		return Bytes(b), nil
	}
	return k.fn(b)
}

func simple(name string, numeric bool, fn func(b []byte) Value) Kind {
	return NewKind(name, numeric, func(b []byte) (Value, error) { return fn(b), nil })
}

// le returns the low 8 bytes of b as a little endian integer.
func le(b []byte) uint64 {
	var n uint64
	for i := len(b) - 1; i >= 0; i-- {
		if i < 8 {
			n = n<<8 | uint64(b[i])
		}
	}
	return n
}

var (
	UintKind = simple("uint", true, func(b []byte) Value { return Uint{le: b} })
	HexKind  = simple("hexint", true, func(b []byte) Value { return Hex{Uint{le: b}} })
	IntKind  = simple("int", true, func(b []byte) Value {
		if len(b) > 8 {
			return Bytes(b)
		}
		n := le(b)
		if sh := uint(64 - 8*len(b)); len(b) > 0 && sh > 0 {
			return Int{V: int64(n<<sh) >> sh}
		}
		return Int{V: int64(n)}
	})
	BoolKind = simple("bool", true, func(b []byte) Value { return Bool(anySet(b)) })

	// BEUintKind and BEHexKind read the bytes as a big endian number.
	BEUintKind = simple("str", false, func(b []byte) Value { return BigEndian{be: b} })
	BEHexKind  = simple("hexstr", false, func(b []byte) Value { return BigEndian{be: b, hex: true} })

	BytesKind = simple("bytes", false, func(b []byte) Value { return Bytes(b) })
	TextKind  = simple("text", false, func(b []byte) Value {
		if i := bytes.IndexByte(b, 0); i >= 0 {
			b = b[:i]
		}
		return Text(b)
	})

	AddressKind = simple("address", false, func(b []byte) Value {
		a := make(Address, len(b))
		for i, x := range b {
			a[len(b)-1-i] = x
		}
		return a
	})
)

func anySet(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return true
		}
	}
	return false
}

// EnumKind decodes a little endian code named by t.
func EnumKind(name string, t *EnumTable) Kind {
	return simple(name, true, func(b []byte) Value { return t.value(le(b), len(b)) })
}

// FlagsKind decodes a little endian bit field named by set.
func FlagsKind(name string, set BitSet) Kind {
	return simple(name, true, func(b []byte) Value { return NewFlags(le(b), set, len(b)) })
}

// ScaledKind decodes a count of unit sized steps, e.g. 1.25 ms.
func ScaledKind(name string, unit float64, suffix string) Kind {
	return simple(name, true, func(b []byte) Value { return Scaled{Raw: le(b), Unit: unit, Sfx: suffix} })
}
