package param

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func decodeOne(t *testing.T, k Kind, b []byte) Value {
	t.Helper()
	v, err := k.Decode(b)
	if err != nil {
		t.Fatalf("%s.Decode([% x]): %v", k.Name, b, err)
	}
	return v
}

func TestKindStrings(t *testing.T) {
	le16 := append([]byte{0x01}, make([]byte, 15)...)

	tests := []struct {
		name string
		kind Kind
		in   []byte
		want string
	}{
		{"uint", UintKind, []byte{0x34, 0x12}, "4660"},
		{"uint wide", UintKind, bytes.Repeat([]byte{0xff}, 16), "340282366920938463463374607431768211455"},
		{"hex", HexKind, []byte{0x03, 0x0c}, "0xC03"},
		{"hex wide small", HexKind, le16, "0x1"},
		{"int negative", IntKind, []byte{0xff}, "-1"},
		{"int16 negative", IntKind, []byte{0xfe, 0xff}, "-2"},
		{"int positive", IntKind, []byte{0x7f}, "127"},
		{"int empty", IntKind, nil, "0"},
		{"bool", BoolKind, []byte{0x00, 0x01}, "True"},
		{"bool false", BoolKind, []byte{0x00}, "False"},
		{"big endian", BEUintKind, []byte{0x01, 0x02}, "258"},
		{"big endian hex", BEHexKind, []byte{0x01, 0x02}, "0x102"},
		{"bytes", BytesKind, []byte{0x00, 0x0a}, "0x000A"},
		{"text", TextKind, []byte{'h', 'i', 0, 'x'}, `"hi"`},
		{"address", AddressKind, []byte{0x66, 0x55, 0x44, 0x33, 0x22, 0x11}, "11:22:33:44:55:66"},
		{"scaled", ScaledKind("time_0p625ms", 0.625, "ms"), []byte{0xa0, 0x00}, "100 ms"},
		{"scaled fraction", ScaledKind("time_0p625ms", 0.625, "ms"), []byte{0x01, 0x00}, "0.625 ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeOne(t, tt.kind, tt.in).String(); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestZeroKindIsBytes(t *testing.T) {
	var k Kind
	if got := decodeOne(t, k, []byte{0xab}).String(); got != "0xAB" {
		t.Fatalf("got %q", got)
	}
}

func TestUintOverflow(t *testing.T) {
	v := decodeOne(t, UintKind, bytes.Repeat([]byte{0xff}, 9)).(Numeric)
	if _, ok := v.Uint64(); ok {
		t.Fatal("9 byte value should not fit a uint64")
	}
}

func TestEnum(t *testing.T) {
	tbl := &EnumTable{
		Names:  map[uint64]string{0x01: "INVALID_HANDLE", 0x1e: "INVALID_LMP_PARAMETERS", 0x0c03: "RESET"},
		Alt:    map[uint64]string{0x1e: "INVALID_LL_PARAMETERS"},
		Ranges: []EnumRange{{Lo: 0x80, Hi: 0x9f, Name: "APPLICATION_ERROR"}},
	}
	k := EnumKind("code", tbl)

	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte{0x01}, "INVALID_HANDLE (0x01)"},
		{[]byte{0x1e}, "INVALID_LMP_PARAMETERS/INVALID_LL_PARAMETERS (0x1E)"},
		{[]byte{0x85}, "APPLICATION_ERROR (0x85)"},
		{[]byte{0x50}, "UNKNOWN (0x50)"},
		{[]byte{0x03, 0x0c}, "RESET (0x0C03)"},
	}
	for _, tt := range tests {
		if got := decodeOne(t, k, tt.in).String(); got != tt.want {
			t.Errorf("% x: got %q, want %q", tt.in, got, tt.want)
		}
	}

	if n, ok := tbl.Name(0x9f); !ok || n != "APPLICATION_ERROR" {
		t.Errorf("Name(0x9f) = %q, %v", n, ok)
	}
	if _, ok := tbl.Name(0xa0); ok {
		t.Error("0xa0 is outside every range")
	}
}

func TestFlags(t *testing.T) {
	set := BitSet{{Mask: 0x01, Name: "A"}, {Mask: 0x02, Name: "B"}, {Mask: 0x08, Name: "D"}}
	k := FlagsKind("flags", set)

	f := decodeOne(t, k, []byte{0x13}).(Flags)
	if diff := cmp.Diff([]string{"A", "B", "BIT4"}, f.ActiveNames()); diff != "" {
		t.Fatalf("active names (-want +got):\n%s", diff)
	}
	if got := f.String(); got != "A|B|BIT4 (0x13)" {
		t.Fatalf("got %q", got)
	}
	if !f.Has(0x02) || f.Has(0x08) {
		t.Fatal("Has mismatch")
	}

	if got := decodeOne(t, k, []byte{0x00}).String(); got != "NONE (0x00)" {
		t.Fatalf("got %q", got)
	}
}

func TestStruct(t *testing.T) {
	s := Struct{
		{Label: "Handle", Value: Hex{NewUint([]byte{0x03, 0x00})}},
		{Label: "UUID", Value: Bytes{0x00, 0x28}},
	}
	if got, want := s.String(), "\n        Handle=0x3\n        UUID=0x0028"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
