package param

import (
	"bytes"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

var testStatus = &EnumTable{
	Names: map[uint64]string{0x00: "SUCCESS", 0x0C: "COMMAND_DISALLOWED", 0x1E: "INVALID_LMP_PARAMETERS"},
	Alt:   map[uint64]string{0x1E: "INVALID_LL_PARAMETERS"},
}

var statusKind = EnumKind("status", testStatus)

func lines(r *Result) []string {
	var out []string
	for _, e := range r.Entries {
		out = append(out, e.Label+"="+e.Value.String())
	}
	return out
}

func mustDecode(t *testing.T, payload []byte, s Schema) *Result {
	t.Helper()
	r, err := Decode(payload, s)
	if err != nil {
		t.Fatalf("Decode([% x]): %v", payload, err)
	}
	return r
}

func TestDecodeFixed(t *testing.T) {
	s := Schema{
		F("Status", 1, statusKind),
		F("Connection_Handle", 2, HexKind),
		F("Connection_Interval", 2, ScaledKind("time_1p25ms", 1.25, "ms")),
	}
	r := mustDecode(t, []byte{0x00, 0x40, 0x00, 0x18, 0x00}, s)

	want := "Params:\n" +
		"    Status=SUCCESS (0x00)\n" +
		"    Connection_Handle=0x40\n" +
		"    Connection_Interval=30 ms\n"
	if diff := cmp.Diff(want, r.Text()); diff != "" {
		t.Fatalf("text mismatch (-want +got):\n%s", diff)
	}
	if r.Consumed != 5 || r.Trailing != nil {
		t.Fatalf("consumed %d trailing [% x]", r.Consumed, r.Trailing)
	}
}

func TestDecodeNoSchema(t *testing.T) {
	r := mustDecode(t, []byte{1, 2, 3}, nil)
	if !r.NoParams || r.Text() != "Params: None\n" {
		t.Fatalf("got %q", r.Text())
	}

	r = mustDecode(t, nil, Schema{})
	if r.NoParams || r.Text() != "Params:\n" {
		t.Fatalf("empty schema: got %q", r.Text())
	}
}

func TestDecodeRepeatCountRef(t *testing.T) {
	s := Schema{
		F("Num_Reports", 1, UintKind),
		Repeat{Count: CountRef(-1), Fields: []Node{
			F("Address[{}]", 6, AddressKind),
			F("Data_Length[{}]", 1, UintKind),
			Field{Label: "Data[{}]", Len: Ref(-1), Kind: BytesKind},
			F("RSSI[{}]", 1, IntKind),
		}},
	}
	payload := []byte{
		0x02,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x02, 0xaa, 0xbb, 0xc4,
		0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x00, 0xd8,
	}
	r := mustDecode(t, payload, s)

	want := []string{
		"Num_Reports=2",
		"Address[0]=06:05:04:03:02:01",
		"Data_Length[0]=2",
		"Data[0]=0xAABB",
		"RSSI[0]=-60",
		"Address[1]=66:55:44:33:22:11",
		"Data_Length[1]=0",
		"Data[1]=0x0",
		"RSSI[1]=-40",
	}
	if diff := cmp.Diff(want, lines(r)); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
	if r.Consumed != len(payload) {
		t.Fatalf("consumed %d of %d", r.Consumed, len(payload))
	}
}

func TestDecodeAbsoluteRefUntilEnd(t *testing.T) {
	s := Schema{
		F("Length", 1, UintKind),
		Repeat{Count: CountRemaining(), Fields: []Node{
			Field{Label: "Attribute_Data[{}]", Len: Ref(0), Kind: BytesKind},
		}},
	}
	r := mustDecode(t, []byte{0x03, 0x01, 0x00, 0xaa, 0x02, 0x00, 0xbb}, s)

	want := []string{"Length=3", "Attribute_Data[0]=0x0100AA", "Attribute_Data[1]=0x0200BB"}
	if diff := cmp.Diff(want, lines(r)); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCountFit(t *testing.T) {
	s := Schema{Repeat{Count: CountFit(), Fields: []Node{F("Handle[{}]", 2, HexKind)}}}
	r := mustDecode(t, []byte{0x01, 0x00, 0x02, 0x00, 0x03}, s)

	if diff := cmp.Diff([]string{"Handle[0]=0x1", "Handle[1]=0x2"}, lines(r)); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
	if r.Consumed != 4 || !bytes.Equal(r.Trailing, []byte{0x03}) {
		t.Fatalf("consumed %d trailing [% x]", r.Consumed, r.Trailing)
	}
	if want := "Params:\n    Handle[0]=0x1\n    Handle[1]=0x2\n    Trailing_Bytes=0x03\n"; r.Text() != want {
		t.Fatalf("text %q", r.Text())
	}
}

func TestDecodeCountFitVariableFallsBackToEnd(t *testing.T) {
	s := Schema{Repeat{Count: CountFit(), Fields: []Node{
		F("Length[{}]", 1, UintKind),
		Field{Label: "Value[{}]", Len: Ref(-1), Kind: BytesKind},
	}}}
	r := mustDecode(t, []byte{0x01, 0xaa, 0x02, 0xbb, 0xcc}, s)

	want := []string{"Length[0]=1", "Value[0]=0xAA", "Length[1]=2", "Value[1]=0xBBCC"}
	if diff := cmp.Diff(want, lines(r)); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeReserve(t *testing.T) {
	s := Schema{
		F("Attribute_Handle", 2, HexKind),
		Field{Label: "Attribute_Value", Len: Reserve(12), Kind: BytesKind},
		F("Authentication_Signature", 12, BytesKind),
	}
	payload := append([]byte{0x03, 0x00, 0x01, 0x02, 0x03}, bytes.Repeat([]byte{0xee}, 12)...)
	r := mustDecode(t, payload, s)

	v, ok := r.Lookup("Attribute_Value")
	if !ok || v.String() != "0x010203" {
		t.Fatalf("Attribute_Value = %v", v)
	}

	_, err := Decode(payload[:9], s)
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected malformed payload, got %v", err)
	}
}

func TestDecodeMalformed(t *testing.T) {
	s := Schema{
		F("Status", 1, statusKind),
		F("Connection_Handle", 2, UintKind),
		F("Reason", 1, statusKind),
	}
	_, err := Decode([]byte{0x00, 0x01, 0x00}, s)
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}

	var me *MalformedError
	if !errors.As(err, &me) {
		t.Fatalf("expected *MalformedError, got %T", err)
	}
	want := MalformedError{Label: "Reason", Offset: 3, Want: 1, Have: 0}
	if *me != want {
		t.Fatalf("got %+v, want %+v", *me, want)
	}
}

func TestDecodeBadReferences(t *testing.T) {
	tests := map[string]Schema{
		"forward": {Field{Label: "Data", Len: Ref(-1), Kind: BytesKind}},
		"absolute": {
			F("A", 1, UintKind),
			Field{Label: "Data", Len: Ref(3), Kind: BytesKind},
		},
		"non numeric": {
			F("Addr", 6, AddressKind),
			Field{Label: "Data", Len: Ref(-1), Kind: BytesKind},
		},
		"count": {Repeat{Count: CountRef(-1), Fields: []Node{F("X", 1, UintKind)}}},
	}

	payload := bytes.Repeat([]byte{0x01}, 8)
	for name, s := range tests {
		if _, err := Decode(payload, s); !errors.Is(err, ErrSchema) {
			t.Errorf("%s: expected ErrSchema from Decode, got %v", name, err)
		}
		if err := Validate(s); !errors.Is(err, ErrSchema) {
			t.Errorf("%s: expected ErrSchema from Validate, got %v", name, err)
		}
	}
}

func TestDecodeHugeCount(t *testing.T) {
	s := Schema{
		F("Num", 2, UintKind),
		Repeat{Count: CountRef(-1), Fields: []Node{F("X[{}]", 1, UintKind)}},
	}
	_, err := Decode([]byte{0xff, 0xff, 0x01}, s)
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}

func TestDecodeNestedLabels(t *testing.T) {
	s := Schema{
		F("Num", 1, UintKind),
		Repeat{Count: CountRef(-1), Fields: []Node{
			F("Count[{}]", 1, UintKind),
			Repeat{Count: CountRef(-1), Fields: []Node{
				F("Sample[{}][{}]", 1, IntKind),
				F("Q[{}]", 1, IntKind),
			}},
		}},
	}
	r := mustDecode(t, []byte{0x02, 0x01, 0x05, 0x06, 0x02, 0x07, 0x08, 0x09, 0x0a}, s)

	want := []string{
		"Num=2",
		"Count[0]=1", "Sample[0][0]=5", "Q[0]=6",
		"Count[1]=2", "Sample[1][0]=7", "Q[0]=8", "Sample[1][1]=9", "Q[1]=10",
	}
	if diff := cmp.Diff(want, lines(r)); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

// The same schema decodes concurrently without shared state.
func TestDecodeSchemaReuse(t *testing.T) {
	s := Schema{
		F("Num_Handles", 1, UintKind),
		Repeat{Count: CountRef(-1), Fields: []Node{
			F("Handle[{}]", 2, UintKind),
			F("Num_Completed_Packets[{}]", 2, UintKind),
		}},
	}
	payload := []byte{0x01, 0x40, 0x00, 0x01, 0x00}
	want := lines(mustDecode(t, payload, s))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := Decode(payload, s)
			if err != nil {
				t.Error(err)
				return
			}
			if diff := cmp.Diff(want, lines(r)); diff != "" {
				t.Error(diff)
			}
		}()
	}
	wg.Wait()
}

func TestValidateAccepts(t *testing.T) {
	s := Schema{
		F("Length", 1, UintKind),
		Repeat{Count: CountRemaining(), Fields: []Node{
			Field{Label: "Attribute_Data[{}]", Len: Ref(0), Kind: BytesKind},
		}},
	}
	if err := Validate(s); err != nil {
		t.Fatal(err)
	}
}
