package decode

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/rigado/hcitools"
	"github.com/rigado/hcitools/capture"
	"github.com/rigado/hcitools/hci/h4"
	"github.com/rigado/hcitools/hci/param"
	"github.com/rigado/hcitools/hci/schema"
)

func newDecoder() *Decoder {
	d := New(schema.Default())
	d.SetLogger(hcitools.NopLogger())
	return d
}

func TestFrame(t *testing.T) {
	rec := newDecoder().Frame(HostToController, []byte{0x01, 0x03, 0x0c, 0x00})
	if rec.Err != nil {
		t.Fatal(rec.Err)
	}
	want := "[Host-->Controller]\n" +
		"PacketType=Command\n" +
		"Command=CONTROLLER.RESET\n" +
		"Length=0\n" +
		"Params: None\n" +
		"\n"
	if diff := cmp.Diff(want, rec.Text()); diff != "" {
		t.Fatalf("text mismatch (-want +got):\n%s", diff)
	}
}

// A payload one byte short fails alone; its neighbours still decode.
func TestTextBatchContinues(t *testing.T) {
	in := strings.Join([]string{
		"TX: 01030C00",
		"RX: 04 05 03 00 40 00",
		"",
		"RX: 040E0401030C00",
		"noise that is not a frame",
		"TX: zz",
	}, "\n")

	var recs []Record
	err := newDecoder().Text(strings.NewReader(in), TextOptions{C2HTag: "RX: ", H2CTag: "TX: ", Leading: []string{"HCI "}}, Collect(&recs))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 4 {
		t.Fatalf("got %d records", len(recs))
	}

	if recs[0].Err != nil || recs[0].Direction != HostToController {
		t.Fatalf("record 0: %+v", recs[0])
	}
	if !errors.Is(recs[1].Err, param.ErrMalformedPayload) || recs[1].Direction != ControllerToHost {
		t.Fatalf("record 1: expected malformed payload, got %v", recs[1].Err)
	}
	if recs[2].Err != nil {
		t.Fatalf("record 2: %v", recs[2].Err)
	}
	if !strings.Contains(recs[2].Text(), "Status=SUCCESS (0x00)") {
		t.Fatalf("record 2:\n%s", recs[2].Text())
	}
	if !errors.Is(recs[3].Err, ErrBadHex) {
		t.Fatalf("record 3: expected ErrBadHex, got %v", recs[3].Err)
	}
	for i, r := range recs {
		if r.Index != i {
			t.Fatalf("record %d has index %d", i, r.Index)
		}
	}
}

func TestTextLeading(t *testing.T) {
	in := "log start\nHCI 01030C00\n> something else\n"

	var recs []Record
	if err := newDecoder().Text(strings.NewReader(in), TextOptions{Leading: []string{"HCI "}}, Collect(&recs)); err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Err != nil || recs[0].Direction != Unknown {
		t.Fatalf("got %+v", recs)
	}
}

func TestBytes(t *testing.T) {
	in := []byte{
		0x01, 0x03, 0x0c, 0x00,
		0xee, // not an indicator
		0x04, 0x05, 0x03, 0x00, 0x40, 0x00,
		0x04, 0x0e, 0x04, 0x01, 0x03, 0x0c, 0x00,
		0x04, 0x0e, 0x04, 0x01,
	}

	var recs []Record
	if err := newDecoder().Bytes(bytes.NewReader(in), Collect(&recs)); err != nil {
		t.Fatal(err)
	}
	if len(recs) != 4 {
		t.Fatalf("got %d records", len(recs))
	}
	if recs[0].Err != nil || recs[2].Err != nil {
		t.Fatalf("good frames failed: %v, %v", recs[0].Err, recs[2].Err)
	}
	if !errors.Is(recs[1].Err, param.ErrMalformedPayload) {
		t.Fatalf("record 1: %v", recs[1].Err)
	}
	if !errors.Is(recs[3].Err, h4.ErrTruncated) {
		t.Fatalf("record 3: %v", recs[3].Err)
	}
}

func TestPcap(t *testing.T) {
	var buf bytes.Buffer
	w, err := capture.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	ts := time.Unix(1700000000, 0)
	if err := w.WriteFrame(ts, false, []byte{0x01, 0x03, 0x0c, 0x00}); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFrame(ts, true, []byte{0x04, 0x0e, 0x04, 0x01, 0x03, 0x0c, 0x00}); err != nil {
		t.Fatal(err)
	}

	var recs []Record
	if err := newDecoder().Pcap(&buf, Collect(&recs)); err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records", len(recs))
	}
	if recs[0].Direction != HostToController || recs[1].Direction != ControllerToHost {
		t.Fatalf("directions %v %v", recs[0].Direction, recs[1].Direction)
	}
	if !recs[1].Time.Equal(ts) {
		t.Fatalf("time %v", recs[1].Time)
	}
}

func TestParseHex(t *testing.T) {
	for _, s := range []string{"01030C00", "0x01030c00", "01 03 0c 00"} {
		b, err := ParseHex(s)
		if err != nil || !bytes.Equal(b, []byte{0x01, 0x03, 0x0c, 0x00}) {
			t.Errorf("%q: got [% x] %v", s, b, err)
		}
	}
	for _, s := range []string{"", "0x", "013", "nothex"} {
		if _, err := ParseHex(s); !errors.Is(err, ErrBadHex) {
			t.Errorf("%q: expected ErrBadHex, got %v", s, err)
		}
	}
}
