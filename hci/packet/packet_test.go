package packet

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/rigado/hcitools/hci/cmd"
	"github.com/rigado/hcitools/hci/param"
	"github.com/rigado/hcitools/hci/schema"
)

func decode(t *testing.T, frame []byte) string {
	t.Helper()
	d, err := Decode(frame, schema.Default())
	if err != nil {
		t.Fatalf("Decode([% x]): %v", frame, err)
	}
	return d.String()
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		frame []byte
		want  string
	}{
		{
			name:  "reset command",
			frame: []byte{0x01, 0x03, 0x0c, 0x00},
			want: "PacketType=Command\n" +
				"Command=CONTROLLER.RESET\n" +
				"Length=0\n" +
				"Params: None\n",
		},
		{
			name:  "unnamed command",
			frame: []byte{0x01, 0xff, 0x0c, 0x00},
			want: "PacketType=Command\n" +
				"Command=CONTROLLER.[OCF=FF]\n" +
				"Length=0\n" +
				"Params: None\n",
		},
		{
			name:  "disconnect command",
			frame: []byte{0x01, 0x06, 0x04, 0x03, 0x40, 0x00, 0x13},
			want: "PacketType=Command\n" +
				"Command=LINK_CONTROL.DISCONNECT\n" +
				"Length=3\n" +
				"Params:\n" +
				"    Connection_Handle=64\n" +
				"    Reason=REMOTE_USER_TERMINATED_CONNECTION (0x13)\n",
		},
		{
			name:  "reset complete",
			frame: []byte{0x04, 0x0e, 0x04, 0x01, 0x03, 0x0c, 0x00},
			want: "PacketType=Event\n" +
				"EventCode=COMMAND_COMPLETE\n" +
				"Length=4\n" +
				"NumHciCommand=1\n" +
				"Command=CONTROLLER.RESET\n" +
				"Params:\n" +
				"    Status=SUCCESS (0x00)\n",
		},
		{
			name:  "nop complete",
			frame: []byte{0x04, 0x0e, 0x03, 0x01, 0x00, 0x00},
			want: "PacketType=Event\n" +
				"EventCode=COMMAND_COMPLETE\n" +
				"Length=3\n" +
				"NumHciCommand=1\n" +
				"Command=NOP.NOP\n" +
				"Params: None\n",
		},
		{
			name:  "le meta",
			frame: []byte{0x04, 0x3e, 0x0a, 0x03, 0x00, 0x40, 0x00, 0x18, 0x00, 0x00, 0x00, 0x48, 0x00},
			want: "PacketType=Event\n" +
				"EventCode=LE_META\n" +
				"Length=10\n" +
				"SubEventCode=LE_CONNECTION_UPDATE\n" +
				"Params:\n" +
				"    Status=SUCCESS (0x00)\n" +
				"    Connection_Handle=64\n" +
				"    Connection_Interval=30 milliseconds\n" +
				"    Peripheral_Latency=0\n" +
				"    Supervision_Timeout=720 milliseconds\n",
		},
		{
			name:  "unknown event",
			frame: []byte{0x04, 0x77, 0x01, 0xaa},
			want: "PacketType=Event\n" +
				"EventCode=UNKNOWN (0x77)\n" +
				"Length=1\n" +
				"Params: None\n",
		},
		{
			name:  "empty acl",
			frame: []byte{0x02, 0x40, 0x20, 0x00, 0x00},
			want: "PacketType=ACL\n" +
				"ConnectionHandle=64\n" +
				"PacketLength=0\n",
		},
		{
			name: "acl signaling",
			frame: []byte{0x02, 0x40, 0x00, 0x10, 0x00, 0x0c, 0x00, 0x05, 0x00,
				0x12, 0x01, 0x08, 0x00, 0x06, 0x00, 0x0c, 0x00, 0x00, 0x00, 0xc8, 0x00},
			want: "PacketType=ACL\n" +
				"ConnectionHandle=64\n" +
				"PacketLength=16\n" +
				"PayloadLength=12\n" +
				"ChannelId=5\n" +
				"SignalingCode=L2CAP_CONNECTION_PARAMETER_UPDATE_REQ\n" +
				"PacketId=1\n" +
				"DataLength=8\n" +
				"Params:\n" +
				"    Interval_Min=7.5 milliseconds\n" +
				"    Interval_Max=15 milliseconds\n" +
				"    Latency=0\n" +
				"    Timeout=2000 milliseconds\n",
		},
		{
			name:  "acl att write command",
			frame: []byte{0x02, 0x40, 0x00, 0x09, 0x00, 0x05, 0x00, 0x04, 0x00, 0x52, 0x03, 0x00, 0x01, 0x02},
			want: "PacketType=ACL\n" +
				"ConnectionHandle=64\n" +
				"PacketLength=9\n" +
				"PayloadLength=5\n" +
				"ChannelId=4\n" +
				"AttOpcode=ATT_WRITE_CMD\n" +
				"AuthenticationFlag=False\n" +
				"CommandFlag=True\n" +
				"AuthenticationSignature=None\n" +
				"Params:\n" +
				"    Attribute_Handle=0x3\n" +
				"    Attribute_Value=0x201\n",
		},
		{
			name:  "acl smp",
			frame: []byte{0x02, 0x40, 0x00, 0x06, 0x00, 0x02, 0x00, 0x06, 0x00, 0x05, 0x08},
			want: "PacketType=ACL\n" +
				"ConnectionHandle=64\n" +
				"PacketLength=6\n" +
				"PayloadLength=2\n" +
				"ChannelId=6\n" +
				"PacketData=0x0508\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, decode(t, tt.frame)); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestSignedWrite(t *testing.T) {
	frame := []byte{0x02, 0x40, 0x00, 0x14, 0x00, 0x10, 0x00, 0x04, 0x00, 0xd2, 0x03, 0x00, 0xaa,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	d, err := Decode(frame, schema.Default())
	if err != nil {
		t.Fatal(err)
	}
	want := []Line{
		{"AttOpcode", "ATT_SIGNED_WRITE_CMD"},
		{"AuthenticationFlag", "True"},
		{"CommandFlag", "True"},
		{"AuthenticationSignature", "0x1"},
	}
	if diff := cmp.Diff(want, d.ATT.Header); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if v, ok := d.ATT.Params.Lookup("Attribute_Value"); !ok || v.String() != "0xAA" {
		t.Fatalf("Attribute_Value %v", v)
	}
}

func TestParseIdempotent(t *testing.T) {
	p, err := EventFromBytes([]byte{0x04, 0x0e, 0x04, 0x01, 0x03, 0x0c, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	a, err := p.Parse(schema.Default())
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Parse(schema.Default())
	if err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Fatalf("parse is not repeatable:\n%s\n%s", a, b)
	}
	if op, ok := p.CommandOpcode(); !ok || op != cmd.OpReset {
		t.Fatalf("opcode %v %v", op, ok)
	}
	if s, ok := p.Status(); !ok || s != 0 {
		t.Fatalf("status %d %v", s, ok)
	}
}

func TestMalformed(t *testing.T) {
	for _, frame := range [][]byte{
		// disconnection complete without its reason
		{0x04, 0x05, 0x03, 0x00, 0x40, 0x00},
		// command complete too short for an opcode
		{0x04, 0x0e, 0x02, 0x01, 0x03},
		// signed write without room for the signature
		{0x02, 0x40, 0x00, 0x08, 0x00, 0x04, 0x00, 0x04, 0x00, 0xd2, 0x03, 0x00, 0xaa},
		// signaling header cut short
		{0x02, 0x40, 0x00, 0x06, 0x00, 0x02, 0x00, 0x05, 0x00, 0x12, 0x01},
	} {
		_, err := Decode(frame, schema.Default())
		if !errors.Is(err, param.ErrMalformedPayload) {
			t.Errorf("[% x]: expected ErrMalformedPayload, got %v", frame, err)
		}
	}

	for _, frame := range [][]byte{
		{},
		{0x07, 0x00},
		{0x01, 0x03, 0x0c, 0x01},
		{0x04, 0x0e, 0x05, 0x01, 0x03, 0x0c, 0x00},
		{0x02, 0x40, 0x00, 0x09, 0x00, 0x05, 0x00},
	} {
		_, err := Decode(frame, schema.Default())
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("[% x]: expected ErrInvalid, got %v", frame, err)
		}
	}
}

func TestCommandRoundTrip(t *testing.T) {
	want, err := cmd.New(cmd.OpReset).Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(want, []byte{0x01, 0x03, 0x0c, 0x00}) {
		t.Fatalf("reset encodes to [% x]", want)
	}

	for _, frame := range [][]byte{
		{0x01, 0x06, 0x04, 0x03, 0x40, 0x00, 0x13},
		{0x09, 0x37, 0x20, 0x02, 0x00, 0x01, 0x03},
	} {
		p, err := CommandFromBytes(frame)
		if err != nil {
			t.Fatal(err)
		}
		b, err := p.Encode()
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(b, frame) {
			t.Fatalf("got [% x], want [% x]", b, frame)
		}
	}
}

func TestEventFrame(t *testing.T) {
	frame := []byte{0x04, 0x0e, 0x04, 0x01, 0x03, 0x0c, 0x00}
	p, err := EventFromBytes(frame)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Frame(); !bytes.Equal(got, frame) {
		t.Fatalf("got [% x]", got)
	}
}
