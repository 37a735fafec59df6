package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rigado/hcitools/hci/att"
	"github.com/rigado/hcitools/hci/cmd"
	"github.com/rigado/hcitools/hci/evt"
	"github.com/rigado/hcitools/hci/l2cap"
	"github.com/rigado/hcitools/hci/param"
)

func entries(t *testing.T, payload []byte, s param.Schema) []string {
	t.Helper()
	r, err := param.Decode(payload, s)
	if err != nil {
		t.Fatalf("decode [% x]: %v", payload, err)
	}
	if len(r.Trailing) != 0 {
		t.Fatalf("trailing bytes [% x]", r.Trailing)
	}
	var out []string
	for _, e := range r.Entries {
		out = append(out, e.Label+"="+e.Value.String())
	}
	return out
}

func TestValidateDefault(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatal(err)
	}
}

func TestLookups(t *testing.T) {
	tb := Default()
	if tb.Command(cmd.OpReset) != nil {
		t.Fatal("RESET has no parameters")
	}
	if tb.Command(cmd.OpLECreateConnection) == nil {
		t.Fatal("missing LE_CREATE_CONNECTION")
	}
	if tb.Event(evt.CommandStatusCode) == nil || tb.LEMeta(evt.LEAdvertisingReportSubCode) == nil {
		t.Fatal("missing event schema")
	}
	if tb.Signaling(l2cap.InformationRequest) == nil {
		t.Fatal("missing signaling schema")
	}

	unknown := cmd.NewOpcode(cmd.OGFVendor, 0x3ff)
	got := entries(t, []byte{0x01, 0xab}, tb.CommandComplete(unknown))
	if diff := cmp.Diff([]string{"Return_Parameters=0xAB01"}, got); diff != "" {
		t.Fatalf("raw return parameters (-want +got):\n%s", diff)
	}
}

func TestATTLookup(t *testing.T) {
	tb := Default()
	if tb.ATT(att.WriteCommand) == nil || tb.ATT(att.SignedWriteCommand) == nil {
		t.Fatal("flagged opcodes have their own entries")
	}
	// notification with the command bit set falls back to the method
	if tb.ATT(att.Opcode(0x5b)) == nil {
		t.Fatal("method fallback")
	}
	if tb.ATT(att.Opcode(0x3f)) != nil {
		t.Fatal("unknown method")
	}
}

func TestCommandStatusEvent(t *testing.T) {
	got := entries(t, []byte{0x1e, 0x01, 0x03, 0x0c}, Default().Event(evt.CommandStatusCode))
	want := []string{
		"Status=INVALID_LMP_PARAMETERS/INVALID_LL_PARAMETERS (0x1E)",
		"Num_HCI_Command_Packets=1",
		"Command_Opcode=CONTROLLER.RESET (0x0C03)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestLEConnectionComplete(t *testing.T) {
	payload := []byte{
		0x00, 0x40, 0x00, 0x00, 0x00,
		0x11, 0x22, 0x33, 0x44, 0x55, 0x66,
		0x18, 0x00, 0x00, 0x00, 0x48, 0x00, 0x05,
	}
	got := entries(t, payload, Default().LEMeta(evt.LEConnectionCompleteSubCode))
	want := []string{
		"Status=SUCCESS (0x00)",
		"Connection_Handle=64",
		"Role=CENTRAL (0x00)",
		"Peer_Address_Type=PUBLIC_DEVICE_ADDRESS (0x00)",
		"Peer_Address=66:55:44:33:22:11",
		"Connection_Interval=30 milliseconds",
		"Peripheral_Latency=0",
		"Supervision_Timeout=720 milliseconds",
		"Central_Clock_Accuracy=PPM_50 (0x05)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestLEAdvertisingReport(t *testing.T) {
	payload := []byte{
		0x02,
		0x00, 0x01, 0x01, 0x02, 0x03, 0x04, 0x05, 0xc6, 0x03, 0x02, 0x01, 0x06, 0xc5,
		0x04, 0x00, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x00, 0x7f,
	}
	got := entries(t, payload, Default().LEMeta(evt.LEAdvertisingReportSubCode))
	want := []string{
		"Num_Reports=2",
		"Event_Type[0]=ADV_IND (0x00)",
		"Address_Type[0]=RANDOM_DEVICE_ADDRESS (0x01)",
		"Address[0]=C6:05:04:03:02:01",
		"Data_Length[0]=3",
		"Data[0]=0x020106",
		"RSSI[0]=-59",
		"Event_Type[1]=SCAN_RSP (0x04)",
		"Address_Type[1]=PUBLIC_DEVICE_ADDRESS (0x00)",
		"Address[1]=0F:0E:0D:0C:0B:0A",
		"Data_Length[1]=0",
		"Data[1]=0x0",
		"RSSI[1]=127",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestNumberOfCompletedPackets(t *testing.T) {
	payload := []byte{0x02, 0x40, 0x00, 0x01, 0x00, 0x41, 0x00, 0x03, 0x00}
	got := entries(t, payload, Default().Event(evt.NumberOfCompletedPacketsCode))
	want := []string{
		"Num_Handles=2",
		"Connection_Handle[0]=64",
		"Num_Completed_Packets[0]=1",
		"Connection_Handle[1]=65",
		"Num_Completed_Packets[1]=3",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestATTComposites(t *testing.T) {
	tb := Default()

	tests := []struct {
		name    string
		op      att.Opcode
		payload []byte
		want    []string
	}{
		{
			name:    "find information 16-bit",
			op:      att.FindInformationResponse,
			payload: []byte{0x01, 0x01, 0x00, 0x00, 0x28, 0x02, 0x00, 0x03, 0x28},
			want: []string{"Info=" +
				"\n        Format=UUID_2B (0x01)" +
				"\n        Handle[0]=0x0001" +
				"\n        UUID[0]=0x2800" +
				"\n        Handle[1]=0x0002" +
				"\n        UUID[1]=0x2803"},
		},
		{
			name: "find information 128-bit",
			op:   att.FindInformationResponse,
			payload: []byte{0x02, 0x10, 0x00,
				0xfb, 0x34, 0x9b, 0x5f, 0x80, 0x00, 0x00, 0x80, 0x00, 0x10, 0x00, 0x00, 0x0d, 0x18, 0x00, 0x00},
			want: []string{"Info=" +
				"\n        Format=UUID_16B (0x02)" +
				"\n        Handle[0]=0x0010" +
				"\n        UUID[0]=0000180d-0000-1000-8000-00805f9b34fb"},
		},
		{
			name:    "read by type",
			op:      att.ReadByTypeResponse,
			payload: []byte{0x07, 0x02, 0x00, 0x02, 0x03, 0x00, 0x00, 0x2a},
			want: []string{
				"Length=7",
				"Attribute_Data[0]=" +
					"\n        AttributeHandle=0x0002" +
					"\n        AttributeValue=0x20300002A",
			},
		},
		{
			name:    "read by group type",
			op:      att.ReadByGroupTypeResponse,
			payload: []byte{0x06, 0x01, 0x00, 0x05, 0x00, 0x00, 0x18, 0x06, 0x00, 0x09, 0x00, 0x01, 0x18},
			want: []string{
				"Length=6",
				"Attribute_Data[0]=" +
					"\n        AttributeHandle=0x0001" +
					"\n        EndGroupHandle=0x0005" +
					"\n        AttributeValue=0x18",
				"Attribute_Data[1]=" +
					"\n        AttributeHandle=0x0006" +
					"\n        EndGroupHandle=0x0009" +
					"\n        AttributeValue=0x118",
			},
		},
		{
			name:    "error response",
			op:      att.ErrorResponse,
			payload: []byte{0x08, 0x0c, 0x00, 0x0a},
			want: []string{
				"Request_Opcode_In_Error=0x8",
				"Attribute_Handle_In_Error=0xC",
				"Error_Code=ATTRIBUTE_NOT_FOUND (0x0A)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entries(t, tt.payload, tb.ATT(tt.op))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestAttInfoShort(t *testing.T) {
	_, err := param.Decode([]byte{0x01, 0x01, 0x00, 0x00}, Default().ATT(att.FindInformationResponse))
	if err == nil {
		t.Fatal("expected an error for a truncated handle/UUID pair")
	}
}

func TestSignalingConnectionRequest(t *testing.T) {
	got := entries(t, []byte{0x01, 0x00, 0x40, 0x00}, Default().Signaling(l2cap.ConnectionRequest))
	want := []string{"PSM=1", "Source_CID=0x40"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}
