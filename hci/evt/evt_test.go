package evt

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools/hci/cmd"
)

func TestSplit(t *testing.T) {
	code, params, err := Split([]byte{0x04, 0x0e, 0x04, 0x01, 0x03, 0x0c, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	if code != CommandCompleteCode || len(params) != 4 {
		t.Fatalf("got %v [% x]", code, params)
	}

	for _, b := range [][]byte{
		{0x04, 0x0e},
		{0x01, 0x03, 0x0c, 0x00},
		{0x04, 0x04, 0x0e, 0x01, 0x01, 0x03, 0x0c, 0x00},
	} {
		if _, _, err := Split(b); !errors.Is(err, ErrInvalid) {
			t.Errorf("[% x]: expected ErrInvalid, got %v", b, err)
		}
	}
}

func TestCommandComplete(t *testing.T) {
	e := CommandComplete{0x01, 0x03, 0x0c, 0x00}
	if e.NumHCICommandPackets() != 1 {
		t.Fatalf("num packets %d", e.NumHCICommandPackets())
	}
	if e.CommandOpcode() != cmd.OpReset {
		t.Fatalf("opcode %v", e.CommandOpcode())
	}
	if s, ok := e.Status(); !ok || s != 0 {
		t.Fatalf("status %d %v", s, ok)
	}

	nop := CommandComplete{0x01, 0x00, 0x00}
	if len(nop.ReturnParameters()) != 0 {
		t.Fatal("NOP has no return parameters")
	}
	if _, ok := nop.Status(); ok {
		t.Fatal("NOP has no status")
	}

	if _, err := (CommandComplete{0x01, 0x03}).CommandOpcodeWErr(); err == nil {
		t.Fatal("expected index error")
	}
}

func TestCommandStatus(t *testing.T) {
	e := CommandStatus{0x0c, 0x01, 0x0d, 0x20}
	if !e.Valid() || e.Status() != 0x0c || e.NumHCICommandPackets() != 1 || e.CommandOpcode() != cmd.OpLECreateConnection {
		t.Fatalf("bad decode of [% x]", []byte(e))
	}
}

func TestOpcode(t *testing.T) {
	op, err := Opcode(CommandStatusCode, []byte{0x00, 0x01, 0x03, 0x0c})
	if err != nil || op != cmd.OpReset {
		t.Fatalf("got %v %v", op, err)
	}
	if _, err := Opcode(LEMetaCode, []byte{0x02}); err == nil {
		t.Fatal("LE meta does not answer a command")
	}
}

func TestNames(t *testing.T) {
	if LEMetaCode.String() != "LE_META" || Code(0x77).String() != "UNKNOWN (0x77)" {
		t.Fatal("event code names")
	}
	if LEAdvertisingReportSubCode.String() != "LE_ADVERTISING_REPORT" {
		t.Fatal("sub-event names")
	}
	if (LEMeta{0x01}).SubeventCode() != LEConnectionCompleteSubCode {
		t.Fatal("sub-event decode")
	}
}
