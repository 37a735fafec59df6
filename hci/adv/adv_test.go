package adv

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
)

type testPdu struct {
	b []byte
}

func (t *testPdu) add(typ byte, rec []byte) *testPdu {
	t.b = append(t.b, byte(len(rec)+1), typ)
	t.b = append(t.b, rec...)
	return t
}

func TestParse(t *testing.T) {
	p := (&testPdu{}).
		add(typeFlags, []byte{0x06}).
		add(typeUUID16Comp, []byte{0x0d, 0x18, 0x0f, 0x18}).
		add(typeNameComp, []byte("hrm")).
		add(typeTxPower, []byte{0xf4}).
		add(typeSvc16, []byte{0x0f, 0x18, 0x64}).
		add(typeMfgData, []byte{0x59, 0x00, 0x01, 0x02})

	d, err := Parse(p.b)
	if err != nil {
		t.Fatal(err)
	}
	if d.Flags == nil || *d.Flags != 0x06 {
		t.Fatalf("flags %v", d.Flags)
	}
	if len(d.Services) != 2 || d.Services[0].String() != "180D" || d.Services[1].String() != "180F" {
		t.Fatalf("services %v", d.Services)
	}
	if d.LocalName != "hrm" {
		t.Fatalf("name %q", d.LocalName)
	}
	if d.TxPower == nil || *d.TxPower != -12 {
		t.Fatalf("tx power %v", d.TxPower)
	}
	if len(d.ServiceData) != 1 || d.ServiceData[0].UUID.String() != "180F" || !bytes.Equal(d.ServiceData[0].Data, []byte{0x64}) {
		t.Fatalf("service data %v", d.ServiceData)
	}
	if id, ok := d.CompanyID(); !ok || id != 0x0059 {
		t.Fatalf("company 0x%04X", id)
	}
}

func TestParseScanResponseMfgData(t *testing.T) {
	p := (&testPdu{}).
		add(typeMfgData, []byte{0x59, 0x00, 0x01}).
		add(typeMfgData, []byte{0x59, 0x00, 0x02})

	d, err := Parse(p.b)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(d.ManufacturerData, []byte{0x59, 0x00, 0x01, 0x02}) {
		t.Fatalf("got % X", d.ManufacturerData)
	}
}

func TestUUID128(t *testing.T) {
	le := []byte{
		0x9e, 0xca, 0xdc, 0x24, 0x0e, 0xe5, 0xa9, 0xe0,
		0x93, 0xf3, 0xa3, 0xb5, 0x01, 0x00, 0x40, 0x6e,
	}
	p := (&testPdu{}).add(typeUUID128Comp, le)
	d, err := Parse(p.b)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Services) != 1 || d.Services[0].String() != "6e400001-b5a3-f393-e0a9-e50e24dcca9e" {
		t.Fatalf("got %v", d.Services)
	}
}

func TestParseBad(t *testing.T) {
	if _, err := Parse(nil); err != ErrEmpty {
		t.Fatalf("nil: %v", err)
	}

	tests := map[string][]byte{
		"uuid16 remainder": (&testPdu{}).add(typeUUID16Comp, []byte{0x01, 0x02, 0x03}).b,
		"uuid128 short":    (&testPdu{}).add(typeUUID128Inc, []byte{0x01, 0x02}).b,
		"svc32 short":      (&testPdu{}).add(typeSvc32, []byte{0x01, 0x02}).b,
		"overflow":         {0x05, typeNameComp, 'a'},
	}
	for name, b := range tests {
		if _, err := Parse(b); !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: expected ErrMalformed, got %v", name, err)
		}
	}
}

func TestParseSkipsUnknownAndPadding(t *testing.T) {
	p := (&testPdu{}).add(0x3d, []byte{0x01}).add(typeNameShort, []byte("x"))
	b := append(p.b, 0x00, 0x00)
	d, err := Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	if d.LocalName != "x" {
		t.Fatalf("name %q", d.LocalName)
	}
}

func TestParseReports(t *testing.T) {
	data1 := []byte{0x02, 0x01, 0x06}
	params := []byte{
		0x02,       // sub-event
		0x02,       // reports
		0x00, 0x04, // event types
		0x00, 0x01, // address types
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06,
		0x11, 0x12, 0x13, 0x14, 0x15, 0x16,
		0x03, 0x00, // data lengths
	}
	params = append(params, data1...)
	params = append(params, 0xc4, 0xb0) // RSSI

	reports, err := ParseReports(params)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports", len(reports))
	}
	r := reports[0]
	if r.Addr() != "06:05:04:03:02:01" || r.RSSI != -60 || !bytes.Equal(r.Data, data1) {
		t.Fatalf("report 0: %+v", r)
	}
	if reports[1].EventType != 0x04 || reports[1].AddressType != 0x01 || reports[1].RSSI != -80 || len(reports[1].Data) != 0 {
		t.Fatalf("report 1: %+v", reports[1])
	}

	f, err := r.Fields()
	if err != nil || f.Flags == nil || *f.Flags != 0x06 {
		t.Fatalf("fields %+v %v", f, err)
	}
}

func TestParseReportsBad(t *testing.T) {
	tests := map[string][]byte{
		"empty":      nil,
		"other sub":  {0x01, 0x00},
		"no count":   {0x02},
		"short":      {0x02, 0x01, 0x00, 0x00, 0x01},
		"no rssi":    {0x02, 0x01, 0x00, 0x00, 1, 2, 3, 4, 5, 6, 0x00},
		"short data": {0x02, 0x01, 0x00, 0x00, 1, 2, 3, 4, 5, 6, 0x05, 0x01},
	}
	for name, b := range tests {
		if _, err := ParseReports(b); !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: expected ErrMalformed, got %v", name, err)
		}
	}
}
