package adv

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools/hci/evt"
)

// Report is one entry of an LE Advertising Report event.
type Report struct {
	EventType   uint8
	AddressType uint8
	Address     [6]byte
	Data        []byte
	RSSI        int8
}

// Addr renders the address most significant byte first.
func (r Report) Addr() string {
	a := r.Address
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", a[5], a[4], a[3], a[2], a[1], a[0])
}

// Fields decodes the report's advertising data.
func (r Report) Fields() (*Data, error) {
	if len(r.Data) == 0 {
		return &Data{}, nil
	}
	return Parse(r.Data)
}

// ParseReports splits the parameters of an LE Meta advertising report,
// sub-event code included. Fields are arrayed per report.
func ParseReports(params []byte) ([]Report, error) {
	sub, err := evt.LEMeta(params).SubeventCodeWErr()
	if err != nil {
		return nil, errors.Wrap(ErrMalformed, "missing sub-event code")
	}
	if sub != evt.LEAdvertisingReportSubCode {
		return nil, errors.Wrapf(ErrMalformed, "sub-event %v is not an advertising report", sub)
	}
	if len(params) < 2 {
		return nil, errors.Wrap(ErrMalformed, "missing Num_Reports")
	}

	n := int(params[1])
	b := params[2:]
	// event type, address type, address and data length
	if len(b) < n*9 {
		return nil, errors.Wrapf(ErrMalformed, "%d reports need %d bytes, have %d", n, n*9, len(b))
	}

	reports := make([]Report, n)
	lens := b[n*8 : n*9]
	off := n * 9
	for i := range reports {
		r := &reports[i]
		r.EventType = b[i]
		r.AddressType = b[n+i]
		copy(r.Address[:], b[2*n+6*i:])
		l := int(lens[i])
		if off+l > len(b) {
			return nil, errors.Wrapf(ErrMalformed, "report %d data wants %d bytes, have %d", i, l, len(b)-off)
		}
		r.Data = b[off : off+l]
		off += l
	}
	if off+n > len(b) {
		return nil, errors.Wrapf(ErrMalformed, "missing RSSI for %d reports", n)
	}
	for i := range reports {
		reports[i].RSSI = int8(b[off+i])
	}
	return reports, nil
}
