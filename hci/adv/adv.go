// Package adv parses advertising data carried by LE advertising reports.
package adv

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrEmpty is returned for a nil or empty advertising payload.
	ErrEmpty = errors.New("adv: empty payload")

	// ErrMalformed is wrapped by every structural error.
	ErrMalformed = errors.New("adv: malformed payload")
)

// AD types, Assigned Numbers section 2.3.
const (
	typeFlags       = 0x01
	typeUUID16Inc   = 0x02
	typeUUID16Comp  = 0x03
	typeUUID32Inc   = 0x04
	typeUUID32Comp  = 0x05
	typeUUID128Inc  = 0x06
	typeUUID128Comp = 0x07
	typeNameShort   = 0x08
	typeNameComp    = 0x09
	typeTxPower     = 0x0a
	typeSol16       = 0x14
	typeSol128      = 0x15
	typeSvc16       = 0x16
	typeSol32       = 0x1f
	typeSvc32       = 0x20
	typeSvc128      = 0x21
	typeMfgData     = 0xff
)

// UUID is a service UUID in its over-the-air (little endian) byte order.
type UUID []byte

// String renders 16 and 32-bit UUIDs as upper case hex and 128-bit ones in
// the canonical dashed form.
func (u UUID) String() string {
	b := reverse(u)
	if len(b) == 16 {
		v, err := uuid.FromBytes(b)
		if err == nil {
			return v.String()
		}
	}
	return strings.ToUpper(hex.EncodeToString(b))
}

// ServiceData is one service data structure.
type ServiceData struct {
	UUID UUID
	Data []byte
}

// Data holds the decoded structures of one advertising payload. Unknown
// types are skipped.
type Data struct {
	Flags            *uint8
	Services         []UUID
	Solicited        []UUID
	ServiceData      []ServiceData
	LocalName        string
	TxPower          *int8
	ManufacturerData []byte
}

type layout struct {
	elem    int // element size of UUID lists
	min     int
	svcUUID int // UUID prefix of service data
}

var layouts = map[byte]layout{
	typeUUID16Inc:   {elem: 2, min: 2},
	typeUUID16Comp:  {elem: 2, min: 2},
	typeUUID32Inc:   {elem: 4, min: 4},
	typeUUID32Comp:  {elem: 4, min: 4},
	typeUUID128Inc:  {elem: 16, min: 16},
	typeUUID128Comp: {elem: 16, min: 16},
	typeSol16:       {elem: 2, min: 2},
	typeSol32:       {elem: 4, min: 4},
	typeSol128:      {elem: 16, min: 16},
	typeSvc16:       {min: 2, svcUUID: 2},
	typeSvc32:       {min: 4, svcUUID: 4},
	typeSvc128:      {min: 16, svcUUID: 16},
	typeNameShort:   {min: 1},
	typeNameComp:    {min: 1},
	typeTxPower:     {min: 1},
	typeMfgData:     {min: 1},
	typeFlags:       {min: 1},
}

// Parse decodes a sequence of length-type-value structures. On error the
// structures decoded so far are returned with it.
func Parse(pdu []byte) (*Data, error) {
	if len(pdu) == 0 {
		return nil, ErrEmpty
	}

	d := &Data{}
	for i := 0; i+1 < len(pdu); {
		length := int(pdu[i])
		typ := pdu[i+1]
		if length < 1 {
			// zero length terminates significant data
			break
		}
		if i+length >= len(pdu) {
			return d, errors.Wrapf(ErrMalformed, "structure at %d wants %d bytes, have %d", i, length, len(pdu)-i-1)
		}

		b := append([]byte(nil), pdu[i+2:i+1+length]...)
		if l, ok := layouts[typ]; ok && len(b) != 0 {
			if err := d.add(typ, l, b); err != nil {
				return d, errors.Wrapf(err, "type 0x%02X at %d", typ, i)
			}
		}
		i += length + 1
	}
	return d, nil
}

func (d *Data) add(typ byte, l layout, b []byte) error {
	if len(b) < l.min {
		return errors.Wrapf(ErrMalformed, "min length %d, have %d", l.min, len(b))
	}

	switch {
	case l.elem > 0:
		if len(b)%l.elem != 0 {
			return errors.Wrapf(ErrMalformed, "length %d is not a multiple of %d", len(b), l.elem)
		}
		var list []UUID
		for j := 0; j < len(b); j += l.elem {
			list = append(list, UUID(b[j:j+l.elem]))
		}
		if typ == typeSol16 || typ == typeSol32 || typ == typeSol128 {
			d.Solicited = append(d.Solicited, list...)
		} else {
			d.Services = append(d.Services, list...)
		}

	case l.svcUUID > 0:
		d.ServiceData = append(d.ServiceData, ServiceData{UUID: UUID(b[:l.svcUUID]), Data: b[l.svcUUID:]})

	case typ == typeFlags:
		f := b[0]
		d.Flags = &f

	case typ == typeTxPower:
		p := int8(b[0])
		d.TxPower = &p

	case typ == typeNameShort, typ == typeNameComp:
		d.LocalName = string(b)

	case typ == typeMfgData:
		if d.ManufacturerData == nil {
			d.ManufacturerData = b
			break
		}
		// a scan response repeats the company identifier
		if len(b) > 2 {
			d.ManufacturerData = append(d.ManufacturerData, b[2:]...)
		}
	}
	return nil
}

// CompanyID returns the company identifier leading the manufacturer data.
func (d *Data) CompanyID() (uint16, bool) {
	if len(d.ManufacturerData) < 2 {
		return 0, false
	}
	return uint16(d.ManufacturerData[0]) | uint16(d.ManufacturerData[1])<<8, true
}

func reverse(in []byte) []byte {
	a := append(make([]byte, 0, len(in)), in...)
	for i := len(a)/2 - 1; i >= 0; i-- {
		opp := len(a) - 1 - i
		a[i], a[opp] = a[opp], a[i]
	}
	return a
}
