package packet

import (
	"github.com/pkg/errors"
	"github.com/rigado/hcitools/hci/att"
	"github.com/rigado/hcitools/hci/param"
)

// AttPacket is an ATT PDU carried on the attribute channel.
type AttPacket struct {
	att.PDU
}

// AttFromBytes splits an ATT PDU, including its signature when the
// opcode's authentication flag is set.
func AttFromBytes(b []byte) (*AttPacket, error) {
	pdu, err := att.Split(b)
	if err != nil {
		want := 1
		if len(b) > 0 {
			want = 1 + att.SignatureLen
		}
		return nil, short("ATT_PDU", 0, want, len(b))
	}
	return &AttPacket{PDU: pdu}, nil
}

// Parse renders the opcode flags and the parameters. Opcodes are looked
// up with their flags first, so ATT_WRITE_CMD keeps its own layout.
func (p *AttPacket) Parse(repo Repository) (*Decoded, error) {
	d := &Decoded{}
	d.add("AttOpcode", p.Opcode.String())
	d.add("AuthenticationFlag", param.Bool(p.Opcode.Signed()).String())
	d.add("CommandFlag", param.Bool(p.Opcode.Command()).String())
	sig := "None"
	if p.Signature != nil {
		sig = param.Hex{Uint: param.NewUint(p.Signature)}.String()
	}
	d.add("AuthenticationSignature", sig)

	res, err := param.Decode(p.Params, repo.ATT(p.Opcode))
	if err != nil {
		return nil, errors.Wrapf(err, "%v", p.Opcode)
	}
	d.Params = res
	return d, nil
}
