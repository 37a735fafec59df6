package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rigado/hcitools/decode"
	"github.com/rigado/hcitools/hci/adv"
	"github.com/rigado/hcitools/hci/evt"
	"github.com/rigado/hcitools/hci/packet"
	"github.com/urfave/cli"
)

func advCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return usage(c, "expected one hex frame")
	}
	b, err := decode.ParseHex(c.Args().First())
	if err != nil {
		return usage(c, err.Error())
	}

	if c.Bool("data") {
		d, err := adv.Parse(b)
		if d != nil {
			writeFields(os.Stdout, "", d)
		}
		return fatal(err)
	}

	e, err := packet.EventFromBytes(b)
	if err != nil {
		return fatal(err)
	}
	if e.Code != evt.LEMetaCode {
		return usage(c, fmt.Sprintf("%v is not an LE Meta event", e.Code))
	}
	reports, err := adv.ParseReports(e.Params)
	if err != nil {
		return fatal(err)
	}
	writeReports(os.Stdout, reports, c.StringSlice("show-only"))
	return nil
}

// writeReports prints the address and RSSI of each report followed by its
// decoded data. A non-empty only limits the addresses shown.
func writeReports(w io.Writer, reports []adv.Report, only []string) {
	for _, r := range reports {
		if !shown(r.Addr(), only) {
			continue
		}
		fmt.Fprintf(w, "%s %d\n", r.Addr(), r.RSSI)
		d, err := r.Fields()
		if d != nil {
			writeFields(w, "  ", d)
		}
		if err != nil {
			fmt.Fprintf(w, "  Error=%v\n", err)
		}
	}
}

func writeFields(w io.Writer, indent string, d *adv.Data) {
	if d.Flags != nil {
		fmt.Fprintf(w, "%sFlags=0x%02X\n", indent, *d.Flags)
	}
	if d.LocalName != "" {
		fmt.Fprintf(w, "%sLocalName=%s\n", indent, d.LocalName)
	}
	if d.TxPower != nil {
		fmt.Fprintf(w, "%sTxPower=%d\n", indent, *d.TxPower)
	}
	if len(d.Services) > 0 {
		fmt.Fprintf(w, "%sServices=%s\n", indent, uuids(d.Services))
	}
	if len(d.Solicited) > 0 {
		fmt.Fprintf(w, "%sSolicited=%s\n", indent, uuids(d.Solicited))
	}
	for _, sd := range d.ServiceData {
		fmt.Fprintf(w, "%sServiceData[%s]=0x%X\n", indent, sd.UUID, sd.Data)
	}
	if len(d.ManufacturerData) > 0 {
		fmt.Fprintf(w, "%sManufacturerData=0x%X\n", indent, d.ManufacturerData)
	}
}

func uuids(list []adv.UUID) string {
	s := make([]string, len(list))
	for i, u := range list {
		s[i] = u.String()
	}
	return strings.Join(s, ",")
}

func shown(addr string, only []string) bool {
	if len(only) == 0 {
		return true
	}
	for _, a := range only {
		if strings.EqualFold(a, addr) {
			return true
		}
	}
	return false
}
