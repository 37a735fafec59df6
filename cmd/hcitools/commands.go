package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools"
	"github.com/rigado/hcitools/decode"
	"github.com/rigado/hcitools/hci/h4"
	"github.com/rigado/hcitools/hci/packet"
	"github.com/rigado/hcitools/hci/schema"
	"github.com/rigado/hcitools/sniffer"
	"github.com/rigado/hcitools/transport"
	"github.com/urfave/cli"
)

var serialFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "baud, b",
		Usage: "baud rate",
	},
	cli.IntFlag{
		Name:  "bytesize",
		Usage: "data bits",
	},
	cli.StringFlag{
		Name:  "parity, p",
		Usage: "parity: N, E, O, M or S",
	},
	cli.Float64Flag{
		Name:  "stopbits, s",
		Usage: "stop bits: 1, 1.5 or 2",
	},
	cli.BoolFlag{
		Name:  "rtscts",
		Usage: "enable RTS/CTS flow control",
	},
	cli.StringFlag{
		Name:  "driver",
		Usage: "serial driver: bugst or jacobsa",
	},
	cli.DurationFlag{
		Name:  "read-timeout",
		Usage: "serial read timeout",
	},
}

// serialConfig overlays the serial flags that were given onto the loaded
// configuration.
func serialConfig(c *cli.Context) (hcitools.SerialConfig, error) {
	sc := conf.Serial
	if c.IsSet("baud") {
		sc.BaudRate = c.Int("baud")
	}
	if c.IsSet("bytesize") {
		sc.DataBits = c.Int("bytesize")
	}
	if c.IsSet("parity") {
		sc.Parity = c.String("parity")
	}
	if c.IsSet("stopbits") {
		sc.StopBits = c.Float64("stopbits")
	}
	if c.IsSet("rtscts") {
		sc.RTSCTS = c.Bool("rtscts")
	}
	if c.IsSet("driver") {
		sc.Driver = c.String("driver")
	}
	if c.IsSet("read-timeout") {
		sc.ReadTimeout = c.Duration("read-timeout")
	}

	check := conf
	check.Serial = sc
	return sc, check.Validate()
}

func newDecoder() *decode.Decoder {
	return decode.New(schema.Default())
}

func recordSink(w io.Writer, asJSON bool) decode.Sink {
	if asJSON {
		return decode.NewJSONSink(w)
	}
	return decode.NewTextSink(w)
}

func decodeCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return usage(c, "expected one hex frame")
	}
	frame, err := decode.ParseHex(c.Args().First())
	if err != nil {
		return usage(c, err.Error())
	}

	rec := newDecoder().Frame(decode.Unknown, frame)
	if err := recordSink(os.Stdout, c.Bool("json")).Write(rec); err != nil {
		return fatal(err)
	}
	return fatal(rec.Err)
}

func fileCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return usage(c, "expected one input file")
	}
	if c.Bool("is-bytes") && c.Bool("pcap") {
		return usage(c, "--is-bytes and --pcap are exclusive")
	}

	in, err := os.Open(c.Args().First())
	if err != nil {
		return fatal(err)
	}
	defer in.Close()

	out := io.Writer(os.Stdout)
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fatal(err)
		}
		defer f.Close()
		out = f
	}

	sink := recordSink(out, c.Bool("json"))
	failed := 0
	emit := func(r decode.Record) error {
		if r.Err != nil {
			failed++
		}
		return sink.Write(r)
	}

	dec := newDecoder()
	switch {
	case c.Bool("is-bytes"):
		err = dec.Bytes(in, emit)
	case c.Bool("pcap"):
		err = dec.Pcap(in, emit)
	default:
		err = dec.Text(in, decode.TextOptions{
			Leading: c.StringSlice("tag"),
			C2HTag:  c.String("c2h-tag"),
			H2CTag:  c.String("h2c-tag"),
		}, emit)
	}
	if err != nil {
		return fatal(err)
	}
	if failed > 0 {
		hcitools.GetLogger().Warnf("%d frame(s) could not be decoded", failed)
	}
	return nil
}

func sniffCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return usage(c, "expected the controller port")
	}
	sc, err := serialConfig(c)
	if err != nil {
		return usage(c, err.Error())
	}

	modeName := conf.Sniffer.Mode
	if c.IsSet("mode") {
		modeName = c.String("mode")
	}
	mode, err := sniffer.ParseMode(modeName)
	if err != nil {
		return usage(c, err.Error())
	}

	opts := []sniffer.Option{sniffer.OptMode(mode)}

	output := firstSet(c.String("output"), conf.Sniffer.Output)
	if output != "" {
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return fatal(err)
		}
		if _, err := io.WriteString(f, decode.LogHeader); err != nil {
			f.Close()
			return fatal(err)
		}
		opts = append(opts, sniffer.OptSink(decode.NewTextSink(f)), sniffer.OptCloser(f))
	} else {
		opts = append(opts, sniffer.OptSink(decode.NewTextSink(os.Stdout)))
	}

	if path := firstSet(c.String("pcap"), conf.Sniffer.Pcap); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fatal(err)
		}
		ps, err := decode.NewPcapSink(f)
		if err != nil {
			f.Close()
			return fatal(err)
		}
		opts = append(opts, sniffer.OptSink(ps), sniffer.OptCloser(f))
	}
	if path := firstSet(c.String("json"), conf.Sniffer.JSON); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fatal(err)
		}
		opts = append(opts, sniffer.OptSink(decode.NewJSONSink(f)), sniffer.OptCloser(f))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := sniffer.Open(ctx, h4.ConfigFrom(c.Args().First(), sc), opts...)
	if err != nil {
		return fatal(err)
	}
	fmt.Printf("Proxy Port: %s\n", s.Proxy())

	select {
	case <-ctx.Done():
		return fatal(s.Close())
	case <-s.Done():
		if err := s.Close(); err != nil {
			hcitools.GetLogger().Warnf("%v", err)
		}
		return cli.NewExitError("sniffer stopped: a port closed", 1)
	}
}

func sendCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return usage(c, "expected a port and a hex command frame")
	}
	sc, err := serialConfig(c)
	if err != nil {
		return usage(c, err.Error())
	}
	frame, err := decode.ParseHex(c.Args().Get(1))
	if err != nil {
		return usage(c, err.Error())
	}

	tc := conf.Transport
	if c.IsSet("timeout") {
		tc.Timeout = c.Duration("timeout")
	}
	if c.IsSet("retries") {
		tc.Retries = c.Int("retries")
	}

	dec := newDecoder()
	sink := recordSink(os.Stdout, c.Bool("json"))
	show := func(dir decode.Direction, b []byte) {
		if err := sink.Write(dec.Frame(dir, b)); err != nil {
			hcitools.GetLogger().Warnf("write record: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := transport.NewManager(transport.SerialOpener(sc))
	defer m.CloseAll()

	t, err := m.Open(ctx, c.Args().First(),
		transport.OptConfig(tc),
		transport.OptEventHandler(func(e *packet.EventPacket) {
			hcitools.GetLogger().Debugf("unsolicited %v", e.Code)
		}),
	)
	if err != nil {
		return fatal(err)
	}

	show(decode.HostToController, frame)
	resp, err := t.SendRaw(ctx, frame)
	if err != nil {
		if errors.Is(err, transport.ErrCommandTimeout) {
			return cli.NewExitError(err, 1)
		}
		return fatal(err)
	}
	show(decode.ControllerToHost, resp.Frame())
	return nil
}

func firstSet(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
