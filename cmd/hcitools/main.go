package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools"
	"github.com/rigado/hcitools/hci/h4"
	"github.com/urfave/cli"
)

var conf = hcitools.DefaultConfig()

func before(c *cli.Context) error {
	cfg, err := hcitools.LoadConfig(c.String("config"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	conf = cfg

	level := conf.Log.Level
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}
	if c.Bool("verbose") {
		level = "debug"
	}
	if err := hcitools.SetLogLevel(level); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

// fatal turns err into a CLI exit error. Ports that can't be opened and
// commands without a response exit 1; bad arguments exit 2.
func fatal(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, h4.ErrOpen) {
		return cli.NewExitError(fmt.Sprintf("can't open port: %v", err), 1)
	}
	return cli.NewExitError(err, 1)
}

func usage(c *cli.Context, msg string) error {
	cli.ShowCommandHelp(c, c.Command.Name)
	return cli.NewExitError(msg, 2)
}

func main() {
	app := cli.NewApp()
	app.Name = "hcitools"
	app.Usage = "decode, send and sniff Bluetooth HCI traffic"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "TOML configuration file",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "log level (debug, info, warn, error)",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "log at debug level",
		},
	}
	app.Before = before
	app.Commands = []cli.Command{
		{
			Name:      "decode",
			Usage:     "Decode a single hex encoded frame",
			ArgsUsage: "<hex>",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "json",
					Usage: "print the record as JSON",
				},
			},
			Action: decodeCommand,
		},
		{
			Name:      "file",
			Usage:     "Decode every frame in a text, binary or pcap file",
			ArgsUsage: "<path>",
			Flags: []cli.Flag{
				cli.StringSliceFlag{
					Name:  "tag, t",
					Usage: "leading text marking a frame line (repeatable)",
				},
				cli.StringFlag{
					Name:  "c2h-tag",
					Usage: "leading text marking a controller to host frame",
				},
				cli.StringFlag{
					Name:  "h2c-tag",
					Usage: "leading text marking a host to controller frame",
				},
				cli.StringFlag{
					Name:  "output, o",
					Usage: "write decoded records to this file instead of stdout",
				},
				cli.BoolFlag{
					Name:  "is-bytes",
					Usage: "the file is a raw H4 byte stream",
				},
				cli.BoolFlag{
					Name:  "pcap",
					Usage: "the file is an H4 pcap capture",
				},
				cli.BoolFlag{
					Name:  "json",
					Usage: "write JSON lines",
				},
			},
			Action: fileCommand,
		},
		{
			Name:      "sniff",
			Usage:     "Proxy a serial controller through a pseudo-terminal and decode its traffic",
			ArgsUsage: "<port>",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "mode, m",
					Usage: "bidirectional, ctrl2host or host2ctrl",
				},
				cli.StringFlag{
					Name:  "output, o",
					Usage: "append decoded records to this log file",
				},
				cli.StringFlag{
					Name:  "pcap",
					Usage: "also write frames to this pcap file",
				},
				cli.StringFlag{
					Name:  "json",
					Usage: "also write JSON lines to this file",
				},
			}, serialFlags...),
			Action: sniffCommand,
		},
		{
			Name:      "send",
			Usage:     "Send a hex encoded command frame and print the response",
			ArgsUsage: "<port> <hex>",
			Flags: append([]cli.Flag{
				cli.DurationFlag{
					Name:  "timeout",
					Usage: "time to wait for each response",
				},
				cli.IntFlag{
					Name:  "retries",
					Usage: "times to resend an unanswered command",
				},
				cli.BoolFlag{
					Name:  "json",
					Usage: "print the response as JSON",
				},
			}, serialFlags...),
			Action: sendCommand,
		},
		{
			Name:      "adv",
			Usage:     "Decode the reports of an LE advertising report event",
			ArgsUsage: "<hex>",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "data",
					Usage: "the argument is raw advertising data",
				},
				cli.StringSliceFlag{
					Name:  "show-only",
					Usage: "only show this address (repeatable)",
				},
			},
			Action: advCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
