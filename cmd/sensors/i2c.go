package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/koninico/iot-kit/cmd/sensors/console"
	"github.com/koninico/iot-kit/diag"
	"github.com/koninico/iot-kit/i2c"
	"github.com/urfave/cli/v2"
)

var i2cCmd = cli.Command{
	Name:  "i2c",
	Usage: "raw bus utilities",
	Subcommands: []*cli.Command{
		&i2cScanCmd,
		&i2cCheckCmd,
	},
}

var i2cScanCmd = cli.Command{
	Name:  "scan",
	Usage: "probe every valid address and list devices that acknowledge",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "bus",
			Usage: "i2c bus name or number",
			Value: "1",
		},
	},
	Action: func(c *cli.Context) error {
		bus, err := i2c.NewGenericBus(c.String("bus"))
		if err != nil {
			return console.Exit(1, "could not open bus: %s", console.Red(err))
		}
		defer func() { _ = bus.Close() }()

		found, err := bus.Scan(context.Background())
		if err != nil {
			return console.Exit(1, "scan failed: %s", console.Red(err))
		}
		if len(found) == 0 {
			console.Warn("no devices acknowledged")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 12, 0, 1, ' ', 0)
		_, _ = fmt.Fprintf(w, "ADDRESS\tDEVICE\n")
		for _, addr := range found {
			_, _ = fmt.Fprintf(w, "%#02x\t%s\n", addr, knownDevice(addr))
		}
		_ = w.Flush()
		return nil
	},
}

func knownDevice(addr byte) string {
	switch addr {
	case 0x44:
		return "SHT31 (temperature/humidity)"
	case 0x29:
		return "VL6180X (distance/light)"
	case 0x23:
		return "BH1750 (light)"
	default:
		return "-"
	}
}

var i2cCheckCmd = cli.Command{
	Name:  "check",
	Usage: "probe a sensor with its own protocol (writes to the bus)",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "bus",
			Usage: "i2c bus name or number",
			Value: "1",
		},
		&cli.StringFlag{
			Name:    "sensor",
			Aliases: []string{"s"},
			Usage:   "sht31 or vl6180x",
			Value:   "sht31",
		},
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "skip the confirmation prompt",
		},
	},
	Action: func(c *cli.Context) error {
		ctx := context.Background()
		if !c.Bool("yes") {
			answer, err := console.YesOrNo("probing writes commands to the bus, continue?")
			if err != nil {
				return console.Exit(1, "%s", console.Red(err))
			}
			if answer != console.Yes {
				console.PInfof(console.PictoStop, "aborted")
				return nil
			}
		}
		bus, err := i2c.NewGenericBus(c.String("bus"))
		if err != nil {
			return console.Exit(1, "could not open bus: %s", console.Red(err))
		}
		defer func() { _ = bus.Close() }()

		var check diag.Check
		switch c.String("sensor") {
		case "sht31":
			check = diag.ProbeSHT31(ctx, bus)
		case "vl6180x":
			check = diag.ProbeVL6180X(ctx, bus)
		default:
			return console.Exit(1, "unknown sensor %q", c.String("sensor"))
		}
		printCheck(check)
		if !check.OK {
			return console.Exit(1, "probe failed")
		}
		return nil
	},
}
