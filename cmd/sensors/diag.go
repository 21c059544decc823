package main

import (
	"context"

	"github.com/koninico/iot-kit/cmd/sensors/console"
	"github.com/koninico/iot-kit/diag"
	"github.com/koninico/iot-kit/i2c"
	"github.com/urfave/cli/v2"
)

var diagCmd = cli.Command{
	Name:  "diag",
	Usage: "run the full wiring and bus health report",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "bus",
			Usage: "i2c bus name or number",
			Value: "1",
		},
	},
	Action: func(c *cli.Context) error {
		ctx := context.Background()
		bus, err := i2c.NewGenericBus(c.String("bus"))
		if err != nil {
			printCheck(diag.CheckDeviceNodes())
			return console.Exit(1, "could not open bus: %s", console.Red(err))
		}
		defer func() { _ = bus.Close() }()

		report := diag.Run(ctx, bus, bus)
		for _, check := range report.Checks {
			printCheck(check)
		}
		if !report.OK() {
			return console.Exit(1, "diagnostics reported problems")
		}
		console.PInfof(console.PictoFinish, "all checks passed")
		return nil
	},
}

func printCheck(check diag.Check) {
	if check.OK {
		console.Printf("%s %s: %s\n", console.Green("OK "), console.Bold(check.Name), check.Detail)
		return
	}
	console.Printf("%s %s: %s\n", console.Red("FAIL"), console.Bold(check.Name), check.Detail)
	for _, hint := range check.Hints {
		console.PInfof(console.PictoWrench, "%s", hint)
	}
}
