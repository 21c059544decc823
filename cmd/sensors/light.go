package main

import (
	"context"

	"github.com/koninico/iot-kit/cmd/sensors/console"
	"github.com/koninico/iot-kit/environment"
	"github.com/koninico/iot-kit/proximity"
	"github.com/urfave/cli/v2"
)

type lightSensor interface {
	GetLux(ctx context.Context) (float32, error)
}

var lightCmd = cli.Command{
	Name:  "light",
	Usage: "poll an ambient light sensor",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "adapter",
			Aliases: []string{"a"},
			Usage:   "transport: i2c, raspi, mcp2221 or sim",
		},
		&cli.StringFlag{
			Name:  "bus",
			Usage: "i2c bus name or number",
		},
		&cli.StringFlag{
			Name:    "sensor",
			Aliases: []string{"s"},
			Usage:   "bh1750 or vl6180x",
			Value:   "bh1750",
		},
		&cli.StringFlag{
			Name:  "addr",
			Usage: "bh1750 address pin state, l or h",
			Value: "l",
		},
		&cli.IntFlag{
			Name:    "interval",
			Aliases: []string{"i"},
			Usage:   "polling interval in seconds",
			Value:   10,
		},
		&cli.BoolFlag{
			Name:    "test",
			Aliases: []string{"t"},
			Usage:   "run with the simulated sensor (no hardware required)",
		},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
	},
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		cfg, err := loadConfig(c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}

		var sensor lightSensor
		switch {
		case c.Bool("test") && c.String("sensor") == "vl6180x":
			sensor = proximity.NewSimVL6180X()
		case c.Bool("test"):
			sensor = environment.NewSimBH1750()
		default:
			bus, err := openBus(c, cfg)
			if err != nil {
				return console.Exit(1, "transport error: %s", console.Red(err))
			}
			switch c.String("sensor") {
			case "vl6180x":
				sensor, err = proximity.NewVL6180X(ctx, bus)
				if err != nil {
					return console.Exit(1, "sensor initialization failed: %s", console.Red(err))
				}
			case "bh1750":
				addr := byte(environment.BH1750AddrLow)
				if c.String("addr") == "h" {
					addr = environment.BH1750AddrHigh
				}
				sensor = environment.NewBH1750(bus, addr)
			default:
				return console.Exit(1, "unknown sensor %q", c.String("sensor"))
			}
		}

		err = watch(ctx, cfg.interval(c), func(ctx context.Context) error {
			lux, err := sensor.GetLux(ctx)
			if err != nil {
				return err
			}
			console.Printf("%s %s lux\n", console.PictoBulb, console.White(lux))
			return nil
		})
		if err != nil {
			console.Errorf("error getting light sensor read: %s", console.Red(err))
			console.PInfof(console.PictoWrench, "check wiring and the sensor address")
			return console.Exit(1, "sensor communication failed")
		}
		return nil
	},
}
