package main

import (
	"context"

	"github.com/koninico/iot-kit/cmd/sensors/console"
	"github.com/koninico/iot-kit/proximity"
	"github.com/urfave/cli/v2"
)

type rangeSensor interface {
	GetDistance(ctx context.Context) (float32, error)
	GetLux(ctx context.Context) (float32, error)
}

var distanceCmd = cli.Command{
	Name:    "distance",
	Aliases: []string{"dist"},
	Usage:   "poll the VL6180X distance/ambient light sensor",
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

		var sensor rangeSensor
		if c.Bool("test") {
			sensor = proximity.NewSimVL6180X()
		} else {
			bus, err := openBus(c, cfg)
			if err != nil {
				return console.Exit(1, "transport error: %s", console.Red(err))
			}
			sensor, err = proximity.NewVL6180X(ctx, bus)
			if err != nil {
				console.Errorf("sensor initialization failed: %s", console.Red(err))
				console.PInfof(console.PictoWrench, "confirm the VL6180X answers at 0x29 (i2cdetect -y 1)")
				console.PInfof(console.PictoWrench, "run with --test to verify the toolchain without hardware")
				return console.Exit(1, "initialization failed")
			}
		}

		err = watch(ctx, cfg.interval(c), func(ctx context.Context) error {
			distance, err := sensor.GetDistance(ctx)
			if err != nil {
				return err
			}
			lux, err := sensor.GetLux(ctx)
			if err != nil {
				return err
			}
			console.Printf("%s %s mm\n%s %s lux\n", console.PictoRuler,
				console.White(distance), console.PictoBulb, console.White(lux))
			return nil
		})
		if err != nil {
			console.Errorf("error getting distance read: %s", console.Red(err))
			console.PInfof(console.PictoWrench, "check wiring and the I2C clock speed")
			return console.Exit(1, "sensor communication failed")
		}
		return nil
	},
}
