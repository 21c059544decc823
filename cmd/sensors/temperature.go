package main

import (
	"context"

	"github.com/koninico/iot-kit/cmd/sensors/console"
	"github.com/koninico/iot-kit/environment"
	"github.com/urfave/cli/v2"
)

type tempHumSensor interface {
	GetTempAndHum(ctx context.Context) (float32, float32, error)
}

var tempReadCmd = cli.Command{
	Name:    "temperature",
	Aliases: []string{"temp"},
	Usage:   "poll the SHT31 temperature/humidity sensor",
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

		var sensor tempHumSensor
		if c.Bool("test") {
			sensor = environment.NewSimSHT31()
		} else {
			bus, err := openBus(c, cfg)
			if err != nil {
				return console.Exit(1, "transport error: %s", console.Red(err))
			}
			sensor = environment.NewSHT31(bus)
		}

		err = watch(ctx, cfg.interval(c), func(ctx context.Context) error {
			temp, hum, err := sensor.GetTempAndHum(ctx)
			if err != nil {
				return err
			}
			console.Printf("%s  %s C\n%s %s %%RH\n", console.PictoThermometer,
				console.White(temp), console.PictoHumidity, console.White(hum))
			return nil
		})
		if err != nil {
			console.Errorf("error getting temperature read: %s", console.Red(err))
			console.PInfof(console.PictoWrench, "check that the SHT31 is wired to address 0x44 and that I2C is enabled")
			console.PInfof(console.PictoWrench, "run with --test to verify the toolchain without hardware")
			return console.Exit(1, "sensor communication failed")
		}
		return nil
	},
}
