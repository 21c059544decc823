package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	iotkit "github.com/koninico/iot-kit"
	"github.com/koninico/iot-kit/adapter"
	"github.com/koninico/iot-kit/i2c"
	"github.com/koninico/iot-kit/register"
)

const defaultConfigPath = "sensors.yaml"

// Config carries defaults the flags fall back to. The file is optional;
// a missing file at the default path is not an error.
type Config struct {
	Adapter  string `yaml:"adapter"`
	Bus      string `yaml:"bus"`
	Interval int    `yaml:"interval"`
}

func defaultConfig() Config {
	return Config{
		Adapter:  "i2c",
		Bus:      "1",
		Interval: 10,
	}
}

func loadConfig(c *cli.Context) (Config, error) {
	path := c.String("config")
	config := defaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == defaultConfigPath {
			return config, nil
		}
		return config, fmt.Errorf("could not read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &config); err != nil {
		return config, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	return config, nil
}

// interval returns the polling interval in seconds, flag first, then
// config file, then default.
func (cfg Config) interval(c *cli.Context) int {
	if c.IsSet("interval") {
		return c.Int("interval")
	}
	return cfg.Interval
}

// openBus builds the transport selected by --adapter (falling back to
// the config file).
func openBus(c *cli.Context, cfg Config) (iotkit.I2CBus, error) {
	name := cfg.Adapter
	if c.IsSet("adapter") {
		name = c.String("adapter")
	}
	bus := cfg.Bus
	if c.IsSet("bus") {
		bus = c.String("bus")
	}
	switch name {
	case "i2c":
		return i2c.NewGenericBus(bus)
	case "raspi":
		var busNum int
		if _, err := fmt.Sscanf(bus, "%d", &busNum); err != nil {
			return nil, fmt.Errorf("raspi adapter needs a numeric bus, got %q", bus)
		}
		return adapter.NewRaspi(busNum)
	case "mcp2221":
		mcp2221 := adapter.NewMCP2221()
		if err := mcp2221.Init(); err != nil {
			return nil, fmt.Errorf("adapter initialization error: %w", err)
		}
		return mcp2221, nil
	case "sim":
		return register.NewSimBus(), nil
	}
	return nil, fmt.Errorf("unknown adapter %q", name)
}
