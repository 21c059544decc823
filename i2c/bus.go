// Package i2c provides the native Linux I2C transport backed by periph.io.
package i2c

import (
	"context"
	"fmt"
	"log/slog"

	iotkit "github.com/koninico/iot-kit"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var _ iotkit.I2CBus = &GenericBus{}

type GenericBus struct {
	bus i2c.BusCloser
}

// NewGenericBus opens the named bus ("1", "/dev/i2c-1" or empty for the
// first available one). The handle stays open for the life of the bus;
// Close releases it.
func NewGenericBus(dev string) (*GenericBus, error) {
	state, err := host.Init()
	if err != nil {
		return nil, fmt.Errorf("could not init host: %w", err)
	}
	for _, driver := range state.Loaded {
		slog.Debug("host driver loaded", "driver", driver.String())
	}
	bus, err := i2creg.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("could not open i2c bus: %w", err)
	}
	return &GenericBus{
		bus: bus,
	}, nil
}

func (b *GenericBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	err := b.bus.Tx(uint16(address), nil, buffer)
	if err != nil {
		return &iotkit.TransportError{Op: "read", Address: address, Cause: err}
	}
	return nil
}

func (b *GenericBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	err := b.bus.Tx(uint16(address), buffer, nil)
	if err != nil {
		return &iotkit.TransportError{Op: "write", Address: address, Cause: err}
	}
	return nil
}

func (b *GenericBus) Release(ctx context.Context) error {
	return nil
}

func (b *GenericBus) Close() error {
	return b.bus.Close()
}
