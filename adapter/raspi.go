package adapter

import (
	"context"
	"fmt"

	"gobot.io/x/gobot/v2/drivers/i2c"
	"gobot.io/x/gobot/v2/platforms/raspi"

	iotkit "github.com/koninico/iot-kit"
)

var _ iotkit.I2CBus = &Raspi{}

// Raspi talks to the Raspberry Pi I2C controller through the gobot
// sysfs adaptor. It exists as an alternative to the periph.io transport
// for hosts where periph's host drivers are unavailable.
type Raspi struct {
	adaptor *raspi.Adaptor
	busNum  int
	conns   map[byte]i2c.Connection
}

func NewRaspi(busNum int) (*Raspi, error) {
	a := raspi.NewAdaptor()
	if err := a.Connect(); err != nil {
		return nil, fmt.Errorf("could not connect raspi adaptor: %w", err)
	}
	return &Raspi{
		adaptor: a,
		busNum:  busNum,
		conns:   make(map[byte]i2c.Connection),
	}, nil
}

func (b *Raspi) connection(address byte) (i2c.Connection, error) {
	if conn, ok := b.conns[address]; ok {
		return conn, nil
	}
	conn, err := b.adaptor.GetI2cConnection(int(address), b.busNum)
	if err != nil {
		return nil, err
	}
	b.conns[address] = conn
	return conn, nil
}

func (b *Raspi) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	conn, err := b.connection(address)
	if err != nil {
		return &iotkit.TransportError{Op: "read", Address: address, Cause: err}
	}
	n, err := conn.Read(buffer)
	if err != nil {
		return &iotkit.TransportError{Op: "read", Address: address, Cause: err}
	}
	if n != len(buffer) {
		return &iotkit.TransportError{Op: "read", Address: address,
			Cause: fmt.Errorf("short read: %d of %d bytes", n, len(buffer))}
	}
	return nil
}

func (b *Raspi) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	conn, err := b.connection(address)
	if err != nil {
		return &iotkit.TransportError{Op: "write", Address: address, Cause: err}
	}
	n, err := conn.Write(buffer)
	if err != nil {
		return &iotkit.TransportError{Op: "write", Address: address, Cause: err}
	}
	if n != len(buffer) {
		return &iotkit.TransportError{Op: "write", Address: address,
			Cause: fmt.Errorf("short write: %d of %d bytes", n, len(buffer))}
	}
	return nil
}

func (b *Raspi) Release(ctx context.Context) error {
	return nil
}

func (b *Raspi) Close() error {
	return b.adaptor.Finalize()
}
