// Package register provides register-addressed views over a raw I2C
// transport. Dev talks to devices with 8-bit register addresses using
// SMBus-style transactions; Dev16 handles devices (like the VL6180X)
// whose register index is 16 bits wide and transmitted as two address
// bytes ahead of the payload.
package register

import (
	"context"
	"fmt"

	iotkit "github.com/koninico/iot-kit"
)

// maxBlock is the SMBus block transfer limit.
const maxBlock = 32

// Dev is a device with 8-bit register addresses.
type Dev struct {
	bus  iotkit.I2CBus
	addr byte
}

func NewDev(bus iotkit.I2CBus, addr byte) *Dev {
	return &Dev{bus: bus, addr: addr}
}

func (d *Dev) Addr() byte { return d.addr }

func (d *Dev) ReadByte(ctx context.Context, reg byte) (byte, error) {
	var buf [1]byte
	if err := d.ReadBlock(ctx, reg, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadBlock selects reg and reads len(buf) bytes in a separate transaction.
func (d *Dev) ReadBlock(ctx context.Context, reg byte, buf []byte) error {
	if len(buf) == 0 || len(buf) > maxBlock {
		return &iotkit.ConfigurationError{Reason: fmt.Sprintf("block length %d out of range", len(buf))}
	}
	if err := d.bus.WriteToAddr(ctx, d.addr, []byte{reg}); err != nil {
		return err
	}
	return d.bus.ReadFromAddr(ctx, d.addr, buf)
}

func (d *Dev) WriteByte(ctx context.Context, reg, value byte) error {
	return d.bus.WriteToAddr(ctx, d.addr, []byte{reg, value})
}

func (d *Dev) WriteBlock(ctx context.Context, reg byte, data []byte) error {
	if len(data) > maxBlock {
		return &iotkit.ConfigurationError{Reason: fmt.Sprintf("block length %d out of range", len(data))}
	}
	out := make([]byte, 0, len(data)+1)
	out = append(out, reg)
	out = append(out, data...)
	return d.bus.WriteToAddr(ctx, d.addr, out)
}

// Dev16 is a device with 16-bit register addresses.
type Dev16 struct {
	bus  iotkit.I2CBus
	addr byte
}

func NewDev16(bus iotkit.I2CBus, addr byte) *Dev16 {
	return &Dev16{bus: bus, addr: addr}
}

func (d *Dev16) Addr() byte { return d.addr }

func (d *Dev16) ReadByte(ctx context.Context, reg uint16) (byte, error) {
	if err := d.selectReg(ctx, reg); err != nil {
		return 0, err
	}
	var buf [1]byte
	if err := d.bus.ReadFromAddr(ctx, d.addr, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadWord reads a big-endian 16-bit value.
func (d *Dev16) ReadWord(ctx context.Context, reg uint16) (uint16, error) {
	if err := d.selectReg(ctx, reg); err != nil {
		return 0, err
	}
	var buf [2]byte
	if err := d.bus.ReadFromAddr(ctx, d.addr, buf[:]); err != nil {
		return 0, err
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

func (d *Dev16) WriteByte(ctx context.Context, reg uint16, value byte) error {
	return d.bus.WriteToAddr(ctx, d.addr, []byte{byte(reg >> 8), byte(reg), value})
}

// WriteWord writes a big-endian 16-bit value.
func (d *Dev16) WriteWord(ctx context.Context, reg uint16, value uint16) error {
	return d.bus.WriteToAddr(ctx, d.addr, []byte{byte(reg >> 8), byte(reg), byte(value >> 8), byte(value)})
}

func (d *Dev16) selectReg(ctx context.Context, reg uint16) error {
	return d.bus.WriteToAddr(ctx, d.addr, []byte{byte(reg >> 8), byte(reg)})
}
