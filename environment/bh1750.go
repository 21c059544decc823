package environment

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	iotkit "github.com/koninico/iot-kit"
)

const BH1750AddrHigh = 0b1011100
const BH1750AddrLow = 0b0100011

const (
	bh1750OpPowerDown byte = 0x00
	bh1750OpPowerOn   byte = 0x01
	bh1750OpReset     byte = 0x07

	// One-time measurement at 1lx resolution, typically 120ms, max 180ms.
	// The device powers down by itself afterwards.
	bh1750OpOneTimeHighRes byte = 0x20
)

// BH1750 represents a ROHM BH1750FVI ambient light sensor driven in
// one-time high resolution mode.
type BH1750 struct {
	transport iotkit.I2CBus
	addr      byte
	buf       []byte
}

func NewBH1750(transport iotkit.I2CBus, addr byte) *BH1750 {
	return &BH1750{
		addr:      addr,
		transport: transport,
		buf:       make([]byte, 2),
	}
}

func (sensor *BH1750) GetLux(ctx context.Context) (float32, error) {
	err := sensor.transport.WriteToAddr(ctx, sensor.addr, []byte{bh1750OpOneTimeHighRes})
	if err != nil {
		return 0, fmt.Errorf("bh1750: could not write command: %w", err)
	}
	// max measurement time at 1lx resolution
	time.Sleep(180 * time.Millisecond)
	err = sensor.transport.ReadFromAddr(ctx, sensor.addr, sensor.buf)
	if err != nil {
		return 0, fmt.Errorf("bh1750: could not read data: %w", err)
	}
	return float32(binary.BigEndian.Uint16(sensor.buf)) / 1.2, nil
}

func (sensor *BH1750) PowerOn(ctx context.Context) error {
	return sensor.writeOp(ctx, bh1750OpPowerOn)
}

func (sensor *BH1750) PowerDown(ctx context.Context) error {
	return sensor.writeOp(ctx, bh1750OpPowerDown)
}

// Reset clears the data register. The device has to be powered on first.
func (sensor *BH1750) Reset(ctx context.Context) error {
	if err := sensor.writeOp(ctx, bh1750OpPowerOn); err != nil {
		return err
	}
	return sensor.writeOp(ctx, bh1750OpReset)
}

func (sensor *BH1750) writeOp(ctx context.Context, op byte) error {
	err := sensor.transport.WriteToAddr(ctx, sensor.addr, []byte{op})
	if err != nil {
		return fmt.Errorf("bh1750: could not write opcode %#02x: %w", op, err)
	}
	return nil
}
