package register

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	iotkit "github.com/koninico/iot-kit"
)

// captureBus records write payloads and serves scripted reads.
type captureBus struct {
	writes [][]byte
	reads  [][]byte
}

func (b *captureBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	out := make([]byte, len(buffer))
	copy(out, buffer)
	b.writes = append(b.writes, out)
	return nil
}

func (b *captureBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	if len(b.reads) > 0 {
		copy(buffer, b.reads[0])
		b.reads = b.reads[1:]
	}
	return nil
}

func (b *captureBus) Release(ctx context.Context) error { return nil }

func TestDev_WriteByte(t *testing.T) {
	bus := &captureBus{}
	dev := NewDev(bus, 0x44)
	require.NoError(t, dev.WriteByte(context.Background(), 0x24, 0x16))
	require.Len(t, bus.writes, 1)
	assert.Equal(t, []byte{0x24, 0x16}, bus.writes[0])
}

func TestDev_ReadBlock(t *testing.T) {
	bus := &captureBus{reads: [][]byte{{0xDE, 0xAD}}}
	dev := NewDev(bus, 0x44)

	buf := make([]byte, 2)
	require.NoError(t, dev.ReadBlock(context.Background(), 0x00, buf))
	assert.Equal(t, []byte{0xDE, 0xAD}, buf)
	// register select goes out as its own transaction
	require.Len(t, bus.writes, 1)
	assert.Equal(t, []byte{0x00}, bus.writes[0])
}

func TestDev_BlockLengthLimits(t *testing.T) {
	dev := NewDev(&captureBus{}, 0x44)
	var confErr *iotkit.ConfigurationError

	err := dev.ReadBlock(context.Background(), 0x00, nil)
	assert.ErrorAs(t, err, &confErr)

	err = dev.ReadBlock(context.Background(), 0x00, make([]byte, maxBlock+1))
	assert.ErrorAs(t, err, &confErr)

	err = dev.WriteBlock(context.Background(), 0x00, make([]byte, maxBlock+1))
	assert.ErrorAs(t, err, &confErr)
}

func TestDev16_Framing(t *testing.T) {
	bus := &captureBus{reads: [][]byte{{0xB4}, {0x01, 0x02}}}
	dev := NewDev16(bus, 0x29)
	ctx := context.Background()

	val, err := dev.ReadByte(ctx, 0x0016)
	require.NoError(t, err)
	assert.Equal(t, byte(0xB4), val)

	word, err := dev.ReadWord(ctx, 0x0050)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), word)

	require.NoError(t, dev.WriteByte(ctx, 0x0120, 0x01))
	require.NoError(t, dev.WriteWord(ctx, 0x0040, 0x0064))

	// the 16-bit register index is sent big-endian as two address bytes
	require.Len(t, bus.writes, 4)
	assert.Equal(t, []byte{0x00, 0x16}, bus.writes[0])
	assert.Equal(t, []byte{0x00, 0x50}, bus.writes[1])
	assert.Equal(t, []byte{0x01, 0x20, 0x01}, bus.writes[2])
	assert.Equal(t, []byte{0x00, 0x40, 0x00, 0x64}, bus.writes[3])
}

func TestSimBus_QueuedReads(t *testing.T) {
	bus := NewSimBus()
	bus.Queue(0x44, []byte{0x01, 0x02})
	bus.Queue(0x44, []byte{0x03})

	buf := make([]byte, 2)
	require.NoError(t, bus.ReadFromAddr(context.Background(), 0x44, buf))
	assert.Equal(t, []byte{0x01, 0x02}, buf)

	require.NoError(t, bus.ReadFromAddr(context.Background(), 0x44, buf[:1]))
	assert.Equal(t, byte(0x03), buf[0])

	// queue drained, reads fall back to the fill byte
	require.NoError(t, bus.ReadFromAddr(context.Background(), 0x44, buf))
	assert.Equal(t, []byte{0xFF, 0xFF}, buf)
}

func TestSimBus_CountsWrites(t *testing.T) {
	bus := NewSimBus()
	assert.Equal(t, 0, bus.WriteCount())

	ctx := context.Background()
	require.NoError(t, bus.WriteToAddr(ctx, 0x44, []byte{0x2C, 0x10}))
	require.NoError(t, bus.WriteToAddr(ctx, 0x29, []byte{0x00, 0x18, 0x01}))
	assert.Equal(t, 2, bus.WriteCount())
	require.NoError(t, bus.Release(ctx))
}
