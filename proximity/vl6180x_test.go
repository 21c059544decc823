package proximity

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	iotkit "github.com/koninico/iot-kit"
)

// recordingBus captures every write and serves scripted read responses.
type recordingBus struct {
	writes   [][]byte
	reads    [][]byte
	failNext int
	released bool
}

func (b *recordingBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	if b.failNext > 0 {
		b.failNext--
		return &iotkit.TransportError{Op: "write", Address: address, Cause: errors.New("remote i/o error")}
	}
	out := make([]byte, len(buffer))
	copy(out, buffer)
	b.writes = append(b.writes, out)
	return nil
}

func (b *recordingBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	if len(b.reads) == 0 {
		return &iotkit.TransportError{Op: "read", Address: address, Cause: errors.New("no scripted response")}
	}
	copy(buffer, b.reads[0])
	b.reads = b.reads[1:]
	return nil
}

func (b *recordingBus) Release(ctx context.Context) error {
	b.released = true
	return nil
}

func newTestVL6180X(ctx context.Context, bus iotkit.I2CBus) (*VL6180X, error) {
	return NewVL6180X(ctx, bus,
		WithVL6180XDelays(0, 0, 0),
		WithVL6180XLogger(slog.New(slog.DiscardHandler)))
}

func TestVL6180X_InitFreshOutOfReset(t *testing.T) {
	bus := &recordingBus{reads: [][]byte{{0x01}}}
	_, err := newTestVL6180X(context.Background(), bus)
	require.NoError(t, err)

	// register select for the fresh check, the 30 tuning writes, then the
	// 16 public configuration writes
	require.Len(t, bus.writes, 47)
	assert.Equal(t, []byte{0x00, 0x16}, bus.writes[0])
	assert.Equal(t, []byte{0x02, 0x07, 0x01}, bus.writes[1])
	assert.Equal(t, []byte{0x00, 0x30, 0x00}, bus.writes[30])
	// fresh-out-of-reset flag cleared during configuration
	assert.Contains(t, bus.writes, []byte{0x00, 0x16, 0x00})
	// early convergence estimate and ALS integration period words
	assert.Equal(t, []byte{0x00, 0x22, 0x00, 0x7B}, bus.writes[43])
	assert.Equal(t, []byte{0x00, 0x40, 0x00, 0x64}, bus.writes[44])
	assert.Equal(t, []byte{0x00, 0x3F, 0x20}, bus.writes[45])
	assert.Equal(t, []byte{0x01, 0x20, 0x01}, bus.writes[46])
}

func TestVL6180X_InitAlreadyConfigured(t *testing.T) {
	bus := &recordingBus{reads: [][]byte{{0x00}}}
	_, err := newTestVL6180X(context.Background(), bus)
	require.NoError(t, err)

	// tuning block skipped when the device is not fresh out of reset
	require.Len(t, bus.writes, 17)
	assert.NotContains(t, bus.writes, []byte{0x02, 0x07, 0x01})
}

func TestVL6180X_InitRecoversAfterTwoFailures(t *testing.T) {
	bus := &recordingBus{reads: [][]byte{{0x00}}, failNext: 2}
	sensor, err := newTestVL6180X(context.Background(), bus)
	require.NoError(t, err)
	assert.NotNil(t, sensor)
}

func TestVL6180X_InitExhaustsRetries(t *testing.T) {
	bus := &recordingBus{failNext: 100}
	_, err := newTestVL6180X(context.Background(), bus)
	require.Error(t, err)
	assert.True(t, iotkit.IsTransport(err))
}

func TestVL6180X_GetDistance(t *testing.T) {
	bus := &recordingBus{reads: [][]byte{{0x00}, {0x7B}}}
	sensor, err := newTestVL6180X(context.Background(), bus)
	require.NoError(t, err)

	before := len(bus.writes)
	dist, err := sensor.GetDistance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float32(123.0), dist)
	// range start, result register select, interrupt clear
	require.Len(t, bus.writes, before+3)
	assert.Equal(t, []byte{0x00, 0x18, 0x01}, bus.writes[before])
	assert.Equal(t, []byte{0x00, 0x62}, bus.writes[before+1])
	assert.Equal(t, []byte{0x00, 0x15, 0x07}, bus.writes[before+2])
}

func TestVL6180X_GetLux(t *testing.T) {
	tests := []struct {
		name     string
		raw      []byte
		expected float32
	}{
		{"dark", []byte{0x00, 0x00}, 0.0},
		{"one lux", []byte{0x00, 0x64}, 1.0},
		{"raw 3200", []byte{0x0C, 0x80}, 32.0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			bus := &recordingBus{reads: [][]byte{{0x00}, test.raw}}
			sensor, err := newTestVL6180X(context.Background(), bus)
			require.NoError(t, err)

			lux, err := sensor.GetLux(context.Background())
			require.NoError(t, err)
			assert.InDelta(t, test.expected, lux, 0.0001)
			// started with ALS start, finished with interrupt clear
			assert.Contains(t, bus.writes, []byte{0x00, 0x38, 0x01})
			assert.Equal(t, []byte{0x00, 0x15, 0x07}, bus.writes[len(bus.writes)-1])
		})
	}
}

func TestVL6180X_Identify(t *testing.T) {
	bus := &recordingBus{reads: [][]byte{{0x00}, {ModelID}, {0x03}, {0x01}}}
	sensor, err := newTestVL6180X(context.Background(), bus)
	require.NoError(t, err)

	id, err := sensor.Identify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, byte(ModelID), id.Model)
	assert.Equal(t, byte(0x03), id.Revision)
}

func TestSimVL6180X_Ranges(t *testing.T) {
	sensor := NewSimVL6180X()
	ctx := context.Background()
	for i := 0; i < 100; i++ {
		dist, err := sensor.GetDistance(ctx)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, dist, float32(10.0))
		assert.LessOrEqual(t, dist, float32(200.0))

		lux, err := sensor.GetLux(ctx)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, lux, float32(0.1))
		assert.LessOrEqual(t, lux, float32(10.0))
	}
}

func TestSimVL6180X_NeverBlocks(t *testing.T) {
	start := time.Now()
	sensor := NewSimVL6180X()
	for i := 0; i < 10; i++ {
		_, err := sensor.GetDistance(context.Background())
		assert.NoError(t, err)
	}
	id, err := sensor.Identify(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, byte(ModelID), id.Model)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}
