package environment

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"time"

	iotkit "github.com/koninico/iot-kit"
	"github.com/koninico/iot-kit/register"
)

// SHT31 default 7-bit I2C address (ADDR pin low).
const SHT31Addr = 0x44

// Commands (per datasheet, MSB selects the command family, LSB the
// repeatability). Measurements use clock stretching with medium
// repeatability; the faster modes proved unreliable behind expansion
// boards with weak pull-ups.
const (
	sht31CmdMeasureCS  byte = 0x2C
	sht31MeasureMedium byte = 0x10

	sht31RegData byte = 0x00

	sht31CmdSoftResetMSB byte = 0x30
	sht31CmdSoftResetLSB byte = 0xA2
	sht31CmdStatusMSB    byte = 0xF3
	sht31CmdStatusLSB    byte = 0x2D
)

type SHT31Opts struct {
	Address byte
	// Settle is how long a measurement is given before reading the result.
	// RetrySettle replaces it on retry attempts.
	Settle      time.Duration
	RetrySettle time.Duration
	RetryDelay  time.Duration
	Attempts    int
	Logger      *slog.Logger
}

type SHT31Opt func(*SHT31Opts)

func WithSHT31Address(address byte) SHT31Opt {
	return func(o *SHT31Opts) {
		o.Address = address
	}
}

func WithSHT31Delays(settle, retrySettle, retryDelay time.Duration) SHT31Opt {
	return func(o *SHT31Opts) {
		o.Settle = settle
		o.RetrySettle = retrySettle
		o.RetryDelay = retryDelay
	}
}

func WithSHT31Logger(log *slog.Logger) SHT31Opt {
	return func(o *SHT31Opts) {
		o.Logger = log
	}
}

// SHT31 represents Sensirion SHT31 Temperature/Humidity sensor.
// Typical usage:
//
//	s := NewSHT31(bus)
//	t, h, err := s.Measure(ctx)
//
// The driver is stateless: every call triggers a fresh measurement and
// decoded values are a pure function of the bytes just read.
type SHT31 struct {
	dev    *register.Dev
	config SHT31Opts
}

func NewSHT31(bus iotkit.I2CBus, opts ...SHT31Opt) *SHT31 {
	config := SHT31Opts{
		Address:     SHT31Addr,
		Settle:      500 * time.Millisecond,
		RetrySettle: time.Second,
		RetryDelay:  200 * time.Millisecond,
		Attempts:    3,
		Logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&config)
	}
	return &SHT31{
		dev:    register.NewDev(bus, config.Address),
		config: config,
	}
}

// Measure triggers a measurement and returns temperature in Celsius and
// relative humidity in %RH. Transient bus errors are retried up to the
// configured number of attempts with a longer settle time on retries;
// once attempts are exhausted the last transport error is returned.
func (s *SHT31) Measure(ctx context.Context) (float32, float32, error) {
	var temp, hum float32
	retry := iotkit.Retry{
		Attempts: s.config.Attempts,
		Delay:    s.config.RetryDelay,
		OnRetry: func(attempt int, err error) {
			s.config.Logger.Warn("sht31: communication error, retrying",
				"attempt", attempt, "of", s.config.Attempts, "error", err)
		},
	}
	err := retry.Do(ctx, func(ctx context.Context, attempt int) error {
		if err := s.dev.WriteBlock(ctx, sht31CmdMeasureCS, []byte{sht31MeasureMedium}); err != nil {
			return fmt.Errorf("sht31: measure command failed: %w", err)
		}
		settle := s.config.Settle
		if attempt > 1 {
			settle = s.config.RetrySettle
		}
		time.Sleep(settle)

		// T[0:2], CRC, RH[3:5], CRC. The CRC bytes are not checked here.
		buf := make([]byte, 6)
		if err := s.dev.ReadBlock(ctx, sht31RegData, buf); err != nil {
			return fmt.Errorf("sht31: read failed: %w", err)
		}
		temp = convertTemperature(buf[0:2])
		hum = convertHumidity(buf[3:5])
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return temp, hum, nil
}

// GetTemperature performs a single measurement and returns temperature in
// Celsius. Callers needing both values should call Measure directly to
// avoid a doubled hardware round-trip.
func (s *SHT31) GetTemperature(ctx context.Context) (float32, error) {
	temp, _, err := s.Measure(ctx)
	return temp, err
}

// GetHumidity performs a single measurement and returns relative humidity
// in %RH.
func (s *SHT31) GetHumidity(ctx context.Context) (float32, error) {
	_, hum, err := s.Measure(ctx)
	return hum, err
}

// GetTempAndHum is an alias for Measure.
func (s *SHT31) GetTempAndHum(ctx context.Context) (float32, float32, error) {
	return s.Measure(ctx)
}

// SoftReset re-initializes the sensor controller without a power cycle.
func (s *SHT31) SoftReset(ctx context.Context) error {
	if err := s.dev.WriteBlock(ctx, sht31CmdSoftResetMSB, []byte{sht31CmdSoftResetLSB}); err != nil {
		return fmt.Errorf("sht31: soft reset failed: %w", err)
	}
	time.Sleep(100 * time.Millisecond)
	return nil
}

// ReadStatus reads the 16-bit status register (third byte is its CRC).
func (s *SHT31) ReadStatus(ctx context.Context) (uint16, error) {
	if err := s.dev.WriteBlock(ctx, sht31CmdStatusMSB, []byte{sht31CmdStatusLSB}); err != nil {
		return 0, fmt.Errorf("sht31: status command failed: %w", err)
	}
	time.Sleep(10 * time.Millisecond)
	buf := make([]byte, 3)
	if err := s.dev.ReadBlock(ctx, sht31RegData, buf); err != nil {
		return 0, fmt.Errorf("sht31: status read failed: %w", err)
	}
	return binary.BigEndian.Uint16(buf[0:2]), nil
}

// Conversion formulas from datasheet
// T(C) = -45 + 175 * raw / 65535
// RH(%) = 100 * raw / 65535
func convertTemperature(resp []byte) float32 {
	return -45.0 + 175.0*float32(binary.BigEndian.Uint16(resp))/65535.0
}

func convertHumidity(resp []byte) float32 {
	return 100.0 * float32(binary.BigEndian.Uint16(resp)) / 65535.0
}
