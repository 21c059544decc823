// Package proximity contains drivers for time-of-flight distance sensors.
package proximity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	iotkit "github.com/koninico/iot-kit"
	"github.com/koninico/iot-kit/register"
)

// VL6180X default 7-bit I2C address.
const VL6180XAddr = 0x29

// Register map (16-bit addresses, per ST datasheet and AN4545).
const (
	regIdentificationModelID  uint16 = 0x0000
	regIdentificationRevision uint16 = 0x0001
	regIdentificationModule   uint16 = 0x0002

	regSystemFreshOutOfReset uint16 = 0x0016
	regSystemInterruptClear  uint16 = 0x0015
	regSysrangeStart         uint16 = 0x0018
	regResultRangeVal        uint16 = 0x0062
	regSysalsStart           uint16 = 0x0038
	regResultAlsVal          uint16 = 0x0050
)

// ModelID is the expected IDENTIFICATION__MODEL_ID value.
const ModelID = 0xB4

type regValue struct {
	reg uint16
	val byte
}

// Mandatory private tuning registers, applied only when the device reports
// fresh-out-of-reset. Values come from the ST application note SR03 settings
// and must not be changed.
var vl6180xTuning = []regValue{
	{0x0207, 0x01},
	{0x0208, 0x01},
	{0x0096, 0x00},
	{0x0097, 0xFD},
	{0x00E3, 0x00},
	{0x00E4, 0x04},
	{0x00E5, 0x02},
	{0x00E6, 0x01},
	{0x00E7, 0x03},
	{0x00F5, 0x02},
	{0x00D9, 0x05},
	{0x00DB, 0xCE},
	{0x00DC, 0x03},
	{0x00DD, 0xF8},
	{0x009F, 0x00},
	{0x00A3, 0x3C},
	{0x00B7, 0x00},
	{0x00BB, 0x3C},
	{0x00B2, 0x09},
	{0x00CA, 0x09},
	{0x0198, 0x01},
	{0x01B0, 0x17},
	{0x01AD, 0x00},
	{0x00FF, 0x05},
	{0x0100, 0x05},
	{0x0199, 0x05},
	{0x01A6, 0x1B},
	{0x01AC, 0x3E},
	{0x01A7, 0x1F},
	{0x0030, 0x00},
}

type VL6180XOpts struct {
	Address byte
	// RangeSettle and ALSSettle are the fixed conversion waits before
	// reading a result register.
	RangeSettle time.Duration
	ALSSettle   time.Duration
	RetryDelay  time.Duration
	Attempts    int
	Logger      *slog.Logger
}

type VL6180XOpt func(*VL6180XOpts)

func WithVL6180XAddress(address byte) VL6180XOpt {
	return func(o *VL6180XOpts) {
		o.Address = address
	}
}

func WithVL6180XDelays(rangeSettle, alsSettle, retryDelay time.Duration) VL6180XOpt {
	return func(o *VL6180XOpts) {
		o.RangeSettle = rangeSettle
		o.ALSSettle = alsSettle
		o.RetryDelay = retryDelay
	}
}

func WithVL6180XLogger(log *slog.Logger) VL6180XOpt {
	return func(o *VL6180XOpts) {
		o.Logger = log
	}
}

// VL6180X represents the ST VL6180X proximity and ambient light sensor.
// Typical usage:
//
//	s, err := NewVL6180X(ctx, bus)
//	d, err := s.GetDistance(ctx)
//	l, err := s.GetLux(ctx)
//
// Construction runs the one-time power-on configuration; a constructed
// sensor is always ready and no method changes driver state afterwards.
type VL6180X struct {
	dev    *register.Dev16
	config VL6180XOpts
}

// NewVL6180X configures the sensor and returns a ready driver. The whole
// initialization sequence is retried on transport errors; if attempts are
// exhausted construction fails and the driver must not be used.
func NewVL6180X(ctx context.Context, bus iotkit.I2CBus, opts ...VL6180XOpt) (*VL6180X, error) {
	config := VL6180XOpts{
		Address:     VL6180XAddr,
		RangeSettle: 100 * time.Millisecond,
		ALSSettle:   500 * time.Millisecond,
		RetryDelay:  500 * time.Millisecond,
		Attempts:    3,
		Logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&config)
	}
	s := &VL6180X{
		dev:    register.NewDev16(bus, config.Address),
		config: config,
	}
	retry := iotkit.Retry{
		Attempts: config.Attempts,
		Delay:    config.RetryDelay,
		OnRetry: func(attempt int, err error) {
			config.Logger.Warn("vl6180x: initialization error, retrying",
				"attempt", attempt, "of", config.Attempts, "error", err)
		},
	}
	err := retry.Do(ctx, func(ctx context.Context, attempt int) error {
		return s.initialize(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("vl6180x: initialization failed: %w", err)
	}
	config.Logger.Info("vl6180x: sensor initialized")
	return s, nil
}

func (s *VL6180X) initialize(ctx context.Context) error {
	fresh, err := s.dev.ReadByte(ctx, regSystemFreshOutOfReset)
	if err != nil {
		return fmt.Errorf("fresh-out-of-reset check failed: %w", err)
	}
	if fresh == 1 {
		for _, rv := range vl6180xTuning {
			if err := s.dev.WriteByte(ctx, rv.reg, rv.val); err != nil {
				return fmt.Errorf("tuning write %#04x failed: %w", rv.reg, err)
			}
		}
	}

	// Recommended public registers, see AN4545 for detail.
	public := []regValue{
		// enable polling for new-sample-ready when a measurement completes
		{0x0011, 0x10},
		// averaging sample period (noise vs execution time compromise)
		{0x010A, 0x30},
		// light and dark gain (upper nibble; dark gain must stay default)
		{0x003F, 0x46},
		// number of range measurements between auto calibration runs
		{0x0031, 0xFF},
		// ALS integration time 100ms
		{0x0040, 0x63},
		// single temperature calibration of the ranging sensor
		{0x002E, 0x01},
		// default ranging inter-measurement period 100ms
		{0x001B, 0x09},
		// default ALS inter-measurement period 500ms
		{0x003E, 0x31},
		// interrupt on new-sample-ready threshold event
		{0x0014, 0x24},
		// clear the fresh-out-of-reset status
		{regSystemFreshOutOfReset, 0x00},
		// sysrange max convergence time
		{0x001C, 0x32},
		// sysrange range check enables
		{0x002D, 0x10 | 0x01},
	}
	for _, rv := range public {
		if err := s.dev.WriteByte(ctx, rv.reg, rv.val); err != nil {
			return fmt.Errorf("config write %#04x failed: %w", rv.reg, err)
		}
	}
	// sysrange early convergence estimate
	if err := s.dev.WriteWord(ctx, 0x0022, 0x7B); err != nil {
		return fmt.Errorf("config write %#04x failed: %w", 0x0022, err)
	}
	// sysals integration period, 100ms
	if err := s.dev.WriteWord(ctx, 0x0040, 0x64); err != nil {
		return fmt.Errorf("config write %#04x failed: %w", 0x0040, err)
	}
	// sysals analogue gain x40
	if err := s.dev.WriteByte(ctx, 0x003F, 0x20); err != nil {
		return fmt.Errorf("config write %#04x failed: %w", 0x003F, err)
	}
	// firmware result scaler
	if err := s.dev.WriteByte(ctx, 0x0120, 0x01); err != nil {
		return fmt.Errorf("config write %#04x failed: %w", 0x0120, err)
	}
	return nil
}

// GetDistance performs a single-shot range measurement and returns the
// distance to the target in millimeters. Transport errors propagate
// without retry; retrying a half-finished ranging cycle is the caller's
// call to make.
func (s *VL6180X) GetDistance(ctx context.Context) (float32, error) {
	if err := s.dev.WriteByte(ctx, regSysrangeStart, 0x01); err != nil {
		return 0, fmt.Errorf("vl6180x: range start failed: %w", err)
	}
	time.Sleep(s.config.RangeSettle)
	raw, err := s.dev.ReadByte(ctx, regResultRangeVal)
	if err != nil {
		return 0, fmt.Errorf("vl6180x: range read failed: %w", err)
	}
	// reset the device interrupt state; completion is not checked here
	if err := s.dev.WriteByte(ctx, regSystemInterruptClear, 0x07); err != nil {
		return 0, fmt.Errorf("vl6180x: interrupt clear failed: %w", err)
	}
	return float32(raw), nil
}

// GetLux performs a single-shot ambient light measurement and returns
// illuminance in lux. Transport errors propagate without retry.
func (s *VL6180X) GetLux(ctx context.Context) (float32, error) {
	if err := s.dev.WriteByte(ctx, regSysalsStart, 0x01); err != nil {
		return 0, fmt.Errorf("vl6180x: als start failed: %w", err)
	}
	time.Sleep(s.config.ALSSettle)
	raw, err := s.dev.ReadWord(ctx, regResultAlsVal)
	if err != nil {
		return 0, fmt.Errorf("vl6180x: als read failed: %w", err)
	}
	if err := s.dev.WriteByte(ctx, regSystemInterruptClear, 0x07); err != nil {
		return 0, fmt.Errorf("vl6180x: interrupt clear failed: %w", err)
	}
	// 0.32 lux/count calibration for x1 gain scaled by the 100ms
	// integration ratio; kept in this form to match the datasheet.
	return float32(raw) * 0.32 * 100 / (32 * 100), nil
}

// Identity holds the identification register block.
type Identity struct {
	Model    byte
	Revision byte
	Module   byte
}

// Identify reads the identification registers. Used by the wiring
// diagnostics to verify the device at 0x29 really is a VL6180X.
func (s *VL6180X) Identify(ctx context.Context) (Identity, error) {
	var id Identity
	var err error
	if id.Model, err = s.dev.ReadByte(ctx, regIdentificationModelID); err != nil {
		return id, fmt.Errorf("vl6180x: model id read failed: %w", err)
	}
	if id.Revision, err = s.dev.ReadByte(ctx, regIdentificationRevision); err != nil {
		return id, fmt.Errorf("vl6180x: revision id read failed: %w", err)
	}
	if id.Module, err = s.dev.ReadByte(ctx, regIdentificationModule); err != nil {
		return id, fmt.Errorf("vl6180x: module id read failed: %w", err)
	}
	return id, nil
}
