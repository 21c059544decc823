package iotkit

import (
	"context"
	"errors"
	"fmt"
)

var ErrBusBusy = fmt.Errorf("I2C engine is busy (command not completed)")

type BusReader interface {
	Read(ctx context.Context, buffer []byte) error
}

type BusWriter interface {
	Write(ctx context.Context, buffer []byte) error
}

type AddressableReader interface {
	ReadFromAddr(ctx context.Context, address byte, buffer []byte) error
}

type AddressableWriter interface {
	WriteToAddr(ctx context.Context, address byte, buffer []byte) error
	Release(ctx context.Context) error
}

type I2CBus interface {
	AddressableReader
	AddressableWriter
}

type I2CDevice interface {
	BusReader
	BusWriter
}

// TransportError marks a bus-level failure (timeout, no ACK, I/O error).
// Transports wrap the OS-level cause so callers can decide whether an
// operation is worth retrying.
type TransportError struct {
	Op      string
	Address byte
	Cause   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("i2c %s %#02x: %v", e.Op, e.Address, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// IsTransport reports whether err originates from the bus transport.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// ConfigurationError marks an invalid register/address combination
// rejected before touching the bus.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid device configuration: %s", e.Reason)
}
