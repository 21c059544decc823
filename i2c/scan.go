package i2c

import (
	"context"
)

// Valid 7-bit device address range; addresses outside it are reserved.
const (
	scanFirst = 0x03
	scanLast  = 0x77
)

// Scan probes every valid 7-bit address with a one-byte read and returns
// the addresses that acknowledged. Devices that only respond to writes
// (or that dislike empty reads) may be missed; the result is a wiring
// hint, not an inventory.
func (b *GenericBus) Scan(ctx context.Context) ([]byte, error) {
	var found []byte
	buf := make([]byte, 1)
	for addr := byte(scanFirst); addr <= scanLast; addr++ {
		select {
		case <-ctx.Done():
			return found, ctx.Err()
		default:
		}
		if err := b.ReadFromAddr(ctx, addr, buf); err == nil {
			found = append(found, addr)
		}
	}
	return found, nil
}
