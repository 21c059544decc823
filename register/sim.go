package register

import (
	"context"
	"math/rand"

	iotkit "github.com/koninico/iot-kit"
)

var _ iotkit.I2CBus = &SimBus{}

// SimBus is an I2C bus that never touches hardware. Reads return canned
// data (queued responses first, then either random bytes or a fixed fill
// byte) and writes are counted no-ops. It lets the drivers and the CLI
// run on machines with no sensors attached.
type SimBus struct {
	// Fill is the byte used for reads with no queued response.
	Fill byte
	// Rand, when set, fills reads with random bytes instead of Fill.
	Rand *rand.Rand

	queued map[byte][][]byte
	writes int
}

func NewSimBus() *SimBus {
	return &SimBus{Fill: 0xFF}
}

// Queue registers a canned response for the next read from address.
// Responses queue in FIFO order per address.
func (b *SimBus) Queue(address byte, data []byte) {
	if b.queued == nil {
		b.queued = make(map[byte][][]byte)
	}
	b.queued[address] = append(b.queued[address], data)
}

// WriteCount returns the number of write transactions issued so far.
func (b *SimBus) WriteCount() int { return b.writes }

func (b *SimBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	if q := b.queued[address]; len(q) > 0 {
		copy(buffer, q[0])
		b.queued[address] = q[1:]
		return nil
	}
	for i := range buffer {
		if b.Rand != nil {
			buffer[i] = byte(b.Rand.Intn(256))
		} else {
			buffer[i] = b.Fill
		}
	}
	return nil
}

func (b *SimBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	b.writes++
	return nil
}

func (b *SimBus) Release(ctx context.Context) error {
	return nil
}
