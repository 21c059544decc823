package proximity

import (
	"context"
	"math/rand"
	"time"
)

// SimVL6180X is a hardware-free stand-in for VL6180X. Construction
// performs no bus traffic and readings are pseudo-random values within
// the sensor's useful ranges (10-200 mm, 0.1-10.0 lux).
type SimVL6180X struct {
	rnd *rand.Rand
}

func NewSimVL6180X() *SimVL6180X {
	return &SimVL6180X{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *SimVL6180X) GetDistance(ctx context.Context) (float32, error) {
	return 10.0 + 190.0*s.rnd.Float32(), nil
}

func (s *SimVL6180X) GetLux(ctx context.Context) (float32, error) {
	return 0.1 + 9.9*s.rnd.Float32(), nil
}

func (s *SimVL6180X) Identify(ctx context.Context) (Identity, error) {
	return Identity{Model: ModelID, Revision: 0x01, Module: 0x01}, nil
}
