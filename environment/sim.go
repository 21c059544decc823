package environment

import (
	"context"
	"math/rand"
	"time"
)

// SimSHT31 is a drop-in replacement for SHT31 used when no hardware is
// attached. Readings are pseudo-random values within plausible indoor
// ranges (15-35 C, 30-80 %RH); calls never touch a bus, never sleep and
// never fail.
type SimSHT31 struct {
	rnd *rand.Rand
}

func NewSimSHT31() *SimSHT31 {
	return &SimSHT31{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *SimSHT31) Measure(ctx context.Context) (float32, float32, error) {
	temp := 15.0 + 20.0*s.rnd.Float32()
	hum := 30.0 + 50.0*s.rnd.Float32()
	return temp, hum, nil
}

func (s *SimSHT31) GetTemperature(ctx context.Context) (float32, error) {
	temp, _, err := s.Measure(ctx)
	return temp, err
}

func (s *SimSHT31) GetHumidity(ctx context.Context) (float32, error) {
	_, hum, err := s.Measure(ctx)
	return hum, err
}

func (s *SimSHT31) GetTempAndHum(ctx context.Context) (float32, float32, error) {
	return s.Measure(ctx)
}

// SimBH1750 is a hardware-free stand-in for BH1750 returning plausible
// indoor illuminance.
type SimBH1750 struct {
	rnd *rand.Rand
}

func NewSimBH1750() *SimBH1750 {
	return &SimBH1750{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *SimBH1750) GetLux(ctx context.Context) (float32, error) {
	return 50.0 + 450.0*s.rnd.Float32(), nil
}
