package devicectl

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Simulator stands in for a real device: installs take a fixed delay,
// screenshots are placeholder records, metrics are synthetic.
type Simulator struct {
	InstallDelay time.Duration
}

func NewSimulator(installDelay time.Duration) *Simulator {
	if installDelay <= 0 {
		installDelay = 2 * time.Second
	}
	return &Simulator{InstallDelay: installDelay}
}

// Install waits out the configured delay. The delay is deliberately not
// cancellable: once issued, the simulated installation runs to completion,
// same as the real thing would.
func (s *Simulator) Install(_ context.Context, _ string, _ string) error {
	time.Sleep(s.InstallDelay)
	return nil
}

func (s *Simulator) Capture(_ context.Context) (string, error) {
	return "screenshot-" + uuid.NewString() + ".png", nil
}

func (s *Simulator) Poll(_ context.Context) (Metrics, error) {
	return Metrics{
		LoadTime:         500 + rand.Float64()*1000,
		DOMContentLoaded: 200 + rand.Float64()*800,
		FirstPaint:       100 + rand.Float64()*600,
		MemoryUsage:      50 + rand.Float64()*100,
		CPUUsage:         10 + rand.Float64()*30,
	}, nil
}
