package main

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutumagi/crossaoi/engine/space"
)

func simConfig() space.Config {
	cfg := space.NewDefaultConfig()
	cfg.TickInterval = time.Millisecond
	cfg.Width = 200
	cfg.Height = 200
	cfg.ViewRadius = 20
	cfg.Hysteresis = 0
	return cfg
}

func interestCount(s *space.Space) int {
	n := 0
	for _, e := range s.Entities() {
		n += len(e.InterestedIn())
	}
	return n
}

func inView(e, o *space.Entity) bool {
	p, op, r := e.Position(), o.Position(), e.ViewRadius()
	return op.X >= p.X-r && op.X <= p.X+r && op.Z >= p.Z-r && op.Z <= p.Z+r
}

func TestSimulatorWalk(t *testing.T) {
	rand.Seed(7)
	sim, err := newSimulator(simConfig(), 8, nil)
	require.NoError(t, err)
	defer sim.space.Destroy()

	require.NoError(t, sim.populate(150))
	assert.Equal(t, 150, sim.space.Count())

	for i := 0; i < 30; i++ {
		require.NoError(t, sim.walk())
		sim.space.Tick()
	}
	assert.Equal(t, 30, sim.walks)
	require.NoError(t, sim.space.System().Verify())

	cfg := sim.space.Config()
	entities := sim.space.Entities()
	for _, e := range entities {
		p := e.Position()
		assert.True(t, p.X >= 0 && p.X <= cfg.Width && p.Z >= 0 && p.Z <= cfg.Height, "%s out of bounds at %v", e, p)
		for _, o := range entities {
			if o == e {
				continue
			}
			assert.Equal(t, inView(e, o), e.IsInterestedIn(o), "%s sees %s", e, o)
		}
	}
	assert.Equal(t, sim.counter.enters-sim.counter.leaves, interestCount(sim.space))
}

func TestSimulatorRun(t *testing.T) {
	rand.Seed(11)
	sim, err := newSimulator(simConfig(), 4, nil)
	require.NoError(t, err)
	require.NoError(t, sim.populate(50))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, sim.run(ctx, 5))
	assert.Equal(t, 5, sim.walks)
	assert.True(t, sim.space.Destroyed())
	assert.Equal(t, 0, sim.space.Count())
	assert.Equal(t, sim.counter.enters, sim.counter.leaves)
	assert.Nil(t, space.GetSpace(sim.space.ID))
}

func TestSimulatorRunCanceled(t *testing.T) {
	sim, err := newSimulator(simConfig(), 4, nil)
	require.NoError(t, err)
	defer sim.space.Destroy()
	require.NoError(t, sim.populate(10))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, sim.run(ctx, 1000))
	assert.False(t, sim.space.Destroyed())
}
