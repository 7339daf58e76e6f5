package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tutumagi/crossaoi/engine/aoi"
	"github.com/tutumagi/crossaoi/engine/space"
	"github.com/tutumagi/crossaoi/engine/utils"
	"github.com/tutumagi/crossaoi/logger"
	"github.com/tutumagi/crossaoi/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// viewCounter counts view events, it runs on the space goroutine
type viewCounter struct {
	space.BaseListener

	enters int
	leaves int
}

func (v *viewCounter) OnEnterView(e *space.Entity, other *space.Entity) {
	v.enters++
}

func (v *viewCounter) OnLeaveView(e *space.Entity, other *space.Entity) {
	v.leaves++
}

type simulator struct {
	space    *space.Space
	entities []*space.Entity
	step     float32
	counter  *viewCounter
	walks    int
}

func newSimulator(cfg space.Config, step float32, reporters []metrics.Reporter) (*simulator, error) {
	counter := &viewCounter{}
	s, err := space.CreateSpace(cfg, space.WithListener(counter), space.WithReporters(reporters...))
	if err != nil {
		return nil, err
	}
	return &simulator{
		space:   s,
		step:    step,
		counter: counter,
	}, nil
}

func (sim *simulator) randomPos() aoi.Vector3 {
	cfg := sim.space.Config()
	return aoi.Vector3{
		X: utils.RandomFloat32(0, cfg.Width),
		Y: 0,
		Z: utils.RandomFloat32(0, cfg.Height),
	}
}

// populate enters count entities with the space radius at random positions
func (sim *simulator) populate(count int) error {
	for i := 0; i < count; i++ {
		e := space.NewEntity("npc", fmt.Sprintf("npc%d", i), space.UseSpaceRadius)
		if err := sim.space.Enter(e, sim.randomPos()); err != nil {
			return err
		}
		sim.entities = append(sim.entities, e)
	}
	return nil
}

// walk moves every entity by up to step on x and z, clamped to the space
func (sim *simulator) walk() error {
	cfg := sim.space.Config()
	for _, e := range sim.entities {
		p := e.Position()
		next := aoi.Vector3{
			X: utils.ClampFloat32(p.X+utils.RandomFloat32(-sim.step, sim.step), 0, cfg.Width),
			Y: p.Y,
			Z: utils.ClampFloat32(p.Z+utils.RandomFloat32(-sim.step, sim.step), 0, cfg.Height),
		}
		if err := sim.space.Move(e, next); err != nil {
			return err
		}
	}
	sim.walks++
	return nil
}

func (sim *simulator) summary() []zap.Field {
	st := sim.space.System().Stats()
	return []zap.Field{
		zap.String("space", sim.space.ID),
		zap.Int("entities", sim.space.Count()),
		zap.Int("nodes", sim.space.System().Size()),
		zap.Int("walks", sim.walks),
		zap.Int("enters", sim.counter.enters),
		zap.Int("leaves", sim.counter.leaves),
		zap.Uint64("swapsX", st.Swaps[aoi.AxisX]),
		zap.Uint64("swapsZ", st.Swaps[aoi.AxisZ]),
		zap.Uint64("updates", st.Updates),
	}
}

// run drives the space goroutine: one walk per tick interval, ticks times,
// then the space is destroyed and run returns nil.
func (sim *simulator) run(ctx context.Context, ticks int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := sim.space.Run(gctx)
		cancel()
		if errors.Is(err, space.ErrSpaceDestroyed) || errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		ticker := time.NewTicker(sim.space.Config().TickInterval)
		defer ticker.Stop()

		failed := make(chan error, 1)
		walk := func() {
			if err := sim.walk(); err != nil {
				select {
				case failed <- err:
				default:
				}
			}
		}
		for i := 0; i < ticks; i++ {
			select {
			case <-gctx.Done():
				return nil
			case err := <-failed:
				return err
			case <-ticker.C:
				if err := sim.space.Post(walk); err != nil {
					logger.Warnf("walk %d dropped: %v", i, err)
				}
			}
		}
		return sim.space.Post(func() {
			logger.Info("simulation done", sim.summary()...)
			sim.space.Destroy()
		})
	})

	return g.Wait()
}

func simulationConfig() space.Config {
	spaceCfg := space.NewConfig(cfg)
	if viewRadius >= 0 {
		spaceCfg.ViewRadius = viewRadius
	}
	return spaceCfg
}

func seedRandom() {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rand.Seed(seed)
	logger.Infof("random seed %d", seed)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	seedRandom()
	reporters, prom := metrics.Configure(serverType, cfg)

	sim, err := newSimulator(simulationConfig(), stepSize, reporters)
	if err != nil {
		return err
	}
	if err := sim.populate(entityCount); err != nil {
		return err
	}
	logger.Info("space populated", sim.summary()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	simCtx, simDone := context.WithCancel(gctx)

	g.Go(func() error {
		defer simDone()
		return sim.run(simCtx, tickCount)
	})

	if prom != nil {
		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.GetInt("aoi.metrics.prometheus.port")),
			Handler: prom.Handler(),
		}
		g.Go(func() error {
			logger.Infof("serving metrics on %s", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-simCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

func dumpSimulation(cmd *cobra.Command, args []string) error {
	seedRandom()
	sim, err := newSimulator(simulationConfig(), stepSize, nil)
	if err != nil {
		return err
	}
	if err := sim.populate(entityCount); err != nil {
		return err
	}
	for i := 0; i < tickCount; i++ {
		if err := sim.walk(); err != nil {
			return err
		}
		sim.space.Tick()
	}
	if err := sim.space.System().Verify(); err != nil {
		return fmt.Errorf("index check failed: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), sim.space.Dump())
	logger.Info("dump done", sim.summary()...)
	return nil
}
