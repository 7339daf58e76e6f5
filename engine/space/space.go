package space

import (
	"context"
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/google/uuid"
	"github.com/tutumagi/crossaoi/engine/aoi"
	"github.com/tutumagi/crossaoi/engine/utils"
	"github.com/tutumagi/crossaoi/logger"
	"github.com/tutumagi/crossaoi/metrics"
	"go.uber.org/atomic"
)

// Space the entities container, owns one coordinate system.
//	Enter, Leave, Move and Tick must run on one goroutine: either before Run
//	starts or through Post once it does.
type Space struct {
	ID string

	config   Config
	system   *aoi.CoordSystem
	entities Map
	listener Listener

	reporters []metrics.Reporter
	tags      map[string]string
	lastStats aoi.Stats
	ticks     uint64

	jobs      chan func()
	destroyed *atomic.Bool
}

// Option configures a Space
type Option func(s *Space)

// WithID overrides the random space id
func WithID(id string) Option {
	return func(s *Space) {
		if id != "" {
			s.ID = id
		}
	}
}

// WithListener sets the event listener
func WithListener(l Listener) Option {
	return func(s *Space) {
		if l != nil {
			s.listener = l
		}
	}
}

// WithReporters sets the metrics reporters fed by Tick
func WithReporters(reporters ...metrics.Reporter) Option {
	return func(s *Space) {
		s.reporters = append(s.reporters, reporters...)
	}
}

// NewSpace ctor, cfg must be valid
func NewSpace(cfg Config, opts ...Option) (*Space, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Space{
		ID:        uuid.New().String(),
		config:    cfg,
		entities:  Map{},
		listener:  BaseListener{},
		jobs:      make(chan func(), cfg.JobQueueSize),
		destroyed: atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.system = aoi.NewCoordSystem(aoi.WithVerify(cfg.Verify))
	s.tags = map[string]string{"space": s.ID}
	return s, nil
}

func (s *Space) String() string {
	if s == nil {
		return "nil"
	}
	return fmt.Sprintf("<Space>(%s count:%d)", s.ID, len(s.entities))
}

/****************** Getter *****************/

// Config the space settings
func (s *Space) Config() Config {
	return s.config
}

// System the coordinate system of the space
func (s *Space) System() *aoi.CoordSystem {
	return s.system
}

// Entity 获取实体
func (s *Space) Entity(id string) *Entity {
	return s.entities.Get(id)
}

// Entities snapshot of every entity in the space
func (s *Space) Entities() []*Entity {
	return s.entities.Values()
}

// Count entity count
func (s *Space) Count() int {
	return len(s.entities)
}

// Destroyed reports whether Destroy ran, safe from any goroutine
func (s *Space) Destroyed() bool {
	return s.destroyed.Load()
}

// Dump 当前坐标系统的所有节点
func (s *Space) Dump() string {
	return s.system.Dump()
}

// inBounds x/z inside the space, every axis finite: the index cannot order NaN
func (s *Space) inBounds(pos aoi.Vector3) bool {
	for _, v := range [...]float32{pos.X, pos.Y, pos.Z} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return pos.X >= 0 && pos.X <= s.config.Width && pos.Z >= 0 && pos.Z <= s.config.Height
}

/****************** 实体进出和移动 *****************/

// Enter 实体进入场景
func (s *Space) Enter(e *Entity, pos aoi.Vector3) error {
	if s.Destroyed() {
		return ErrSpaceDestroyed
	}
	if e.space != nil {
		return ErrEntityInSpace
	}
	if s.entities.Get(e.ID) != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateEntity, e.ID)
	}
	if !s.inBounds(pos) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}

	if e.radius < 0 {
		e.radius = s.config.ViewRadius
	}

	e.space = s
	s.entities.Add(e)
	// 实体从 A 场景迁移到 B 场景时，原来在A场景用到的pos 已经不适用了
	e.coord.SetVec3(pos)

	e.witness = aoi.NewWitness()
	e.witness.Attach(e)
	e.witness.SetViewRadius(e.radius, s.config.Hysteresis)

	if !e.coord.EnterSystem(s.system) {
		e.witness.Detach(e)
		e.witness = nil
		s.entities.Del(e.ID)
		e.space = nil
		return fmt.Errorf("%s: %s could not enter the index", s, e)
	}
	e.witness.InstallViewTrigger()

	logger.Debugf("%s enter %s", e, s)
	s.listener.OnEntityEnter(s, e)
	return nil
}

// Leave 实体离开场景, its nodes are unlinked on the next Tick
func (s *Space) Leave(e *Entity) error {
	if e.space != s {
		return ErrEntityNotInSpace
	}

	// 先离开坐标系统，其他实体通过触发器收到离开视野，再清理自己的视野
	e.coord.LeaveSystem()
	e.witness.Detach(e)
	e.witness = nil

	s.entities.Del(e.ID)
	e.space = nil

	logger.Debugf("%s leave %s", e, s)
	s.listener.OnEntityLeave(s, e)
	return nil
}

// Move 实体移动, a move below the float tolerance is ignored
func (s *Space) Move(e *Entity, pos aoi.Vector3) error {
	if e.space != s {
		return ErrEntityNotInSpace
	}
	if !s.inBounds(pos) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	old := e.coord.Position()
	if utils.FloatEqualHigh(old.X, pos.X) && utils.FloatEqualHigh(old.Y, pos.Y) && utils.FloatEqualHigh(old.Z, pos.Z) {
		return nil
	}
	e.coord.SetVec3(pos)
	e.coord.Update()
	return nil
}

func (s *Space) onEnterView(e *Entity, other *Entity) {
	logger.DayLogRecord(s.config.DayLogFlag, "%s enter %s %s", s.ID, e.ID, other.ID)
	s.listener.OnEnterView(e, other)
}

func (s *Space) onLeaveView(e *Entity, other *Entity) {
	logger.DayLogRecord(s.config.DayLogFlag, "%s leave %s %s", s.ID, e.ID, other.ID)
	s.listener.OnLeaveView(e, other)
}

/****************** tick / run *****************/

// Tick unlinks removed nodes, releases them every ReleaseEvery ticks and
// reports the index counters.
func (s *Space) Tick() {
	start := time.Now()

	s.system.RemoveDelNodes()
	s.ticks++
	if s.ticks%uint64(s.config.ReleaseEvery) == 0 {
		s.system.ReleaseNodes()
	}

	s.reportStats()
	metrics.ReportTimingToAll(s.reporters, metrics.TickTime, s.tags, start)
}

func (s *Space) reportStats() {
	if len(s.reporters) == 0 {
		return
	}
	st := s.system.Stats()
	last := s.lastStats
	s.lastStats = st

	metrics.ReportGaugeToAll(s.reporters, metrics.NodeCount, s.tags, float64(s.system.Size()))
	metrics.ReportGaugeToAll(s.reporters, metrics.EntityCount, s.tags, float64(len(s.entities)))

	for _, a := range aoi.Axes {
		tags := map[string]string{"space": s.ID, "axis": a.String()}
		metrics.ReportCountToAll(s.reporters, metrics.SwapCount, tags, float64(st.Swaps[a]-last.Swaps[a]))
	}
	metrics.ReportCountToAll(s.reporters, metrics.UpdateCount, s.tags, float64(st.Updates-last.Updates))
	metrics.ReportCountToAll(s.reporters, metrics.InsertCount, s.tags, float64(st.Inserts-last.Inserts))
	metrics.ReportCountToAll(s.reporters, metrics.RemoveCount, s.tags, float64(st.Removes-last.Removes))
	metrics.ReportCountToAll(s.reporters, metrics.ReleaseCount, s.tags, float64(st.Released-last.Released))
}

// Post queues fn to run on the space goroutine, safe from any goroutine
func (s *Space) Post(fn func()) error {
	if s.Destroyed() {
		return ErrSpaceDestroyed
	}
	select {
	case s.jobs <- fn:
		return nil
	default:
		return ErrJobQueueFull
	}
}

// Run ticks the space and runs posted jobs until ctx is done or the space is
// destroyed. A panicking job is logged and skipped unless it left the index
// inside a traversal.
func (s *Space) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.config.TickInterval)
	defer ticker.Stop()

	logger.Infof("%s running, tick %s", s, s.config.TickInterval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case job := <-s.jobs:
			if !utils.RunPanicless(job) && s.system.Traversing() {
				return fmt.Errorf("%s: %w", s, ErrIndexCorrupted)
			}
			if s.Destroyed() {
				return ErrSpaceDestroyed
			}
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Destroy 所有实体离开，释放坐标系统的节点
func (s *Space) Destroy() {
	if !s.destroyed.CAS(false, true) {
		return
	}
	for _, e := range s.entities.Values() {
		if err := s.Leave(e); err != nil {
			logger.Warnf("%s destroy, %s leave failed: %v", s, e, err)
		}
	}
	s.system.ReleaseNodes()
	spaceManager.delSpace(s.ID)
	logger.Infof("%s destroyed", s)
}
