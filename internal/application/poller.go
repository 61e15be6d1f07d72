package application

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/openlist-contrib/openlist-bridge/internal/domain"
	"github.com/openlist-contrib/openlist-bridge/internal/ports"
)

const DefaultPollInterval = 2 * time.Minute

// taskDetailLimit caps how many task records a sensor carries as attributes.
const taskDetailLimit = 20

type PollerConfig struct {
	Interval  time.Duration
	TrackDirs []string

	// Initial seeds the sensor table with a previously captured snapshot so
	// a one-shot cycle keeps persisted last-good values for targets that
	// fail. Sensors outside the current descriptor table are ignored.
	Initial domain.SensorSnapshot

	// Progress, when set, is called with a target label as each fetch
	// starts.
	Progress func(target string)
}

// Poller keeps the sensor table consistent with the remote service. It is
// the sole writer of sensor state: each cycle fetches every tracked
// directory and task queue, publishes the results, and persists a snapshot.
type Poller struct {
	service   ports.FileService
	snapshots ports.SnapshotRepository
	clock     ports.Clock
	logger    *log.Logger
	interval  time.Duration
	trackDirs []string
	progress  func(target string)

	inFlight atomic.Bool

	mu     sync.RWMutex
	order  []domain.SensorKey
	states map[string]domain.SensorState
}

// NewPoller builds the fixed sensor table up front; the set of sensors never
// changes after construction. snapshots may be nil to skip persistence.
func NewPoller(service ports.FileService, snapshots ports.SnapshotRepository, clock ports.Clock, logger *log.Logger, cfg PollerConfig) *Poller {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = log.New(log.Writer(), "", log.LstdFlags)
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	order := domain.SensorKeys(cfg.TrackDirs)
	states := make(map[string]domain.SensorState, len(order))
	for _, key := range order {
		states[key.String()] = domain.SensorState{Key: key}
	}
	for _, sensor := range cfg.Initial.Sensors {
		if _, ok := states[sensor.Key.String()]; ok {
			states[sensor.Key.String()] = sensor
		}
	}

	return &Poller{
		service:   service,
		snapshots: snapshots,
		clock:     clock,
		logger:    logger,
		interval:  interval,
		trackDirs: cfg.TrackDirs,
		progress:  cfg.Progress,
		order:     order,
		states:    states,
	}
}

// Run polls on a fixed interval until ctx is cancelled. The first cycle runs
// immediately.
func (p *Poller) Run(ctx context.Context) error {
	p.RunCycle(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !p.RunCycle(ctx) {
				p.logger.Printf("poll: previous cycle still running, tick skipped")
			}
		}
	}
}

// RunCycle executes one Fetching → Publishing pass. It reports false when a
// cycle is already in flight: overlapping ticks are dropped, never queued.
// A cancelled cycle publishes nothing.
func (p *Poller) RunCycle(ctx context.Context) bool {
	if !p.inFlight.CompareAndSwap(false, true) {
		return false
	}
	defer p.inFlight.Store(false)

	cycle := uuid.NewString()[:8]

	for _, dir := range p.trackDirs {
		if ctx.Err() != nil {
			return true
		}
		p.pollDirectory(ctx, cycle, dir)
	}

	for _, taskType := range domain.TaskTypes() {
		if ctx.Err() != nil {
			return true
		}
		p.pollTaskType(ctx, cycle, taskType)
	}

	if ctx.Err() != nil {
		return true
	}

	if p.snapshots != nil {
		if err := p.snapshots.Save(ctx, p.Snapshot()); err != nil {
			p.logger.Printf("poll %s: save snapshot: %v", cycle, err)
		}
	}

	return true
}

func (p *Poller) pollDirectory(ctx context.Context, cycle, dir string) {
	key := domain.DirSensorKey(dir)
	p.reportProgress("dir " + dir)

	list, err := p.service.ListFiles(ctx, domain.ListRequest{Path: dir, Page: 1})
	if err != nil {
		// A cancelled cycle leaves the sensor exactly as it was.
		if ctx.Err() != nil {
			return
		}
		p.logger.Printf("poll %s: dir %s: %v", cycle, dir, err)
		p.markUnavailable(key)
		return
	}

	p.publish(domain.SensorState{
		Key:       key,
		Value:     len(list.Entries),
		Available: true,
		Attrs: domain.SensorAttrs{
			FileNames:      list.Names(),
			LatestModified: list.LatestModified(),
		},
	})
}

// pollTaskType publishes the three counters of one queue atomically: when
// either sub-call fails, none of them move and all three go unavailable.
func (p *Poller) pollTaskType(ctx context.Context, cycle string, taskType domain.TaskType) {
	p.reportProgress("tasks " + string(taskType))

	done, err := p.service.GetTaskDone(ctx, taskType)
	if err == nil {
		var undone []domain.Task
		undone, err = p.service.GetTaskUndone(ctx, taskType)
		if err == nil {
			p.publishTaskCounts(taskType, done, undone)
			return
		}
	}

	if ctx.Err() != nil {
		return
	}

	p.logger.Printf("poll %s: tasks %s: %v", cycle, taskType, err)
	for _, kind := range domain.TaskSensorKinds() {
		p.markUnavailable(domain.TaskSensorKey(taskType, kind))
	}
}

func (p *Poller) reportProgress(target string) {
	if p.progress != nil {
		p.progress(target)
	}
}

func (p *Poller) publishTaskCounts(taskType domain.TaskType, done, undone []domain.Task) {
	counts := domain.CountTasks(taskType, done, undone)

	succeeded := make([]domain.Task, 0, counts.DoneSucceeded)
	failed := make([]domain.Task, 0, counts.DoneFailed)
	for _, task := range done {
		if task.Succeeded() {
			succeeded = append(succeeded, task)
		} else {
			failed = append(failed, task)
		}
	}

	p.publish(domain.SensorState{
		Key:       domain.TaskSensorKey(taskType, domain.TaskSensorDone),
		Value:     counts.DoneSucceeded,
		Available: true,
		Attrs:     domain.SensorAttrs{Tasks: capTasks(succeeded)},
	})
	p.publish(domain.SensorState{
		Key:       domain.TaskSensorKey(taskType, domain.TaskSensorUndone),
		Value:     counts.Undone,
		Available: true,
		Attrs:     domain.SensorAttrs{Tasks: capTasks(undone)},
	})
	p.publish(domain.SensorState{
		Key:       domain.TaskSensorKey(taskType, domain.TaskSensorFailed),
		Value:     counts.DoneFailed,
		Available: true,
		Attrs:     domain.SensorAttrs{Tasks: capTasks(failed)},
	})
}

func capTasks(tasks []domain.Task) []domain.Task {
	if len(tasks) <= taskDetailLimit {
		return tasks
	}
	return tasks[:taskDetailLimit]
}

func (p *Poller) publish(state domain.SensorState) {
	state.LastUpdated = p.clock.Now()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.states[state.Key.String()] = state
}

// markUnavailable flags a sensor without discarding its last good value.
func (p *Poller) markUnavailable(key domain.SensorKey) {
	p.mu.Lock()
	defer p.mu.Unlock()

	state := p.states[key.String()]
	state.Key = key
	state.Available = false
	state.LastUpdated = p.clock.Now()
	p.states[key.String()] = state
}

// Snapshot returns the current sensor table in descriptor order.
func (p *Poller) Snapshot() domain.SensorSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	sensors := make([]domain.SensorState, 0, len(p.order))
	for _, key := range p.order {
		sensors = append(sensors, p.states[key.String()])
	}

	return domain.SensorSnapshot{
		CapturedAt: p.clock.Now(),
		Sensors:    sensors,
	}
}
