package application

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/openlist-contrib/openlist-bridge/internal/domain"
	"github.com/openlist-contrib/openlist-bridge/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPoller(service *fakeService, snapshots *fakeSnapshotRepo, trackDirs []string) *Poller {
	var repo ports.SnapshotRepository
	if snapshots != nil {
		repo = snapshots
	}
	return NewPoller(service, repo, newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)),
		log.New(io.Discard, "", 0), PollerConfig{TrackDirs: trackDirs})
}

func findSensor(t *testing.T, snapshot domain.SensorSnapshot, key domain.SensorKey) domain.SensorState {
	t.Helper()

	for _, sensor := range snapshot.Sensors {
		if sensor.Key == key {
			return sensor
		}
	}
	t.Fatalf("sensor %s not found in snapshot", key)
	return domain.SensorState{}
}

func TestPollerPublishesDirectoryAndTaskSensors(t *testing.T) {
	t.Parallel()

	service := newFakeService()
	service.listFilesFn = func(_ context.Context, req domain.ListRequest) (domain.FileList, error) {
		require.Equal(t, "/media", req.Path)
		return domain.FileList{Entries: []domain.FileEntry{
			{Name: "a.mkv", Modified: "2026-07-01T00:00:00Z"},
			{Name: "b.mkv", Modified: "2026-07-15T00:00:00Z"},
		}}, nil
	}

	snapshots := &fakeSnapshotRepo{}
	poller := newTestPoller(service, snapshots, []string{"/media"})

	require.True(t, poller.RunCycle(context.Background()))

	snapshot := poller.Snapshot()
	require.Len(t, snapshot.Sensors, 1+3*len(domain.TaskTypes()))

	dir := findSensor(t, snapshot, domain.DirSensorKey("/media"))
	assert.True(t, dir.Available)
	assert.Equal(t, 2, dir.Value)
	assert.Equal(t, []string{"a.mkv", "b.mkv"}, dir.Attrs.FileNames)
	assert.Equal(t, "2026-07-15T00:00:00Z", dir.Attrs.LatestModified)
	assert.False(t, dir.LastUpdated.IsZero())

	for _, taskType := range domain.TaskTypes() {
		for _, kind := range domain.TaskSensorKinds() {
			sensor := findSensor(t, snapshot, domain.TaskSensorKey(taskType, kind))
			assert.True(t, sensor.Available)
			assert.Zero(t, sensor.Value)
		}
	}

	assert.Equal(t, 1, snapshots.saveCount())
}

func TestPollerCountsTaskStates(t *testing.T) {
	t.Parallel()

	service := newFakeService()
	service.getTaskDoneFn = func(_ context.Context, taskType domain.TaskType) ([]domain.Task, error) {
		if taskType != domain.TaskUpload {
			return nil, nil
		}
		return []domain.Task{
			{ID: "ok", State: domain.TaskStateSucceeded},
			{ID: "boom", State: 7, Error: "disk full"},
		}, nil
	}
	service.getTaskUndoneFn = func(_ context.Context, taskType domain.TaskType) ([]domain.Task, error) {
		if taskType != domain.TaskUpload {
			return nil, nil
		}
		return []domain.Task{{ID: "busy", State: 1}}, nil
	}

	poller := newTestPoller(service, nil, nil)
	require.True(t, poller.RunCycle(context.Background()))

	snapshot := poller.Snapshot()

	done := findSensor(t, snapshot, domain.TaskSensorKey(domain.TaskUpload, domain.TaskSensorDone))
	assert.Equal(t, 1, done.Value)
	require.Len(t, done.Attrs.Tasks, 1)
	assert.Equal(t, "ok", done.Attrs.Tasks[0].ID)

	undone := findSensor(t, snapshot, domain.TaskSensorKey(domain.TaskUpload, domain.TaskSensorUndone))
	assert.Equal(t, 1, undone.Value)

	failed := findSensor(t, snapshot, domain.TaskSensorKey(domain.TaskUpload, domain.TaskSensorFailed))
	assert.Equal(t, 1, failed.Value)
	require.Len(t, failed.Attrs.Tasks, 1)
	assert.Equal(t, "boom", failed.Attrs.Tasks[0].ID)
}

func TestPollerTaskCountersMoveTogetherOrNotAtAll(t *testing.T) {
	t.Parallel()

	service := newFakeService()
	failUndone := false
	service.getTaskDoneFn = func(context.Context, domain.TaskType) ([]domain.Task, error) {
		return []domain.Task{{ID: "ok", State: domain.TaskStateSucceeded}}, nil
	}
	service.getTaskUndoneFn = func(context.Context, domain.TaskType) ([]domain.Task, error) {
		if failUndone {
			return nil, errors.New("gateway timeout")
		}
		return nil, nil
	}

	poller := newTestPoller(service, nil, nil)
	require.True(t, poller.RunCycle(context.Background()))

	done := findSensor(t, poller.Snapshot(), domain.TaskSensorKey(domain.TaskCopy, domain.TaskSensorDone))
	assert.Equal(t, 1, done.Value)
	assert.True(t, done.Available)

	// Half a queue failing must not move any of its three counters.
	failUndone = true
	require.True(t, poller.RunCycle(context.Background()))

	snapshot := poller.Snapshot()
	for _, kind := range domain.TaskSensorKinds() {
		sensor := findSensor(t, snapshot, domain.TaskSensorKey(domain.TaskCopy, kind))
		assert.False(t, sensor.Available)
	}
	done = findSensor(t, snapshot, domain.TaskSensorKey(domain.TaskCopy, domain.TaskSensorDone))
	assert.Equal(t, 1, done.Value, "last good value is retained")
}

func TestPollerIsolatesFailingDirectories(t *testing.T) {
	t.Parallel()

	service := newFakeService()
	service.listFilesFn = func(_ context.Context, req domain.ListRequest) (domain.FileList, error) {
		if req.Path == "/broken" {
			return domain.FileList{}, errors.New("storage offline")
		}
		return domain.FileList{Entries: []domain.FileEntry{{Name: "x"}}}, nil
	}

	poller := newTestPoller(service, nil, []string{"/broken", "/media"})
	require.True(t, poller.RunCycle(context.Background()))

	snapshot := poller.Snapshot()

	broken := findSensor(t, snapshot, domain.DirSensorKey("/broken"))
	assert.False(t, broken.Available)

	media := findSensor(t, snapshot, domain.DirSensorKey("/media"))
	assert.True(t, media.Available)
	assert.Equal(t, 1, media.Value)
}

func TestPollerRetainsLastDirValueWhileUnavailable(t *testing.T) {
	t.Parallel()

	service := newFakeService()
	fail := false
	service.listFilesFn = func(context.Context, domain.ListRequest) (domain.FileList, error) {
		if fail {
			return domain.FileList{}, errors.New("storage offline")
		}
		return domain.FileList{Entries: make([]domain.FileEntry, 3)}, nil
	}

	poller := newTestPoller(service, nil, []string{"/media"})
	require.True(t, poller.RunCycle(context.Background()))

	fail = true
	require.True(t, poller.RunCycle(context.Background()))

	sensor := findSensor(t, poller.Snapshot(), domain.DirSensorKey("/media"))
	assert.False(t, sensor.Available)
	assert.Equal(t, 3, sensor.Value)
}

func TestPollerDropsOverlappingCycles(t *testing.T) {
	t.Parallel()

	service := newFakeService()
	entered := make(chan struct{})
	release := make(chan struct{})
	var enteredOnce sync.Once
	service.listFilesFn = func(context.Context, domain.ListRequest) (domain.FileList, error) {
		enteredOnce.Do(func() { close(entered) })
		<-release
		return domain.FileList{}, nil
	}

	poller := newTestPoller(service, nil, []string{"/media"})

	first := make(chan bool)
	go func() {
		first <- poller.RunCycle(context.Background())
	}()

	<-entered
	assert.False(t, poller.RunCycle(context.Background()), "a cycle in flight drops the new tick")

	close(release)
	assert.True(t, <-first)

	assert.True(t, poller.RunCycle(context.Background()), "a finished cycle frees the slot")
}

func TestPollerCancelledCyclePublishesNothing(t *testing.T) {
	t.Parallel()

	service := newFakeService()
	snapshots := &fakeSnapshotRepo{}
	poller := newTestPoller(service, snapshots, []string{"/media"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.True(t, poller.RunCycle(ctx))

	assert.Zero(t, service.totalCalls())
	assert.Zero(t, snapshots.saveCount())
	for _, sensor := range poller.Snapshot().Sensors {
		assert.False(t, sensor.Available)
		assert.True(t, sensor.LastUpdated.IsZero())
	}
}

func TestPollerSeedsFromInitialSnapshot(t *testing.T) {
	t.Parallel()

	service := newFakeService()
	service.listFilesFn = func(context.Context, domain.ListRequest) (domain.FileList, error) {
		return domain.FileList{}, errors.New("storage offline")
	}

	seeded := domain.SensorSnapshot{Sensors: []domain.SensorState{
		{
			Key:       domain.DirSensorKey("/media"),
			Value:     12,
			Available: true,
		},
		{
			// Stale key from an older track_dirs setting, must be ignored.
			Key:   domain.DirSensorKey("/gone"),
			Value: 99,
		},
	}}

	poller := NewPoller(service, nil, newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)),
		log.New(io.Discard, "", 0), PollerConfig{TrackDirs: []string{"/media"}, Initial: seeded})

	require.True(t, poller.RunCycle(context.Background()))

	sensor := findSensor(t, poller.Snapshot(), domain.DirSensorKey("/media"))
	assert.False(t, sensor.Available)
	assert.Equal(t, 12, sensor.Value, "a failing one-shot cycle keeps the seeded value")

	for _, sensor := range poller.Snapshot().Sensors {
		assert.NotEqual(t, domain.DirSensorKey("/gone"), sensor.Key)
	}
}

func TestPollerMidCycleCancellationLeavesSensorsUntouched(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	service := newFakeService()
	service.listFilesFn = func(ctx context.Context, _ domain.ListRequest) (domain.FileList, error) {
		cancel()
		return domain.FileList{}, ctx.Err()
	}

	snapshots := &fakeSnapshotRepo{}
	poller := newTestPoller(service, snapshots, []string{"/media"})

	require.True(t, poller.RunCycle(ctx))

	assert.Equal(t, 1, service.callCount("ListFiles"))
	assert.Zero(t, snapshots.saveCount())

	sensor := findSensor(t, poller.Snapshot(), domain.DirSensorKey("/media"))
	assert.False(t, sensor.Available)
	assert.True(t, sensor.LastUpdated.IsZero(), "cancellation is not a failure, the sensor stays untouched")
}

func TestPollerReportsProgressPerTarget(t *testing.T) {
	t.Parallel()

	service := newFakeService()
	service.listFilesFn = func(context.Context, domain.ListRequest) (domain.FileList, error) {
		return domain.FileList{}, nil
	}

	var labels []string
	poller := NewPoller(service, nil, newFakeClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)),
		log.New(io.Discard, "", 0), PollerConfig{
			TrackDirs: []string{"/media"},
			Progress:  func(target string) { labels = append(labels, target) },
		})

	require.True(t, poller.RunCycle(context.Background()))

	assert.Contains(t, labels, "dir /media")
	assert.Contains(t, labels, "tasks "+string(domain.TaskUpload))
	assert.Len(t, labels, 1+len(domain.TaskTypes()))
}

func TestPollerSnapshotKeepsDescriptorOrder(t *testing.T) {
	t.Parallel()

	poller := newTestPoller(newFakeService(), nil, []string{"/a", "/b"})

	snapshot := poller.Snapshot()
	expected := domain.SensorKeys([]string{"/a", "/b"})
	require.Len(t, snapshot.Sensors, len(expected))
	for i, key := range expected {
		assert.Equal(t, key, snapshot.Sensors[i].Key)
	}
}

func TestPollerCapsTaskAttributeLists(t *testing.T) {
	t.Parallel()

	service := newFakeService()
	service.getTaskUndoneFn = func(context.Context, domain.TaskType) ([]domain.Task, error) {
		tasks := make([]domain.Task, taskDetailLimit+5)
		return tasks, nil
	}

	poller := newTestPoller(service, nil, nil)
	require.True(t, poller.RunCycle(context.Background()))

	undone := findSensor(t, poller.Snapshot(), domain.TaskSensorKey(domain.TaskUpload, domain.TaskSensorUndone))
	assert.Equal(t, taskDetailLimit+5, undone.Value, "the counter reflects the full list")
	assert.Len(t, undone.Attrs.Tasks, taskDetailLimit)
}
