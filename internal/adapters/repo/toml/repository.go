package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/openlist-contrib/openlist-bridge/internal/domain"
	"github.com/openlist-contrib/openlist-bridge/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	snapshotFileMode = 0o600
	snapshotDirMode  = 0o700
	tempFilePattern  = ".state-*.toml.tmp"
)

// Repository persists the latest sensor snapshot as a TOML file, replaced
// atomically on every save.
type Repository struct {
	snapshotPath string
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SnapshotRepository = (*Repository)(nil)

func NewRepository(snapshotPath string) (*Repository, error) {
	if snapshotPath == "" {
		return nil, errors.New("snapshot path is empty")
	}

	absPath, err := filepath.Abs(snapshotPath)
	if err != nil {
		return nil, fmt.Errorf("resolve snapshot path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &Repository{snapshotPath: absPath, mu: lockForPath(absPath)}, nil
}

func (r *Repository) Save(ctx context.Context, snapshot domain.SensorSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := toSchema(snapshot)
	file.applyDefaults()

	return r.writeSchema(file)
}

func (r *Repository) Load(ctx context.Context) (domain.SensorSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.SensorSnapshot{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.snapshotPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.SensorSnapshot{}, domain.ErrSnapshotNotFound
		}
		return domain.SensorSnapshot{}, fmt.Errorf("read snapshot file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.SensorSnapshot{}, fmt.Errorf("decode snapshot file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return domain.SensorSnapshot{}, err
	}
	file.applyDefaults()

	return fromSchema(file), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	if err := os.MkdirAll(filepath.Dir(r.snapshotPath), snapshotDirMode); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode snapshot file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.snapshotPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp snapshot file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp snapshot file: %w", err)
	}

	if err := tempFile.Chmod(snapshotFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp snapshot file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp snapshot file: %w", err)
	}

	if err := os.Rename(tempName, r.snapshotPath); err != nil {
		return fmt.Errorf("replace snapshot file: %w", err)
	}

	cleanup = false

	return nil
}

func toSchema(snapshot domain.SensorSnapshot) fileSchema {
	sensors := make([]sensorSchema, 0, len(snapshot.Sensors))
	for _, sensor := range snapshot.Sensors {
		sensors = append(sensors, sensorSchema{
			Kind:           string(sensor.Key.Kind),
			Dir:            sensor.Key.Dir,
			TaskType:       string(sensor.Key.TaskType),
			TaskKind:       string(sensor.Key.TaskKind),
			Value:          sensor.Value,
			Available:      sensor.Available,
			LastUpdated:    formatTime(sensor.LastUpdated),
			FileNames:      sensor.Attrs.FileNames,
			LatestModified: sensor.Attrs.LatestModified,
			Tasks:          toTaskSchemas(sensor.Attrs.Tasks),
		})
	}

	return fileSchema{
		Version:    currentSchemaVersion,
		CapturedAt: formatTime(snapshot.CapturedAt),
		Sensors:    sensors,
	}
}

func fromSchema(file fileSchema) domain.SensorSnapshot {
	sensors := make([]domain.SensorState, 0, len(file.Sensors))
	for _, sensor := range file.Sensors {
		sensors = append(sensors, domain.SensorState{
			Key: domain.SensorKey{
				Kind:     domain.SensorKind(sensor.Kind),
				Dir:      sensor.Dir,
				TaskType: domain.TaskType(sensor.TaskType),
				TaskKind: domain.TaskSensorKind(sensor.TaskKind),
			},
			Value:       sensor.Value,
			Available:   sensor.Available,
			LastUpdated: parseTime(sensor.LastUpdated),
			Attrs: domain.SensorAttrs{
				FileNames:      sensor.FileNames,
				LatestModified: sensor.LatestModified,
				Tasks:          fromTaskSchemas(sensor.Tasks),
			},
		})
	}

	return domain.SensorSnapshot{
		CapturedAt: parseTime(file.CapturedAt),
		Sensors:    sensors,
	}
}

func toTaskSchemas(tasks []domain.Task) []taskSchema {
	if len(tasks) == 0 {
		return nil
	}

	schemas := make([]taskSchema, 0, len(tasks))
	for _, task := range tasks {
		schemas = append(schemas, taskSchema{
			ID:         task.ID,
			Name:       task.Name,
			State:      task.State,
			Status:     task.Status,
			Progress:   task.Progress,
			Error:      task.Error,
			StartTime:  task.StartTime,
			EndTime:    task.EndTime,
			TotalBytes: task.TotalBytes,
		})
	}
	return schemas
}

func fromTaskSchemas(schemas []taskSchema) []domain.Task {
	if len(schemas) == 0 {
		return nil
	}

	tasks := make([]domain.Task, 0, len(schemas))
	for _, schema := range schemas {
		tasks = append(tasks, domain.Task{
			ID:         schema.ID,
			Name:       schema.Name,
			State:      schema.State,
			Status:     schema.Status,
			Progress:   schema.Progress,
			Error:      schema.Error,
			StartTime:  schema.StartTime,
			EndTime:    schema.EndTime,
			TotalBytes: schema.TotalBytes,
		})
	}
	return tasks
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
