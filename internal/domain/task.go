package domain

import "time"

type TaskType string

const (
	TaskUpload                  TaskType = "upload"
	TaskCopy                    TaskType = "copy"
	TaskOfflineDownload         TaskType = "offline_download"
	TaskOfflineDownloadTransfer TaskType = "offline_download_transfer"
	TaskDecompress              TaskType = "decompress"
	TaskDecompressUpload        TaskType = "decompress_upload"
	TaskMove                    TaskType = "move"
)

// TaskTypes returns the closed set of task queues the service exposes.
// The order is stable; sensor descriptors are derived from it.
func TaskTypes() []TaskType {
	return []TaskType{
		TaskUpload,
		TaskCopy,
		TaskOfflineDownload,
		TaskOfflineDownloadTransfer,
		TaskDecompress,
		TaskDecompressUpload,
		TaskMove,
	}
}

func (t TaskType) Valid() bool {
	for _, known := range TaskTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// TaskStateSucceeded is the state value the service assigns to a done task
// that finished without error. Done tasks in any other state count as failed.
const TaskStateSucceeded = 2

type Task struct {
	ID         string
	Name       string
	State      int
	Status     string
	Progress   float64
	Error      string
	StartTime  string
	EndTime    string
	TotalBytes int64
}

func (t Task) Succeeded() bool {
	return t.State == TaskStateSucceeded
}

type TaskCounts struct {
	Type          TaskType
	DoneSucceeded int
	DoneFailed    int
	Undone        int
}

// CountTasks derives the per-queue counters from the raw done/undone lists.
func CountTasks(taskType TaskType, done, undone []Task) TaskCounts {
	counts := TaskCounts{Type: taskType, Undone: len(undone)}
	for _, task := range done {
		if task.Succeeded() {
			counts.DoneSucceeded++
		} else {
			counts.DoneFailed++
		}
	}
	return counts
}

type SensorState struct {
	Key         SensorKey
	Value       int
	Available   bool
	LastUpdated time.Time
	Attrs       SensorAttrs
}

// SensorAttrs carries the presentation extras published alongside the count.
// Dir sensors fill FileNames/LatestModified; task sensors fill Tasks.
type SensorAttrs struct {
	FileNames      []string
	LatestModified string
	Tasks          []Task
}

type SensorSnapshot struct {
	CapturedAt time.Time
	Sensors    []SensorState
}
