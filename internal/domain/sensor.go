package domain

import "fmt"

type SensorKind string

const (
	SensorKindDir  SensorKind = "dir"
	SensorKindTask SensorKind = "task"
)

type TaskSensorKind string

const (
	TaskSensorDone   TaskSensorKind = "done"
	TaskSensorUndone TaskSensorKind = "undone"
	TaskSensorFailed TaskSensorKind = "failed"
)

func TaskSensorKinds() []TaskSensorKind {
	return []TaskSensorKind{TaskSensorDone, TaskSensorUndone, TaskSensorFailed}
}

// SensorKey identifies one published sensor. Keys are derived, never stored
// user input: "dir:<path>" or "task:<type>:<kind>".
type SensorKey struct {
	Kind     SensorKind
	Dir      string
	TaskType TaskType
	TaskKind TaskSensorKind
}

func DirSensorKey(path string) SensorKey {
	return SensorKey{Kind: SensorKindDir, Dir: path}
}

func TaskSensorKey(taskType TaskType, kind TaskSensorKind) SensorKey {
	return SensorKey{Kind: SensorKindTask, TaskType: taskType, TaskKind: kind}
}

func (k SensorKey) String() string {
	if k.Kind == SensorKindDir {
		return fmt.Sprintf("dir:%s", k.Dir)
	}
	return fmt.Sprintf("task:%s:%s", k.TaskType, k.TaskKind)
}

// SensorKeys builds the fixed descriptor table for a configuration: one dir
// sensor per tracked directory plus three sensors per task type.
func SensorKeys(trackDirs []string) []SensorKey {
	keys := make([]SensorKey, 0, len(trackDirs)+3*len(TaskTypes()))
	for _, dir := range trackDirs {
		keys = append(keys, DirSensorKey(dir))
	}
	for _, taskType := range TaskTypes() {
		for _, kind := range TaskSensorKinds() {
			keys = append(keys, TaskSensorKey(taskType, kind))
		}
	}
	return keys
}
