package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version    int            `toml:"version"`
	CapturedAt string         `toml:"captured_at"`
	Sensors    []sensorSchema `toml:"sensors"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported snapshot schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sensorSchema struct {
	Kind           string       `toml:"kind"`
	Dir            string       `toml:"dir,omitempty"`
	TaskType       string       `toml:"task_type,omitempty"`
	TaskKind       string       `toml:"task_kind,omitempty"`
	Value          int          `toml:"value"`
	Available      bool         `toml:"available"`
	LastUpdated    string       `toml:"last_updated,omitempty"`
	FileNames      []string     `toml:"file_names,omitempty"`
	LatestModified string       `toml:"latest_modified,omitempty"`
	Tasks          []taskSchema `toml:"tasks,omitempty"`
}

type taskSchema struct {
	ID         string  `toml:"id"`
	Name       string  `toml:"name"`
	State      int     `toml:"state"`
	Status     string  `toml:"status,omitempty"`
	Progress   float64 `toml:"progress,omitempty"`
	Error      string  `toml:"error,omitempty"`
	StartTime  string  `toml:"start_time,omitempty"`
	EndTime    string  `toml:"end_time,omitempty"`
	TotalBytes int64   `toml:"total_bytes,omitempty"`
}
