package status

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/openlist-contrib/openlist-bridge/internal/domain"
)

// Render formats a sensor snapshot for the terminal: one section for
// tracked directories, one per task queue.
func Render(snapshot domain.SensorSnapshot, opts RenderOptions) (string, error) {
	return renderView(snapshot, opts, newStyles()), nil
}

func renderView(snapshot domain.SensorSnapshot, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("OpenList Bridge Sensors"),
		s.header.Render(fmt.Sprintf("sensors: %d", len(snapshot.Sensors))),
	}

	if !snapshot.CapturedAt.IsZero() {
		captured := fmt.Sprintf("captured: %s", snapshot.CapturedAt.Format("2006-01-02 15:04:05"))
		if opts.stale(snapshot.CapturedAt) {
			captured += " " + s.warning.Render("[stale]")
		}
		lines = append(lines, s.header.Render(captured))
	}

	if len(snapshot.Sensors) == 0 {
		lines = append(lines, s.empty.Render("No sensor states available. Run `olb watch` first."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	dirs, tasks := splitSensors(snapshot.Sensors)

	if len(dirs) > 0 {
		lines = append(lines, s.section.Render(renderDirSection(dirs, s)))
	}
	if len(tasks) > 0 {
		lines = append(lines, s.section.Render(renderTaskSection(tasks, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func splitSensors(sensors []domain.SensorState) (dirs, tasks []domain.SensorState) {
	for _, sensor := range sensors {
		if sensor.Key.Kind == domain.SensorKindDir {
			dirs = append(dirs, sensor)
		} else {
			tasks = append(tasks, sensor)
		}
	}
	return dirs, tasks
}

func renderDirSection(dirs []domain.SensorState, s styles) string {
	parts := []string{s.sensorName.Render("Tracked directories")}
	for _, sensor := range dirs {
		line := fmt.Sprintf("%s %s", s.detail.Render(sensor.Key.Dir), renderValue(sensor, "files", s))
		if sensor.Available && sensor.Attrs.LatestModified != "" {
			line += " " + s.detail.Render(fmt.Sprintf("(latest: %s)", sensor.Attrs.LatestModified))
		}
		parts = append(parts, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderTaskSection(tasks []domain.SensorState, s styles) string {
	// Sensors arrive in descriptor order: done, undone, failed per queue.
	byType := make(map[domain.TaskType][3]string)
	order := make([]domain.TaskType, 0, len(tasks)/3)

	for _, sensor := range tasks {
		row, seen := byType[sensor.Key.TaskType]
		if !seen {
			order = append(order, sensor.Key.TaskType)
		}
		cell := renderValue(sensor, string(sensor.Key.TaskKind), s)
		switch sensor.Key.TaskKind {
		case domain.TaskSensorDone:
			row[0] = cell
		case domain.TaskSensorUndone:
			row[1] = cell
		case domain.TaskSensorFailed:
			row[2] = cell
		}
		byType[sensor.Key.TaskType] = row
	}

	parts := []string{s.sensorName.Render("Task queues")}
	for _, taskType := range order {
		row := byType[taskType]
		parts = append(parts, fmt.Sprintf("%s %s %s %s",
			s.detail.Render(string(taskType)), row[0], row[1], row[2]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderValue(sensor domain.SensorState, label string, s styles) string {
	if !sensor.Available {
		return s.unavailable.Render(fmt.Sprintf("%d %s [unavailable]", sensor.Value, label))
	}
	return s.value.Render(fmt.Sprintf("%d %s", sensor.Value, label))
}
