package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskSucceeded(t *testing.T) {
	t.Parallel()

	assert.True(t, Task{State: TaskStateSucceeded}.Succeeded())
	assert.False(t, Task{State: 0}.Succeeded())
	assert.False(t, Task{State: 7, Error: "disk full"}.Succeeded())
}

func TestCountTasks(t *testing.T) {
	t.Parallel()

	done := []Task{
		{ID: "a", State: TaskStateSucceeded},
		{ID: "b", State: TaskStateSucceeded},
		{ID: "c", State: 5},
	}
	undone := []Task{{ID: "d", State: 1}}

	counts := CountTasks(TaskUpload, done, undone)
	assert.Equal(t, TaskUpload, counts.Type)
	assert.Equal(t, 2, counts.DoneSucceeded)
	assert.Equal(t, 1, counts.DoneFailed)
	assert.Equal(t, 1, counts.Undone)
}

func TestCountTasksEmptyLists(t *testing.T) {
	t.Parallel()

	counts := CountTasks(TaskMove, nil, nil)
	assert.Zero(t, counts.DoneSucceeded)
	assert.Zero(t, counts.DoneFailed)
	assert.Zero(t, counts.Undone)
}

func TestTaskTypeValid(t *testing.T) {
	t.Parallel()

	for _, taskType := range TaskTypes() {
		assert.True(t, taskType.Valid())
	}
	assert.False(t, TaskType("shred").Valid())
	assert.False(t, TaskType("").Valid())
}
