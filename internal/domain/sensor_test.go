package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensorKeyString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "dir:/media/films", DirSensorKey("/media/films").String())
	assert.Equal(t, "task:upload:failed", TaskSensorKey(TaskUpload, TaskSensorFailed).String())
}

func TestSensorKeysLayout(t *testing.T) {
	t.Parallel()

	keys := SensorKeys([]string{"/a", "/b"})
	require.Len(t, keys, 2+3*len(TaskTypes()))

	assert.Equal(t, DirSensorKey("/a"), keys[0])
	assert.Equal(t, DirSensorKey("/b"), keys[1])
	assert.Equal(t, TaskSensorKey(TaskTypes()[0], TaskSensorDone), keys[2])

	seen := map[string]bool{}
	for _, key := range keys {
		assert.False(t, seen[key.String()], "duplicate key %s", key)
		seen[key.String()] = true
	}
}

func TestSensorKeysWithoutTrackedDirs(t *testing.T) {
	t.Parallel()

	keys := SensorKeys(nil)
	require.Len(t, keys, 3*len(TaskTypes()))
	for _, key := range keys {
		assert.Equal(t, SensorKindTask, key.Kind)
	}
}
