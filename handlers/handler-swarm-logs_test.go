package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadingsLogAppendAndTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sensor_readings.txt")
	rlog := NewReadingsLog(path)

	require.NoError(t, rlog.Append("S1", 24))
	require.NoError(t, rlog.Append("S2", -7))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "Swarm ID S1: 24\nSwarm ID S2: -7\n", string(data))

	require.NoError(t, rlog.Truncate())

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestReadingsLogTruncateCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sensor_readings.txt")
	rlog := NewReadingsLog(path)

	require.NoError(t, rlog.Truncate())

	_, err := os.Stat(path)
	require.NoError(t, err)
}
