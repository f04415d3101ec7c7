package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHalfPeriodCalibrationPoints(t *testing.T) {
	require.Equal(t, 2010*time.Millisecond, HalfPeriod(24).Round(time.Millisecond))
	require.Equal(t, 10*time.Millisecond, HalfPeriod(1024).Round(time.Millisecond))
}

func TestHalfPeriodClampsHighReadings(t *testing.T) {
	require.Equal(t, HalfPeriod(1024), HalfPeriod(2000))
	require.Equal(t, HalfPeriod(1024), HalfPeriod(1<<30))
}

func TestHalfPeriodClampsNegativeReadingsToZero(t *testing.T) {
	require.Equal(t, HalfPeriod(0), HalfPeriod(-1))
	require.Equal(t, HalfPeriod(0), HalfPeriod(-5000))

	// below the low calibration point the slope keeps running, so a
	// zero reading blinks slower than the 24 point
	require.Greater(t, HalfPeriod(0), HalfPeriod(24))
}

func TestHalfPeriodMonotonicallyNonIncreasing(t *testing.T) {
	prev := HalfPeriod(0)
	for r := int32(1); r <= 1024; r++ {
		cur := HalfPeriod(r)
		require.LessOrEqual(t, cur, prev, "reading %d", r)
		prev = cur
	}
}

func TestHalfPeriodFloor(t *testing.T) {
	for _, r := range []int32{-1 << 30, 0, 24, 512, 1024, 1 << 30} {
		require.GreaterOrEqual(t, HalfPeriod(r), 5*time.Millisecond, "reading %d", r)
	}
}
