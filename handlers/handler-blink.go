package handlers

import "time"

// -----------------------------
// Blink Mapping
// -----------------------------

// Calibration points mapping a sensor reading to a blink half-period,
// shared with the node firmware: reading 24 blinks at 2010ms, reading
// 1024 at 10ms.
const (
	blinkX1 = 24.0
	blinkY1 = 2010.0 / 1000.0
	blinkX2 = 1024.0
	blinkY2 = 10.0 / 1000.0

	// minHalfPeriod caps the toggle rate at 200 flips per second.
	minHalfPeriod = 5 * time.Millisecond
)

// HalfPeriod returns how long the master's indicator stays in one state
// before flipping, by linear interpolation between the calibration
// points. Readings are clamped to [0, 1024] before interpolation, so
// values above 1024 pin to the fastest rate while values below 24 keep
// riding the same slope down to 0.
func HalfPeriod(reading int32) time.Duration {
	slope := (blinkY2 - blinkY1) / (blinkX2 - blinkX1)
	intercept := blinkY1 - slope*blinkX1

	x := float64(reading)
	if x < 0 {
		x = 0
	} else if x > blinkX2 {
		x = blinkX2
	}

	d := time.Duration((slope*x + intercept) * float64(time.Second))
	if d < minHalfPeriod {
		d = minHalfPeriod
	}
	return d
}
