package handlers

import (
	"sync"
	"time"
)

// -----------------------------
// Coordinator State
// -----------------------------

// NumIndicators is the number of rotating indicator outputs. Swarm ids
// are bound to slots 0..NumIndicators-1 cyclically.
const NumIndicators = 3

// statusInterval paces the periodic STATUS diagnostic line.
const statusInterval = time.Second

// SwarmState is the single shared record of election and blink timing.
// It is mutated by the receive loop on every accepted packet and by the
// dispatcher on reset; every access goes through a method holding the
// lock, and no method blocks while holding it.
type SwarmState struct {
	mu sync.Mutex

	swarmToLED   map[string]int
	nextLEDIndex int

	// Blink state for the current master's indicator. Only one
	// indicator blinks at a time.
	ledState       bool
	previousToggle time.Time

	lastMasterID    string
	haveMaster      bool
	lastReading     int32
	lastStatusPrint time.Time

	start time.Time
}

// Update is the full result of recording one accepted report: which
// slot to drive, its on/off state, the blink half-period, and whether
// the master changed with this packet.
type Update struct {
	LEDIndex      int
	LEDOn         bool
	HalfPeriod    time.Duration
	MasterChanged bool
	PrevMasterID  string
	HadMaster     bool
	StatusDue     bool
}

func NewSwarmState(now time.Time) *SwarmState {
	return &SwarmState{
		swarmToLED:      make(map[string]int),
		previousToggle:  now,
		lastStatusPrint: now,
		start:           now,
	}
}

// TsMs returns milliseconds since coordinator start, for diagnostic
// line prefixes.
func (st *SwarmState) TsMs(now time.Time) int64 {
	return now.Sub(st.start).Milliseconds()
}

// LEDLabel names a slot for diagnostics.
func LEDLabel(idx int) string {
	switch idx {
	case 0:
		return "LED0"
	case 1:
		return "LED1"
	case 2:
		return "LED2"
	}
	return "LED?"
}

// AssignIndicator returns the slot bound to swarmID, binding the next
// cyclic slot on first sighting. The binding holds until a reset.
func (st *SwarmState) AssignIndicator(swarmID string) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.assignLocked(swarmID)
}

func (st *SwarmState) assignLocked(swarmID string) int {
	if idx, ok := st.swarmToLED[swarmID]; ok {
		return idx
	}
	idx := st.nextLEDIndex
	st.swarmToLED[swarmID] = idx
	st.nextLEDIndex = (st.nextLEDIndex + 1) % NumIndicators
	return idx
}

// RecordAndMaybeToggle performs the election update, slot binding and
// conditional blink toggle for one accepted report as a single critical
// section. The sender becomes master unconditionally; the indicator
// flips at most once per call, only when the elapsed time since the
// previous flip reaches the half-period for this reading.
func (st *SwarmState) RecordAndMaybeToggle(swarmID string, reading int32, now time.Time) Update {
	st.mu.Lock()
	defer st.mu.Unlock()

	up := Update{
		PrevMasterID: st.lastMasterID,
		HadMaster:    st.haveMaster,
	}
	up.MasterChanged = !st.haveMaster || st.lastMasterID != swarmID

	st.lastMasterID = swarmID
	st.haveMaster = true
	st.lastReading = reading

	up.LEDIndex = st.assignLocked(swarmID)
	up.HalfPeriod = HalfPeriod(reading)

	if now.Sub(st.previousToggle) >= up.HalfPeriod {
		st.previousToggle = now
		st.ledState = !st.ledState
	}
	up.LEDOn = st.ledState

	if now.Sub(st.lastStatusPrint) >= statusInterval {
		st.lastStatusPrint = now
		up.StatusDue = true
	}
	return up
}

// Master reports the current master id and its last reading, if any.
func (st *SwarmState) Master() (swarmID string, reading int32, ok bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.haveMaster {
		return "", 0, false
	}
	return st.lastMasterID, st.lastReading, true
}

// Reset clears every field back to its startup value. Slot bindings are
// forgotten, so previously seen ids re-bind from slot 0.
func (st *SwarmState) Reset(now time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.swarmToLED = make(map[string]int)
	st.nextLEDIndex = 0
	st.ledState = false
	st.previousToggle = now
	st.lastMasterID = ""
	st.haveMaster = false
	st.lastReading = 0
	st.lastStatusPrint = now
}
