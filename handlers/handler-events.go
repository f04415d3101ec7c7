package handlers

import "time"

// -----------------------------
// Commands and Events
// -----------------------------

// CmdKind tags an IndicatorCmd variant.
type CmdKind int

const (
	// CmdAllOff drives every rotating indicator low.
	CmdAllOff CmdKind = iota
	// CmdSetExclusive drives indicator Slot to On and every other
	// rotating indicator low, so at most one is ever lit.
	CmdSetExclusive
	// CmdHold drives the primary indicator high for the dispatcher's
	// hold duration, then low. The dispatcher blocks for the whole
	// hold.
	CmdHold
)

// IndicatorCmd is a one-shot request for a physical line effect,
// consumed exactly once by the dispatcher.
type IndicatorCmd struct {
	Kind CmdKind
	Slot int
	On   bool
}

// Event is a coordinator happening pushed to connected socket clients.
type Event struct {
	Type       string    `json:"type"` // "master_set", "master_change", "status" or "reset"
	TsMs       int64     `json:"ts_ms"`
	MasterID   string    `json:"master_id,omitempty"`
	PrevMaster string    `json:"prev_master,omitempty"`
	Reading    int32     `json:"reading,omitempty"`
	BlinkMs    int64     `json:"blink_ms,omitempty"`
	LED        string    `json:"led,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// EventChan feeds the socket server. Publishers never block on it:
// observability must not stall report processing.
var EventChan = make(chan Event, 200)

// PublishEvent queues ev for socket broadcast, dropping it if no one
// is draining the channel fast enough.
func PublishEvent(ev Event) {
	select {
	case EventChan <- ev:
	default:
	}
}
