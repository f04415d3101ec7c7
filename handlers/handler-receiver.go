package handlers

import (
	"context"
	"errors"
	"log"
	"net"
	"os"
	"time"
)

// -----------------------------
// Receive Loop
// -----------------------------

// Link is the datagram transport to the swarm. Receive blocks for at
// most a short poll interval so the loop can notice resets and
// cancellation; an expired poll surfaces as a timeout error.
type Link interface {
	Receive(buf []byte) (int, error)
	Broadcast(payload []byte) error
}

// Receiver is the main loop: it decodes swarm reports, records them,
// updates the coordinator state and asks the dispatcher to drive the
// master's indicator. It owns nothing but its receive buffer.
type Receiver struct {
	link  Link
	state *SwarmState
	rlog  *ReadingsLog
	disp  *Dispatcher
}

func NewReceiver(link Link, state *SwarmState, rlog *ReadingsLog, disp *Dispatcher) *Receiver {
	return &Receiver{link: link, state: state, rlog: rlog, disp: disp}
}

// Run receives until ctx is canceled. Malformed traffic is dropped
// silently, transient receive timeouts are expected, and no single bad
// packet ever terminates the loop. While a reset is in progress
// incoming reports are dropped, not queued.
func (r *Receiver) Run(ctx context.Context) {
	buf := make([]byte, 1024)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if r.disp.Resetting() {
			time.Sleep(50 * time.Millisecond)
			continue
		}

		n, err := r.link.Receive(buf)
		if err != nil {
			if !isTimeout(err) {
				log.Printf("UDP recv error: %v", err)
			}
			continue
		}

		swarmID, reading, ok := Decode(buf[:n])
		if !ok {
			continue
		}

		if err := r.rlog.Append(swarmID, reading); err != nil {
			log.Printf("readings log append failed: %v", err)
		}

		now := time.Now()
		up := r.state.RecordAndMaybeToggle(swarmID, reading, now)
		ts := r.state.TsMs(now)
		label := LEDLabel(up.LEDIndex)

		if up.MasterChanged {
			if up.HadMaster {
				log.Printf("[%d] EVENT master_change  from=%s  to=%s  %s", ts, up.PrevMasterID, swarmID, label)
				PublishEvent(Event{Type: "master_change", TsMs: ts, MasterID: swarmID,
					PrevMaster: up.PrevMasterID, LED: label, Timestamp: now})
			} else {
				log.Printf("[%d] EVENT master_set  to=%s  %s", ts, swarmID, label)
				PublishEvent(Event{Type: "master_set", TsMs: ts, MasterID: swarmID,
					LED: label, Timestamp: now})
			}
		}

		if up.StatusDue {
			log.Printf("[%d] STATUS master=%s value=%d blink=%dms %s",
				ts, swarmID, reading, up.HalfPeriod.Milliseconds(), label)
			PublishEvent(Event{Type: "status", TsMs: ts, MasterID: swarmID, Reading: reading,
				BlinkMs: up.HalfPeriod.Milliseconds(), LED: label, Timestamp: now})
		}

		r.disp.Send(IndicatorCmd{Kind: CmdSetExclusive, Slot: up.LEDIndex, On: up.LEDOn})
	}
}

// isTimeout matches the poll-expiry errors a deadline read produces.
func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
