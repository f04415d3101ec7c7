package handlers

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"go-swarm/hardware"
)

// -----------------------------
// Indicator Dispatcher
// -----------------------------

const (
	// buttonPollInterval paces the dispatcher loop and debounces the
	// reset button.
	buttonPollInterval = 50 * time.Millisecond

	// DefaultHold is how long the primary indicator stays lit on
	// reset.
	DefaultHold = 3 * time.Second

	cmdQueueSize = 256
)

// Broadcaster sends one datagram to every swarm node.
type Broadcaster interface {
	Broadcast(payload []byte) error
}

// Dispatcher owns every physical line. All indicator effects requested
// by other goroutines arrive as IndicatorCmd values over its queue; the
// dispatcher alone touches the Bank, so no two goroutines ever write
// the same pin. Its loop also samples the reset button and runs the
// full reset sequence inline, keeping all hardware access on one
// goroutine.
type Dispatcher struct {
	bank  *hardware.Bank
	cmds  chan IndicatorCmd
	state *SwarmState
	link  Broadcaster
	rlog  *ReadingsLog

	hold      time.Duration
	resetting atomic.Bool
}

func NewDispatcher(bank *hardware.Bank, state *SwarmState, link Broadcaster, rlog *ReadingsLog) *Dispatcher {
	return &Dispatcher{
		bank:  bank,
		cmds:  make(chan IndicatorCmd, cmdQueueSize),
		state: state,
		link:  link,
		rlog:  rlog,
		hold:  DefaultHold,
	}
}

// Send queues a command for the dispatcher. It never blocks; if the
// queue is somehow full the command is dropped with a diagnostic,
// which is safe because the next exclusive-set supersedes it.
func (d *Dispatcher) Send(cmd IndicatorCmd) {
	select {
	case d.cmds <- cmd:
	default:
		log.Printf("indicator command queue full, dropping cmd kind=%d", cmd.Kind)
	}
}

// Resetting reports whether a reset sequence is in progress. The
// receive loop polls this to suspend report processing.
func (d *Dispatcher) Resetting() bool {
	return d.resetting.Load()
}

// Run drives the lines until ctx is canceled. Each iteration drains
// every queued command, then samples the button; a high-to-low
// transition triggers the reset sequence.
func (d *Dispatcher) Run(ctx context.Context) {
	prevButton := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		// process queued commands
	drain:
		for {
			select {
			case cmd := <-d.cmds:
				d.apply(cmd)
			default:
				break drain
			}
		}

		// button press (1 released, 0 pressed)
		v, err := d.bank.Button.Value()
		if err != nil {
			v = 0
		}
		if v == 0 && prevButton == 1 {
			d.reset()
		}
		prevButton = v

		time.Sleep(buttonPollInterval)
	}
}

func (d *Dispatcher) apply(cmd IndicatorCmd) {
	switch cmd.Kind {
	case CmdAllOff:
		d.allSecondaryOff()
	case CmdSetExclusive:
		if cmd.Slot < 0 || cmd.Slot >= len(d.bank.Secondary) {
			return
		}
		for i, led := range d.bank.Secondary {
			if i != cmd.Slot {
				setLine(led, false)
			}
		}
		setLine(d.bank.Secondary[cmd.Slot], cmd.On)
	case CmdHold:
		d.holdPrimary()
	}
}

// reset suspends report processing, notifies the swarm, clears all
// durable and in-memory state and holds the primary indicator lit.
// The sequence never depends on network traffic arriving.
func (d *Dispatcher) reset() {
	d.resetting.Store(true)
	defer d.resetting.Store(false)

	if err := d.link.Broadcast(EncodeReset()); err != nil {
		log.Printf("reset broadcast failed: %v", err)
	}
	if err := d.rlog.Truncate(); err != nil {
		log.Printf("readings log truncate failed: %v", err)
	}

	now := time.Now()
	ts := d.state.TsMs(now)
	log.Printf("[%d] EVENT reset_button  broadcast=RESET  hold=%v", ts, d.hold)
	d.state.Reset(now)
	PublishEvent(Event{Type: "reset", TsMs: ts, Timestamp: now})

	d.allSecondaryOff()
	d.holdPrimary()
}

func (d *Dispatcher) allSecondaryOff() {
	for _, led := range d.bank.Secondary {
		setLine(led, false)
	}
}

// holdPrimary blocks the dispatcher loop for the whole hold. Commands
// queued meanwhile are delayed, not lost; the indication must stay
// visible for the full duration.
func (d *Dispatcher) holdPrimary() {
	setLine(d.bank.Primary, true)
	time.Sleep(d.hold)
	setLine(d.bank.Primary, false)
}

// setLine is best effort. A failed write leaves a stale indicator, the
// next command corrects it.
func setLine(line hardware.OutputLine, on bool) {
	v := 0
	if on {
		v = 1
	}
	_ = line.SetValue(v)
}
