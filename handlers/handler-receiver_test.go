package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-swarm/hardware"
)

// scriptedLink feeds a fixed packet sequence to the receive loop and
// reports poll timeouts once drained. If cancel is set it fires on the
// first receive after the script runs out.
type scriptedLink struct {
	mu      sync.Mutex
	script  []any // []byte packets or error values
	cancel  context.CancelFunc
	drained bool
}

func (l *scriptedLink) Receive(buf []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.script) == 0 {
		if l.cancel != nil && !l.drained {
			l.drained = true
			l.cancel()
		}
		return 0, os.ErrDeadlineExceeded
	}
	next := l.script[0]
	l.script = l.script[1:]
	switch v := next.(type) {
	case []byte:
		copy(buf, v)
		return len(v), nil
	case error:
		return 0, v
	}
	return 0, os.ErrDeadlineExceeded
}

func (l *scriptedLink) Broadcast(payload []byte) error { return nil }

func newTestReceiver(t *testing.T, link Link) (*Receiver, *Dispatcher, *SwarmState, string) {
	t.Helper()
	bank, _, _, _ := hardware.NewMemBank(NumIndicators)
	st := NewSwarmState(time.Now())
	logPath := filepath.Join(t.TempDir(), "readings.txt")
	rlog := NewReadingsLog(logPath)
	d := NewDispatcher(bank, st, &fakeBroadcaster{}, rlog)
	return NewReceiver(link, st, rlog, d), d, st, logPath
}

func drainCmds(d *Dispatcher) []IndicatorCmd {
	var cmds []IndicatorCmd
	for {
		select {
		case cmd := <-d.cmds:
			cmds = append(cmds, cmd)
		default:
			return cmds
		}
	}
}

func TestReceiverEndToEnd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	link := &scriptedLink{
		cancel: cancel,
		script: []any{
			[]byte("+++Master,S1,24***"),
			[]byte("+++Slave,S9,1***"), // non-master role, dropped
			[]byte("not a swarm packet"),
			[]byte("+++S2,500***"), // two-field fallback shape
		},
	}
	recv, d, st, logPath := newTestReceiver(t, link)

	recv.Run(ctx)

	cmds := drainCmds(d)
	require.Len(t, cmds, 2)
	require.Equal(t, CmdSetExclusive, cmds[0].Kind)
	require.Equal(t, 0, cmds[0].Slot)
	require.Equal(t, CmdSetExclusive, cmds[1].Kind)
	require.Equal(t, 1, cmds[1].Slot)

	// last accepted sender won the election
	id, reading, ok := st.Master()
	require.True(t, ok)
	require.Equal(t, "S2", id)
	require.Equal(t, int32(500), reading)

	// both accepted reports were logged, the rejected ones were not
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Equal(t, "Swarm ID S1: 24\nSwarm ID S2: 500\n", string(data))
}

func TestReceiverSurvivesHardErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	link := &scriptedLink{
		cancel: cancel,
		script: []any{
			errors.New("recvfrom: network is down"),
			[]byte("+++Master,S1,24***"),
		},
	}
	recv, d, st, _ := newTestReceiver(t, link)

	recv.Run(ctx)

	require.Len(t, drainCmds(d), 1)
	id, _, ok := st.Master()
	require.True(t, ok)
	require.Equal(t, "S1", id)
}

func TestReceiverDropsReportsDuringReset(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	link := &scriptedLink{
		script: []any{[]byte("+++Master,S1,24***")},
	}
	recv, d, st, _ := newTestReceiver(t, link)

	d.resetting.Store(true)
	go recv.Run(ctx)

	// while the gate is up nothing is consumed
	time.Sleep(200 * time.Millisecond)
	require.Empty(t, drainCmds(d))
	_, _, ok := st.Master()
	require.False(t, ok)

	// once it clears, the loop resumes
	d.resetting.Store(false)
	require.Eventually(t, func() bool {
		_, _, ok := st.Master()
		return ok
	}, time.Second, 10*time.Millisecond)
}
