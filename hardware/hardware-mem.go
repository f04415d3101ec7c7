package hardware

import "sync"

// MemLine is an in-memory line for tests and bench rigs without
// physical hardware. It is both an InputLine and an OutputLine, and is
// safe to poke from a test goroutine while the dispatcher drives it.
type MemLine struct {
	mu sync.Mutex
	v  int
}

func (m *MemLine) Value() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.v, nil
}

func (m *MemLine) SetValue(value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.v = value
	return nil
}

// NewMemBank builds a Bank of MemLines with n secondary indicators.
// The button starts released (1 per the deployment's pull-up wiring).
func NewMemBank(n int) (*Bank, *MemLine, *MemLine, []*MemLine) {
	button := &MemLine{v: 1}
	primary := &MemLine{}
	bank := &Bank{Button: button, Primary: primary}
	secondaries := make([]*MemLine, n)
	for i := range secondaries {
		secondaries[i] = &MemLine{}
		bank.Secondary = append(bank.Secondary, secondaries[i])
	}
	return bank, button, primary, secondaries
}
