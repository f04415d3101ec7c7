// Package hardware narrows physical line access to two single-method
// interfaces plus a Bank grouping the coordinator's fixed line set: one
// reset button input, one primary (reset indication) output, and the
// rotating indicator outputs. Exactly one goroutine may drive a Bank.
package hardware

import (
	"fmt"
	"io"
)

// InputLine reads a logical line level: 0 released, 1 pressed.
type InputLine interface {
	Value() (int, error)
}

// OutputLine drives a logical line level: 0 off, 1 on.
type OutputLine interface {
	SetValue(value int) error
}

// Bank is the coordinator's full line set.
type Bank struct {
	Button    InputLine
	Primary   OutputLine
	Secondary []OutputLine

	closers []io.Closer
}

// Close releases every acquired line.
func (b *Bank) Close() error {
	var first error
	for _, c := range b.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open acquires the line set described by cfg using the configured
// backend. Failure here is fatal for the process: the coordinator
// cannot run without its physical lines.
func Open(cfg Config) (*Bank, error) {
	switch cfg.Backend {
	case "gpio", "":
		return OpenGPIO(cfg.GPIO)
	case "modbus":
		return OpenModbus(cfg.Modbus)
	}
	return nil, fmt.Errorf("unknown hardware backend %q", cfg.Backend)
}

// Config selects and parameterizes a line backend.
type Config struct {
	Backend string       `yaml:"backend" json:"backend"`
	GPIO    GPIOConfig   `yaml:"gpio" json:"gpio"`
	Modbus  ModbusConfig `yaml:"modbus" json:"modbus"`
}
