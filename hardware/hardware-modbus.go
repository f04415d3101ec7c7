package hardware

import (
	"fmt"
	"io"
	"time"

	"github.com/goburrow/modbus"
)

// ModbusConfig addresses a Modbus TCP I/O block carrying the lines:
// indicator outputs as coils, the reset button as a discrete input.
type ModbusConfig struct {
	Address        string   `yaml:"address" json:"address"`
	SlaveID        byte     `yaml:"slave_id" json:"slave_id"`
	ButtonInput    uint16   `yaml:"button_input" json:"button_input"`
	PrimaryCoil    uint16   `yaml:"primary_coil" json:"primary_coil"`
	SecondaryCoils []uint16 `yaml:"secondary_coils" json:"secondary_coils"`
}

// OpenModbus connects to the I/O block and binds each configured coil
// and input as a line. The returned lines share one client; the Bank's
// single-owner rule keeps that safe.
func OpenModbus(cfg ModbusConfig) (*Bank, error) {
	handler := modbus.NewTCPClientHandler(cfg.Address)
	handler.Timeout = 5 * time.Second
	handler.SlaveId = cfg.SlaveID
	if handler.SlaveId == 0 {
		handler.SlaveId = 1
	}
	if err := handler.Connect(); err != nil {
		return nil, fmt.Errorf("modbus connect to %s failed: %w", cfg.Address, err)
	}
	client := modbus.NewClient(handler)

	bank := &Bank{
		Button:  &modbusInput{client: client, address: cfg.ButtonInput},
		Primary: &modbusCoil{client: client, address: cfg.PrimaryCoil},
		closers: []io.Closer{handler},
	}
	for _, addr := range cfg.SecondaryCoils {
		bank.Secondary = append(bank.Secondary, &modbusCoil{client: client, address: addr})
	}

	// Start with every output low.
	for _, out := range append([]OutputLine{bank.Primary}, bank.Secondary...) {
		if err := out.SetValue(0); err != nil {
			handler.Close()
			return nil, fmt.Errorf("modbus initial drive low failed: %w", err)
		}
	}
	return bank, nil
}

type modbusCoil struct {
	client  modbus.Client
	address uint16
}

func (c *modbusCoil) SetValue(value int) error {
	v := uint16(0x0000)
	if value != 0 {
		v = 0xFF00
	}
	_, err := c.client.WriteSingleCoil(c.address, v)
	return err
}

type modbusInput struct {
	client  modbus.Client
	address uint16
}

func (in *modbusInput) Value() (int, error) {
	results, err := in.client.ReadDiscreteInputs(in.address, 1)
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, fmt.Errorf("no data for discrete input %d", in.address)
	}
	return int(results[0] & 0x01), nil
}
