package hardware

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// GPIOConfig names the character-device chip candidates and BCM line
// offsets for a directly wired deployment.
type GPIOConfig struct {
	Chips         []string `yaml:"chips" json:"chips"`
	ButtonPin     int      `yaml:"button_pin" json:"button_pin"`
	PrimaryPin    int      `yaml:"primary_pin" json:"primary_pin"`
	SecondaryPins []int    `yaml:"secondary_pins" json:"secondary_pins"`
}

// OpenGPIO requests every line from the first chip in cfg.Chips that
// opens. Outputs are requested driven low.
func OpenGPIO(cfg GPIOConfig) (*Bank, error) {
	chip, err := openChip(cfg.Chips)
	if err != nil {
		return nil, err
	}

	bank := &Bank{}
	button, err := gpiocdev.RequestLine(chip, cfg.ButtonPin,
		gpiocdev.AsInput, gpiocdev.WithConsumer("reset_button"))
	if err != nil {
		return nil, fmt.Errorf("request input failed for pin %d: %w", cfg.ButtonPin, err)
	}
	bank.Button = button
	bank.closers = append(bank.closers, button)

	primary, err := gpiocdev.RequestLine(chip, cfg.PrimaryPin,
		gpiocdev.AsOutput(0), gpiocdev.WithConsumer("reset_led"))
	if err != nil {
		bank.Close()
		return nil, fmt.Errorf("request output failed for pin %d: %w", cfg.PrimaryPin, err)
	}
	bank.Primary = primary
	bank.closers = append(bank.closers, primary)

	for i, pin := range cfg.SecondaryPins {
		led, err := gpiocdev.RequestLine(chip, pin,
			gpiocdev.AsOutput(0), gpiocdev.WithConsumer(fmt.Sprintf("swarm_led_%d", i)))
		if err != nil {
			bank.Close()
			return nil, fmt.Errorf("request output failed for pin %d: %w", pin, err)
		}
		bank.Secondary = append(bank.Secondary, led)
		bank.closers = append(bank.closers, led)
	}
	return bank, nil
}

// openChip probes the candidate chips in order and returns the name of
// the first that opens. Pi 5 exposes the header on gpiochip4, earlier
// boards on gpiochip0, so deployments list both.
func openChip(chips []string) (string, error) {
	if len(chips) == 0 {
		chips = []string{"gpiochip4", "gpiochip0"}
	}
	var lastErr error
	for _, name := range chips {
		c, err := gpiocdev.NewChip(name)
		if err != nil {
			lastErr = err
			continue
		}
		c.Close()
		return name, nil
	}
	return "", fmt.Errorf("failed to open any of %v: %w", chips, lastErr)
}
