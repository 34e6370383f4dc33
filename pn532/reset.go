package pn532

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// Reset pulses the RSTPDN line low on chip/offset and waits for the
// controller to boot.
func Reset(chip string, offset int) error {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(1), gpiocdev.WithConsumer("rfidosc-pn532"))
	if err != nil {
		return fmt.Errorf("request reset line %s:%d: %w", chip, offset, err)
	}
	defer line.Close()

	if err := line.SetValue(0); err != nil {
		return fmt.Errorf("assert reset: %w", err)
	}
	time.Sleep(100 * time.Millisecond)
	if err := line.SetValue(1); err != nil {
		return fmt.Errorf("release reset: %w", err)
	}
	time.Sleep(500 * time.Millisecond)
	return nil
}
