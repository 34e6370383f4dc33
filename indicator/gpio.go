package indicator

import (
	"fmt"

	"github.com/hjkoskel/govattu"
	"github.com/warthog618/gpio"

	"rfidosc/tags"
)

// pinDriver drives output pins by BCM number.
type pinDriver interface {
	Output(pin uint8)
	Set(pin uint8)
	Clear(pin uint8)
	Close() error
}

// vattuDriver drives pins through govattu's /dev/gpiomem mapping.
type vattuDriver struct {
	hw govattu.Vattu
}

func (d vattuDriver) Output(pin uint8) { d.hw.PinMode(pin, govattu.ALToutput) }
func (d vattuDriver) Set(pin uint8)    { d.hw.PinSet(pin) }
func (d vattuDriver) Clear(pin uint8)  { d.hw.PinClear(pin) }
func (d vattuDriver) Close() error     { return d.hw.Close() }

// memDriver drives pins through warthog618/gpio, which also maps the
// BCM2711 register block.
type memDriver struct {
	pins map[uint8]*gpio.Pin
}

func (d *memDriver) pin(n uint8) *gpio.Pin {
	p, ok := d.pins[n]
	if !ok {
		p = gpio.NewPin(int(n))
		d.pins[n] = p
	}
	return p
}

func (d *memDriver) Output(pin uint8) { d.pin(pin).Output() }
func (d *memDriver) Set(pin uint8)    { d.pin(pin).High() }
func (d *memDriver) Clear(pin uint8)  { d.pin(pin).Low() }
func (d *memDriver) Close() error     { return gpio.Close() }

func openPinDriver(name string) (pinDriver, error) {
	switch name {
	case "", "govattu":
		hw, err := govattu.Open()
		if err != nil {
			return nil, fmt.Errorf("open gpio: %w", err)
		}
		return vattuDriver{hw: hw}, nil
	case "gpiomem":
		if err := gpio.Open(); err != nil {
			return nil, fmt.Errorf("open gpio: %w", err)
		}
		return &memDriver{pins: make(map[uint8]*gpio.Pin)}, nil
	default:
		return nil, fmt.Errorf("unknown gpio driver %q", name)
	}
}

// GPIO implements Indicator using discrete status LEDs: green for a
// registered tag, red for an unknown one, both off when idle.
type GPIO struct {
	hw       pinDriver
	greenPin *uint8
	redPin   *uint8
}

// NewGPIO creates a new GPIO-based indicator on the named driver
// ("govattu" or "gpiomem").
func NewGPIO(driver string, greenPin, redPin *uint8) (*GPIO, error) {
	hw, err := openPinDriver(driver)
	if err != nil {
		return nil, err
	}
	return newGPIO(hw, greenPin, redPin), nil
}

func newGPIO(hw pinDriver, greenPin, redPin *uint8) *GPIO {
	g := &GPIO{
		hw:       hw,
		greenPin: greenPin,
		redPin:   redPin,
	}

	// Initialize all pins as outputs, start off
	for _, pin := range []*uint8{greenPin, redPin} {
		if pin != nil {
			hw.Output(*pin)
			hw.Clear(*pin)
		}
	}
	return g
}

// Idle implements Indicator.Idle.
func (g *GPIO) Idle() error {
	g.allOff()
	return nil
}

// Matched implements Indicator.Matched.
func (g *GPIO) Matched(rec tags.Record, address string) error {
	g.allOff()
	if g.greenPin != nil {
		g.hw.Set(*g.greenPin)
	}
	return nil
}

// Unknown implements Indicator.Unknown.
func (g *GPIO) Unknown(uid tags.UID) error {
	g.allOff()
	if g.redPin != nil {
		g.hw.Set(*g.redPin)
	}
	return nil
}

// Shutdown implements Indicator.Shutdown.
func (g *GPIO) Shutdown() {
	g.allOff()
}

// Release implements Indicator.Release.
func (g *GPIO) Release() error {
	g.allOff()
	return g.hw.Close()
}

func (g *GPIO) allOff() {
	if g.greenPin != nil {
		g.hw.Clear(*g.greenPin)
	}
	if g.redPin != nil {
		g.hw.Clear(*g.redPin)
	}
}
