package reader

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"rfidosc/pn532"
	"rfidosc/tags"
)

// PN532 implements TagReader for a PN532 breakout on I2C or UART.
type PN532 struct {
	dev *pn532.Device
}

// NewPN532 opens the transport named by cfg.Type, resets the chip if a
// reset line is configured and runs the SAM configuration.
func NewPN532(cfg Config) (*PN532, error) {
	if cfg.ResetLine != nil {
		chip := cfg.ResetChip
		if chip == "" {
			chip = "gpiochip0"
		}
		if err := pn532.Reset(chip, *cfg.ResetLine); err != nil {
			return nil, err
		}
	}

	var t pn532.Transport
	var err error
	if strings.HasSuffix(cfg.Type, "hsu") {
		t, err = pn532.OpenHSU(cfg.Device, cfg.Baud)
	} else {
		t, err = pn532.OpenI2C(cfg.Device, cfg.Address)
	}
	if err != nil {
		return nil, err
	}
	return newPN532(pn532.New(t))
}

func newPN532(dev *pn532.Device) (*PN532, error) {
	fw, err := dev.FirmwareVersion()
	if err != nil {
		dev.Close()
		return nil, fmt.Errorf("pn532 firmware: %w", err)
	}
	log.Printf("Found %s", fw)

	if err := dev.SAMConfig(); err != nil {
		dev.Close()
		return nil, err
	}
	return &PN532{dev: dev}, nil
}

// Read implements TagReader.Read. The chip itself enforces the timeout.
func (p *PN532) Read(ctx context.Context, timeout time.Duration) (tags.UID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	uid, err := p.dev.ReadPassiveTarget(timeout)
	if err != nil {
		return nil, fmt.Errorf("read passive target: %w", err)
	}
	return tags.UID(uid), nil
}

// Close implements TagReader.Close.
func (p *PN532) Close() error {
	return p.dev.Close()
}
