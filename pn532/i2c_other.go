//go:build !linux

package pn532

import (
	"errors"
	"time"
)

// DefaultI2CAddress is the 7-bit bus address of the PN532.
const DefaultI2CAddress = 0x24

// I2C is only available on Linux.
type I2C struct{}

// OpenI2C always fails off Linux.
func OpenI2C(bus string, addr int) (*I2C, error) {
	return nil, errors.New("pn532: i2c transport requires linux")
}

func (i *I2C) Write(frame []byte) error                        { return nil }
func (i *I2C) ReadFrame(timeout time.Duration) ([]byte, error) { return nil, ErrTimeout }
func (i *I2C) Close() error                                    { return nil }
