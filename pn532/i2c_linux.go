package pn532

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// DefaultI2CAddress is the 7-bit bus address of the PN532.
const DefaultI2CAddress = 0x24

const (
	i2cSlave     = 0x0703 // I2C_SLAVE from linux/i2c-dev.h
	i2cReady     = 0x01
	i2cReadSize  = 40
	i2cPollDelay = 10 * time.Millisecond
)

// I2C is a Transport over a Linux i2c-dev bus.
type I2C struct {
	f *os.File
}

// OpenI2C opens bus (e.g. /dev/i2c-1) and selects the device at addr.
func OpenI2C(bus string, addr int) (*I2C, error) {
	if addr == 0 {
		addr = DefaultI2CAddress
	}
	f, err := os.OpenFile(bus, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %s: %w", bus, err)
	}
	if err := unix.IoctlSetInt(int(f.Fd()), i2cSlave, addr); err != nil {
		f.Close()
		return nil, fmt.Errorf("select i2c address %#02x: %w", addr, err)
	}
	return &I2C{f: f}, nil
}

// Write implements Transport.Write.
func (i *I2C) Write(frame []byte) error {
	_, err := i.f.Write(frame)
	return err
}

// ReadFrame implements Transport.ReadFrame. Every I2C read starts with a
// status byte; the frame follows once it reads ready.
func (i *I2C) ReadFrame(timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	status := make([]byte, 1)
	for {
		if _, err := i.f.Read(status); err == nil && status[0] == i2cReady {
			break
		}
		if !time.Now().Before(deadline) {
			return nil, ErrTimeout
		}
		time.Sleep(i2cPollDelay)
	}

	buf := make([]byte, i2cReadSize+1)
	if _, err := i.f.Read(buf); err != nil {
		return nil, fmt.Errorf("read i2c: %w", err)
	}
	if buf[0] != i2cReady {
		return nil, fmt.Errorf("%w: status %#02x", ErrBadFrame, buf[0])
	}
	return buf[1:], nil
}

// Close implements Transport.Close.
func (i *I2C) Close() error {
	return i.f.Close()
}
