package pn532

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// DefaultHSUBaud is the PN532 HSU rate after power-up.
const DefaultHSUBaud = 115200

// wakeup takes the chip out of low-VBAT mode before the first command.
var wakeup = []byte{0x55, 0x55, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

// HSU is a Transport over the high speed UART.
type HSU struct {
	port    io.ReadWriteCloser
	pending []byte
	woken   bool
}

// OpenHSU opens a serial device wired to the PN532 UART.
func OpenHSU(device string, baud int) (*HSU, error) {
	if baud == 0 {
		baud = DefaultHSUBaud
	}
	c := &serial.Config{
		Name:        device,
		Baud:        baud,
		ReadTimeout: 100 * time.Millisecond,
	}
	port, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", device, err)
	}
	return newHSU(port), nil
}

func newHSU(port io.ReadWriteCloser) *HSU {
	return &HSU{port: port}
}

// Write implements Transport.Write.
func (h *HSU) Write(frame []byte) error {
	if !h.woken {
		if _, err := h.port.Write(wakeup); err != nil {
			return err
		}
		h.woken = true
	}
	_, err := h.port.Write(frame)
	return err
}

// ReadFrame implements Transport.ReadFrame. Bytes past the returned frame
// are kept for the next call.
func (h *HSU) ReadFrame(timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	buf := make([]byte, 64)
	for {
		if end, ok := frameEnd(h.pending); ok {
			frame := h.pending[:end]
			h.pending = append([]byte(nil), h.pending[end:]...)
			return frame, nil
		}
		if !time.Now().Before(deadline) {
			return nil, ErrTimeout
		}
		n, err := h.port.Read(buf)
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read serial: %w", err)
		}
		h.pending = append(h.pending, buf[:n]...)
	}
}

// Close implements Transport.Close.
func (h *HSU) Close() error {
	return h.port.Close()
}
