package reader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.bug.st/serial"

	"rfidosc/tags"
	"rfidosc/wiegand"
)

// port is the subset of serial.Port the Wiegand reader needs.
type port interface {
	Read(p []byte) (int, error)
	SetReadTimeout(t time.Duration) error
	Close() error
}

// Wiegand implements TagReader for Wiegand-style serial RFID readers.
type Wiegand struct {
	port port
}

// NewWiegand creates a new Wiegand reader on the specified serial port.
func NewWiegand(device string, baud int) (*Wiegand, error) {
	if baud == 0 {
		baud = 9600
	}

	mode := &serial.Mode{
		BaudRate: baud,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}

	p, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", device, err)
	}

	return newWiegand(p), nil
}

func newWiegand(p port) *Wiegand {
	_ = p.SetReadTimeout(50 * time.Millisecond)
	w := &Wiegand{port: p}
	w.flush()
	return w
}

// Read implements TagReader.Read for Wiegand readers.
func (w *Wiegand) Read(ctx context.Context, timeout time.Duration) (tags.UID, error) {
	if w.port == nil {
		return nil, errors.New("port not initialized")
	}

	wctx, cancel := waitCtx(ctx, timeout)
	defer cancel()

	for {
		if err := wctx.Err(); err != nil {
			if timedOut(ctx, err) {
				return nil, nil
			}
			return nil, err
		}

		body, err := wiegand.ReadFrame(w.port)
		if errors.Is(err, wiegand.ErrNoData) {
			w.flush()
			continue
		}
		if err != nil {
			return nil, err
		}

		card, err := wiegand.Decode(body)
		if err != nil {
			log.Printf("Bad wiegand frame: %v", err)
			continue
		}
		log.Printf("Wiegand card %s", card)
		return tags.UID(card.Bytes()), nil
	}
}

// Close implements TagReader.Close.
func (w *Wiegand) Close() error {
	if w.port == nil {
		return nil
	}
	return w.port.Close()
}

// flush drains partial frames.
func (w *Wiegand) flush() {
	if w.port == nil {
		return
	}
	_ = w.port.SetReadTimeout(10 * time.Millisecond)
	defer func() {
		_ = w.port.SetReadTimeout(50 * time.Millisecond)
	}()

	tmp := make([]byte, 64)
	for {
		n, err := w.port.Read(tmp)
		if err != nil || n == 0 {
			return
		}
	}
}
