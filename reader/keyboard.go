package reader

import (
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/kenshaw/evdev"

	"rfidosc/tags"
)

// Keyboard implements TagReader for USB keyboard-style RFID readers
// that output digits followed by Enter.
type Keyboard struct {
	device    *evdev.Evdev
	events    <-chan *evdev.EventEnvelope
	cancel    context.CancelFunc
	numDigits int  // expected number of digits (0 = any)
	isHex     bool // true for hex input, false for decimal
	format    string
	strbuf    string
}

// NewKeyboard creates a new keyboard reader on the specified input device.
// Format specifies the input format: "10h" (10 hex digits), "10d" (10 decimal), "8h", "8d", etc.
// If format is empty, defaults to "10h".
func NewKeyboard(device string, format string) (*Keyboard, error) {
	dev, err := evdev.OpenFile(device)
	if err != nil {
		return nil, fmt.Errorf("open evdev %s: %w", device, err)
	}

	log.Printf("Opened keyboard device: %s", dev.Name())
	log.Printf("Vendor: 0x%04x, Product: 0x%04x", dev.ID().Vendor, dev.ID().Product)

	numDigits, isHex, format := parseFormat(format)

	base := "hex"
	if !isHex {
		base = "decimal"
	}
	log.Printf("Keyboard reader format: %s (%d %s digits)", format, numDigits, base)

	// One poller for the reader's lifetime; Read only waits on its channel.
	ctx, cancel := context.WithCancel(context.Background())
	return &Keyboard{
		device:    dev,
		events:    dev.Poll(ctx),
		cancel:    cancel,
		numDigits: numDigits,
		isHex:     isHex,
		format:    format,
	}, nil
}

// parseFormat splits e.g. "10h" into digit count and base.
func parseFormat(format string) (numDigits int, isHex bool, normalized string) {
	if format == "" {
		format = "10h"
	}
	format = strings.ToLower(format)

	isHex = true
	if strings.HasSuffix(format, "h") {
		numDigits, _ = strconv.Atoi(strings.TrimSuffix(format, "h"))
	} else if strings.HasSuffix(format, "d") {
		isHex = false
		numDigits, _ = strconv.Atoi(strings.TrimSuffix(format, "d"))
	} else {
		// Try to parse as just a number, assume hex
		numDigits, _ = strconv.Atoi(format)
	}
	return numDigits, isHex, format
}

// lineUID converts one typed line to a UID. Hex lines keep their bytes;
// decimal lines become the big-endian bytes of the 32-bit card number.
func lineUID(line string, numDigits int, isHex bool) (tags.UID, error) {
	if numDigits > 0 && len(line) != numDigits {
		return nil, fmt.Errorf("expected %d digits, got %d (%q)", numDigits, len(line), line)
	}
	if isHex {
		return tags.ParseUID(line)
	}
	number, err := strconv.ParseUint(line, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad decimal badge %q: %w", line, err)
	}
	uid := make(tags.UID, 4)
	binary.BigEndian.PutUint32(uid, uint32(number&0xffffffff))
	return uid, nil
}

// Read implements TagReader.Read for keyboard readers.
// Reads digits until Enter is pressed, then parses according to configured format.
// Digits typed before a timeout are kept for the next call.
func (k *Keyboard) Read(ctx context.Context, timeout time.Duration) (tags.UID, error) {
	wctx, cancel := waitCtx(ctx, timeout)
	defer cancel()

	for {
		select {
		case <-wctx.Done():
			if timedOut(ctx, wctx.Err()) {
				return nil, nil
			}
			return nil, wctx.Err()
		case event := <-k.events:
			if event == nil {
				return nil, fmt.Errorf("keyboard device closed")
			}

			switch event.Type.(type) {
			case evdev.KeyType:
				if event.Value != 1 {
					continue
				}

				if event.Type == evdev.KeyEnter {
					line := k.strbuf
					k.strbuf = ""
					if line == "" {
						continue
					}

					uid, err := lineUID(line, k.numDigits, k.isHex)
					if err != nil {
						log.Printf("Bad badge: %v", err)
						continue
					}
					log.Printf("Got %s String %s UID %s", k.format, line, uid.Hex())
					return uid, nil
				}

				k.strbuf += evdev.KeyType(event.Code).String()
			}
		}
	}
}

// Close implements TagReader.Close.
func (k *Keyboard) Close() error {
	if k.device == nil {
		return nil
	}
	k.cancel()
	return k.device.Close()
}
