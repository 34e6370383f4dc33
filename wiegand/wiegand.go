// Package wiegand decodes the ASCII frames sent by serial Wiegand bridge
// readers: STX, up to ten hex digits, ETX.
package wiegand

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	STX = 0x02
	ETX = 0x03
)

// ErrNoData means the line was idle or a frame was cut short.
var ErrNoData = errors.New("wiegand: no frame")

// Card is one decoded frame.
type Card struct {
	Raw      string // ten hex digits, zero padded
	Facility uint16 // digits 1..3
	Number   uint32 // digits 4..9
	Checksum byte   // XOR of the five bytes
}

// Bytes returns the five raw card bytes, used as the tag UID.
func (c Card) Bytes() []byte {
	b, _ := hex.DecodeString(c.Raw)
	return b
}

func (c Card) String() string {
	return fmt.Sprintf("%s facility %#x card %d checksum %#02x", c.Raw, c.Facility, c.Number, c.Checksum)
}

// ReadFrame reads one STX..ETX frame from r, one byte at a time, and
// returns the digits between the markers. A zero-byte read (port timeout)
// before or inside the frame yields ErrNoData; a leading byte other than
// STX yields ErrNoData too so the caller can flush.
func ReadFrame(r io.Reader) (string, error) {
	buf := make([]byte, 1)
	n, err := r.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read STX: %w", err)
	}
	if n == 0 || buf[0] != STX {
		return "", ErrNoData
	}

	var body strings.Builder
	for {
		n, err := r.Read(buf)
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("read body: %w", err)
		}
		if n == 0 {
			return "", ErrNoData
		}
		if buf[0] == ETX {
			return body.String(), nil
		}
		body.WriteByte(buf[0])
	}
}

// Decode parses the digits of a frame.
func Decode(body string) (Card, error) {
	id := strings.TrimSpace(body)
	if len(id) > 10 {
		return Card{}, fmt.Errorf("wiegand frame %q: too long", body)
	}
	id = strings.Repeat("0", 10-len(id)) + id

	raw, err := hex.DecodeString(id)
	if err != nil {
		return Card{}, fmt.Errorf("wiegand frame %q: %w", body, err)
	}
	var sum byte
	for _, b := range raw {
		sum ^= b
	}

	facility, err := strconv.ParseUint(id[1:4], 16, 16)
	if err != nil {
		return Card{}, fmt.Errorf("parse facility %q: %w", id[1:4], err)
	}
	number, err := strconv.ParseUint(id[4:10], 16, 32)
	if err != nil {
		return Card{}, fmt.Errorf("parse card %q: %w", id[4:10], err)
	}

	return Card{
		Raw:      strings.ToLower(id),
		Facility: uint16(facility),
		Number:   uint32(number),
		Checksum: sum,
	}, nil
}
