// Package pn532 talks to an NXP PN532 NFC controller over I2C or HSU (UART).
package pn532

import (
	"errors"
	"fmt"
)

// Frame identifiers.
const (
	hostToPN532 = 0xD4
	pn532ToHost = 0xD5
)

// Commands used by the reader.
const (
	CmdGetFirmwareVersion  = 0x02
	CmdSAMConfiguration    = 0x14
	CmdInListPassiveTarget = 0x4A

	baudRateISO14443TypeA = 0x00
	samModeNormal         = 0x01
	samTimeout            = 0x14 // 50ms units
	samUseIRQ             = 0x01
)

var (
	ErrBadFrame = errors.New("pn532: malformed frame")
	ErrNoAck    = errors.New("pn532: command not acknowledged")
	ErrTimeout  = errors.New("pn532: timed out waiting for response")
)

var ackFrame = []byte{0x00, 0x00, 0xFF, 0x00, 0xFF, 0x00}

// Encode builds a normal information frame carrying cmd and params:
//
//	00 00 FF LEN LCS D4 CMD params... DCS 00
func Encode(cmd byte, params []byte) []byte {
	n := len(params) + 2
	frame := make([]byte, 0, n+7)
	frame = append(frame, 0x00, 0x00, 0xFF, byte(n), byte(-n))

	sum := byte(hostToPN532) + cmd
	frame = append(frame, hostToPN532, cmd)
	for _, p := range params {
		sum += p
	}
	frame = append(frame, params...)
	frame = append(frame, -sum, 0x00)
	return frame
}

// startCode returns the index of the 0xFF of the first 00 FF start code.
func startCode(b []byte) int {
	for i := 1; i < len(b); i++ {
		if b[i-1] == 0x00 && b[i] == 0xFF {
			return i
		}
	}
	return -1
}

// IsAck reports whether b holds an ACK frame.
func IsAck(b []byte) bool {
	p := startCode(b)
	return p >= 0 && len(b) >= p+3 && b[p+1] == 0x00 && b[p+2] == 0xFF
}

// frameEnd returns the index just past the first complete frame in b
// (ACK or information frame, postamble excluded). ok is false when b does
// not yet hold a whole frame.
func frameEnd(b []byte) (end int, ok bool) {
	p := startCode(b)
	if p < 0 || len(b) < p+3 {
		return 0, false
	}
	if b[p+1] == 0x00 && b[p+2] == 0xFF {
		return p + 3, true
	}
	end = p + 4 + int(b[p+1])
	if len(b) < end {
		return 0, false
	}
	return end, true
}

// Decode validates a response frame and returns its response code and
// payload.
func Decode(b []byte) (code byte, payload []byte, err error) {
	p := startCode(b)
	if p < 0 || len(b) < p+3 {
		return 0, nil, fmt.Errorf("%w: no start code", ErrBadFrame)
	}
	n := int(b[p+1])
	if byte(n)+b[p+2] != 0 {
		return 0, nil, fmt.Errorf("%w: length checksum", ErrBadFrame)
	}
	if n < 2 {
		return 0, nil, fmt.Errorf("%w: length %d", ErrBadFrame, n)
	}
	if len(b) < p+4+n {
		return 0, nil, fmt.Errorf("%w: truncated", ErrBadFrame)
	}
	data := b[p+3 : p+3+n]
	sum := b[p+3+n]
	for _, d := range data {
		sum += d
	}
	if sum != 0 {
		return 0, nil, fmt.Errorf("%w: data checksum", ErrBadFrame)
	}
	if data[0] != pn532ToHost {
		return 0, nil, fmt.Errorf("%w: frame identifier %#02x", ErrBadFrame, data[0])
	}
	return data[1], data[2:], nil
}
