package pn532

import (
	"errors"
	"fmt"
	"time"
)

// Transport moves raw frames to and from the controller.
type Transport interface {
	// Write sends one complete frame.
	Write(frame []byte) error

	// ReadFrame returns the next frame (ACK or information frame) or
	// ErrTimeout if none arrives within timeout.
	ReadFrame(timeout time.Duration) ([]byte, error)

	Close() error
}

// ackTimeout bounds the wait for the ACK that follows every command.
const ackTimeout = 100 * time.Millisecond

// Firmware is the answer to GetFirmwareVersion.
type Firmware struct {
	IC      byte
	Version byte
	Rev     byte
	Support byte
}

func (f Firmware) String() string {
	return fmt.Sprintf("PN5%02x v%d.%d", f.IC, f.Version, f.Rev)
}

// Device is a PN532 behind a Transport.
type Device struct {
	t Transport
}

// New wraps t. Call SAMConfig before reading targets.
func New(t Transport) *Device {
	return &Device{t: t}
}

// call sends a command, waits for its ACK and returns the response payload.
func (d *Device) call(cmd byte, params []byte, timeout time.Duration) ([]byte, error) {
	if err := d.t.Write(Encode(cmd, params)); err != nil {
		return nil, fmt.Errorf("write command %#02x: %w", cmd, err)
	}

	ack, err := d.t.ReadFrame(ackTimeout)
	if errors.Is(err, ErrTimeout) {
		return nil, fmt.Errorf("command %#02x: %w", cmd, ErrNoAck)
	}
	if err != nil {
		return nil, fmt.Errorf("read ack: %w", err)
	}
	if !IsAck(ack) {
		return nil, fmt.Errorf("command %#02x: %w", cmd, ErrNoAck)
	}

	resp, err := d.t.ReadFrame(timeout)
	if err != nil {
		return nil, err
	}
	code, payload, err := Decode(resp)
	if err != nil {
		return nil, err
	}
	if code != cmd+1 {
		return nil, fmt.Errorf("%w: response %#02x to command %#02x", ErrBadFrame, code, cmd)
	}
	return payload, nil
}

// FirmwareVersion queries the chip version.
func (d *Device) FirmwareVersion() (Firmware, error) {
	p, err := d.call(CmdGetFirmwareVersion, nil, time.Second)
	if err != nil {
		return Firmware{}, err
	}
	if len(p) < 4 {
		return Firmware{}, fmt.Errorf("%w: firmware payload %d bytes", ErrBadFrame, len(p))
	}
	return Firmware{IC: p[0], Version: p[1], Rev: p[2], Support: p[3]}, nil
}

// SAMConfig puts the security access module in normal mode so the chip
// can read MiFare cards.
func (d *Device) SAMConfig() error {
	_, err := d.call(CmdSAMConfiguration, []byte{samModeNormal, samTimeout, samUseIRQ}, time.Second)
	if err != nil {
		return fmt.Errorf("sam configuration: %w", err)
	}
	return nil
}

// ReadPassiveTarget waits up to timeout for one ISO14443A card and
// returns its UID. A nil UID with a nil error means no card was present.
func (d *Device) ReadPassiveTarget(timeout time.Duration) ([]byte, error) {
	p, err := d.call(CmdInListPassiveTarget, []byte{0x01, baudRateISO14443TypeA}, timeout)
	if errors.Is(err, ErrTimeout) {
		// The chip keeps waiting for a card until it sees an ACK.
		if err := d.t.Write(ackFrame); err != nil {
			return nil, fmt.Errorf("abort wait: %w", err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// NbTg Tg SENS_RES(2) SEL_RES NFCIDLength NFCID...
	if len(p) < 1 || p[0] == 0 {
		return nil, nil
	}
	if len(p) < 6 {
		return nil, fmt.Errorf("%w: target payload %d bytes", ErrBadFrame, len(p))
	}
	n := int(p[5])
	if n == 0 || len(p) < 6+n {
		return nil, fmt.Errorf("%w: uid length %d", ErrBadFrame, n)
	}
	uid := make([]byte, n)
	copy(uid, p[6:6+n])
	return uid, nil
}

// Close closes the transport.
func (d *Device) Close() error {
	return d.t.Close()
}
