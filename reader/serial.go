package reader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"

	"rfidosc/tags"
)

// Serial implements TagReader for USB serial RFID readers using a fixed frame.
// Protocol: [0x02][0x09][data...][checksum][0x03]
type Serial struct {
	port   io.ReadWriteCloser
	device string
}

// NewSerial creates a new serial RFID reader.
func NewSerial(device string) (*Serial, error) {
	c := &serial.Config{
		Name:        device,
		Baud:        115200,
		ReadTimeout: 100 * time.Millisecond,
	}
	port, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", device, err)
	}

	return &Serial{port: port, device: device}, nil
}

// Read implements TagReader.Read for serial readers.
func (s *Serial) Read(ctx context.Context, timeout time.Duration) (tags.UID, error) {
	wctx, cancel := waitCtx(ctx, timeout)
	defer cancel()

	for {
		if err := wctx.Err(); err != nil {
			if timedOut(ctx, err) {
				return nil, nil
			}
			return nil, err
		}

		uid, err := s.readFrame()
		if err != nil {
			return nil, err
		}
		if uid != nil {
			return uid, nil
		}
	}
}

func (s *Serial) readFrame() (tags.UID, error) {
	buff := make([]byte, 9)

	n, err := s.port.Read(buff)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read serial %s: %w", s.device, err)
	}
	return decodeSerialFrame(buff[:n]), nil
}

// decodeSerialFrame returns the four card bytes of a valid frame, nil otherwise.
func decodeSerialFrame(buff []byte) tags.UID {
	if len(buff) != 9 {
		return nil // Partial read
	}

	preambles := []byte{0x02, 0x09}
	terminator := []byte{0x03}

	if !bytes.Equal(buff[0:2], preambles) {
		return nil
	}

	if !bytes.Equal(buff[8:9], terminator) {
		return nil
	}

	data := buff[1:7]
	xor := data[0]
	for i := 1; i < len(data); i++ {
		xor ^= data[i]
	}
	if xor != buff[7] {
		return nil // Checksum mismatch
	}

	uid := make(tags.UID, 4)
	copy(uid, data[2:6])
	return uid
}

// Close implements TagReader.Close.
func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}
	return s.port.Close()
}
