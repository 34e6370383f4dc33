package reader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rfidosc/pn532"
	"rfidosc/tags"
	"rfidosc/wiegand"
)

func TestNew_UnknownType(t *testing.T) {
	if _, err := New(Config{Type: "barcode"}); !errors.Is(err, ErrNoReader) {
		t.Errorf("Expected ErrNoReader, got %v", err)
	}
}

func TestDecodeSerialFrame(t *testing.T) {
	frame := []byte{0x02, 0x09, 0x00, 0x23, 0xa8, 0x18, 0xf7, 0x00, 0x03}
	var xor byte
	for _, b := range frame[1:7] {
		xor ^= b
	}
	frame[7] = xor

	uid := decodeSerialFrame(frame)
	if !bytes.Equal(uid, tags.UID{0x23, 0xa8, 0x18, 0xf7}) {
		t.Errorf("got %v", uid)
	}

	bad := append([]byte(nil), frame...)
	bad[7]++
	if decodeSerialFrame(bad) != nil {
		t.Error("Expected nil for checksum mismatch")
	}
	if decodeSerialFrame(frame[:8]) != nil {
		t.Error("Expected nil for partial frame")
	}
}

func TestLineUID(t *testing.T) {
	uid, err := lineUID("23a818f764", 10, true)
	if err != nil || !bytes.Equal(uid, tags.UID{0x23, 0xa8, 0x18, 0xf7, 0x64}) {
		t.Errorf("hex: got %v %v", uid, err)
	}

	uid, err = lineUID("0003735928559", 0, false)
	if err != nil || !bytes.Equal(uid, tags.UID{0xde, 0xad, 0xbe, 0xef}) {
		t.Errorf("decimal: got %v %v", uid, err)
	}

	if _, err := lineUID("1234", 10, true); err == nil {
		t.Error("Expected digit count error")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in     string
		digits int
		hex    bool
	}{
		{"", 10, true},
		{"8D", 8, false},
		{"14", 14, true},
	}
	for _, tt := range tests {
		n, hex, _ := parseFormat(tt.in)
		if n != tt.digits || hex != tt.hex {
			t.Errorf("parseFormat(%q) = %d %v", tt.in, n, hex)
		}
	}
}

type fakePort struct {
	r *bytes.Reader
}

func (p *fakePort) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if err == io.EOF {
		return 0, nil
	}
	return n, err
}

func (p *fakePort) SetReadTimeout(time.Duration) error { return nil }
func (p *fakePort) Close() error                       { return nil }

func TestWiegand_Read(t *testing.T) {
	data := append([]byte{wiegand.STX}, "0F00A1B2C3"...)
	data = append(data, wiegand.ETX)
	w := &Wiegand{port: &fakePort{r: bytes.NewReader(data)}}

	uid, err := w.Read(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(uid, tags.UID{0x0f, 0x00, 0xa1, 0xb2, 0xc3}) {
		t.Errorf("got %v", uid)
	}

	// idle line
	uid, err = w.Read(context.Background(), 20*time.Millisecond)
	if err != nil || uid != nil {
		t.Errorf("Expected timeout without uid, got %v %v", uid, err)
	}
}

func TestWiegand_ReadCancelled(t *testing.T) {
	w := &Wiegand{port: &fakePort{r: bytes.NewReader(nil)}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := w.Read(ctx, time.Second); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestFIFO_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags")
	f, err := NewFIFO(path)
	if err != nil {
		t.Fatalf("NewFIFO: %v", err)
	}
	defer f.Close()

	uid, err := f.Read(context.Background(), 10*time.Millisecond)
	if err != nil || uid != nil {
		t.Fatalf("Expected empty read, got %v %v", uid, err)
	}

	w, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open writer: %v", err)
	}
	w.WriteString("tag de ad be ef\n")
	w.Close()

	uid, err = f.Read(context.Background(), 2*time.Second)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(uid, tags.UID{0xde, 0xad, 0xbe, 0xef}) {
		t.Errorf("got %v", uid)
	}
}

// scripted plays canned frames to a pn532.Device.
type scripted struct {
	frames [][]byte
}

func (s *scripted) Write([]byte) error { return nil }
func (s *scripted) Close() error       { return nil }

func (s *scripted) ReadFrame(time.Duration) ([]byte, error) {
	if len(s.frames) == 0 {
		return nil, pn532.ErrTimeout
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f, nil
}

func respFrame(code byte, payload ...byte) []byte {
	data := append([]byte{0xD5, code}, payload...)
	n := byte(len(data))
	var sum byte
	for _, d := range data {
		sum += d
	}
	frame := append([]byte{0x00, 0x00, 0xFF, n, -n}, data...)
	return append(frame, -sum, 0x00)
}

var ack = []byte{0x00, 0x00, 0xFF, 0x00, 0xFF, 0x00}

func TestPN532_Read(t *testing.T) {
	uid := []byte{0x23, 0xa8, 0x18, 0xf7, 0x64}
	target := append([]byte{0x01, 0x01, 0x00, 0x44, 0x00, byte(len(uid))}, uid...)
	tr := &scripted{frames: [][]byte{
		ack, respFrame(0x03, 0x32, 0x01, 0x06, 0x07),
		ack, respFrame(0x15),
		ack, respFrame(0x4B, target...),
		ack,
	}}

	r, err := newPN532(pn532.New(tr))
	if err != nil {
		t.Fatalf("newPN532: %v", err)
	}

	got, err := r.Read(context.Background(), 500*time.Millisecond)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, uid) {
		t.Errorf("got %v", got)
	}

	got, err = r.Read(context.Background(), 500*time.Millisecond)
	if err != nil || got != nil {
		t.Errorf("Expected no tag, got %v %v", got, err)
	}
}

func TestPN532_InitFails(t *testing.T) {
	if _, err := newPN532(pn532.New(&scripted{})); !errors.Is(err, pn532.ErrNoAck) {
		t.Errorf("Expected ErrNoAck, got %v", err)
	}
}

func TestFIFO_CloseUnblocksFullQueue(t *testing.T) {
	f, err := NewFIFO(filepath.Join(t.TempDir(), "tags"))
	if err != nil {
		t.Fatalf("NewFIFO: %v", err)
	}
	for i := 0; i < cap(f.uids); i++ {
		f.deliver(tags.UID{byte(i)})
	}

	delivered := make(chan struct{})
	go func() {
		f.deliver(tags.UID{0xff})
		close(delivered)
	}()

	select {
	case <-delivered:
		t.Fatal("deliver returned with a full queue")
	case <-time.After(20 * time.Millisecond):
	}

	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("deliver still blocked after Close")
	}
}
