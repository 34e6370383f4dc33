package eventpipe

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rfidosc/tags"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want tags.UID
	}{
		{"tag 23a818f764", tags.UID{0x23, 0xa8, 0x18, 0xf7, 0x64}},
		{"TAG 0xde 0xad 0xbe 0xef", tags.UID{0xde, 0xad, 0xbe, 0xef}},
		{"rfid  de:ad", tags.UID{0xde, 0xad}},
	}
	for _, tt := range tests {
		got, err := ParseLine(tt.line)
		if err != nil {
			t.Errorf("ParseLine(%q): %v", tt.line, err)
			continue
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("ParseLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}

	for _, bad := range []string{"tag", "rotary 1", "tag xyz"} {
		if _, err := ParseLine(bad); err == nil {
			t.Errorf("ParseLine(%q): expected error", bad)
		}
	}
}

func TestNew_EmptyPath(t *testing.T) {
	ep, err := New(Config{}, nil)
	if err != nil || ep != nil {
		t.Errorf("Expected nil pipe, got %v %v", ep, err)
	}
}

func TestEventPipe_DeliversTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags")
	got := make(chan tags.UID, 4)
	ep, err := New(Config{Path: path}, func(uid tags.UID) { got <- uid })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	go ep.Start()

	w, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open writer: %v", err)
	}
	w.WriteString("# comment\nbogus\ntag 01 02\n")
	w.Close()

	select {
	case uid := <-got:
		if !bytes.Equal(uid, tags.UID{1, 2}) {
			t.Errorf("got %v", uid)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no tag delivered")
	}

	if err := ep.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected pipe removed, stat: %v", err)
	}
}
