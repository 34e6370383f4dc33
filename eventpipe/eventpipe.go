// Package eventpipe injects tag reads through a named pipe, for running the
// controller without reader hardware:
//
//	echo "tag 23 a8 18 f7 64" > /tmp/rfidosc-tags
package eventpipe

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"rfidosc/tags"
)

// Config holds configuration for the event pipe.
type Config struct {
	Path string `yaml:"path"` // Path to named pipe (e.g., "/tmp/rfidosc-tags")
}

// EventHandler is called for every tag line received from the pipe.
type EventHandler func(tags.UID)

// EventPipe listens for tag lines on a named pipe.
type EventPipe struct {
	path    string
	handler EventHandler
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates the named pipe. Returns nil if path is empty.
func New(cfg Config, handler EventHandler) (*EventPipe, error) {
	if cfg.Path == "" {
		return nil, nil
	}

	// Remove existing pipe if it exists
	os.Remove(cfg.Path)

	if err := syscall.Mkfifo(cfg.Path, 0666); err != nil {
		return nil, fmt.Errorf("create named pipe %s: %w", cfg.Path, err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &EventPipe{
		path:    cfg.Path,
		handler: handler,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Path returns the pipe location.
func (ep *EventPipe) Path() string {
	return ep.path
}

// Start begins listening for lines on the pipe.
// This should be called as a goroutine.
func (ep *EventPipe) Start() {
	log.Printf("Event pipe listening on %s", ep.path)

	for {
		select {
		case <-ep.ctx.Done():
			return
		default:
		}

		// Blocks until a writer connects
		file, err := os.OpenFile(ep.path, os.O_RDONLY, 0)
		if err != nil {
			if ep.ctx.Err() != nil {
				return
			}
			log.Printf("Event pipe open error: %v", err)
			continue
		}

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			if ep.ctx.Err() != nil {
				file.Close()
				return
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			uid, err := ParseLine(line)
			if err != nil {
				log.Printf("Event pipe parse error: %v", err)
				continue
			}

			if ep.handler != nil {
				ep.handler(uid)
			}
		}

		file.Close()
		// Writer closed the pipe, loop back to wait for next writer
	}
}

// Close stops the listener and removes the pipe.
func (ep *EventPipe) Close() error {
	ep.cancel()
	// Wake a Start blocked in open.
	if f, err := os.OpenFile(ep.path, os.O_WRONLY|syscall.O_NONBLOCK, 0); err == nil {
		f.Close()
	}
	return os.Remove(ep.path)
}

// ParseLine parses one command line.
// Command format:
//
//	tag <uid>     - tag read, uid in hex (e.g. "23a818f764" or "0x23 0xa8")
//	rfid <uid>    - alias for tag
func ParseLine(line string) (tags.UID, error) {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")

	switch strings.ToLower(cmd) {
	case "tag", "rfid":
		rest = strings.TrimSpace(rest)
		if rest == "" {
			return nil, fmt.Errorf("%s requires a uid", cmd)
		}
		uid, err := tags.ParseUID(rest)
		if err != nil {
			return nil, err
		}
		return uid, nil
	default:
		return nil, fmt.Errorf("unknown command: %s", cmd)
	}
}
