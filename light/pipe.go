package light

import (
	"fmt"
	"os"
	"strings"
)

// Pipe implements Strip by writing frames to a named pipe read by an
// external ws281x driver. Each frame is one line of RRGGBB values, one per
// pixel, already scaled by the brightness.
type Pipe struct {
	buffer
	pipe *os.File
	path string
}

// NewPipe opens the driver pipe.
func NewPipe(path string, pixels int, brightness float64) (*Pipe, error) {
	if path == "" {
		return nil, fmt.Errorf("pipe strip: no pipe path configured")
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open led pipe %s: %w", path, err)
	}

	return &Pipe{
		buffer: newBuffer(pixels, brightness),
		pipe:   f,
		path:   path,
	}, nil
}

// Show implements Strip.Show.
func (p *Pipe) Show() error {
	if _, err := p.pipe.WriteString(p.line()); err != nil {
		return fmt.Errorf("write led pipe %s: %w", p.path, err)
	}
	return nil
}

func (p *Pipe) line() string {
	var sb strings.Builder
	sb.Grow(7 * len(p.pixels))
	for i, px := range p.pixels {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(Scale(px, p.brightness).Hex())
	}
	sb.WriteByte('\n')
	return sb.String()
}

// Close implements Strip.Close.
func (p *Pipe) Close() error {
	if p.pipe == nil {
		return nil
	}
	return p.pipe.Close()
}
