package light

// Memory is a Strip that records every shown frame.
// Frames are recorded before brightness scaling.
type Memory struct {
	buffer
	frames [][]Color
	closed bool
}

// NewMemory creates a Memory strip of n pixels.
func NewMemory(n int) *Memory {
	return &Memory{buffer: newBuffer(n, 1)}
}

// Show implements Strip.Show.
func (m *Memory) Show() error {
	frame := make([]Color, len(m.pixels))
	copy(frame, m.pixels)
	m.frames = append(m.frames, frame)
	return nil
}

// Close implements Strip.Close.
func (m *Memory) Close() error {
	m.closed = true
	return nil
}

// Frames returns the frames shown so far.
func (m *Memory) Frames() [][]Color {
	return m.frames
}

// Last returns the most recently shown frame, or nil.
func (m *Memory) Last() []Color {
	if len(m.frames) == 0 {
		return nil
	}
	return m.frames[len(m.frames)-1]
}

// Reset forgets the recorded frames.
func (m *Memory) Reset() {
	m.frames = nil
}
