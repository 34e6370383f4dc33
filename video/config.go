package video

// Config holds framebuffer display settings.
type Config struct {
	Device string `yaml:"device"` // default /dev/fb0
	Font   string `yaml:"font"`   // TrueType font path

	// Logical drawing size; the image is scaled to the panel. 0 draws at panel size.
	CanvasWidth  int `yaml:"canvas_width"`
	CanvasHeight int `yaml:"canvas_height"`
}

func (c Config) withDefaults() Config {
	if c.Device == "" {
		c.Device = "/dev/fb0"
	}
	if c.Font == "" {
		c.Font = "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"
	}
	return c
}
