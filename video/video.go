//go:build screen

package video

import (
	"encoding/binary"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/d21d3q/framebuffer"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// ScreenSupported returns whether screen support is compiled in.
func ScreenSupported() bool {
	return true
}

// Display shows the last tag read on a 16 bpp framebuffer.
type Display struct {
	cfg             Config
	dc              *gg.Context
	pixBuffer       []byte
	backBuffer      []byte
	rgbaImage       *image.RGBA
	width           int
	height          int
	lineLengthBytes int
	initialized     bool
}

// New opens the framebuffer.
func New(cfg Config) (*Display, error) {
	cfg = cfg.withDefaults()
	d := &Display{cfg: cfg}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Display) init() error {
	fb, err := framebuffer.OpenFrameBuffer(d.cfg.Device, os.O_RDWR)
	if err != nil {
		return fmt.Errorf("open framebuffer: %w", err)
	}

	varInfo, err := fb.VarScreenInfo()
	if err != nil {
		return fmt.Errorf("get variable screen info: %w", err)
	}
	fixedInfo, err := fb.FixScreenInfo()
	if err != nil {
		return fmt.Errorf("get fixed screen info: %w", err)
	}
	if varInfo.BitsPerPixel != 16 {
		return fmt.Errorf("framebuffer %s: %d bpp not supported, need 16", d.cfg.Device, varInfo.BitsPerPixel)
	}

	d.pixBuffer, err = fb.Pixels()
	if err != nil {
		return fmt.Errorf("get pixel data: %w", err)
	}

	d.width = int(varInfo.XRes)
	d.height = int(varInfo.YRes)
	d.lineLengthBytes = int(fixedInfo.LineLength)
	d.backBuffer = make([]byte, d.height*d.lineLengthBytes)

	log.Printf("Video: framebuffer %dx%d, %d bpp, stride %d bytes",
		d.width, d.height, varInfo.BitsPerPixel, d.lineLengthBytes)

	d.rgbaImage = image.NewRGBA(image.Rect(0, 0, d.width, d.height))

	// Draw at the configured canvas size and scale to the panel on update.
	cw, ch := d.cfg.CanvasWidth, d.cfg.CanvasHeight
	if cw == 0 || ch == 0 {
		d.dc = gg.NewContextForRGBA(d.rgbaImage)
	} else {
		d.dc = gg.NewContext(cw, ch)
	}
	d.initialized = true

	d.clear()
	return nil
}

func (d *Display) clear() {
	for i := range d.pixBuffer {
		d.pixBuffer[i] = 0
	}
}

func (d *Display) update() {
	if !d.initialized {
		return
	}
	if src := d.dc.Image(); src.Bounds() != d.rgbaImage.Bounds() {
		draw.ApproxBiLinear.Scale(d.rgbaImage, d.rgbaImage.Bounds(), src, src.Bounds(), draw.Src, nil)
	}
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			r, g, b, _ := d.rgbaImage.At(x, y).RGBA()
			r5 := uint16(r >> (16 - 5))
			g6 := uint16(g >> (16 - 6))
			b5 := uint16(b >> (16 - 5))
			pixel16 := (r5 << 11) | (g6 << 5) | b5
			fbIdx := (y * d.lineLengthBytes) + (x * 2)
			if fbIdx+1 < len(d.backBuffer) {
				binary.LittleEndian.PutUint16(d.backBuffer[fbIdx:], pixel16)
			}
		}
	}
	copy(d.pixBuffer, d.backBuffer)
}

func (d *Display) setFontSize(size float64) {
	if err := d.dc.LoadFontFace(d.cfg.Font, size); err != nil {
		log.Printf("Video: failed to load font: %v", err)
	}
}

func (d *Display) background(r, g, b float64) {
	d.dc.SetRGB(r, g, b)
	d.dc.DrawRectangle(0, 0, float64(d.dc.Width()), float64(d.dc.Height()))
	d.dc.Fill()
}

func (d *Display) drawCentered(text string, y float64, r, g, b float64) {
	d.dc.SetRGB(r, g, b)
	d.dc.DrawStringAnchored(text, float64(d.dc.Width()/2), y, 0.5, 0.5)
}

// Idle shows the ready screen.
func (d *Display) Idle() {
	if !d.initialized {
		return
	}
	d.background(0, 0, 0.2)
	d.setFontSize(64)
	d.drawCentered("Ready", float64(d.dc.Height()/2), 1, 1, 1)
	d.update()
}

// Matched shows the label of a recognised tag and the address it triggered.
func (d *Display) Matched(label, address string) {
	if !d.initialized {
		return
	}
	d.background(0, 0.6, 0)
	y := float64(d.dc.Height()/2) - 40

	d.setFontSize(64)
	d.drawCentered(label, y, 1, 1, 1)

	if address != "" {
		d.setFontSize(32)
		d.drawCentered(address, y+80, 1, 1, 1)
	}
	d.update()
}

// Unknown shows the UID of a tag that is not registered.
func (d *Display) Unknown(uid string) {
	if !d.initialized {
		return
	}
	d.background(0.7, 0, 0)
	y := float64(d.dc.Height()/2) - 40

	d.setFontSize(64)
	d.drawCentered("Unknown tag", y, 1, 1, 1)

	d.setFontSize(32)
	d.dc.SetRGB(1, 1, 0)
	d.dc.DrawStringAnchored(uid, float64(d.dc.Width()/2), y+80, 0.5, 0.5)
	d.update()
}

// Shutdown blanks the screen.
func (d *Display) Shutdown() {
	if !d.initialized {
		return
	}
	d.clear()
}

// Release releases the framebuffer.
func (d *Display) Release() error {
	d.clear()
	d.initialized = false
	return nil
}
