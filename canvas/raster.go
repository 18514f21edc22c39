package canvas

import (
	"bytes"
	"fmt"
	"image"
)

// Target is anything a brush can paint on.
type Target interface {
	Set(x, y int, c Color)
}

// Raster is a width*height grid of colors stored as flattened RGBA8 bytes,
// row-major, 4 bytes per cell. It carries no locking: a raster belongs to a
// single goroutine.
type Raster struct {
	width   int
	height  int
	data    []uint8
	version uint64
}

func NewRaster(width, height int) *Raster {
	width = max(width, 0)
	height = max(height, 0)
	return &Raster{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

func (r *Raster) Width() int {
	return r.width
}

func (r *Raster) Height() int {
	return r.height
}

// Version changes every time a cell changes. Two reads returning the same
// version saw the same pixels.
func (r *Raster) Version() uint64 {
	return r.version
}

func (r *Raster) inBounds(x, y int) bool {
	return x >= 0 && x < r.width && y >= 0 && y < r.height
}

// Set writes a cell. Out-of-range coordinates are dropped: brushes routinely
// produce them near the edges.
func (r *Raster) Set(x, y int, c Color) {
	if !r.inBounds(x, y) {
		return
	}
	i := (y*r.width + x) * 4
	px := r.data[i : i+4 : i+4]
	if px[0] == c.R && px[1] == c.G && px[2] == c.B && px[3] == c.A {
		return
	}
	px[0], px[1], px[2], px[3] = c.R, c.G, c.B, c.A
	r.version++
}

// Get returns Transparent outside the raster.
func (r *Raster) Get(x, y int) Color {
	if !r.inBounds(x, y) {
		return Transparent
	}
	i := (y*r.width + x) * 4
	return Color{r.data[i], r.data[i+1], r.data[i+2], r.data[i+3]}
}

func (r *Raster) Reset() {
	clear(r.data)
	r.version++
}

// Export returns a copy of the raw RGBA8 bytes, len = width*height*4.
func (r *Raster) Export() []byte {
	return bytes.Clone(r.data)
}

// Import replaces every cell with data produced by Export on a raster of the
// same size. On a size mismatch the raster is left untouched.
func (r *Raster) Import(data []byte) error {
	if len(data) != len(r.data) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSnapshotSize, len(data), len(r.data))
	}
	copy(r.data, data)
	r.version++
	return nil
}

func (r *Raster) Equal(other *Raster) bool {
	if other == nil {
		return false
	}
	return r.width == other.width && r.height == other.height && bytes.Equal(r.data, other.data)
}

// Image copies the raster into a standard library image.
func (r *Raster) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.width, r.height))
	copy(img.Pix, r.data)
	return img
}
