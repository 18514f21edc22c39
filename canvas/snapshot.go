package canvas

import (
	"bytes"
	"compress/flate"
	"fmt"
	"image"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
)

// Compress deflates a raw raster export for the wire.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress inflates data produced by Compress. Output larger than limit
// bytes is rejected so a peer cannot make us allocate without bound.
func Decompress(data []byte, limit int) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	out, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotEncoding, err)
	}
	if len(out) > limit {
		return nil, fmt.Errorf("%w: inflated snapshot exceeds %d bytes", ErrSnapshotSize, limit)
	}
	return out, nil
}

// CompressedExport is Export followed by Compress.
func (r *Raster) CompressedExport() ([]byte, error) {
	return Compress(r.data)
}

// ImportCompressed is the inverse of CompressedExport.
func (r *Raster) ImportCompressed(data []byte) error {
	raw, err := Decompress(data, len(r.data))
	if err != nil {
		return err
	}
	return r.Import(raw)
}

// EncodePNG writes the raster as a PNG. When maxSide is positive and the
// raster is larger, the image is scaled down to fit, keeping its aspect ratio.
func EncodePNG(w io.Writer, img *image.NRGBA, maxSide int) error {
	b := img.Bounds()
	if maxSide <= 0 || (b.Dx() <= maxSide && b.Dy() <= maxSide) {
		return png.Encode(w, img)
	}

	dw, dh := maxSide, maxSide
	if b.Dx() > b.Dy() {
		dh = max(1, b.Dy()*maxSide/b.Dx())
	} else {
		dw = max(1, b.Dx()*maxSide/b.Dy())
	}
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return png.Encode(w, dst)
}
